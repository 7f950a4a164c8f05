// Package test contains helper functions shared by the package tests of the
// emulator.
//
// The Expect* functions report a failure and carry on with the test. The
// Demand* functions stop the test immediately and should be used when later
// checks depend on the value being correct, for example a slice length
// before indexing into it.
package test
