package cpu

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every error returned by Step or Tick is a *Fault wrapping
// one of these, so callers can use errors.Is to classify it.
var (
	ErrROMTooLarge       = errors.New("ROM too big")
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrAddressOutOfRange = errors.New("address out of range")
	ErrFontWrite         = errors.New("write to font memory")
	ErrUnknownOpcode     = errors.New("unknown opcode")
)

// Fault is a fatal interpreter error. After a fault the machine is Stopped.
type Fault struct {
	Err error

	// PC is the address of the instruction that faulted, not the already
	// advanced program counter
	PC     uint16
	Opcode uint16

	// Address is only meaningful for ErrAddressOutOfRange and ErrFontWrite
	Address int
}

func (f *Fault) Error() string {
	switch f.Err {
	case ErrAddressOutOfRange, ErrFontWrite:
		return fmt.Sprintf("%v: %#04x (pc %#04x, opcode %04x)", f.Err, f.Address, f.PC, f.Opcode)
	}
	return fmt.Sprintf("%v (pc %#04x, opcode %04x)", f.Err, f.PC, f.Opcode)
}

func (f *Fault) Unwrap() error {
	return f.Err
}

func addressFault(err error, addr int) error {
	return &Fault{Err: err, Address: addr}
}
