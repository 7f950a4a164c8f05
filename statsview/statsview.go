// Package statsview runs a local HTTP server with runtime statistics of the
// emulator process, provided by github.com/go-echarts/statsview.
//
// After launch the graphs are at
//
//	localhost:12600/debug/statsview
//
// and the standard pprof pages at
//
//	localhost:12600/debug/pprof/
package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Address the server listens on.
const Address = "localhost:12600"

const url = "/debug/statsview"

// Launch starts the server in a new goroutine.
func Launch(output io.Writer) {
	viewer.SetConfiguration(viewer.WithAddr(Address))
	mgr := statsview.New()
	go mgr.Start()

	fmt.Fprintf(output, "stats server available at %s%s\n", Address, url)
}
