package main

import (
	"os"

	"github.com/beanboi7/chyp8/cmd"

	"github.com/faiface/pixel/pixelgl"
)

// pixelgl owns the main thread. the command line runs inside its callback
// and the exit status is carried back out
func main() {
	status := 0
	pixelgl.Run(func() {
		status = cmd.Execute()
	})
	os.Exit(status)
}
