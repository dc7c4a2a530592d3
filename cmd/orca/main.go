// Command orca runs a grid-based live-coding sequencer headlessly: it
// loads or creates a grid, ticks it at the configured tempo, and pushes
// notes out over MIDI and the built-in software synth until interrupted.
package main

import (
	"fmt"
	"os"

	"github.com/orcagrid/orca-go/pkg/app"
)

func main() {
	a := app.New()
	if err := a.Run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "orca:", err)
		os.Exit(1)
	}
}
