// Package cli parses process arguments into a Config the application
// wiring in pkg/app consumes.
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds everything parsed from command-line flags and environment
// variables.
type Config struct {
	SessionName    string        // name under orca/sessions to load, empty for a fresh grid
	Rows, Cols     int           // dimensions for a fresh grid
	Tempo          int           // beats per minute
	Divisions      int           // ticks per beat
	OperatorConfig string        // path to a symbol remap file, empty for defaults
	SoundFont      string        // explicit SoundFont path, empty to search the default locations
	SampleDir      string        // directory of .wav files for the Sampler operator
	Timeout        time.Duration // 0 means run until interrupted
	LogLevel       string        // debug, info, warn, error
	ShowHelp       bool
}

// ParseArgs parses args (normally os.Args[1:]) into a Config, falling back
// to the ORCA_TIMEOUT and ORCA_LOG_LEVEL environment variables when the
// timeout or log level is not set on the command line.
func ParseArgs(args []string) (*Config, error) {
	reordered := reorderArgs(args)
	fs := flag.NewFlagSet("orca", flag.ContinueOnError)

	config := &Config{}
	fs.IntVar(&config.Rows, "rows", 25, "grid rows for a fresh session")
	fs.IntVar(&config.Cols, "cols", 50, "grid columns for a fresh session")
	fs.IntVar(&config.Tempo, "tempo", 120, "tempo in beats per minute")
	fs.IntVar(&config.Divisions, "divisions", 4, "ticks per beat")
	fs.StringVar(&config.OperatorConfig, "operator-config", "", "path to an operator symbol remap file")
	fs.StringVar(&config.SoundFont, "soundfont", "", "path to a SoundFont (.sf2) file")
	fs.StringVar(&config.SampleDir, "samples", "orca/samples", "directory of .wav files for the Sampler operator")
	var timeoutSec int
	fs.IntVar(&timeoutSec, "timeout", 0, "exit after this many seconds (0 = run until interrupted)")
	fs.StringVar(&config.LogLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.BoolVar(&config.ShowHelp, "help", false, "show this help message")
	fs.BoolVar(&config.ShowHelp, "h", false, "show this help message (shorthand)")

	if err := fs.Parse(reordered); err != nil {
		return nil, err
	}

	if timeoutSec == 0 {
		if v := os.Getenv("ORCA_TIMEOUT"); v != "" {
			if t, err := strconv.Atoi(v); err == nil && t > 0 {
				timeoutSec = t
			}
		}
	}
	if timeoutSec < 0 {
		return nil, fmt.Errorf("timeout must be non-negative, got %d", timeoutSec)
	}
	config.Timeout = time.Duration(timeoutSec) * time.Second

	if config.LogLevel == "info" {
		if v := os.Getenv("ORCA_LOG_LEVEL"); v != "" {
			config.LogLevel = strings.ToLower(v)
		}
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[config.LogLevel] {
		return nil, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.LogLevel)
	}

	if fs.NArg() > 0 {
		config.SessionName = fs.Arg(0)
	}

	return config, nil
}

// reorderArgs moves flags (and their values) before positional arguments,
// so flag.FlagSet can parse a session name given before or after flags.
func reorderArgs(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if len(arg) > 0 && arg[0] == '-' {
			flags = append(flags, arg)
			if i+1 < len(args) && len(args[i+1]) > 0 && args[i+1][0] != '-' {
				if arg != "-h" && arg != "--help" {
					i++
					flags = append(flags, args[i])
				}
			}
		} else {
			positional = append(positional, arg)
		}
	}
	return append(flags, positional...)
}

// PrintHelp writes usage information to stdout.
func PrintHelp() {
	fmt.Fprint(os.Stdout, `orca - a grid-based live-coding sequencer

Usage:
  orca [options] [session-name]

Arguments:
  session-name                 name of a saved session under orca/sessions
                                (omit to start from a fresh grid)

Options:
  --rows <n>                   grid rows for a fresh session (default 25)
  --cols <n>                   grid columns for a fresh session (default 50)
  --tempo <bpm>                 tempo in beats per minute (default 120)
  --divisions <n>               ticks per beat (default 4)
  --operator-config <path>      operator symbol remap file
  --soundfont <path>            SoundFont (.sf2) file for the software synth
  --samples <dir>               directory of .wav files for the Sampler operator
  --timeout <seconds>            exit automatically after this many seconds
  --log-level <level>            debug, info, warn, error (default info)
  -h, --help                     show this help message

Environment Variables:
  ORCA_TIMEOUT=<seconds>
  ORCA_LOG_LEVEL=<level>

Examples:
  orca                          start a fresh 25x50 grid at 120 BPM
  orca my-song                  load orca/sessions/my-song
  orca --tempo 140 --divisions 8
`)
}
