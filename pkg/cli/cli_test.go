package cli

import (
	"testing"
	"time"
)

func TestParseArgs_ValidArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected Config
	}{
		{
			name: "defaults",
			args: []string{},
			expected: Config{
				SessionName: "",
				Rows:        25,
				Cols:        50,
				Tempo:       120,
				Divisions:   4,
				SampleDir:   "orca/samples",
				Timeout:     0,
				LogLevel:    "info",
			},
		},
		{
			name: "session name",
			args: []string{"my-song"},
			expected: Config{
				SessionName: "my-song",
				Rows:        25,
				Cols:        50,
				Tempo:       120,
				Divisions:   4,
				SampleDir:   "orca/samples",
				Timeout:     0,
				LogLevel:    "info",
			},
		},
		{
			name: "timeout",
			args: []string{"--timeout", "10"},
			expected: Config{
				Rows:      25,
				Cols:      50,
				Tempo:     120,
				Divisions: 4,
				SampleDir: "orca/samples",
				Timeout:   10 * time.Second,
				LogLevel:  "info",
			},
		},
		{
			name: "tempo and divisions",
			args: []string{"--tempo", "140", "--divisions", "8"},
			expected: Config{
				Rows:      25,
				Cols:      50,
				Tempo:     140,
				Divisions: 8,
				SampleDir: "orca/samples",
				LogLevel:  "info",
			},
		},
		{
			name: "log level",
			args: []string{"--log-level", "debug"},
			expected: Config{
				Rows:      25,
				Cols:      50,
				Tempo:     120,
				Divisions: 4,
				SampleDir: "orca/samples",
				LogLevel:  "debug",
			},
		},
		{
			name: "flags after positional argument",
			args: []string{"my-song", "--tempo", "90"},
			expected: Config{
				SessionName: "my-song",
				Rows:        25,
				Cols:        50,
				Tempo:       90,
				Divisions:   4,
				SampleDir:   "orca/samples",
				LogLevel:    "info",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.args)
			if err != nil {
				t.Fatalf("ParseArgs returned error: %v", err)
			}
			if *got != tt.expected {
				t.Errorf("ParseArgs(%v) = %+v, want %+v", tt.args, *got, tt.expected)
			}
		})
	}
}

func TestParseArgs_NegativeTimeoutIsError(t *testing.T) {
	if _, err := ParseArgs([]string{"--timeout", "-1"}); err == nil {
		t.Error("expected an error for a negative timeout")
	}
}

func TestParseArgs_InvalidLogLevelIsError(t *testing.T) {
	if _, err := ParseArgs([]string{"--log-level", "verbose"}); err == nil {
		t.Error("expected an error for an invalid log level")
	}
}

func TestParseArgs_HelpFlag(t *testing.T) {
	got, err := ParseArgs([]string{"--help"})
	if err != nil {
		t.Fatalf("ParseArgs returned error: %v", err)
	}
	if !got.ShowHelp {
		t.Error("expected ShowHelp to be true")
	}

	got, err = ParseArgs([]string{"-h"})
	if err != nil {
		t.Fatalf("ParseArgs returned error: %v", err)
	}
	if !got.ShowHelp {
		t.Error("expected ShowHelp to be true for -h")
	}
}
