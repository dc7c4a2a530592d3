package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestClampSample(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0.5, 0.5},
		{1.5, 1},
		{-1.5, -1},
		{-0.2, -0.2},
	}
	for _, c := range cases {
		if got := clampSample(c.in); got != c.want {
			t.Errorf("clampSample(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestMidiHz(t *testing.T) {
	if got := midiHz(69); math.Abs(got-440) > 1e-9 {
		t.Errorf("midiHz(69) = %v, want 440", got)
	}
	if got := midiHz(81); math.Abs(got-880) > 1e-9 {
		t.Errorf("midiHz(81) = %v, want 880", got)
	}
}

func TestFmFactor(t *testing.T) {
	if got := fmFactor(0); got != 1 {
		t.Errorf("fmFactor(0) = %v, want 1", got)
	}
	if got := fmFactor(-5); got != 1 {
		t.Errorf("fmFactor(-5) = %v, want 1", got)
	}
	if got := fmFactor(4); got != 4 {
		t.Errorf("fmFactor(4) = %v, want 4", got)
	}
}

func TestSpeedRatio(t *testing.T) {
	cases := []struct {
		raw  int
		want float64
	}{
		{0, 1},
		{-3, 1},
		{5, 5},
		{9, 0.09},
		{35, 0.35},
	}
	for _, c := range cases {
		if got := speedRatio(c.raw); math.Abs(got-c.want) > 1e-9 {
			t.Errorf("speedRatio(%d) = %v, want %v", c.raw, got, c.want)
		}
	}
}

func TestScaleExponential(t *testing.T) {
	if got := scaleExponential(0); got != 127 {
		t.Errorf("scaleExponential(0) = %v, want 127", got)
	}
	if got := scaleExponential(36); got != 127 {
		t.Errorf("scaleExponential(36) = %v, want 127 (clamped)", got)
	}
	if got := scaleExponential(18); got != 127 {
		t.Errorf("scaleExponential(18) = %v, want 127 (2^0.5*127 is clamped)", got)
	}
}

func TestLocateSoundFont_Explicit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.sf2")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := locateSoundFont(path); got != path {
		t.Errorf("locateSoundFont(%q) = %q, want %q", path, got, path)
	}
}

func TestLocateSoundFont_NoneFound(t *testing.T) {
	t.Chdir(t.TempDir())
	if got := locateSoundFont(""); got != "" {
		t.Errorf("locateSoundFont(\"\") = %q, want empty", got)
	}
}

func TestLocateSoundFont_EnvVar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.sf2")
	if err := os.WriteFile(path, []byte("RIFF"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ORCA_SOUNDFONT", path)
	if got := locateSoundFont(""); got != path {
		t.Errorf("locateSoundFont(\"\") = %q, want %q", got, path)
	}
}
