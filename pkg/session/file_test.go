package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root)

	lines := []string{"...", ".A.", "..."}
	if err := store.Save("mygrid", lines); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	got, err := store.Load("mygrid")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(got) != len(lines) {
		t.Fatalf("got %d lines, want %d", len(got), len(lines))
	}
	for i := range lines {
		if got[i] != lines[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], lines[i])
		}
	}
}

func TestFileStore_SavesUnderSessionsDir(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root)

	if err := store.Save("kick", []string{"."}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	path := filepath.Join(root, "orca", "sessions", "kick")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file at %s, got error: %v", path, err)
	}
}

func TestFileStore_SnippetPrefixSavesUnderSnippetsDir(t *testing.T) {
	root := t.TempDir()
	store := NewFileStore(root)

	if err := store.Save("snippets/riff", []string{"."}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	path := filepath.Join(root, "orca", "snippets", "riff")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file at %s, got error: %v", path, err)
	}

	got, err := store.Load("snippets/riff")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(got) != 1 || got[0] != "." {
		t.Errorf("got %v, want [.]", got)
	}
}

func TestFileStore_LoadMissingSessionErrors(t *testing.T) {
	store := NewFileStore(t.TempDir())
	if _, err := store.Load("nonexistent"); err == nil {
		t.Error("expected an error loading a session that was never saved")
	}
}
