package audio

import (
	"os"
	"path/filepath"
)

// DefaultSoundFontName is the SoundFont file SoundBank looks for when no
// explicit path is configured.
const DefaultSoundFontName = "GeneralUser-GS.sf2"

// locateSoundFont searches for a SoundFont in priority order: an explicit
// path (if non-empty), the ORCA_SOUNDFONT environment variable, the
// session directory's soundfonts, and finally the current directory. It
// returns "" if none of these exist.
func locateSoundFont(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
	}
	if envPath := os.Getenv("ORCA_SOUNDFONT"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	sessionPath := filepath.Join("orca", "soundfonts", DefaultSoundFontName)
	if _, err := os.Stat(sessionPath); err == nil {
		return sessionPath
	}
	if _, err := os.Stat(DefaultSoundFontName); err == nil {
		return DefaultSoundFontName
	}
	return ""
}
