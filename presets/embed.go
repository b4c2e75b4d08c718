package presets

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

// LoadScript reads a rig script, preferring a file on disk over the
// embedded copy so scripts can be edited without rebuilding.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if data, err := os.ReadFile(diskPresetPath(clean)); err == nil {
		return data, nil
	}
	return ScriptsFS.ReadFile(clean)
}

//go:embed *.yaml
var PresetsFS embed.FS

// Load reads a preset file, preferring a file on disk over the embedded
// copy.
func Load(name string) ([]byte, error) {
	clean := cleanPresetPath(name)
	if data, err := os.ReadFile(diskPresetPath(clean)); err == nil {
		return data, nil
	}
	return PresetsFS.ReadFile(clean)
}

// ModTime stats the on-disk copy of a preset, if one exists.
func ModTime(name string) (time.Time, bool) {
	clean := cleanPresetPath(name)
	info, err := os.Stat(diskPresetPath(clean))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanPresetPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	return strings.TrimPrefix(s, "presets/")
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}

	s := filepath.ToSlash(path)

	if after, ok := strings.CutPrefix(s, "presets/scripts/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "presets/"); ok {
		s = after
	}
	if after, ok := strings.CutPrefix(s, "scripts/"); ok {
		s = after
	}

	return fmt.Sprintf("scripts/%s", s)
}

func diskPresetPath(clean string) string {
	return filepath.Join("presets", filepath.FromSlash(clean))
}
