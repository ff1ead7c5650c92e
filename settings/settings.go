// Package settings loads hookctl's own settings, which are separate from the
// pre-commit configuration it manages. Settings live in TOML: a global file
// under the XDG config dir, overridden by a project-level .hookctl.toml.
package settings

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/hooktools/core/errors"
)

// ProjectFileName is the per-project settings file.
const ProjectFileName = ".hookctl.toml"

// Settings holds tool behavior defaults. Command-line flags override them.
type Settings struct {
	Update   UpdateSettings   `toml:"update"`
	Validate ValidateSettings `toml:"validate"`
	Log      LogSettings      `toml:"log"`
}

// UpdateSettings control `hookctl update`.
type UpdateSettings struct {
	// Freeze pins revs to commit SHAs by default.
	Freeze bool `toml:"freeze"`
	// Exclude lists repository URLs update never touches.
	Exclude []string `toml:"exclude"`
}

// ValidateSettings control `hookctl validate`.
type ValidateSettings struct {
	// Strict escalates lint warnings to failures by default.
	Strict bool `toml:"strict"`
}

// LogSettings control logging defaults.
type LogSettings struct {
	Level string `toml:"level"`
}

// GlobalPath returns the path of the global settings file.
func GlobalPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "hookctl", "config.toml")
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "hookctl", "config.toml")
	}
	return ""
}

// Load reads settings with layering: built-in defaults, then the global
// file, then the project file. Missing files are not errors.
func Load(projectDir string) (*Settings, error) {
	s := &Settings{}

	if globalPath := GlobalPath(); globalPath != "" {
		if err := loadFile(globalPath, s); err != nil {
			return nil, err
		}
	}

	if projectDir != "" {
		if err := loadFile(filepath.Join(projectDir, ProjectFileName), s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func loadFile(path string, s *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to read settings file").
			WithDetail("path", path)
	}

	var layer Settings
	if err := toml.Unmarshal(data, &layer); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to parse settings file").
			WithDetail("path", path)
	}

	merge(s, &layer)
	return nil
}

// merge overlays src onto dst. Booleans are or-ed (a layer can enable but
// not disable), lists and strings replace when set.
func merge(dst, src *Settings) {
	dst.Update.Freeze = dst.Update.Freeze || src.Update.Freeze
	if len(src.Update.Exclude) > 0 {
		dst.Update.Exclude = src.Update.Exclude
	}
	dst.Validate.Strict = dst.Validate.Strict || src.Validate.Strict
	if src.Log.Level != "" {
		dst.Log.Level = src.Log.Level
	}
}

// Excluded reports whether a repository URL is excluded from updates.
func (s *Settings) Excluded(repoURL string) bool {
	for _, url := range s.Update.Exclude {
		if url == repoURL {
			return true
		}
	}
	return false
}
