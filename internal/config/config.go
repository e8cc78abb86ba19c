// Package config contains global variables that are set according to
// the command line, plus the optional on-disk configuration file.
// The globals can be accessed from anywhere inside csvseek.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Quiet is true if --quiet was passed on the command line.
var Quiet bool

// File models the optional TOML configuration file. All fields are
// optional; command-line flags take precedence over all of them.
type File struct {
	// DefaultSource is the manifest source used by 'csvseek lookup'
	// when --source is not given.
	DefaultSource string `toml:"default_source"`

	// OutputDir is where lookup result files are written.
	OutputDir string `toml:"output_dir"`

	// Delimiter overrides the default comma for rendering.
	Delimiter string `toml:"delimiter"`

	// Sources is the path of the source manifest.
	Sources string `toml:"sources"`

	// PortableMatch disables the fast literal matcher, forcing the
	// field-splitting fallback.
	PortableMatch bool `toml:"portable_match"`
}

// Path returns the location of the configuration file. CSVSEEK_CONFIG
// overrides the default of ~/.config/csvseek/config.toml.
func Path() string {
	if loc, ok := os.LookupEnv("CSVSEEK_CONFIG"); ok {
		return loc
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "csvseek", "config.toml")
}

// Load reads the configuration file. A missing file is not an error;
// it yields the zero value.
func Load() (File, error) {
	var f File
	path := Path()
	if path == "" {
		return f, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return f, nil
	}
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return File{}, err
	}
	return f, nil
}
