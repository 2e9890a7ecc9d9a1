// Package lunconfig loads the optional .lunfardorc.toml config file: a
// default import search path and a library whitelist, grounded on the
// teacher's internal/tqw/marshaling.go use of BurntSushi/toml for its world
// manifest files.
package lunconfig

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/lunfardo-lang/lunfardo/internal/lunfardo"
)

// Config is the top-level shape of a .lunfardorc.toml file. Every field is
// optional; a missing config file yields a zero Config whose Apply is a
// no-op.
type Config struct {
	// ExamplesDir overrides the fallback directory `ejecutar` and script
	// imports search when a file isn't found relative to the importing
	// script's own directory.
	ExamplesDir string `toml:"examples_dir"`

	// Libraries restricts which registered library names `importar` may
	// resolve. An empty list leaves the full registry available.
	Libraries []string `toml:"libraries"`
}

// Load reads and parses path. A missing file is not an error: it returns a
// zero Config, since the config file is entirely optional.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Apply pushes cfg's settings into the lunfardo package's script-resolution
// globals. Called once at startup after Load.
func (cfg Config) Apply() {
	if cfg.ExamplesDir != "" {
		lunfardo.ExamplesDir = cfg.ExamplesDir
	}
	if len(cfg.Libraries) > 0 {
		lunfardo.RestrictLibraries(cfg.Libraries)
	}
}
