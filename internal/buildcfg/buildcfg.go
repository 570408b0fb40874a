// Package buildcfg persists probed compiler capabilities in a small TOML
// file, macrovis.toml, so the expansion side can pick up a previous probe's
// answer without re-running the compiler.
package buildcfg

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// FileName is the manifest the tool looks for, walking up parent
// directories the way build tools locate their project file.
const FileName = "macrovis.toml"

// Config mirrors macrovis.toml.
type Config struct {
	Capability Capability `toml:"capability"`
}

// Capability records the outcome of the last probe run.
type Capability struct {
	SimpleDeclMacro bool   `toml:"simple_decl_macro"`
	ProbedWith      string `toml:"probed_with,omitempty"`
	ProbedAt        string `toml:"probed_at,omitempty"`
}

// Stamp fills the provenance fields: which compiler answered and when.
func (c *Capability) Stamp(compilerID string, now time.Time) {
	c.ProbedWith = compilerID
	c.ProbedAt = now.UTC().Format(time.RFC3339)
}

// Find walks up from startDir to locate macrovis.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load parses the config at path.
func Load(path string) (Config, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("capability") {
		return Config{}, fmt.Errorf("%s: missing [capability]", path)
	}
	return cfg, nil
}

// Discover locates and parses the nearest config above startDir.
// ok is false when no config exists, which is not an error.
func Discover(startDir string) (cfg Config, path string, ok bool, err error) {
	path, ok, err = Find(startDir)
	if err != nil || !ok {
		return Config{}, "", ok, err
	}
	cfg, err = Load(path)
	if err != nil {
		return Config{}, "", true, err
	}
	return cfg, path, true, nil
}

// Save writes cfg to path, replacing any previous file atomically.
func Save(path string, cfg Config) error {
	f, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if removeErr := os.Remove(f.Name()); removeErr != nil && !errors.Is(removeErr, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "failed to remove temp file: %v\n", removeErr)
		}
	}()
	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("%s: failed to encode TOML: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
