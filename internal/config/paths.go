package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves the application's directory layout against a base
// directory (the executable's directory by default).
type Paths struct {
	BaseDir    string
	InputDir   string
	ReportsDir string
	LogsDir    string
}

// NewPaths resolves a PathsConfig against baseDir. Relative entries are
// anchored at baseDir; absolute entries are used as-is.
func NewPaths(baseDir string, cfg PathsConfig) *Paths {
	resolve := func(dir string) string {
		if filepath.IsAbs(dir) {
			return dir
		}
		return filepath.Join(baseDir, dir)
	}
	return &Paths{
		BaseDir:    baseDir,
		InputDir:   resolve(cfg.InputDir),
		ReportsDir: resolve(cfg.ReportsDir),
		LogsDir:    resolve(cfg.LogsDir),
	}
}

// GetPaths resolves the default layout against the executable directory.
func GetPaths(cfg PathsConfig) (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to locate executable: %w", err)
	}
	return NewPaths(filepath.Dir(exe), cfg), nil
}

// EnsureDirectories creates every directory in the layout.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.InputDir, p.ReportsDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// GetReportPath returns the absolute path of a report file.
func (p *Paths) GetReportPath(name string) string {
	return filepath.Join(p.ReportsDir, name)
}

// GetInputPath returns the absolute path of an input deck.
func (p *Paths) GetInputPath(name string) string {
	return filepath.Join(p.InputDir, name)
}
