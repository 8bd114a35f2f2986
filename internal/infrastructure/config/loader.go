// Package config loads level documents and gameplay tuning.
//
// Level documents are JSON files organized by mode
// (single_player/level1.json, ai_coop/level2.json, ...) and read through an
// fs.FS so both the embedded default set and an on-disk directory work.
package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
)

// Loader loads level documents from an fs.FS.
type Loader struct {
	fsys fs.FS
}

// NewLoader creates a loader reading from a directory on disk.
func NewLoader(basePath string) *Loader {
	return &Loader{fsys: os.DirFS(basePath)}
}

// NewFSLoader creates a loader reading from the given filesystem.
func NewFSLoader(fsys fs.FS) *Loader {
	return &Loader{fsys: fsys}
}

// LoadLevel loads and validates the level document for (mode, number).
// Any failure here is the one recoverable load-time error: callers display
// it instead of starting the simulation.
func (l *Loader) LoadLevel(mode Mode, number int) (*LevelConfig, error) {
	path := fmt.Sprintf("%s/level%d.json", mode, number)

	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", path, err)
	}

	var cfg LevelConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", path, err)
	}
	if cfg.LevelHeight == 0 {
		cfg.LevelHeight = 600 // display height default
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid level %s: %w", path, err)
	}

	return &cfg, nil
}
