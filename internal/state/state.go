package state

import (
	"encoding/json" // For JSON encoding and decoding of the state file
	"errors"
	"fmt"
	"os" // For file system operations like reading and writing files
	"path/filepath"
	"time"

	"devkit/internal/logger" // Custom logger package for logging errors and debug info
)

// ComponentState records one installed component.
type ComponentState struct {
	InstalledAt time.Time `json:"installed_at"`     // When the last successful install finished
	Source      string    `json:"source,omitempty"` // Archive URL the files came from, empty for command-only components
}

// State holds the entire saved state, keyed by component name.
type State struct {
	Components map[string]ComponentState `json:"components"`
}

// Installed reports whether the named component has been installed.
func (s *State) Installed(name string) bool {
	_, ok := s.Components[name]
	return ok
}

// Read loads the saved state from a JSON file at the given path.
// A missing file yields an empty State; unreadable or malformed files are errors.
func Read(path string) (*State, error) {
	st := &State{}
	file, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read state %s: %w", path, err)
	}
	if err == nil {
		if err := json.Unmarshal(file, st); err != nil {
			return nil, fmt.Errorf("failed to parse state %s: %w", path, err)
		}
	}

	// Ensure the map is initialized if JSON contained null
	if st.Components == nil {
		st.Components = make(map[string]ComponentState)
	}
	return st, nil
}

// LoadState is Read for callers that carry on regardless: on error it logs
// a warning and returns an empty State.
func LoadState(path string) *State {
	st, err := Read(path)
	if err != nil {
		logger.Warn("[WARN] Ignoring state: %v\n", err)
		return &State{Components: make(map[string]ComponentState)}
	}
	return st
}

// SaveState writes the given State struct to a JSON file at the given path,
// creating the parent directory if needed.
// Errors are logged but not propagated: the components are installed either way.
func SaveState(path string, st *State) {
	file, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal state: %v\n", err)
		return
	}

	logger.Debug("[DEBUG] Writing state to %s:\n%s\n", path, string(file))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.Error("[ERROR] Failed to create state directory for %s: %v\n", path, err)
		return
	}
	if err := os.WriteFile(path, file, 0644); err != nil {
		logger.Error("[ERROR] Failed to write state file %s: %v\n", path, err)
	}
}
