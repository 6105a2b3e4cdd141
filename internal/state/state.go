// Package state persists GUI session state between runs.
//
// The state file (config.json in the application root) holds the last-used
// input and output directories, restored into the directory pickers at
// startup and saved when the window closes.
package state

import (
	"encoding/json"
	"os"

	"github.com/oszuidwest/zwfm-wavsplit/pkg/logger"
)

// State holds the last-used directories for the directory pickers.
type State struct {
	LastInputDir  string `json:"last_input_dir"`
	LastOutputDir string `json:"last_output_dir"`
}

// Load reads persisted state from path. A missing, unreadable or corrupt
// file yields home-directory defaults; loading is never fatal.
func Load(path string) *State {
	s := defaults()

	data, err := os.ReadFile(path) // #nosec G304 - path is derived from the application root
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error("Error loading state file %s: %v", path, err)
		}
		return s
	}

	if err := json.Unmarshal(data, s); err != nil {
		logger.Error("Error parsing state file %s: %v", path, err)
		return defaults()
	}

	// Fields absent from the file keep their defaults.
	if s.LastInputDir == "" {
		s.LastInputDir = homeDir()
	}
	if s.LastOutputDir == "" {
		s.LastOutputDir = homeDir()
	}

	logger.Debug("Loaded state: last_input_dir=%s last_output_dir=%s", s.LastInputDir, s.LastOutputDir)
	return s
}

// Save writes the state to path.
func (s *State) Save(path string) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { // #nosec G306 - state holds directory paths, not secrets
		return err
	}
	logger.Debug("Saved state: last_input_dir=%s last_output_dir=%s", s.LastInputDir, s.LastOutputDir)
	return nil
}

func defaults() *State {
	home := homeDir()
	return &State{LastInputDir: home, LastOutputDir: home}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
