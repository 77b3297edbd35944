package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// File persists state as a JSON document on disk. Writes go through a temp
// file plus rename so a crash mid-save never leaves a truncated state file.
type File struct {
	Path string
}

// NewFile creates a file-backed store at path. The file is created on the
// first Save; a missing file loads as the zero state.
func NewFile(path string) *File { return &File{Path: path} }

func (f *File) Load() (State, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return State{}, nil
		}
		return State{}, fmt.Errorf("reading state file: %w", err)
	}
	var s State
	if err := json.Unmarshal(data, &s); err != nil {
		return State{}, fmt.Errorf("parsing state file: %w", err)
	}
	return s, nil
}

func (f *File) Save(s State) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling state: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.Path), "state-*.json")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp state file: %w", err)
	}
	if err := os.Rename(tmpName, f.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}

var _ Store = (*File)(nil)
