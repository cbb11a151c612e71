package repos

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// FileStateRepo keeps the state document in a json file.
type FileStateRepo struct {
	logger *log.Logger
	path   string
}

func NewFileStateRepo(logger *log.Logger, path string) *FileStateRepo {
	return &FileStateRepo{logger: logger, path: path}
}

// Load returns nil data when the file doesn't exist yet.
func (r *FileStateRepo) Load() ([]byte, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("Error reading state file (%s): %w", r.path, err)
	}
	return data, nil
}

// Save writes to a temp file first so a crash mid-write never leaves a truncated document.
func (r *FileStateRepo) Save(data []byte) error {
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("Error creating state directory (%s): %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("Error creating temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("Error writing state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("Error writing state file: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("Error replacing state file (%s): %w", r.path, err)
	}

	r.logger.Debug("FileStateRepo.Save", "path", r.path, "bytes", len(data))
	return nil
}

func (r *FileStateRepo) Close() error {
	return nil
}
