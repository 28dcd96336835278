package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/alexshd/ubench"
)

// Run is one persisted invocation of a benchmark suite.
type Run struct {
	Timestamp time.Time      `json:"timestamp"`
	Label     string         `json:"label,omitempty"` // commit hash, host, free-form tag
	Unit      string         `json:"unit"`
	Entries   []ubench.Entry `json:"entries"`
}

// Store persists benchmark runs.
type Store interface {
	Save(run Run) error
	LoadLatest() (*Run, error)
	LoadAll() ([]Run, error)
}

// FileStore implements Store using a single JSON file holding every run.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates the parent directory of path if needed.
func NewFileStore(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Save appends run to the history.
func (s *FileStore) Save(run Run) error {
	runs, err := s.LoadAll()
	if err != nil {
		return err
	}

	runs = append(runs, run)

	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal runs: %w", err)
	}

	return os.WriteFile(s.path, data, 0o644)
}

// LoadAll returns every stored run, oldest first. A missing or empty file
// is an empty history.
func (s *FileStore) LoadAll() ([]Run, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && len(data) == 0) {
		return []Run{}, nil
	}
	if err != nil {
		return nil, err
	}

	var runs []Run
	if err := json.Unmarshal(data, &runs); err != nil {
		return nil, fmt.Errorf("unmarshal runs from %s: %w", s.path, err)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})

	return runs, nil
}

// LoadLatest returns the most recent run, or nil when the history is empty.
func (s *FileStore) LoadLatest() (*Run, error) {
	runs, err := s.LoadAll()
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[len(runs)-1], nil
}
