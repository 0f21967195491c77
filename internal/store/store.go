// Package store implements the persistence gateway: a single JSON file
// holding the whole tracker state, replaced atomically on every update.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/ryplify/ryptrack/internal/domain"
)

// State is the document shape of the database file. Live notes sit outside
// the project records so volatile activity text never becomes part of the
// durable aggregate.
type State struct {
	Projects  []domain.Project  `json:"projects"`
	LiveNotes map[string]string `json:"liveNotes"`
	Settings  domain.Settings   `json:"settings"`
	User      *domain.User      `json:"user,omitempty"`
}

// Project returns a pointer into the state for the given id, or nil.
func (s *State) Project(id string) *domain.Project {
	for i := range s.Projects {
		if s.Projects[i].ID == id {
			return &s.Projects[i]
		}
	}
	return nil
}

// File is a JSON-file-backed store. Every operation reads the file fresh and
// updates replace it via a temp file rename, so a failed write leaves the
// previous content intact.
type File struct {
	path string
	log  *slog.Logger
	mu   sync.Mutex
}

// Open prepares the database file at path, creating its directory when
// missing. An existing file that cannot be parsed is an error rather than a
// silent reset; overwriting it would lose the user's tracked time.
func Open(path string, log *slog.Logger) (*File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("store: create data dir: %w", err)
		}
	}
	f := &File{path: path, log: log}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		log.Info("database file not found, starting empty", slog.String("path", path))
	}
	if _, err := f.load(); err != nil {
		return nil, err
	}
	return f, nil
}

func defaultState() *State {
	return &State{
		Projects:  []domain.Project{},
		LiveNotes: map[string]string{},
		Settings: domain.Settings{
			HourlyRate: domain.DefaultHourlyRate,
			Currency:   "CZK",
		},
	}
}

func (f *File) load() (*State, error) {
	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return defaultState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", f.path, err)
	}
	st := defaultState()
	if err := json.Unmarshal(raw, st); err != nil {
		return nil, fmt.Errorf("store: parse %s: %w", f.path, err)
	}
	if st.Projects == nil {
		st.Projects = []domain.Project{}
	}
	if st.LiveNotes == nil {
		st.LiveNotes = map[string]string{}
	}
	return st, nil
}

func (f *File) save(st *State) error {
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("store: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("store: replace %s: %w", f.path, err)
	}
	return nil
}

// View runs fn with a snapshot of the current state. Mutations made by fn
// are discarded.
func (f *File) View(fn func(*State) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.load()
	if err != nil {
		return err
	}
	return fn(st)
}

// Update runs fn against the current state and persists the result. When fn
// or the write fails, the file keeps its previous content, so no partial
// mutation is ever observed.
func (f *File) Update(fn func(*State) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, err := f.load()
	if err != nil {
		return err
	}
	if err := fn(st); err != nil {
		return err
	}
	return f.save(st)
}
