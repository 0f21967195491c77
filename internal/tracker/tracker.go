// Package tracker implements the project collection and its timer state
// machine. The start/stop transition lives here and nowhere else, so every
// client stays a thin caller of the toggle endpoint.
package tracker

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ryplify/ryptrack/internal/domain"
	"github.com/ryplify/ryptrack/internal/store"
)

// Store is the persistence gateway. Update must be all-or-nothing: when the
// callback or the write fails, no state change may be observed afterwards.
type Store interface {
	View(fn func(*store.State) error) error
	Update(fn func(*store.State) error) error
}

var (
	ErrNotFound        = errors.New("project not found")
	ErrEmptyName       = errors.New("project name must not be empty")
	ErrProjectInactive = errors.New("timer can only start on an active project")
	ErrProjectActive   = errors.New("only inactive projects can be deleted")
	ErrInvalidEntry    = errors.New("time entry must not end before it starts")
)

// Service owns every durable mutation of the project collection.
type Service struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

func New(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// ProjectView is a project together with its transient live note and the
// display-only elapsed total of a running timer.
type ProjectView struct {
	domain.Project
	LiveNote       string  `json:"liveNote,omitempty"`
	DisplaySeconds float64 `json:"displaySeconds"`
}

// List returns all projects in collection order.
func (s *Service) List() ([]ProjectView, error) {
	now := s.now()
	var out []ProjectView
	err := s.store.View(func(st *store.State) error {
		out = make([]ProjectView, 0, len(st.Projects))
		for _, p := range st.Projects {
			out = append(out, ProjectView{
				Project:        p,
				LiveNote:       st.LiveNotes[p.ID],
				DisplaySeconds: p.DisplaySeconds(now),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get returns a single project by id.
func (s *Service) Get(id string) (domain.Project, error) {
	var out domain.Project
	err := s.store.View(func(st *store.State) error {
		p := st.Project(id)
		if p == nil {
			return ErrNotFound
		}
		out = *p
		return nil
	})
	if err != nil {
		return domain.Project{}, err
	}
	return out, nil
}

// Create adds a new stopped, active project.
func (s *Service) Create(name string, isFree bool) (domain.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Project{}, ErrEmptyName
	}
	p := domain.Project{
		ID:          uuid.NewString(),
		Name:        name,
		IsActive:    true,
		IsFree:      isFree,
		CreatedAt:   s.now(),
		TimeEntries: []domain.TimeEntry{},
	}
	err := s.store.Update(func(st *store.State) error {
		st.Projects = append(st.Projects, p)
		return nil
	})
	if err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

// Update replaces the mutable fields of a project: name, flags and manually
// edited time entries. TotalSeconds is recomputed from the entries so the
// stored total always equals their sum. The running-timer state is owned by
// Toggle and left untouched here.
func (s *Service) Update(id string, in domain.Project) (domain.Project, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return domain.Project{}, ErrEmptyName
	}
	for _, e := range in.TimeEntries {
		if e.End < e.Start {
			return domain.Project{}, ErrInvalidEntry
		}
	}
	var out domain.Project
	err := s.store.Update(func(st *store.State) error {
		p := st.Project(id)
		if p == nil {
			return ErrNotFound
		}
		p.Name = name
		p.IsActive = in.IsActive
		p.IsFree = in.IsFree
		p.TimeEntries = in.TimeEntries
		if p.TimeEntries == nil {
			p.TimeEntries = []domain.TimeEntry{}
		}
		p.TotalSeconds = p.EntrySeconds()
		out = *p
		return nil
	})
	if err != nil {
		return domain.Project{}, err
	}
	return out, nil
}

// Delete removes an inactive project together with its entries and note.
func (s *Service) Delete(id string) error {
	return s.store.Update(func(st *store.State) error {
		for i := range st.Projects {
			if st.Projects[i].ID != id {
				continue
			}
			if st.Projects[i].IsActive {
				return ErrProjectActive
			}
			st.Projects = append(st.Projects[:i], st.Projects[i+1:]...)
			delete(st.LiveNotes, id)
			return nil
		}
		return ErrNotFound
	})
}

// Toggle starts the timer on a stopped project and stops it on a running
// one. The current state alone decides which transition applies, so start
// while running and stop while stopped cannot both be possible at once.
func (s *Service) Toggle(id, note string) (domain.Project, error) {
	now := s.now()
	var out domain.Project
	err := s.store.Update(func(st *store.State) error {
		p := st.Project(id)
		if p == nil {
			return ErrNotFound
		}
		if p.StartTime == nil {
			if !p.IsActive {
				return ErrProjectInactive
			}
			ms := now.UnixMilli()
			p.StartTime = &ms
			st.LiveNotes[p.ID] = note
		} else {
			if note != "" {
				st.LiveNotes[p.ID] = note
			}
			s.stop(st, p, now)
		}
		out = *p
		return nil
	})
	if err != nil {
		return domain.Project{}, err
	}
	return out, nil
}

// SetNote records the transient activity note for a project. Last write
// wins; concurrent tabs may clobber each other's text but never timing data.
func (s *Service) SetNote(id, note string) error {
	return s.store.Update(func(st *store.State) error {
		if st.Project(id) == nil {
			return ErrNotFound
		}
		st.LiveNotes[id] = note
		return nil
	})
}

// stop commits the running interval as a time entry. A nil StartTime here
// means client and store drifted apart; the safe default is zero elapsed
// time, logged as an anomaly instead of failing the request.
func (s *Service) stop(st *store.State, p *domain.Project, now time.Time) {
	if p.StartTime == nil {
		s.log.Warn("stop requested on a stopped project",
			slog.String("project_id", p.ID))
		return
	}
	entry := domain.TimeEntry{
		Start: *p.StartTime,
		End:   now.UnixMilli(),
		Note:  st.LiveNotes[p.ID],
	}
	p.TimeEntries = append(p.TimeEntries, entry)
	p.TotalSeconds += entry.Seconds()
	p.StartTime = nil
	delete(st.LiveNotes, p.ID)
}
