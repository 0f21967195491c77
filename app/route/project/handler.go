package project

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/ryplify/ryptrack/internal/domain"
	"github.com/ryplify/ryptrack/internal/tracker"
)

type HandlerGroup struct {
	tracker *tracker.Service
}

func NewHandlerGroup(tracker *tracker.Service) *HandlerGroup {
	return &HandlerGroup{tracker: tracker}
}

func (hg *HandlerGroup) Mount(r chi.Router) {
	r.Get("/api/projects", hg.handleList)
	r.Post("/api/projects", hg.handleCreate)
	r.Put("/api/projects/{id}", hg.handleUpdate)
	r.Delete("/api/projects/{id}", hg.handleDelete)
	r.Post("/api/projects/{id}/toggle", hg.handleToggle)
	r.Put("/api/projects/{id}/note", hg.handleNote)
}

func (hg *HandlerGroup) handleList(w http.ResponseWriter, r *http.Request) {
	projects, err := hg.tracker.List()
	if err != nil {
		apiError(w, r, http.StatusInternalServerError, err)
		return
	}
	render.JSON(w, r, projects)
}

type createRequest struct {
	Name   string `json:"name"`
	IsFree bool   `json:"isFree"`
}

// createRequest satisfies [render.Binder]
func (req *createRequest) Bind(*http.Request) error {
	if strings.TrimSpace(req.Name) == "" {
		return tracker.ErrEmptyName
	}
	return nil
}

func (hg *HandlerGroup) handleCreate(w http.ResponseWriter, r *http.Request) {
	req := &createRequest{}
	if err := render.Bind(r, req); err != nil {
		apiError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	p, err := hg.tracker.Create(req.Name, req.IsFree)
	if err != nil {
		apiError(w, r, statusFor(err), err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, p)
}

type updateRequest struct {
	Name        string             `json:"name"`
	IsActive    bool               `json:"isActive"`
	IsFree      bool               `json:"isFree"`
	TimeEntries []domain.TimeEntry `json:"timeEntries"`
}

// updateRequest satisfies [render.Binder]
func (req *updateRequest) Bind(*http.Request) error {
	if strings.TrimSpace(req.Name) == "" {
		return tracker.ErrEmptyName
	}
	for _, e := range req.TimeEntries {
		if e.End < e.Start {
			return tracker.ErrInvalidEntry
		}
	}
	return nil
}

func (hg *HandlerGroup) handleUpdate(w http.ResponseWriter, r *http.Request) {
	req := &updateRequest{}
	if err := render.Bind(r, req); err != nil {
		apiError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	p, err := hg.tracker.Update(chi.URLParam(r, "id"), domain.Project{
		Name:        req.Name,
		IsActive:    req.IsActive,
		IsFree:      req.IsFree,
		TimeEntries: req.TimeEntries,
	})
	if err != nil {
		apiError(w, r, statusFor(err), err)
		return
	}
	render.JSON(w, r, p)
}

func (hg *HandlerGroup) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := hg.tracker.Delete(chi.URLParam(r, "id")); err != nil {
		apiError(w, r, statusFor(err), err)
		return
	}
	render.NoContent(w, r)
}

type toggleRequest struct {
	Note string `json:"note"`
}

func (hg *HandlerGroup) handleToggle(w http.ResponseWriter, r *http.Request) {
	req := toggleRequest{}
	if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		apiError(w, r, http.StatusBadRequest, err)
		return
	}

	p, err := hg.tracker.Toggle(chi.URLParam(r, "id"), req.Note)
	if err != nil {
		apiError(w, r, statusFor(err), err)
		return
	}
	render.JSON(w, r, p)
}

type noteRequest struct {
	Note string `json:"note"`
}

// noteRequest satisfies [render.Binder]; an empty note is valid, it clears
// the current activity text.
func (req *noteRequest) Bind(*http.Request) error { return nil }

func (hg *HandlerGroup) handleNote(w http.ResponseWriter, r *http.Request) {
	req := &noteRequest{}
	if err := render.Bind(r, req); err != nil {
		apiError(w, r, http.StatusBadRequest, err)
		return
	}

	if err := hg.tracker.SetNote(chi.URLParam(r, "id"), req.Note); err != nil {
		apiError(w, r, statusFor(err), err)
		return
	}
	render.NoContent(w, r)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, tracker.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, tracker.ErrEmptyName), errors.Is(err, tracker.ErrInvalidEntry):
		return http.StatusUnprocessableEntity
	case errors.Is(err, tracker.ErrProjectInactive), errors.Is(err, tracker.ErrProjectActive):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func apiError(w http.ResponseWriter, r *http.Request, code int, err error) {
	render.Status(r, code)
	render.JSON(w, r, map[string]string{"error": err.Error()})
}
