package settings

import (
	"errors"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/ryplify/ryptrack/internal/domain"
	"github.com/ryplify/ryptrack/internal/store"
)

type HandlerGroup struct {
	store *store.File
}

func NewHandlerGroup(store *store.File) *HandlerGroup {
	return &HandlerGroup{store: store}
}

func (hg *HandlerGroup) Mount(r chi.Router) {
	r.Get("/api/settings", hg.handleGet)
	r.Put("/api/settings", hg.handlePut)
}

func (hg *HandlerGroup) handleGet(w http.ResponseWriter, r *http.Request) {
	var set domain.Settings
	if err := hg.store.View(func(st *store.State) error {
		set = st.Settings
		return nil
	}); err != nil {
		apiError(w, r, http.StatusInternalServerError, err)
		return
	}
	render.JSON(w, r, set)
}

type updateRequest struct {
	domain.Settings
}

// updateRequest satisfies [render.Binder]
func (req *updateRequest) Bind(*http.Request) error {
	if req.HourlyRate <= 0 || math.IsNaN(req.HourlyRate) || math.IsInf(req.HourlyRate, 0) {
		return errors.New("hourly rate must be a positive number")
	}
	if req.Currency == "" {
		return errors.New("currency is required")
	}
	return nil
}

func (hg *HandlerGroup) handlePut(w http.ResponseWriter, r *http.Request) {
	req := &updateRequest{}
	if err := render.Bind(r, req); err != nil {
		apiError(w, r, http.StatusUnprocessableEntity, err)
		return
	}

	if err := hg.store.Update(func(st *store.State) error {
		st.Settings = req.Settings
		return nil
	}); err != nil {
		apiError(w, r, http.StatusInternalServerError, err)
		return
	}
	render.JSON(w, r, req.Settings)
}

func apiError(w http.ResponseWriter, r *http.Request, code int, err error) {
	render.Status(r, code)
	render.JSON(w, r, map[string]string{"error": err.Error()})
}
