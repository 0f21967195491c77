package report

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/ryplify/ryptrack/internal/domain"
	"github.com/ryplify/ryptrack/internal/report"
	"github.com/ryplify/ryptrack/internal/store"
)

type HandlerGroup struct {
	store *store.File
}

func NewHandlerGroup(store *store.File) *HandlerGroup {
	return &HandlerGroup{store: store}
}

func (hg *HandlerGroup) Mount(r chi.Router) {
	r.Get("/api/reports/summary", hg.handleSummary)
	r.Get("/api/reports/charts", hg.handleCharts)
}

func (hg *HandlerGroup) snapshot() ([]domain.Project, float64, error) {
	var projects []domain.Project
	var rate float64
	err := hg.store.View(func(st *store.State) error {
		projects = st.Projects
		rate = st.Settings.HourlyRate
		return nil
	})
	return projects, rate, err
}

func (hg *HandlerGroup) handleSummary(w http.ResponseWriter, r *http.Request) {
	projects, rate, err := hg.snapshot()
	if err != nil {
		apiError(w, r, http.StatusInternalServerError, err)
		return
	}

	sum := report.BuildSummary(projects, rate, time.Now())
	render.JSON(w, r, report.Summary{
		MonthRevenue:    report.Round2(sum.MonthRevenue),
		YearRevenue:     report.Round2(sum.YearRevenue),
		TotalRevenue:    report.Round2(sum.TotalRevenue),
		PotentialProfit: report.Round2(sum.PotentialProfit),
	})
}

func (hg *HandlerGroup) handleCharts(w http.ResponseWriter, r *http.Request) {
	projects, rate, err := hg.snapshot()
	if err != nil {
		apiError(w, r, http.StatusInternalServerError, err)
		return
	}
	render.JSON(w, r, report.BuildCharts(projects, rate, time.Now()))
}

func apiError(w http.ResponseWriter, r *http.Request, code int, err error) {
	render.Status(r, code)
	render.JSON(w, r, map[string]string{"error": err.Error()})
}
