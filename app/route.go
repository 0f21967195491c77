package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ryplify/ryptrack/app/auth"
	"github.com/ryplify/ryptrack/app/route/invoice"
	"github.com/ryplify/ryptrack/app/route/project"
	"github.com/ryplify/ryptrack/app/route/report"
	"github.com/ryplify/ryptrack/app/route/session"
	"github.com/ryplify/ryptrack/app/route/settings"
)

func (a *App) RegisterRoutes() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)

	a.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})

	sessions := session.NewHandlerGroup(a.store, a.opts.JWTSecret, a.opts.TokenTTL)
	sessions.Mount(a.router)

	a.router.Group(func(r chi.Router) {
		r.Use(auth.RequireToken(a.opts.JWTSecret))

		sessions.MountProtected(r)
		project.NewHandlerGroup(a.tracker).Mount(r)
		report.NewHandlerGroup(a.store).Mount(r)
		invoice.NewHandlerGroup(a.tracker, a.store, a.slog).Mount(r)
		settings.NewHandlerGroup(a.store).Mount(r)
	})
}
