// internal/handler/router.go
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Handlers groups the API handlers mounted under /api. AuditLog may be nil.
type Handlers struct {
	Submission *SubmissionHandler
	Mirror     *MirrorHandler
	OTP        *OTPHandler
	Share      *ShareHandler
	Pillar     *PillarHandler
	Admin      *AdminHandler
	AuditLog   *AuditLogHandler
}

// Routes returns the /api router. Trailing slashes are optional on every
// route. adminAuth guards the /admin group.
func (h *Handlers) Routes(adminAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.StripSlashes)

	r.Post("/submissions", h.Submission.Create)

	r.Route("/mirror/{slug}", func(r chi.Router) {
		r.Get("/", h.Mirror.Get)
		r.Post("/", h.Mirror.Get)
		r.Get("/{template}", h.Mirror.Get)
		r.Post("/{template}", h.Mirror.Get)
	})

	r.Group(func(r chi.Router) {
		r.Use(chimw.AllowContentType("application/json"))

		r.Post("/otp/request", h.OTP.Request)
		r.Post("/otp/verify", h.OTP.Verify)
		r.Post("/share", h.Share.Share)
	})

	r.Get("/pillars", h.Pillar.List)

	r.Route("/admin", func(r chi.Router) {
		r.Use(adminAuth)

		r.Get("/submissions", h.Admin.Search)
		r.Get("/submissions/{type}/{id}", h.Admin.Get)
		r.Post("/submissions/{type}/{id}/resync", h.Admin.Resync)
		r.Get("/export", h.Admin.Export)
		r.With(chimw.AllowContentType("application/json")).Put("/pillars/{name}", h.Admin.UpsertPillar)
		if h.AuditLog != nil {
			r.Get("/audit", h.AuditLog.GetAuditLogs)
		}
	})

	return r
}
