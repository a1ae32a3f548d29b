package routes

import (
	"job-scout/internal/delivery/http/handler"
	"job-scout/internal/delivery/http/middleware"
	"job-scout/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Health       *handler.HealthHandler
	Search       *handler.SearchHandler
	Applications *handler.ApplicationsHandler
	Terms        *handler.TermsHandler
	Admin        *handler.AdminHandler
	AdminAuth    *middleware.AuthMiddleware
	JobsWS       *ws.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil || r == nil {
		return
	}

	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}

	api := app.Group("/api")
	v1 := api.Group("/v1")

	if r.Search != nil {
		jobs := v1.Group("/jobs")
		r.Search.RegisterRoutes(jobs)
		if r.JobsWS != nil {
			jobs.Get("/ws", r.JobsWS.HandleJobsWS)
		}
	}

	if r.Applications != nil {
		r.Applications.RegisterRoutes(v1.Group("/applications"))
	}

	if r.Terms != nil {
		r.Terms.RegisterRoutes(v1.Group("/terms"))
	}

	if r.Admin != nil {
		admin := v1.Group("/admin")
		if r.AdminAuth != nil {
			admin = v1.Group("/admin", r.AdminAuth.Middleware())
		}
		r.Admin.RegisterRoutes(admin)
	}
}
