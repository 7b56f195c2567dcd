package routes

import (
	"jobpost/internal/delivery/http/handler"
	"jobpost/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health *handler.HealthHandler
	jobs   *handler.JobsHandler
	ws     *ws.Handler
}

func NewRegistry(health *handler.HealthHandler, jobs *handler.JobsHandler, wsHandler *ws.Handler) *Registry {
	return &Registry{health: health, jobs: jobs, ws: wsHandler}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.health != nil {
		r.health.RegisterRoutes(app)
	}
	if r.jobs != nil {
		r.jobs.RegisterRoutes(app)
	}
	if r.ws != nil {
		r.ws.RegisterRoutes(app)
	}
}
