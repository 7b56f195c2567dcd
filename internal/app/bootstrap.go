package app

import (
	"context"
	"fmt"
	"strings"

	"jobpost/internal/config"
	"jobpost/internal/delivery/http/handler"
	"jobpost/internal/delivery/http/middleware"
	"jobpost/internal/delivery/http/routes"
	"jobpost/internal/delivery/http/validation"
	"jobpost/internal/repository"
	"jobpost/internal/usecase"
	"jobpost/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP app on top of an already wired container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(ctx context.Context, cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, nil)
	if err != nil {
		return nil, nil, err
	}

	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	jobRepo := repository.NewPostgresJobRepository(c.DB)
	var jobCache usecase.JobCache
	if c.Cache.Enabled() {
		jobCache = c.Cache
	}
	jobUC := usecase.NewJobUsecase(jobRepo, jobCache, c.Hub, c.Logger)

	routes.NewRegistry(
		handler.NewHealthHandler(c.DB),
		handler.NewJobsHandler(jobUC, validation.New()),
		ws.NewHandler(c.Hub, c.Config.WS, c.Logger),
	).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
