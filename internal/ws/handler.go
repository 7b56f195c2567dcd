package ws

import (
	"log"
	"net/http"
	"strings"

	"jobpost/internal/config"
	"jobpost/internal/delivery/http/middleware"
	"jobpost/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
)

// jobEvents are the values accepted by the events query parameter.
var jobEvents = map[string]bool{
	usecase.EventJobCreated: true,
	usecase.EventJobDeleted: true,
}

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *log.Logger
}

func NewHandler(hub *Hub, cfg config.WSConfig, logger *log.Logger) *Handler {
	allowed := make(map[string]bool, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		allowed[strings.ToLower(strings.TrimRight(o, "/"))] = true
	}

	return &Handler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return originAllowed(allowed, r.Header.Get("Origin"))
			},
		},
	}
}

// originAllowed accepts a missing Origin header, and any origin when no
// allowlist is configured.
func originAllowed(allowed map[string]bool, origin string) bool {
	if len(allowed) == 0 || origin == "" {
		return true
	}
	return allowed[strings.ToLower(strings.TrimRight(origin, "/"))]
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/ws/jobs", h.HandleJobsWS)
}

// HandleJobsWS upgrades to a socket streaming job events. ?events=job_created
// narrows the stream to a comma-separated subset.
func (h *Handler) HandleJobsWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	events, err := parseEvents(c.Query("events"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid events filter", fiber.Map{"events": c.Query("events")}, err)
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			if h.logger != nil {
				h.logger.Printf("[WS] upgrade error | origin=%s err=%v", r.Header.Get("Origin"), err)
			}
			return
		}

		client := NewClient(h.hub, conn, events...)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}

func parseEvents(raw string) ([]string, error) {
	var events []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !jobEvents[part] {
			return nil, &unknownEventError{name: part}
		}
		events = append(events, part)
	}
	return events, nil
}

type unknownEventError struct {
	name string
}

func (e *unknownEventError) Error() string {
	return "unknown job event " + e.name
}
