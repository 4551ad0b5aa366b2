package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gigit/web/internal/persistence"
)

const readyTimeout = 2 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type dependency struct {
	name string
	ping pinger
}

// HealthHandler answers liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	backendURL  string
	deps        []dependency
}

// NewHealthHandler builds the handler. Only the connections that were opened
// take part in readiness, so either store may be nil.
func NewHealthHandler(serviceName, version, backendURL string, postgres *persistence.Postgres, redis *persistence.Redis) *HealthHandler {
	h := &HealthHandler{serviceName: serviceName, version: version, backendURL: backendURL}
	if postgres.Configured() {
		h.deps = append(h.deps, dependency{name: "postgres", ping: postgres})
	}
	if redis != nil {
		h.deps = append(h.deps, dependency{name: "redis", ping: redis})
	}
	return h
}

// Live handles GET /health/live.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready handles GET /health/ready.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), readyTimeout)
	defer cancel()

	status := fiber.Map{"backend": h.backendURL}
	ready := true
	for _, d := range h.deps {
		if err := d.ping.Ping(ctx); err != nil {
			status[d.name] = err.Error()
			ready = false
			continue
		}
		status[d.name] = "ok"
	}

	if !ready {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": fiber.Map{
				"code":    "DEPENDENCY_UNAVAILABLE",
				"message": "one or more dependencies unavailable",
				"details": status,
			},
		})
	}
	return c.JSON(fiber.Map{"status": "ready", "dependencies": status})
}
