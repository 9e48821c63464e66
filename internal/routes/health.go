package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RegisterHealthRoutes adds a liveness endpoint that pings whichever storage
// backend is active.
func RegisterHealthRoutes(app *fiber.App, d Deps) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		storageStatus := "ok"

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if d.DB != nil {
			if err := d.DB.Ping(ctx); err != nil {
				storageStatus = err.Error()
			}
		} else if d.Cache != nil {
			if err := d.Cache.Ping(ctx).Err(); err != nil {
				storageStatus = err.Error()
			}
		}

		status := http.StatusOK
		if storageStatus != "ok" {
			status = http.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"status":    fiber.Map{"storage": storageStatus, "backend": d.Cfg.StorageBackend},
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})
}
