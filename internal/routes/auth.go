package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vault-x/vaultx/internal/auth"
)

// RegisterAuthRoutes wires the signup/login/logout endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler) {
	group := r.Group("/auth")
	group.Post("/signup", h.SignUp)
	group.Post("/login", h.LogIn)
	group.Post("/logout", h.LogOut)
}
