package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vault-x/vaultx/internal/chatbot"
)

// RegisterChatRoutes wires the free-text interpreter endpoint.
func RegisterChatRoutes(r fiber.Router, h *chatbot.Handler) {
	r.Post("/chat", h.Chat)
}
