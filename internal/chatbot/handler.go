package chatbot

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes the free-text chat endpoint.
type Handler struct {
	interp *Interpreter
}

func NewHandler(interp *Interpreter) *Handler {
	return &Handler{interp: interp}
}

type chatRequest struct {
	Message string `json:"message"`
}

// Chat interprets one message; the reply carries the matched intent so the
// presentation layer can react (e.g. clear its view on IntentClear).
func (h *Handler) Chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	reply := h.interp.Interpret(c.UserContext(), req.Message)
	return c.Status(http.StatusOK).JSON(reply)
}
