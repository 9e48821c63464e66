package auth

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/vault-x/vaultx/internal/credential"
)

// Handler exposes signup/login/logout endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type signupRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// SignUp creates a new account. Validation failures carry the specific reason.
func (h *Handler) SignUp(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	if err := h.svc.SignUp(c.UserContext(), req.Username, req.Password, req.ConfirmPassword); err != nil {
		switch {
		case errors.Is(err, credential.ErrUsernameTaken):
			return fiber.NewError(http.StatusConflict, err.Error())
		case errors.Is(err, ErrEmptyFields),
			errors.Is(err, ErrPasswordMismatch),
			errors.Is(err, credential.ErrInvalidUsername),
			errors.Is(err, credential.ErrWeakPassword):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, "storage failure")
		}
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"status": "created"})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LogIn authenticates and binds the process session to the user.
func (h *Handler) LogIn(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	record, err := h.svc.LogIn(c.UserContext(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptyFields):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrInvalidCredentials):
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, "storage failure")
		}
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"username": record.Username})
}

// LogOut clears the session; calling it with no session is still a 200.
func (h *Handler) LogOut(c *fiber.Ctx) error {
	h.svc.LogOut()
	return c.Status(http.StatusOK).JSON(fiber.Map{"status": "logged_out"})
}
