package account

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/vault-x/vaultx/internal/session"
)

// Handler exposes the structured ledger endpoints. Every endpoint requires the
// process session to be bound to a user.
type Handler struct {
	svc  *Service
	sess *session.Session
}

func NewHandler(svc *Service, sess *session.Session) *Handler {
	return &Handler{svc: svc, sess: sess}
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type balanceResponse struct {
	Username string `json:"username"`
	Balance  string `json:"balance"`
}

// Deposit adds funds to the active user's balance.
func (h *Handler) Deposit(c *fiber.Ctx) error {
	username, ok := h.sess.Current()
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "not logged in")
	}

	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	balance, err := h.svc.Deposit(c.UserContext(), username, req.Amount)
	if err != nil {
		return moneyError(err)
	}
	return c.Status(http.StatusOK).JSON(balanceResponse{Username: username, Balance: Format(balance)})
}

// Withdraw removes funds from the active user's balance.
func (h *Handler) Withdraw(c *fiber.Ctx) error {
	username, ok := h.sess.Current()
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "not logged in")
	}

	var req amountRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	balance, err := h.svc.Withdraw(c.UserContext(), username, req.Amount)
	if err != nil {
		return moneyError(err)
	}
	return c.Status(http.StatusOK).JSON(balanceResponse{Username: username, Balance: Format(balance)})
}

// Balance returns the current balance. This is the interactive check, so it
// appends a ledger record.
func (h *Handler) Balance(c *fiber.Ctx) error {
	username, ok := h.sess.Current()
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "not logged in")
	}

	balance, err := h.svc.CheckBalance(c.UserContext(), username)
	if err != nil {
		return moneyError(err)
	}
	return c.Status(http.StatusOK).JSON(balanceResponse{Username: username, Balance: Format(balance)})
}

type transactionResponse struct {
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
}

// Transactions lists the full history in insertion order.
func (h *Handler) Transactions(c *fiber.Ctx) error {
	username, ok := h.sess.Current()
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "not logged in")
	}

	records, err := h.svc.History(c.UserContext(), username)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, "storage failure")
	}

	out := make([]transactionResponse, 0, len(records))
	for _, record := range records {
		out = append(out, transactionResponse{
			Timestamp: record.Timestamp.Format(TimestampLayout),
			Action:    record.Action,
		})
	}
	return c.Status(http.StatusOK).JSON(fiber.Map{"username": username, "transactions": out})
}

func moneyError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return fiber.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrInsufficientFunds):
		return fiber.NewError(http.StatusUnprocessableEntity, err.Error())
	default:
		return fiber.NewError(http.StatusInternalServerError, "storage failure")
	}
}
