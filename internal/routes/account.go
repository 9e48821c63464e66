package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vault-x/vaultx/internal/account"
)

// RegisterAccountRoutes wires the structured ledger endpoints.
func RegisterAccountRoutes(r fiber.Router, h *account.Handler) {
	group := r.Group("/account")
	group.Post("/deposit", h.Deposit)
	group.Post("/withdraw", h.Withdraw)
	group.Get("/balance", h.Balance)
	group.Get("/transactions", h.Transactions)
}
