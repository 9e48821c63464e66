// Package routes wires services, handlers and middleware onto the fiber app.
package routes

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/vault-x/vaultx/internal/account"
	"github.com/vault-x/vaultx/internal/auth"
	"github.com/vault-x/vaultx/internal/chatbot"
	"github.com/vault-x/vaultx/internal/config"
	"github.com/vault-x/vaultx/internal/credential"
	"github.com/vault-x/vaultx/internal/middleware"
	"github.com/vault-x/vaultx/internal/session"
	"github.com/vault-x/vaultx/internal/store"
)

// Deps aggregates shared dependencies required to wire routes. DB and Cache
// are optional; they only feed the health endpoint for the active backend.
type Deps struct {
	Cfg     config.Config
	Records store.Store
	DB      *pgxpool.Pool
	Cache   *redis.Client
	Logger  *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	// One session per process instance: the terminal serves a single active
	// user, so every service shares this value.
	sess := session.New()

	creds := credential.New(d.Records)
	accounts := account.NewService(d.Records, d.Logger)
	authSvc := auth.NewService(creds, sess, d.Logger)
	interp := chatbot.New(authSvc, accounts, sess, d.Logger)

	api := app.Group("/api/v1")
	RegisterAuthRoutes(api, auth.NewHandler(authSvc))
	RegisterAccountRoutes(api, account.NewHandler(accounts, sess))
	RegisterChatRoutes(api, chatbot.NewHandler(interp))

	return nil
}
