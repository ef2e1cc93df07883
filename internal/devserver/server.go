// Package devserver is a stand-in for the production authentication
// backend: a small Fiber app exposing the login endpoint the client core
// talks to, so the app can be exercised end to end during development.
package devserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/espk-mobile/appcore/internal/config"
	"github.com/espk-mobile/appcore/internal/devserver/account"
)

// Server wraps the Fiber application and shared dependencies.
type Server struct {
	app   *fiber.App
	cfg   config.Config
	db    *pgxpool.Pool
	cache *redis.Client
}

// New instantiates the dev login server. db and cache may be nil: the
// server then uses in-memory accounts and skips rate limiting.
func New(cfg config.Config, db *pgxpool.Pool, cache *redis.Client, logger *slog.Logger) *Server {
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName + " dev server",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	})

	var repo account.Repository
	if db != nil {
		repo = account.NewPostgresRepository(db)
	} else {
		repo = account.NewMemoryRepository()
	}
	svc := account.NewService(repo, cfg.LoginCodeLength)

	setup(app, cfg, svc, db, cache, logger)

	return &Server{app: app, cfg: cfg, db: db, cache: cache}
}

// App exposes the Fiber app for tests.
func (s *Server) App() *fiber.App { return s.app }

// Listen starts the HTTP server.
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.Address())
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func setup(app *fiber.App, cfg config.Config, svc *account.Service, db *pgxpool.Pool, cache *redis.Client, logger *slog.Logger) {
	app.Use(recover.New())
	app.Use(RequestID())
	app.Use(Audit(logger))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		dbStatus := "ok"
		redisStatus := "ok"

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if db != nil {
			if err := db.Ping(ctx); err != nil {
				dbStatus = err.Error()
			}
		}
		if cache != nil {
			if err := cache.Ping(ctx).Err(); err != nil {
				redisStatus = err.Error()
			}
		}
		status := http.StatusOK
		if dbStatus != "ok" || redisStatus != "ok" {
			status = http.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"status":    fiber.Map{"postgres": dbStatus, "redis": redisStatus},
			"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	api := app.Group("/api")

	// Registration exists only on the dev server; the production
	// backend provisions accounts out of band.
	api.Post("/accounts", func(c *fiber.Ctx) error {
		var req loginBody
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		acc, err := svc.Register(c.UserContext(), account.Credentials{
			Code:     req.Username,
			Secret:   req.Password,
			DeviceID: c.Get("X-Device-ID"),
		})
		if err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		return c.Status(http.StatusCreated).JSON(fiber.Map{"account_id": acc.ID, "code": acc.Code})
	})

	api.Post("/login", LoginRateLimit(cache, cfg.LoginRateLimit), func(c *fiber.Ctx) error {
		var req loginBody
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
		_, err := svc.Authenticate(c.UserContext(), account.Credentials{
			Code:     req.Username,
			Secret:   req.Password,
			DeviceID: c.Get("X-Device-ID"),
		})
		if err != nil {
			// Plain text body: the client surfaces it verbatim in the
			// login error message.
			return fiber.NewError(http.StatusUnauthorized, err.Error())
		}
		return c.SendStatus(http.StatusOK)
	})
}

// loginBody mirrors the client wire format.
type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
