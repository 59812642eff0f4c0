package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ipede/identity-token-service/internal/application"
	"github.com/ipede/identity-token-service/internal/domain"
	"github.com/ipede/identity-token-service/internal/infrastructure/config"
	"github.com/ipede/identity-token-service/internal/infrastructure/database"
	"github.com/ipede/identity-token-service/internal/infrastructure/email"
	"github.com/ipede/identity-token-service/internal/infrastructure/jwt"
	"github.com/ipede/identity-token-service/internal/infrastructure/repository"
	"github.com/ipede/identity-token-service/internal/interfaces/http/handlers"
	"github.com/ipede/identity-token-service/internal/interfaces/http/middleware/auth"
	"github.com/ipede/identity-token-service/internal/interfaces/http/middleware/ratelimit"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// NewRouter wires repositories, token stores, services and handlers into
// the HTTP surface. Each workflow gets its own ScopedTokenStore instance:
// same table, different scope and validity.
func NewRouter(
	db *database.Postgres,
	cfg *config.Config,
	jwtService *jwt.JWT,
	logger *zap.Logger,
) *chi.Mux {
	clock := domain.SystemClock{}

	userRepo := repository.NewUserRepository(db, logger)
	tokenRepo := repository.NewTokenRepository(db, logger)
	emailTemplate := email.NewEmailTemplate(&cfg.SMTP, logger)

	activationTokens := application.NewScopedTokenStore(
		domain.ScopeUserRegistered, cfg.ActivationTokenDuration,
		tokenRepo, userRepo, clock, logger)
	resetTokens := application.NewScopedTokenStore(
		domain.ScopePasswordReset, cfg.PasswordResetTokenDuration,
		tokenRepo, userRepo, clock, logger)

	authService := application.NewAuthService(userRepo, activationTokens, jwtService, emailTemplate, logger)
	resetService := application.NewPasswordResetService(userRepo, resetTokens, emailTemplate, logger)
	userService := application.NewUserService(userRepo, logger)

	authHandler := handlers.NewAuthHandler(authService, resetService, logger)
	userHandler := handlers.NewUserHandler(userService, logger)
	authMiddleware := auth.NewAuthMiddleware(jwtService, logger)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(30 * time.Second))

	rateLimiter := ratelimit.NewRateLimiter(100, 200, 3*time.Minute)
	router.Use(rateLimiter.Middleware)

	// Health check endpoints
	router.Group(func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("OK"))
		})

		r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
			if err := db.Ping(); err != nil {
				logger.Error("Database health check failed", zap.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte("Database connection failed"))
				return
			}
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Ready"))
		})

		r.Get("/health/live", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("Alive"))
		})
	})

	// Swagger UI
	router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DocExpansion("list"),
	))

	// Public auth routes
	router.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", authHandler.HandleRegister)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/activate", authHandler.HandleActivate)
		r.Post("/activate/resend", authHandler.HandleResendActivation)
		r.Post("/password/forgot", authHandler.HandleForgotPassword)
		r.Post("/password/reset", authHandler.HandleResetPassword)
	})

	// Protected user routes
	router.Route("/api/v1/users", func(r chi.Router) {
		r.Use(authMiddleware.Verifier)
		r.Use(authMiddleware.Authenticator)

		r.Get("/{id}", userHandler.GetUserHandler)
		r.Put("/{id}", userHandler.UpdateUserHandler)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireRole("admin"))
			r.Get("/", userHandler.ListUsersHandler)
		})
	})

	return router
}
