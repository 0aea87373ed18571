package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskdesk-api/internal/api"
	apiMiddleware "github.com/phrazzld/taskdesk-api/internal/api/middleware"
	"github.com/phrazzld/taskdesk-api/internal/config"
	"github.com/phrazzld/taskdesk-api/internal/platform/postgres"
	"github.com/phrazzld/taskdesk-api/internal/service"
	"github.com/phrazzld/taskdesk-api/internal/service/auth"
	"github.com/phrazzld/taskdesk-api/internal/store"
)

// storeSet groups the persistence dependencies of the application.
type storeSet struct {
	users      store.UserStore
	priorities store.PriorityStore
	categories store.CategoryStore
	tasks      store.TaskStore
	tx         store.Transactor
}

// postgresStores builds the PostgreSQL-backed stores over db.
func postgresStores(db *sql.DB, authCfg config.AuthConfig, logger *slog.Logger) storeSet {
	return storeSet{
		users:      postgres.NewPostgresUserStore(db, authCfg.BcryptCost, logger),
		priorities: postgres.NewPostgresPriorityStore(db, logger),
		categories: postgres.NewPostgresCategoryStore(db, logger),
		tasks:      postgres.NewPostgresTaskStore(db, logger),
		tx:         store.NewDBTransactor(db),
	}
}

// application holds all the shared application dependencies.
type application struct {
	config *config.Config
	logger *slog.Logger

	routes      *api.Routes
	metrics     *apiMiddleware.Metrics
	rateLimiter *apiMiddleware.RateLimiter
}

// newApplication wires services and handlers over stores.
func newApplication(cfg *config.Config, logger *slog.Logger, stores storeSet) (*application, error) {
	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes,
		"refresh_token_lifetime_minutes", cfg.Auth.RefreshTokenLifetimeMinutes)

	userService := service.NewUserService(stores.users, stores.tx, logger)
	priorityService := service.NewPriorityService(stores.priorities, stores.tx, logger)
	categoryService := service.NewCategoryService(stores.categories, stores.tx, logger)
	taskService := service.NewTaskService(stores.tasks, stores.priorities, stores.categories, stores.tx, logger)
	authService := auth.NewAuthService(
		stores.users, stores.priorities, stores.tx, jwtService, auth.NewBcryptVerifier(), logger,
	)

	rateLimiter := apiMiddleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	app := &application{
		config:      cfg,
		logger:      logger,
		metrics:     apiMiddleware.NewMetrics(),
		rateLimiter: rateLimiter,
		routes: &api.Routes{
			Users:         api.NewUserHandler(userService),
			Priorities:    api.NewPriorityHandler(priorityService),
			Categories:    api.NewCategoryHandler(categoryService),
			Tasks:         api.NewTaskHandler(taskService),
			Auth:          api.NewAuthHandler(authService),
			Authenticator: apiMiddleware.NewAuthMiddleware(jwtService),
			Access:        apiMiddleware.NewAccessMiddleware(auth.NewAccessChecker(stores.users, logger)),
			AuthLimiter:   rateLimiter,
			AdminPriority: cfg.Auth.AdminPriority,
		},
	}

	logger.Info("application initialized", "admin_priority", cfg.Auth.AdminPriority)
	return app, nil
}

// Run serves HTTP until ctx is canceled.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
