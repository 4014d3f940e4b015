package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/hvpham-yorku/group2-fitiva/internal/config"
	"github.com/hvpham-yorku/group2-fitiva/internal/handlers"
	"github.com/hvpham-yorku/group2-fitiva/internal/metrics"
	"github.com/hvpham-yorku/group2-fitiva/internal/middleware"
	"github.com/hvpham-yorku/group2-fitiva/internal/repository"
	"github.com/hvpham-yorku/group2-fitiva/internal/services"
	"github.com/hvpham-yorku/group2-fitiva/internal/session"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	loginAttemptsPerMinute = 10
	csrfCookieName         = "csrftoken"
)

// Handlers bundles everything mount needs, so tests can supply stubs.
type Handlers struct {
	Auth           *handlers.AuthHandler
	Profile        *handlers.ProfileHandler
	Programs       *handlers.ProgramHandler
	Discovery      *handlers.DiscoveryHandler
	RequireSession fiber.Handler
}

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool, rdb *redis.Client, log *logrus.Logger) {
	userRepo := repository.NewUserRepository(db)
	userProfileRepo := repository.NewUserProfileRepository(db)
	trainerProfileRepo := repository.NewTrainerProfileRepository(db)
	planRepo := repository.NewWorkoutPlanRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	sessionStore := session.NewStore(rdb, cfg.SessionTTL)

	authService := services.NewAuthService(accountRepo, userRepo, userProfileRepo, trainerProfileRepo, log)
	profileService := services.NewProfileService(userProfileRepo, trainerProfileRepo, log)
	programService := services.NewProgramService(planRepo, log)
	matchmakingService := services.NewMatchmakingService(planRepo)

	mount(app, cfg, Handlers{
		Auth:           handlers.NewAuthHandler(authService, sessionStore, cfg.IsProduction(), log),
		Profile:        handlers.NewProfileHandler(profileService, log),
		Programs:       handlers.NewProgramHandler(programService, log),
		Discovery:      handlers.NewDiscoveryHandler(trainerProfileRepo, planRepo, userProfileRepo, matchmakingService, log),
		RequireSession: middleware.SessionRequired(sessionStore, authService, log),
	})
}

func mount(app *fiber.App, cfg *config.Config, h Handlers) {
	if cfg.EnableMetrics {
		app.Use(middleware.Metrics())
		app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Get("/csrf", csrf.New(csrf.Config{
		CookieName:     csrfCookieName,
		CookieSameSite: "Lax",
		CookieSecure:   cfg.IsProduction(),
		Expiration:     365 * 24 * time.Hour,
		ContextKey:     "csrf",
	}), h.Auth.CSRF)
	auth.Post("/signup", h.Auth.Signup)
	auth.Post("/login", limiter.New(limiter.Config{
		Max:        loginAttemptsPerMinute,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"detail": "Too many login attempts. Try again later.",
			})
		},
	}), h.Auth.Login)
	auth.Post("/logout", h.RequireSession, h.Auth.Logout)
	auth.Get("/me", h.RequireSession, h.Auth.Me)

	profile := api.Group("/profile", h.RequireSession)
	profile.Get("/me", h.Profile.GetMyProfile)
	profile.Put("/me", h.Profile.UpdateMyProfile)
	profile.Post("/create", h.Profile.CreateMyProfile)

	trainer := api.Group("/trainer", h.RequireSession)
	for _, path := range []string{"/profile", "/me"} {
		trainer.Get(path, h.Profile.GetTrainerProfile)
		trainer.Put(path, h.Profile.UpdateTrainerProfile)
	}

	programs := api.Group("/programs")
	programs.Get("", h.Programs.ListPublished)
	programs.Get("/mine", h.RequireSession, h.Programs.ListMine)
	programs.Post("/create", h.RequireSession, h.Programs.CreatePlan)
	programs.Get("/:id", h.RequireSession, h.Programs.GetPlan)
	programs.Put("/:id", h.RequireSession, h.Programs.ReplacePlan)
	programs.Patch("/:id", h.RequireSession, h.Programs.PatchPlan)
	programs.Delete("/:id", h.RequireSession, h.Programs.DeletePlan)
	programs.Post("/:id/publish", h.RequireSession, h.Programs.PublishPlan)

	api.Get("/recommendations", h.RequireSession, h.Discovery.RecommendPlans)
	api.Get("/trainers", h.Discovery.ListTrainers)
	api.Get("/trainers/:id", h.Discovery.GetTrainer)
}
