package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/skillswap/admin-api/auth"
	authHandlers "github.com/skillswap/admin-api/auth/handlers"
	authServices "github.com/skillswap/admin-api/auth/services"
	"github.com/skillswap/admin-api/feedback"
	feedbackHandlers "github.com/skillswap/admin-api/feedback/handlers"
	feedbackServices "github.com/skillswap/admin-api/feedback/services"
	"github.com/skillswap/admin-api/internal/audit"
	"github.com/skillswap/admin-api/internal/binder"
	"github.com/skillswap/admin-api/internal/cache"
	"github.com/skillswap/admin-api/internal/middleware/authjwt"
	"github.com/skillswap/admin-api/internal/middleware/requestid"
	platformconfig "github.com/skillswap/admin-api/internal/platform/config"
	"github.com/skillswap/admin-api/internal/store"
	"github.com/skillswap/admin-api/notifications"
	notificationHandlers "github.com/skillswap/admin-api/notifications/handlers"
	notificationServices "github.com/skillswap/admin-api/notifications/services"
	"github.com/skillswap/admin-api/overview"
	overviewHandlers "github.com/skillswap/admin-api/overview/handlers"
	overviewServices "github.com/skillswap/admin-api/overview/services"
	"github.com/skillswap/admin-api/posts"
	postHandlers "github.com/skillswap/admin-api/posts/handlers"
	postServices "github.com/skillswap/admin-api/posts/services"
	"github.com/skillswap/admin-api/reports"
	reportHandlers "github.com/skillswap/admin-api/reports/handlers"
	reportServices "github.com/skillswap/admin-api/reports/services"
	"github.com/skillswap/admin-api/settings"
	settingsHandlers "github.com/skillswap/admin-api/settings/handlers"
	settingsServices "github.com/skillswap/admin-api/settings/services"
	"github.com/skillswap/admin-api/skills"
	skillHandlers "github.com/skillswap/admin-api/skills/handlers"
	skillServices "github.com/skillswap/admin-api/skills/services"
	"github.com/skillswap/admin-api/users"
	userHandlers "github.com/skillswap/admin-api/users/handlers"
	userServices "github.com/skillswap/admin-api/users/services"
)

// boundPaths are the collections kept live by the view binder set.
var boundPaths = []string{
	"feedback", "posts", "users", "reports", "notifications",
	"skills", "categories", "sessions", "requests",
}

func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load platform config: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			// If response already set by handler, don't override it
			if len(c.Response().Body()) > 0 {
				return nil
			}

			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.WebDomain,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, OPTIONS",
	}))

	ctx := context.Background()

	documentStore, err := store.NewPostgresStore(ctx, cfg.Database.Postgres)
	if err != nil {
		log.Fatalf("Failed to connect to the document store: %v", err)
	}
	defer documentStore.Close()

	cacheBackend := cache.MustNewCache(cache.ConfigFromApp(cfg.Cache))
	cacheService := cache.NewGenericCacheService(cacheBackend, cache.ConfigFromApp(cfg.Cache))
	defer cacheService.Close()

	views := binder.NewSet(ctx, documentStore, boundPaths...)
	defer views.Close()

	resolver := binder.NewNameResolver(documentStore, cacheService)
	recorder := audit.NewRecorder(documentStore)

	// Services
	authService := authServices.NewAuthService(documentStore, cfg.JWT, cacheService)
	feedbackService := feedbackServices.NewFeedbackService(documentStore, views, resolver, recorder)
	postService := postServices.NewPostService(documentStore, views, resolver, recorder)
	userService := userServices.NewUserService(documentStore, views, resolver)
	reportService := reportServices.NewReportService(documentStore, views, resolver, recorder)
	notificationService := notificationServices.NewNotificationService(documentStore, views, resolver, recorder)
	skillService := skillServices.NewSkillService(documentStore, views)
	overviewService := overviewServices.NewOverviewService(documentStore, views)
	settingsService := settingsServices.NewSettingsService(documentStore, resolver, recorder)

	// Every authenticated route re-checks the administrator registry.
	authMiddleware := authjwt.New(authjwt.Config{
		PublicKey:    cfg.JWT.PublicKey,
		CacheService: cacheService,
		Registry:     authService.AdminExists,
	})

	auth.RegisterRoutes(app, &auth.AuthHandlers{
		AuthHandler: authHandlers.NewAuthHandler(authService, cfg.JWT.SessionTTL),
	}, authMiddleware, cfg)

	overview.RegisterRoutes(app, &overview.OverviewHandlers{
		OverviewHandler: overviewHandlers.NewOverviewHandler(overviewService),
	}, authMiddleware)

	feedback.RegisterRoutes(app, &feedback.FeedbackHandlers{
		FeedbackHandler: feedbackHandlers.NewFeedbackHandler(feedbackService),
	}, authMiddleware)

	posts.RegisterRoutes(app, &posts.PostsHandlers{
		PostHandler: postHandlers.NewPostHandler(postService),
	}, authMiddleware)

	users.RegisterRoutes(app, &users.UsersHandlers{
		UserHandler: userHandlers.NewUserHandler(userService),
	}, authMiddleware)

	reports.RegisterRoutes(app, &reports.ReportsHandlers{
		ReportHandler: reportHandlers.NewReportHandler(reportService),
	}, authMiddleware)

	notifications.RegisterRoutes(app, &notifications.NotificationsHandlers{
		NotificationHandler: notificationHandlers.NewNotificationHandler(notificationService),
	}, authMiddleware)

	skills.RegisterRoutes(app, &skills.SkillsHandlers{
		SkillHandler: skillHandlers.NewSkillHandler(skillService),
	}, authMiddleware)

	settings.RegisterRoutes(app, &settings.SettingsHandlers{
		SettingsHandler: settingsHandlers.NewSettingsHandler(settingsService),
	}, authMiddleware)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting SkillSwap Admin API on %s", addr)
	log.Fatal(app.Listen(addr))
}
