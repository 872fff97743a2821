package main

import (
	"context"
	"fmt"
	"log"

	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/cache"
	common_api "github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/common/api"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/config"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/database"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/features/auth"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/features/export"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/features/reports"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/features/user"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/logger"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/middleware"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/internal/report"
	"github.com/mhdginola/Pinpoint-CustomReportInaco-be/pkg/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Use custom CORS middleware
	app.Use(middleware.CORSMiddleware())

	return app
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),    // Cast to Interface
		fx.ResultTags(`group:"routes"`), // Add to Group
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d route groups\n", len(routes))
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Initialize Database
			database.NewDatabase,
			cache.NewLookupCache,

			// Report data access: Mongo reads behind the lookup cache
			report.NewMongoDataAccess,
			func(mongoAccess *report.MongoDataAccess, lookupCache *cache.LookupCache) report.DataAccess {
				return report.NewCachedDataAccess(mongoAccess, lookupCache)
			},
			report.NewAssembler,

			// Initialize Repository
			user.NewUserRepository,

			// Initialize Service
			auth.NewAuthService,
			export.NewExportService,

			// Initialize Controller
			auth.NewAuthController,
			reports.NewReportController,
			export.NewExportController,

			// Initialize API Routes
			AsRoute(auth.NewAuthApi),
			AsRoute(reports.NewReportApi),
			AsRoute(export.NewExportApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			func(cfg *config.Config) {
				utils.SetSecret(cfg.JWTSecret)
			},

			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
		),
	)

	app.Run()
}
