package api

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"finance-tracker/docs"
	"finance-tracker/internal/api/handlers"
	"finance-tracker/pkg/auth"
	"finance-tracker/pkg/config"
	"finance-tracker/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Transactions *handlers.TransactionHandler
	Budgets      *handlers.BudgetHandler
	Summary      *handlers.SummaryHandler
}

// SetupRouter builds the HTTP app. jwtManager may be nil, in which case
// write routes are open.
func SetupRouter(
	h Handlers,
	jwtManager *auth.JWTManager,
	serverCfg config.ServerConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "finance-tracker",
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(fiber.Map{
					"error": fe.Message,
				})
			}
			appLogger.Error("Unhandled request error", zap.Error(err), zap.String("path", c.Path()))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Internal server error",
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(serverCfg.CORSOrigins),
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", h.Summary.Health)

	webStaticPath := findWebStaticPath(appLogger)
	if webStaticPath != "" {
		appLogger.Info("Serving static files", zap.String("path", webStaticPath))
		app.Static("/static", webStaticPath)
		app.Get("/", func(c *fiber.Ctx) error {
			return c.SendFile(filepath.Join(webStaticPath, "index.html"))
		})
	} else {
		appLogger.Warn("Web static directory not found, static files will not be served")
	}

	api := app.Group("/api",
		middleware.WriteLimiter(serverCfg.WriteRateLimit),
		middleware.AuthMiddleware(jwtManager, appLogger),
	)

	transactions := api.Group("/transactions")
	transactions.Get("", h.Transactions.ListTransactions)
	transactions.Post("", h.Transactions.CreateTransaction)
	transactions.Put("/:id", h.Transactions.UpdateTransaction)
	transactions.Delete("/:id", h.Transactions.DeleteTransaction)

	budget := api.Group("/budget")
	budget.Get("", h.Budgets.ListBudgets)
	budget.Post("", h.Budgets.CreateBudget)

	api.Get("/summary", h.Summary.GetSummary)
	api.Get("/summary/report.pdf", h.Summary.GetReport)
	api.Get("/categories", h.Summary.ListCategories)

	return app
}

func corsOrigins(origins string) string {
	origins = strings.TrimSpace(origins)
	if origins == "" {
		return "*"
	}
	return origins
}

// findWebStaticPath looks for web/static relative to the working directory
func findWebStaticPath(logger *zap.Logger) string {
	cwd, _ := os.Getwd()

	paths := []string{
		"./web/static",
		"../web/static",
		"../../web/static",
		"../../../web/static",
	}

	for _, path := range paths {
		if fileExists(filepath.Join(path, "index.html")) {
			logger.Info("Found web static path", zap.String("path", path), zap.String("cwd", cwd))
			return path
		}
	}

	return ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
