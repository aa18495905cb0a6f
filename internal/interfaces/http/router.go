package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/inventorypro-api/internal/application/alerts"
	"github.com/jhoicas/inventorypro-api/internal/application/auth"
	"github.com/jhoicas/inventorypro-api/internal/application/ledger"
	"github.com/jhoicas/inventorypro-api/internal/application/notification"
	"github.com/jhoicas/inventorypro-api/internal/application/report"
	"github.com/jhoicas/inventorypro-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC       *ledger.LedgerUseCase
	AlertSvc       *alerts.Service
	AuthUC         *auth.AuthUseCase
	SettingsUC     *notification.SettingsUseCase
	Dispatcher     *notification.Dispatcher
	Browser        browserFeed
	ReportUC       *report.UseCase
	MetricsHandler http.Handler // nil: no expone /metrics
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (Bearer Token + sesión abierta)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireSession(deps.AuthUC))
	adminOnly := RequireRole(entity.RoleAdmin)

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Products y categorías
	productHandler := NewProductHandler(deps.LedgerUC)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/stats", productHandler.Stats)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id/stock", productHandler.UpdateStock)

	categories := protected.Group("/categories")
	categories.Get("/", productHandler.ListCategories)
	categories.Post("/", adminOnly, productHandler.CreateCategory)

	// Logs
	logHandler := NewLogHandler(deps.LedgerUC)
	protected.Get("/logs", logHandler.StockLogs)
	protected.Get("/shipment-logs", logHandler.ShipmentLogs)

	// Shipments
	shipmentHandler := NewShipmentHandler(deps.LedgerUC)
	shipments := protected.Group("/shipments")
	shipments.Get("/", shipmentHandler.List)
	shipments.Post("/", shipmentHandler.Create)
	shipments.Get("/summary", shipmentHandler.Summary)
	shipments.Delete("/:id", shipmentHandler.Remove)

	// Alerts
	alertHandler := NewAlertHandler(deps.AlertSvc)
	alertGroup := protected.Group("/alerts")
	alertGroup.Get("/", alertHandler.List)
	alertGroup.Post("/:id/acknowledge", alertHandler.Acknowledge)
	alertGroup.Post("/:id/dismiss", alertHandler.Dismiss)

	// Notifications
	notificationHandler := NewNotificationHandler(deps.SettingsUC, deps.Dispatcher, deps.Browser)
	notifications := protected.Group("/notifications")
	notifications.Get("/settings", notificationHandler.GetSettings)
	notifications.Put("/settings", notificationHandler.UpdateSetting)
	notifications.Post("/settings/reset", notificationHandler.ResetSettings)
	notifications.Get("/browser", notificationHandler.BrowserFeed)
	notifications.Post("/browser/permission", notificationHandler.ResolvePermission)
	notifications.Post("/test", notificationHandler.SendTest)

	// Reports
	reportHandler := NewReportHandler(deps.ReportUC)
	reports := protected.Group("/reports")
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/export", reportHandler.Export)
	reports.Get("/daily", reportHandler.Daily)
}
