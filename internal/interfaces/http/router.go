package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Cartera-api/internal/application/auth"
	"github.com/jhoicas/Cartera-api/internal/application/collections"
	"github.com/jhoicas/Cartera-api/internal/application/usecase"
	"github.com/jhoicas/Cartera-api/internal/domain/entity"
)

// Store lo que el router necesita del almacén CSV: disponibilidad y recarga.
type Store interface {
	readinessChecker
	storeReloader
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	DashboardUC  *collections.DashboardUseCase
	ActivityUC   *collections.ActivityUseCase
	Interactions *collections.InteractionLogger
	RemindersUC  *collections.ReminderUseCase
	ReportPDFUC  *collections.ReportPDFUseCase
	SettingsUC   *usecase.SettingsUseCase
	DatasetUC    *usecase.DatasetUseCase
	Store        Store
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	agentOrManager := RequireRole(entity.RoleAgent, entity.RoleManager)
	managerOnly := RequireRole(entity.RoleManager)
	withData := RequireData(deps.Store)

	// Cartera
	collectionsHandler := NewCollectionsHandler(deps.DashboardUC, deps.ActivityUC, deps.Interactions)
	protected.Get("/ar/dashboard", agentOrManager, withData, collectionsHandler.Dashboard)
	coll := protected.Group("/collections")
	coll.Get("/delinquent", agentOrManager, withData, collectionsHandler.Delinquent)
	coll.Post("/log_activity", RequireRole(entity.RoleAgent), withData, collectionsHandler.LogActivity)
	coll.Get("/interactions", agentOrManager, withData, collectionsHandler.Interactions)

	// Reportes (gerencia)
	reports := protected.Group("/reports", managerOnly, withData)
	reportsHandler := NewReportsHandler(deps.DashboardUC, deps.ReportPDFUC)
	reports.Get("/summary", reportsHandler.Summary)
	reports.Get("/aging.pdf", reportsHandler.AgingPDF)

	// Sistema: disparados por cron externo o por un gerente
	system := protected.Group("/system")
	systemHandler := NewSystemHandler(deps.RemindersUC, deps.Store)
	system.Post("/run_reminders", RequireRole(entity.RoleManager, entity.RoleSystem), withData, systemHandler.RunReminders)
	system.Post("/reload", managerOnly, systemHandler.Reload)

	// Datasets de solo lectura
	dataHandler := NewDataHandler(deps.DatasetUC)
	protected.Get("/data/:dataset", agentOrManager, dataHandler.Get)

	// Configuración (cualquier usuario autenticado, sobre su propia empresa)
	settings := protected.Group("/settings")
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings.Get("/company", settingsHandler.GetCompany)
	settings.Put("/company", settingsHandler.UpdateCompany)
	settings.Get("/payment", settingsHandler.GetPayment)
	settings.Put("/payment", settingsHandler.UpdatePayment)
	settings.Get("/audit", settingsHandler.ListAudit)
}
