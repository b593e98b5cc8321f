package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-console/internal/application/workspace"
	"github.com/jhoicas/inventario-console/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-console/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Session       SessionService
	Workspaces    *workspace.Provider
	Notifications NotificationCenter
	Documents     *pdf.Generator
	LoginRedirect string
	Log           *logger.Logger
}

// Router registra las rutas de la consola bajo /console.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	redirect := deps.LoginRedirect
	if redirect == "" {
		redirect = "/login"
	}

	console := app.Group("/console")

	// Login (público)
	authHandler := NewAuthHandler(deps.Session, redirect)
	console.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren sesión vigente)
	protected := console.Group("/", RequireSession(deps.Session, redirect))
	protected.Post("/logout", authHandler.Logout)
	protected.Get("/session", authHandler.Session)

	// Movimientos
	inventoryHandler := NewInventoryHandler(deps.Workspaces, deps.Session, deps.Documents, redirect, log)
	movements := protected.Group("/movements")
	movements.Get("/", inventoryHandler.List)
	movements.Get("/report.pdf", inventoryHandler.Report)
	movements.Post("/", inventoryHandler.Create)
	movements.Post("/adjust", inventoryHandler.Adjust)
	movements.Post("/refresh", inventoryHandler.Refresh)
	movements.Get("/:id", inventoryHandler.GetByID)
	movements.Put("/:id", inventoryHandler.Update)
	movements.Delete("/:id", inventoryHandler.Delete)

	// Artículos
	itemHandler := NewItemHandler(deps.Workspaces, deps.Documents, redirect, log)
	itemsGroup := protected.Group("/items")
	itemsGroup.Get("/", itemHandler.List)
	itemsGroup.Get("/labels.pdf", itemHandler.Labels)
	itemsGroup.Get("/barcode/:barcode", itemHandler.LookupBarcode)
	itemsGroup.Post("/", itemHandler.Create)
	itemsGroup.Get("/:id", itemHandler.GetByID)
	itemsGroup.Put("/:id", itemHandler.Update)
	itemsGroup.Delete("/:id", itemHandler.Delete)

	// Catálogos
	catalogHandler := NewCatalogHandler(deps.Workspaces, redirect)
	catalogs := protected.Group("/catalogs")
	catalogs.Get("/groups", catalogHandler.Groups)
	catalogs.Get("/vats", catalogHandler.Vats)
	catalogs.Get("/warehouses", catalogHandler.Warehouses)

	// Notificaciones
	notificationHandler := NewNotificationHandler(deps.Notifications)
	protected.Get("/notifications", notificationHandler.List)
	protected.Delete("/notifications/:id", notificationHandler.Dismiss)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.Workspaces, redirect, log)
	protected.Get("/dashboard", dashboardHandler.GetSummary)
}
