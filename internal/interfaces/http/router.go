package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/export"
	"github.com/jhoicas/almacen-api/internal/application/history"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/reporting"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/access"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	WorkerUC    *usecase.WorkerUseCase
	UserUC      *usecase.UserUseCase
	Ledger      *ledger.RecordMovementUseCase
	History     *history.HistoryUseCase
	Export      *export.ExportUseCase
	DashboardUC *reporting.DashboardUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.AuthUC)

	// Auth (login y registro públicos)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)

	protected := api.Group("/", requireAuth)

	// Maestro de productos
	productHandler := NewProductHandler(deps.ProductUC)
	master := RequireView(access.ViewMaster)
	products := protected.Group("/products", master)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	protected.Get("/categories", master, productHandler.Categories)
	protected.Post("/categories", master, productHandler.AddCategory)
	protected.Get("/units", master, productHandler.Units)

	// Movimientos
	movementHandler := NewMovementHandler(deps.Ledger, deps.History, deps.Export)
	movements := protected.Group("/movements")
	movements.Post("/", movementHandler.Record)
	movements.Get("/", movementHandler.History)
	movements.Delete("/clear/:type", RequireRole(entity.RoleAdmin, entity.RoleEditor), movementHandler.Clear)
	movements.Get("/export/:type", movementHandler.Export)

	// Trabajadores
	workerHandler := NewWorkerHandler(deps.WorkerUC)
	workers := protected.Group("/workers", RequireView(access.ViewWorkers))
	workers.Get("/", workerHandler.List)
	workers.Post("/", workerHandler.Create)
	workers.Put("/:id", workerHandler.Update)
	workers.Delete("/:id", workerHandler.Delete)

	// Usuarios del sistema
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users", RequireView(access.ViewUsers))
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Tablero
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard := protected.Group("/dashboard", RequireView(access.ViewSummary))
	dashboard.Get("/summary", dashboardHandler.Summary)
	dashboard.Get("/report.pdf", dashboardHandler.ReportPDF)
	dashboard.Get("/replenishment", dashboardHandler.Replenishment)
}
