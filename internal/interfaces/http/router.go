package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sauna-pos/internal/application/account"
	"github.com/jhoicas/sauna-pos/internal/application/auth"
	"github.com/jhoicas/sauna-pos/internal/application/cash"
	"github.com/jhoicas/sauna-pos/internal/application/expense"
	"github.com/jhoicas/sauna-pos/internal/application/inventory"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	AccountUC     *account.AccountUseCase
	ProductUC     *inventory.ProductUseCase
	MovementUC    *inventory.MovementUseCase
	ReconcileUC   *inventory.ReconcileUseCase
	Replenishment *inventory.ReplenishmentUseCase
	ExpenseUC     *expense.ExpenseUseCase
	CashUC        *cash.CashUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	staff := RequireRole(entity.RoleAdmin, entity.RoleCajero, entity.RoleTerapeuta)
	cashiers := RequireRole(entity.RoleAdmin, entity.RoleCajero)
	admin := RequireRole(entity.RoleAdmin)

	// Cuentas: los terapeutas cargan servicios y productos
	accounts := protected.Group("/accounts", staff)
	accountHandler := NewAccountHandler(deps.AccountUC)
	accounts.Post("/", accountHandler.Create)
	accounts.Get("/", accountHandler.List)
	accounts.Get("/:id", accountHandler.Get)
	accounts.Post("/:id/close", cashiers, accountHandler.Close)
	accounts.Delete("/:id", cashiers, accountHandler.Cancel)
	accounts.Post("/:id/recompute", admin, accountHandler.Recompute)
	accounts.Post("/:id/services", accountHandler.AddService)
	accounts.Put("/:id/services/:lineId", accountHandler.UpdateService)
	accounts.Delete("/:id/services/:lineId", accountHandler.RemoveService)
	accounts.Post("/:id/products", accountHandler.AddProduct)
	accounts.Put("/:id/products/:lineId", accountHandler.UpdateProduct)
	accounts.Delete("/:id/products/:lineId", accountHandler.RemoveProduct)
	accounts.Post("/:id/products/:lineId/return", accountHandler.ReturnProduct)

	// Productos
	products := protected.Group("/products", staff)
	productHandler := NewProductHandler(deps.ProductUC, deps.MovementUC)
	products.Get("/", productHandler.List)
	products.Post("/", admin, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", admin, productHandler.Update)
	products.Get("/:id/movements", productHandler.Movements)

	// Kardex (solo admin)
	invGroup := protected.Group("/inventory", admin)
	inventoryHandler := NewInventoryHandler(deps.MovementUC, deps.ReconcileUC, deps.Replenishment)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Put("/movements/:id", inventoryHandler.EditMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/reconciliation", inventoryHandler.Reconciliation)
	invGroup.Get("/replenishment", inventoryHandler.Replenishment)

	// Egresos
	expenses := protected.Group("/expenses", cashiers)
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/:id", expenseHandler.Get)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Delete("/:id", admin, expenseHandler.Delete)

	// Caja
	cashGroup := protected.Group("/cash", cashiers)
	cashHandler := NewCashHandler(deps.CashUC)
	cashGroup.Get("/summary/:date", cashHandler.DaySummary)
	cashGroup.Get("/summary/:date/pdf", cashHandler.DaySummaryPDF)
	cashGroup.Get("/month/:year/:month", admin, cashHandler.MonthSummary)
	cashGroup.Post("/sessions", cashHandler.OpenSession)
	cashGroup.Post("/sessions/:date/close", cashHandler.CloseSession)
	cashGroup.Get("/sessions/:date", cashHandler.GetSession)
}
