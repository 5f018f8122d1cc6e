package repository

// Repos agrupa los repositorios atados a una misma transacción (o al pool).
type Repos struct {
	Products     ProductRepository
	Movements    InventoryMovementRepository
	Accounts     AccountRepository
	ServiceLines ServiceLineRepository
	ProductLines ProductLineRepository
	Expenses     ExpenseRepository
	Payments     PaymentRepository
	Sessions     CashSessionRepository
	Services     ServiceCatalogRepository
	Users        UserRepository
}
