package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sauna-pos/internal/application/account"
	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/internal/application/ports"
	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/inventory"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
	"github.com/jhoicas/sauna-pos/internal/infrastructure/memory"
)

const actor = "user-1"

type fixture struct {
	ctx   context.Context
	store *memory.Store
	uc    *account.AccountUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := memory.New()
	s.AddService(entity.Service{ID: "sauna", Name: "Sauna", Price: decimal.NewFromInt(30), Active: true})
	s.AddService(entity.Service{ID: "masaje", Name: "Masaje", Price: decimal.NewFromInt(50), Active: true})
	s.SetPromotion("promo10", decimal.NewFromInt(10))
	return &fixture{
		ctx:   context.Background(),
		store: s,
		uc:    account.NewAccountUseCase(s, s.Repos(), s, nil, nil),
	}
}

// withRunner reemplaza el TxRunner del caso de uso (inyección de fallas).
func (f *fixture) withRunner(tx ports.TxRunner) *account.AccountUseCase {
	return account.NewAccountUseCase(tx, f.store.Repos(), f.store, nil, nil)
}

// addProduct crea un producto con stock directo, sin movimientos en el kardex.
func (f *fixture) addProduct(t *testing.T, id string, stock int) {
	t.Helper()
	require.NoError(t, f.store.Repos().Products.Create(f.ctx, &entity.Product{
		ID: id, Code: "COD-" + id, Name: "Producto " + id,
		PurchasePrice: decimal.NewFromInt(2), SalePrice: decimal.NewFromInt(5),
		StockActual: stock, MinStock: 1, Active: true,
	}))
}

func (f *fixture) openAccount(t *testing.T) *dto.AccountResponse {
	t.Helper()
	acc, err := f.uc.Create(f.ctx, actor, dto.CreateAccountRequest{ClientID: "cliente-1"})
	require.NoError(t, err)
	return acc
}

func (f *fixture) stock(t *testing.T, productID string) int {
	t.Helper()
	p, err := f.store.Repos().Products.GetByID(f.ctx, productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.StockActual
}

func (f *fixture) movements(t *testing.T, productID string) []*entity.InventoryMovement {
	t.Helper()
	list, err := f.store.Repos().Movements.ListByProduct(f.ctx, repository.MovementFilter{ProductID: productID})
	require.NoError(t, err)
	return list
}

// assertTotals verifica total = servicios + productos - descuento con subtotales iguales a la suma de líneas.
func assertTotals(t *testing.T, acc *dto.AccountResponse) {
	t.Helper()
	services, products := decimal.Zero, decimal.Zero
	for _, l := range acc.Services {
		services = services.Add(l.Subtotal)
	}
	for _, l := range acc.Products {
		products = products.Add(l.Subtotal)
	}
	require.True(t, acc.SubtotalServices.Equal(services), "subtotal servicios %s != %s", acc.SubtotalServices, services)
	require.True(t, acc.SubtotalProducts.Equal(products), "subtotal productos %s != %s", acc.SubtotalProducts, products)
	require.True(t, acc.Total.Equal(services.Add(products).Sub(acc.Discount)), "total %s", acc.Total)
}

// assertConservation verifica stock = inicial + Σ Entrada - Σ Salida y stock >= 0.
func (f *fixture) assertConservation(t *testing.T, productID string, initial int) {
	t.Helper()
	s := f.stock(t, productID)
	require.GreaterOrEqual(t, s, 0)
	require.Equal(t, initial+inventory.Fold(f.movements(t, productID)), s)
}

type wrappingRunner struct {
	inner ports.TxRunner
	wrap  func(r repository.Repos) repository.Repos
}

func (w wrappingRunner) Run(ctx context.Context, fn func(r repository.Repos) error) error {
	return w.inner.Run(ctx, func(r repository.Repos) error { return fn(w.wrap(r)) })
}

var errDisk = errors.New("disco lleno")

type failingMovements struct {
	repository.InventoryMovementRepository
}

func (failingMovements) Create(context.Context, *entity.InventoryMovement) error {
	return domain.Persistence("insert inventory movement", errDisk)
}

type failingTotals struct {
	repository.AccountRepository
}

func (failingTotals) UpdateTotals(context.Context, *entity.Account) error {
	return domain.Persistence("update account totals", errDisk)
}

