package account_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sauna-pos/internal/application/dto"
	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
)

func TestCreate_EstadoInicial(t *testing.T) {
	f := newFixture(t)
	acc := f.openAccount(t)

	assert.Equal(t, entity.AccountStatusOpen, acc.StatusID)
	assert.Nil(t, acc.ClosedAt)
	assert.True(t, acc.SubtotalServices.IsZero())
	assert.True(t, acc.SubtotalProducts.IsZero())
	assert.True(t, acc.Total.IsZero())
}

func TestCreate_SinCliente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(f.ctx, actor, dto.CreateAccountRequest{ClientID: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_PromocionInexistente(t *testing.T) {
	f := newFixture(t)
	promo := "no-existe"
	_, err := f.uc.Create(f.ctx, actor, dto.CreateAccountRequest{ClientID: "c1", PromotionID: &promo})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTotales_TrasCadaMutacion(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p1", 10)
	promo := "promo10"
	acc, err := f.uc.Create(f.ctx, actor, dto.CreateAccountRequest{ClientID: "c1", PromotionID: &promo})
	require.NoError(t, err)
	assert.True(t, acc.Discount.Equal(decimal.NewFromInt(10)))

	acc, err = f.uc.AddService(f.ctx, acc.ID, dto.ServiceLineRequest{ServiceID: "sauna", Quantity: 2})
	require.NoError(t, err)
	assertTotals(t, acc)
	assert.True(t, acc.SubtotalServices.Equal(decimal.NewFromInt(60)))

	price := decimal.NewFromInt(45)
	acc, err = f.uc.AddService(f.ctx, acc.ID, dto.ServiceLineRequest{ServiceID: "masaje", Quantity: 1, UnitPrice: &price})
	require.NoError(t, err)
	assertTotals(t, acc)
	assert.True(t, acc.SubtotalServices.Equal(decimal.NewFromInt(105)), "precio explícito como foto")

	acc, err = f.uc.AddProduct(f.ctx, acc.ID, actor, dto.ProductLineRequest{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)
	assertTotals(t, acc)
	assert.True(t, acc.Total.Equal(decimal.NewFromInt(110)), "105 + 15 - 10")

	acc, err = f.uc.UpdateService(f.ctx, acc.ID, acc.Services[0].ID, dto.UpdateServiceLineRequest{Quantity: 1})
	require.NoError(t, err)
	assertTotals(t, acc)

	acc, err = f.uc.RemoveService(f.ctx, acc.ID, acc.Services[1].ID)
	require.NoError(t, err)
	assertTotals(t, acc)
	assert.True(t, acc.Total.Equal(decimal.NewFromInt(35)), "30 + 15 - 10")

	acc, err = f.uc.RecomputeTotals(f.ctx, acc.ID)
	require.NoError(t, err)
	assertTotals(t, acc)
}

func TestAddService_ServicioInexistente(t *testing.T) {
	f := newFixture(t)
	acc := f.openAccount(t)
	_, err := f.uc.AddService(f.ctx, acc.ID, dto.ServiceLineRequest{ServiceID: "spa-lunar", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLineaDeOtraCuenta(t *testing.T) {
	f := newFixture(t)
	a := f.openAccount(t)
	b := f.openAccount(t)
	a, err := f.uc.AddService(f.ctx, a.ID, dto.ServiceLineRequest{ServiceID: "sauna", Quantity: 1})
	require.NoError(t, err)

	_, err = f.uc.RemoveService(f.ctx, b.ID, a.Services[0].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClose_RegistraPagosYBloqueaCambios(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p1", 10)
	acc := f.openAccount(t)
	acc, err := f.uc.AddProduct(f.ctx, acc.ID, actor, dto.ProductLineRequest{ProductID: "p1", Quantity: 2})
	require.NoError(t, err)

	closedAt := time.Date(2026, 5, 2, 18, 30, 0, 0, time.Local)
	acc, err = f.uc.Close(f.ctx, acc.ID, actor, dto.CloseAccountRequest{
		ClosedAt: &closedAt,
		Payments: []dto.PaymentRequest{
			{PaymentMethodID: "efectivo", Amount: decimal.NewFromInt(6)},
			{PaymentMethodID: "tarjeta", Amount: decimal.NewFromInt(4)},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, acc.ClosedAt)
	assert.True(t, acc.ClosedAt.Equal(closedAt))
	assert.Equal(t, entity.AccountStatusClosed, acc.StatusID)
	assert.Len(t, acc.Payments, 2)
	assert.Equal(t, 8, f.stock(t, "p1"), "cerrar no toca inventario")

	_, err = f.uc.AddProduct(f.ctx, acc.ID, actor, dto.ProductLineRequest{ProductID: "p1", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrConflict)
	_, err = f.uc.Close(f.ctx, acc.ID, actor, dto.CloseAccountRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
	err = f.uc.Cancel(f.ctx, acc.ID, actor)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 8, f.stock(t, "p1"))
}

func TestClose_PagoInvalido(t *testing.T) {
	f := newFixture(t)
	acc := f.openAccount(t)
	_, err := f.uc.Close(f.ctx, acc.ID, actor, dto.CloseAccountRequest{
		Payments: []dto.PaymentRequest{{PaymentMethodID: "efectivo", Amount: decimal.Zero}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.uc.Get(f.ctx, acc.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ClosedAt)
}

func TestClose_CuentaInexistente(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Close(f.ctx, "nada", actor, dto.CloseAccountRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_DevuelveStockYEliminaCuenta(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p1", 10)
	f.addProduct(t, "p2", 4)
	acc := f.openAccount(t)
	_, err := f.uc.AddService(f.ctx, acc.ID, dto.ServiceLineRequest{ServiceID: "sauna", Quantity: 1})
	require.NoError(t, err)
	_, err = f.uc.AddProduct(f.ctx, acc.ID, actor, dto.ProductLineRequest{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)
	_, err = f.uc.AddProduct(f.ctx, acc.ID, actor, dto.ProductLineRequest{ProductID: "p2", Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, 0, f.stock(t, "p2"))

	require.NoError(t, f.uc.Cancel(f.ctx, acc.ID, actor))

	assert.Equal(t, 10, f.stock(t, "p1"))
	assert.Equal(t, 4, f.stock(t, "p2"))
	f.assertConservation(t, "p1", 10)
	f.assertConservation(t, "p2", 4)
	_, err = f.uc.Get(f.ctx, acc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_FallaParcialNoPierdeLineas(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p1", 10)
	acc := f.openAccount(t)
	_, err := f.uc.AddProduct(f.ctx, acc.ID, actor, dto.ProductLineRequest{ProductID: "p1", Quantity: 3})
	require.NoError(t, err)

	uc := f.withRunner(wrappingRunner{inner: f.store, wrap: func(r repository.Repos) repository.Repos {
		r.Movements = failingMovements{r.Movements}
		return r
	}})
	err = uc.Cancel(f.ctx, acc.ID, actor)
	require.ErrorIs(t, err, errDisk)

	got, err := f.uc.Get(f.ctx, acc.ID)
	require.NoError(t, err)
	require.Len(t, got.Products, 1)
	assertTotals(t, got)
	assert.Equal(t, 7, f.stock(t, "p1"))
}

func TestPrecioYPago_MasDeDosDecimales(t *testing.T) {
	f := newFixture(t)
	f.addProduct(t, "p1", 10)
	acc := f.openAccount(t)
	price := decimal.RequireFromString("0.005")

	_, err := f.uc.AddService(f.ctx, acc.ID, dto.ServiceLineRequest{ServiceID: "sauna", Quantity: 1, UnitPrice: &price})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.AddProduct(f.ctx, acc.ID, actor, dto.ProductLineRequest{ProductID: "p1", Quantity: 1, UnitPrice: &price})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 10, f.stock(t, "p1"))
	assert.Empty(t, f.movements(t, "p1"))

	_, err = f.uc.Close(f.ctx, acc.ID, actor, dto.CloseAccountRequest{
		Payments: []dto.PaymentRequest{{PaymentMethodID: "efectivo", Amount: decimal.RequireFromString("10.005")}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.uc.Get(f.ctx, acc.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Services)
	assert.Empty(t, got.Products)
	assert.Nil(t, got.ClosedAt)
	assert.True(t, got.Total.IsZero())
}

func TestList_PaginaConHasMore(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 3; i++ {
		f.openAccount(t)
	}

	page, err := f.uc.List(f.ctx, dto.AccountListRequest{OpenOnly: true, PageRequest: dto.PageRequest{Limit: 3}})
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.False(t, page.Page.HasMore)

	page, err = f.uc.List(f.ctx, dto.AccountListRequest{OpenOnly: true, PageRequest: dto.PageRequest{Limit: 1, Offset: 1}})
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.True(t, page.Page.HasMore)
}
