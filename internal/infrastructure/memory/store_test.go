package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sauna-pos/internal/domain"
	"github.com/jhoicas/sauna-pos/internal/domain/entity"
	"github.com/jhoicas/sauna-pos/internal/domain/repository"
	"github.com/jhoicas/sauna-pos/internal/infrastructure/memory"
)

func TestReadSnapshot_BloqueaEscriturasConcurrentes(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Repos().Products.Create(ctx, &entity.Product{ID: "p1", Code: "AGUA", StockActual: 5}))

	written := make(chan struct{})
	err := s.ReadSnapshot(ctx, func(r repository.Repos) error {
		before, err := r.Products.GetByID(ctx, "p1")
		require.NoError(t, err)

		go func() {
			_ = s.Run(ctx, func(w repository.Repos) error {
				return w.Products.UpdateStock(ctx, "p1", 1)
			})
			close(written)
		}()

		select {
		case <-written:
			t.Fatal("una escritura entró durante la lectura")
		case <-time.After(30 * time.Millisecond):
		}
		after, err := r.Products.GetByID(ctx, "p1")
		require.NoError(t, err)
		assert.Equal(t, before.StockActual, after.StockActual)
		return nil
	})
	require.NoError(t, err)

	<-written
	p, err := s.Repos().Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, p.StockActual)
}

func TestRun_RollbackRestauraEstado(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	repos := s.Repos()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", Code: "AGUA", StockActual: 5}))

	boom := errors.New("falla simulada")
	err := s.Run(ctx, func(r repository.Repos) error {
		require.NoError(t, r.Products.UpdateStock(ctx, "p1", 1))
		require.NoError(t, r.Movements.Create(ctx, &entity.InventoryMovement{
			ID: "m1", ProductID: "p1", Kind: entity.MovementKindSalida, Quantity: 4, Date: time.Now(),
		}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, err := repos.Products.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 5, p.StockActual)
	m, err := repos.Movements.GetByID(ctx, "m1")
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestRun_CommitPersiste(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	require.NoError(t, s.Repos().Products.Create(ctx, &entity.Product{ID: "p1", Code: "AGUA", StockActual: 5}))

	require.NoError(t, s.Run(ctx, func(r repository.Repos) error {
		return r.Products.UpdateStock(ctx, "p1", 2)
	}))
	p, _ := s.Repos().Products.GetByID(ctx, "p1")
	assert.Equal(t, 2, p.StockActual)
}

func TestProducts_CodigoDuplicado(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", Code: "AGUA"}))
	err := repos.Products.Create(ctx, &entity.Product{ID: "p2", Code: "AGUA"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestProducts_SearchPorEstadoDeStock(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	for _, p := range []entity.Product{
		{ID: "1", Code: "A", Name: "Agua", StockActual: 0, MinStock: 2, Active: true},
		{ID: "2", Code: "B", Name: "Bebida", StockActual: 2, MinStock: 2, Active: true},
		{ID: "3", Code: "C", Name: "Crema", StockActual: 9, MinStock: 2, Active: true},
	} {
		p := p
		require.NoError(t, repos.Products.Create(ctx, &p))
	}

	low, err := repos.Products.Search(ctx, repository.ProductFilter{StockStatus: entity.StockStatusLow})
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "B", low[0].Code)

	out, _ := repos.Products.Search(ctx, repository.ProductFilter{StockStatus: entity.StockStatusOut})
	require.Len(t, out, 1)
	assert.Equal(t, "A", out[0].Code)

	byText, _ := repos.Products.Search(ctx, repository.ProductFilter{Text: "crem"})
	require.Len(t, byText, 1)
	assert.Equal(t, "C", byText[0].Code)
}

func TestMovements_OrdenMasRecientePrimero(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", Code: "A"}))
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, id := range []string{"m1", "m2", "m3"} {
		require.NoError(t, repos.Movements.Create(ctx, &entity.InventoryMovement{
			ID: id, ProductID: "p1", Kind: entity.MovementKindEntrada, Quantity: 1, Date: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	latest, err := repos.Movements.LatestByProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "m3", latest.ID)

	recent, _ := repos.Movements.ListRecent(ctx, 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "m3", recent[0].ID)
	assert.Equal(t, "m2", recent[1].ID)
}

func TestSessions_UnaPorDia(t *testing.T) {
	ctx := context.Background()
	repos := memory.New().Repos()
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repos.Sessions.Create(ctx, &entity.CashSession{ID: "s1", BusinessDay: day, OpeningFloat: decimal.NewFromInt(100)}))
	err := repos.Sessions.Create(ctx, &entity.CashSession{ID: "s2", BusinessDay: day})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestGetDiscount(t *testing.T) {
	s := memory.New()
	s.SetPromotion("promo", decimal.NewFromInt(10))
	d, err := s.GetDiscount(context.Background(), "promo")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(10)))

	_, err = s.GetDiscount(context.Background(), "otra")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
