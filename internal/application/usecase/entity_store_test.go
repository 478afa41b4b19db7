package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow/internal/application/dto"
	"github.com/jhoicas/stockflow/internal/application/usecase"
	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/testutil/memstore"
)

type fixture struct {
	store      *memstore.Store
	categories *usecase.CategoryUseCase
	suppliers  *usecase.SupplierUseCase
	products   *usecase.ProductUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	return &fixture{
		store:      store,
		categories: usecase.NewCategoryUseCase(store.Categories()),
		suppliers:  usecase.NewSupplierUseCase(store.Suppliers()),
		products:   usecase.NewProductUseCase(store.Products(), store.Categories(), store.Suppliers(), memstore.NewTxRunner(store), entity.DefaultMinThreshold),
	}
}

func (f *fixture) category(t *testing.T, name string) string {
	t.Helper()
	c, err := f.categories.Create(context.Background(), dto.CreateCategoryRequest{Name: name})
	require.NoError(t, err)
	return c.ID
}

func (f *fixture) supplier(t *testing.T, name string) string {
	t.Helper()
	s, err := f.suppliers.Create(context.Background(), dto.CreateSupplierRequest{Name: name})
	require.NoError(t, err)
	return s.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestCategory_ColorPorDefectoYDuplicado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Electrónica"})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultCategoryColor, c.Color)

	_, err = f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Electrónica", Color: "#FF6B6B"})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	_, err = f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "electrónica"})
	assert.NoError(t, err, "el nombre es sensible a mayúsculas")

	_, err = f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "  "})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	list, err := f.categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = f.categories.GetByID(ctx, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_CreateAplicaValoresPorDefecto(t *testing.T) {
	f := newFixture(t)
	catID := f.category(t, "Oficina")

	p, err := f.products.Create(context.Background(), "", dto.CreateProductRequest{
		Reference:  "PROD-001",
		Name:       "Grapadora",
		CategoryID: catID,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity)
	assert.Equal(t, 5, p.MinThreshold)
	assert.True(t, p.PurchasePrice.IsZero())
	assert.True(t, p.SalePrice.IsZero())
	assert.Nil(t, p.SupplierID)
	require.NotNil(t, p.CategoryName)
	assert.Equal(t, "Oficina", *p.CategoryName)
	assert.True(t, p.LowStock, "0 <= 5")
	assert.Equal(t, 0, f.store.MovementCount(), "sin cantidad inicial no hay movimiento")
}

func TestProduct_CantidadInicialSeRegistraComoEntrada(t *testing.T) {
	f := newFixture(t)
	catID := f.category(t, "Oficina")
	qty := 25

	p, err := f.products.Create(context.Background(), "ana", dto.CreateProductRequest{
		Reference: "PROD-001", Name: "Teclado", CategoryID: catID, Quantity: &qty,
	})
	require.NoError(t, err)
	assert.Equal(t, 25, p.Quantity)

	movs := f.store.AllMovements()
	require.Len(t, movs, 1)
	m := movs[0]
	assert.Equal(t, p.ID, m.ProductID)
	assert.Equal(t, entity.MovementEntry, m.Kind)
	assert.Equal(t, 25, m.Quantity)
	assert.Equal(t, usecase.InitialStockReason, m.Reason)
	assert.Equal(t, "ana", m.Actor)
	require.NotNil(t, m.QuantityBefore)
	require.NotNil(t, m.QuantityAfter)
	assert.Equal(t, 0, *m.QuantityBefore)
	assert.Equal(t, 25, *m.QuantityAfter)

	// La cantidad es la suma de los efectos de sus movimientos desde 0.
	sum := 0
	for _, mv := range movs {
		if mv.ProductID != p.ID {
			continue
		}
		switch mv.Kind {
		case entity.MovementEntry:
			sum += mv.Quantity
		case entity.MovementExit:
			sum -= mv.Quantity
		}
	}
	assert.Equal(t, p.Quantity, sum)
}

func TestProduct_CantidadInicialHaceRollbackSiFallaElMovimiento(t *testing.T) {
	f := newFixture(t)
	catID := f.category(t, "Oficina")
	f.store.FailMovementCreate = errors.New("disco lleno")
	qty := 10

	_, err := f.products.Create(context.Background(), "", dto.CreateProductRequest{
		Reference: "R1", Name: "A", CategoryID: catID, Quantity: &qty,
	})
	require.Error(t, err)

	existing, err := f.store.Products().GetByReference(context.Background(), "R1")
	require.NoError(t, err)
	assert.Nil(t, existing, "el producto no queda creado sin su entrada inicial")
	assert.Equal(t, 0, f.store.MovementCount())
}

func TestProduct_ReferenciaDuplicada(t *testing.T) {
	f := newFixture(t)
	catID := f.category(t, "Oficina")
	ctx := context.Background()

	_, err := f.products.Create(ctx, "", dto.CreateProductRequest{Reference: "R1", Name: "A", CategoryID: catID})
	require.NoError(t, err)
	_, err = f.products.Create(ctx, "", dto.CreateProductRequest{Reference: "R1", Name: "B", CategoryID: catID})
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	_, err = f.products.Create(ctx, "", dto.CreateProductRequest{Reference: "R2", Name: "B", CategoryID: catID})
	assert.NoError(t, err)
}

func TestProduct_Validaciones(t *testing.T) {
	f := newFixture(t)
	catID := f.category(t, "Oficina")
	neg := -1
	negPrice := decimal.NewFromInt(-3)

	cases := []struct {
		name  string
		in    dto.CreateProductRequest
		field string
	}{
		{"sin referencia", dto.CreateProductRequest{Name: "A", CategoryID: catID}, "reference"},
		{"sin nombre", dto.CreateProductRequest{Reference: "R", CategoryID: catID}, "name"},
		{"sin categoría", dto.CreateProductRequest{Reference: "R", Name: "A"}, "category_id"},
		{"categoría inexistente", dto.CreateProductRequest{Reference: "R", Name: "A", CategoryID: "x"}, "category_id"},
		{"proveedor inexistente", dto.CreateProductRequest{Reference: "R", Name: "A", CategoryID: catID, SupplierID: "x"}, "supplier_id"},
		{"cantidad negativa", dto.CreateProductRequest{Reference: "R", Name: "A", CategoryID: catID, Quantity: &neg}, "quantity"},
		{"umbral negativo", dto.CreateProductRequest{Reference: "R", Name: "A", CategoryID: catID, MinThreshold: &neg}, "min_threshold"},
		{"precio negativo", dto.CreateProductRequest{Reference: "R", Name: "A", CategoryID: catID, SalePrice: &negPrice}, "sale_price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.products.Create(context.Background(), "", tc.in)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve), "se esperaba ValidationError, got %v", err)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestProduct_ListFiltraPorNombreOReferencia(t *testing.T) {
	f := newFixture(t)
	catID := f.category(t, "Oficina")
	ctx := context.Background()
	for _, in := range []dto.CreateProductRequest{
		{Reference: "PROD-001", Name: "Grapadora", CategoryID: catID},
		{Reference: "PROD-002", Name: "Tijeras", CategoryID: catID},
		{Reference: "X-9", Name: "Papel prod", CategoryID: catID},
	} {
		_, err := f.products.Create(ctx, "", in)
		require.NoError(t, err)
	}

	all, err := f.products.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)
	assert.Equal(t, "Grapadora", all.Items[0].Name, "ordenado por nombre")

	found, err := f.products.List(ctx, "prod")
	require.NoError(t, err)
	assert.Equal(t, 3, found.Total, "coincide en referencia o nombre sin distinguir mayúsculas")

	found, err = f.products.List(ctx, "tij")
	require.NoError(t, err)
	require.Equal(t, 1, found.Total)
	assert.Equal(t, "PROD-002", found.Items[0].Reference)
}

func TestProduct_DeleteEliminaMovimientosEnCascada(t *testing.T) {
	f := newFixture(t)
	catID := f.category(t, "Oficina")
	ctx := context.Background()
	p, err := f.products.Create(ctx, "", dto.CreateProductRequest{Reference: "R1", Name: "A", CategoryID: catID})
	require.NoError(t, err)
	require.NoError(t, f.store.Movements().Create(ctx, &entity.Movement{
		ID: "m1", ProductID: p.ID, Kind: entity.MovementEntry, Quantity: 3, Actor: entity.SystemActor,
	}))

	require.NoError(t, f.products.Delete(ctx, p.ID))
	assert.Equal(t, 0, f.store.MovementCount())

	_, err = f.products.GetByID(ctx, p.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, errors.Is(f.products.Delete(ctx, p.ID), domain.ErrNotFound))
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestSupplier_DeleteBloqueadoMientrasHayProductos(t *testing.T) {
	f := newFixture(t)
	catID := f.category(t, "Oficina")
	supID := f.supplier(t, "Acme")
	ctx := context.Background()

	p, err := f.products.Create(ctx, "", dto.CreateProductRequest{
		Reference: "R1", Name: "A", CategoryID: catID, SupplierID: supID,
	})
	require.NoError(t, err)
	require.NotNil(t, p.SupplierName)
	assert.Equal(t, "Acme", *p.SupplierName)

	err = f.suppliers.Delete(ctx, supID)
	assert.True(t, errors.Is(err, domain.ErrReferentialIntegrity))

	require.NoError(t, f.products.Delete(ctx, p.ID))
	assert.NoError(t, f.suppliers.Delete(ctx, supID))

	list, err := f.suppliers.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSupplier_Validaciones(t *testing.T) {
	f := newFixture(t)
	_, err := f.suppliers.Create(context.Background(), dto.CreateSupplierRequest{Email: "a@b.c"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.True(t, errors.Is(f.suppliers.Delete(context.Background(), "no-existe"), domain.ErrNotFound))
}
