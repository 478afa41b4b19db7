package stock_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow/internal/domain"
	"github.com/jhoicas/stockflow/internal/domain/entity"
	"github.com/jhoicas/stockflow/internal/domain/stock"
)

func TestApply(t *testing.T) {
	tests := []struct {
		name      string
		kind      entity.MovementKind
		before    int
		magnitude int
		want      int
		wantErr   error
	}{
		{name: "entrada suma", kind: entity.MovementEntry, before: 25, magnitude: 50, want: 75},
		{name: "salida resta", kind: entity.MovementExit, before: 25, magnitude: 20, want: 5},
		{name: "salida de todo el stock", kind: entity.MovementExit, before: 7, magnitude: 7, want: 0},
		{name: "salida mayor al stock", kind: entity.MovementExit, before: 25, magnitude: 30, want: 25, wantErr: domain.ErrInsufficientStock},
		{name: "ajuste fija cantidad", kind: entity.MovementAdjustment, before: 25, magnitude: 3, want: 3},
		{name: "conteo fija cantidad", kind: entity.MovementInventoryCount, before: 2, magnitude: 40, want: 40},
		{name: "ajuste a cero", kind: entity.MovementAdjustment, before: 9, magnitude: 0, want: 0},
		{name: "ajuste negativo", kind: entity.MovementAdjustment, before: 9, magnitude: -1, want: 9, wantErr: domain.ErrInvalidInput},
		{name: "entrada cero", kind: entity.MovementEntry, before: 9, magnitude: 0, want: 9, wantErr: domain.ErrInvalidInput},
		{name: "salida negativa", kind: entity.MovementExit, before: 9, magnitude: -3, want: 9, wantErr: domain.ErrInvalidInput},
		{name: "tipo desconocido", kind: "transfer", before: 9, magnitude: 1, want: 9, wantErr: domain.ErrInvalidInput},
		{name: "anulación no se aplica directamente", kind: entity.MovementReversalOfEntry, before: 9, magnitude: 1, want: 9, wantErr: domain.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stock.Apply(tt.kind, tt.before, tt.magnitude)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "error inesperado: %v", err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApply_ErrorDeValidacionNombraElCampo(t *testing.T) {
	_, err := stock.Apply("otro", 0, 1)

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "kind", vErr.Field)
}

func TestApply_EntradaYSalidaRestauranCantidad(t *testing.T) {
	qty, err := stock.Apply(entity.MovementEntry, 12, 10)
	require.NoError(t, err)
	qty, err = stock.Apply(entity.MovementExit, qty, 10)
	require.NoError(t, err)

	assert.Equal(t, 12, qty)
}

func TestApply_UltimoAjusteMasDeltasPosteriores(t *testing.T) {
	qty := 0
	steps := []struct {
		kind entity.MovementKind
		n    int
	}{
		{entity.MovementEntry, 30},
		{entity.MovementExit, 4},
		{entity.MovementInventoryCount, 10},
		{entity.MovementEntry, 5},
		{entity.MovementExit, 8},
	}
	for _, s := range steps {
		var err error
		qty, err = stock.Apply(s.kind, qty, s.n)
		require.NoError(t, err)
		require.GreaterOrEqual(t, qty, 0)
	}

	assert.Equal(t, 10+5-8, qty)
}

func TestReverse(t *testing.T) {
	tests := []struct {
		kind      entity.MovementKind
		magnitude int
		want      stock.Reversal
	}{
		{entity.MovementEntry, 10, stock.Reversal{Kind: entity.MovementReversalOfEntry, Delta: -10}},
		{entity.MovementExit, 4, stock.Reversal{Kind: entity.MovementReversalOfExit, Delta: 4}},
		{entity.MovementAdjustment, 7, stock.Reversal{Kind: entity.MovementReversalGeneric, Delta: 0}},
		{entity.MovementInventoryCount, 7, stock.Reversal{Kind: entity.MovementReversalGeneric, Delta: 0}},
		{entity.MovementReversalOfEntry, 3, stock.Reversal{Kind: entity.MovementReversalGeneric, Delta: 0}},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.want, stock.Reverse(tt.kind, tt.magnitude))
		})
	}
}

func TestApplyReversal(t *testing.T) {
	after, err := stock.ApplyReversal(stock.Reverse(entity.MovementExit, 5), 20)
	require.NoError(t, err)
	assert.Equal(t, 25, after)

	after, err = stock.ApplyReversal(stock.Reverse(entity.MovementEntry, 5), 20)
	require.NoError(t, err)
	assert.Equal(t, 15, after)

	after, err = stock.ApplyReversal(stock.Reverse(entity.MovementEntry, 30), 20)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, 20, after)
}
