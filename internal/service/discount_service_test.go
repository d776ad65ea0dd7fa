package service

import (
	"context"
	"testing"
	"time"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pct(v float64) *float64 { return &v }

func TestDiscountCreate(t *testing.T) {
	t.Run("normaliza el código a mayúsculas", func(t *testing.T) {
		svc := NewDiscountService(newFakeDiscountRepo())
		d, err := svc.Create(context.Background(), dto.DiscountRequest{
			Code: "  promo10 ", Percentage: pct(10),
		})
		require.NoError(t, err)
		assert.Equal(t, "PROMO10", d.Code)
		assert.True(t, d.Active)
	})

	t.Run("código duplicado", func(t *testing.T) {
		svc := NewDiscountService(newFakeDiscountRepo(&model.Discount{Code: "YA", Percentage: 5, Active: true}))
		_, err := svc.Create(context.Background(), dto.DiscountRequest{Code: "ya", Percentage: pct(5)})
		assert.ErrorIs(t, err, ErrDiscountExists)
	})

	t.Run("porcentaje fuera de rango", func(t *testing.T) {
		svc := NewDiscountService(newFakeDiscountRepo())
		_, err := svc.Create(context.Background(), dto.DiscountRequest{Code: "MAL", Percentage: pct(150)})
		assert.ErrorIs(t, err, ErrInvalidPercentage)
	})

	t.Run("campos faltantes", func(t *testing.T) {
		svc := NewDiscountService(newFakeDiscountRepo())
		_, err := svc.Create(context.Background(), dto.DiscountRequest{Code: "SOLO"})
		assert.ErrorIs(t, err, ErrMissingFields)
	})
}

func TestDiscountValidate(t *testing.T) {
	t.Run("código activo y vigente", func(t *testing.T) {
		svc := NewDiscountService(newFakeDiscountRepo(&model.Discount{
			Code: "VIVA", Percentage: 15, Active: true,
		}))
		d, err := svc.Validate(context.Background(), "viva")
		require.NoError(t, err)
		assert.Equal(t, 15.0, d.Percentage)
	})

	t.Run("código inexistente o inactivo", func(t *testing.T) {
		svc := NewDiscountService(newFakeDiscountRepo(&model.Discount{
			Code: "MUERTO", Percentage: 5, Active: false,
		}))
		_, err := svc.Validate(context.Background(), "MUERTO")
		assert.ErrorIs(t, err, ErrInvalidDiscount)
	})

	t.Run("vencido se desactiva al tocarlo", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		expired := &model.Discount{Code: "VIEJO", Percentage: 5, Active: true, ExpiresAt: &past}
		repo := newFakeDiscountRepo(expired)
		svc := NewDiscountService(repo)

		_, err := svc.Validate(context.Background(), "VIEJO")
		assert.ErrorIs(t, err, ErrDiscountExpired)

		// la expiración es perezosa: quedó desactivado recién ahora
		assert.False(t, expired.Active)
	})
}
