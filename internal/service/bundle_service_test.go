package service

import (
	"context"
	"testing"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBundleCreate(t *testing.T) {
	a := &model.Product{ID: primitive.NewObjectID(), Name: "A", Price: 100}
	b := &model.Product{ID: primitive.NewObjectID(), Name: "B", Price: 49.99}

	t.Run("precalcula el precio con descuento", func(t *testing.T) {
		svc := NewBundleService(newFakeBundleRepo(), newFakeProductRepo(a, b))
		bundle, err := svc.Create(context.Background(), dto.BundleRequest{
			Name:        "Combo",
			Description: "A y B juntos",
			Products:    []string{a.ID.Hex(), b.ID.Hex()},
			Discount:    10,
		})
		require.NoError(t, err)
		// (100 + 49.99) * 0.9 = 134.99 redondeado a dos decimales
		assert.Equal(t, 134.99, bundle.Price)
	})

	t.Run("producto inexistente rechaza el bundle completo", func(t *testing.T) {
		svc := NewBundleService(newFakeBundleRepo(), newFakeProductRepo(a))
		_, err := svc.Create(context.Background(), dto.BundleRequest{
			Name:        "Roto",
			Description: "referencia colgada",
			Products:    []string{a.ID.Hex(), primitive.NewObjectID().Hex()},
		})
		assert.ErrorIs(t, err, ErrBundleProductsMiss)
	})

	t.Run("id no parseable", func(t *testing.T) {
		svc := NewBundleService(newFakeBundleRepo(), newFakeProductRepo(a))
		_, err := svc.Create(context.Background(), dto.BundleRequest{
			Name:        "Malo",
			Description: "id inválido",
			Products:    []string{"zzz"},
		})
		assert.ErrorIs(t, err, ErrBundleProductsMiss)
	})
}

func TestBundleUpdateRecomputesPrice(t *testing.T) {
	a := &model.Product{ID: primitive.NewObjectID(), Name: "A", Price: 200}
	existing := &model.Bundle{
		ID:       primitive.NewObjectID(),
		Name:     "Viejo",
		Products: []primitive.ObjectID{a.ID},
		Discount: 0,
		Price:    200,
	}
	svc := NewBundleService(newFakeBundleRepo(existing), newFakeProductRepo(a))

	updated, err := svc.Update(context.Background(), existing.ID, dto.BundleRequest{
		Name:        "Nuevo",
		Description: "ahora con descuento",
		Products:    []string{a.ID.Hex()},
		Discount:    25,
	})
	require.NoError(t, err)
	assert.Equal(t, 150.0, updated.Price)
}
