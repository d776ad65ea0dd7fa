package service

import (
	"testing"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPriceOrderItems(t *testing.T) {
	laptop := &model.Product{ID: primitive.NewObjectID(), Name: "Laptop", Price: 100}
	mouse := &model.Product{ID: primitive.NewObjectID(), Name: "Mouse", Price: 50}
	products := map[string]*model.Product{
		laptop.ID.Hex(): laptop,
		mouse.ID.Hex():  mouse,
	}
	promo := &model.Bundle{ID: primitive.NewObjectID(), Discount: 10}
	bundles := map[string]*model.Bundle{promo.ID.Hex(): promo}

	t.Run("precio de lista por cantidad", func(t *testing.T) {
		items, total := priceOrderItems([]dto.OrderItemRequest{
			{ProductID: laptop.ID.Hex(), Quantity: 2},
		}, products, bundles)
		require.Len(t, items, 1)
		assert.True(t, total.Equal(decimal.NewFromInt(200)))
	})

	t.Run("descuento de bundle por línea", func(t *testing.T) {
		items, total := priceOrderItems([]dto.OrderItemRequest{
			{ProductID: mouse.ID.Hex(), Quantity: 1, BundleID: promo.ID.Hex()},
		}, products, bundles)
		require.Len(t, items, 1)
		require.NotNil(t, items[0].BundleID)
		assert.True(t, total.Equal(decimal.NewFromInt(45)), "esperaba 45, fue %s", total)
	})

	t.Run("bundle inexistente cae a precio de lista", func(t *testing.T) {
		_, total := priceOrderItems([]dto.OrderItemRequest{
			{ProductID: mouse.ID.Hex(), Quantity: 1, BundleID: primitive.NewObjectID().Hex()},
		}, products, bundles)
		assert.True(t, total.Equal(decimal.NewFromInt(50)))
	})

	t.Run("cantidad cero o negativa cuenta como uno", func(t *testing.T) {
		items, total := priceOrderItems([]dto.OrderItemRequest{
			{ProductID: mouse.ID.Hex(), Quantity: 0},
			{ProductID: mouse.ID.Hex(), Quantity: -3},
		}, products, bundles)
		require.Len(t, items, 2)
		assert.Equal(t, 1, items[0].Quantity)
		assert.Equal(t, 1, items[1].Quantity)
		assert.True(t, total.Equal(decimal.NewFromInt(100)))
	})

	t.Run("líneas sin producto se caen en silencio", func(t *testing.T) {
		items, total := priceOrderItems([]dto.OrderItemRequest{
			{ProductID: primitive.NewObjectID().Hex(), Quantity: 5},
			{ProductID: laptop.ID.Hex(), Quantity: 1},
		}, products, bundles)
		require.Len(t, items, 1)
		assert.True(t, total.Equal(decimal.NewFromInt(100)))
	})
}

func TestTotalsMatch(t *testing.T) {
	server := decimal.NewFromFloat(99.99)

	assert.True(t, totalsMatch(99.99, server))
	assert.True(t, totalsMatch(100.00, server), "0.01 de diferencia entra en la tolerancia")
	assert.True(t, totalsMatch(99.98, server))
	assert.False(t, totalsMatch(100.01, server))
	assert.False(t, totalsMatch(99.97, server))
}
