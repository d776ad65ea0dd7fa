package service

import (
	"log"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/model"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// totalTolerance es la diferencia máxima aceptada entre el total del cliente
// y el recalculado: 0.01 exacto pasa, más que eso se rechaza.
var totalTolerance = decimal.NewFromFloat(0.01)

var oneHundred = decimal.NewFromInt(100)

// priceOrderItems recalcula el carrito contra el catálogo vivo.
//
// Política permisiva: una línea cuyo producto no resuelve se descarta con un
// warning, no aborta el checkout. Un bundle inexistente o sin descuento cae
// al precio pleno del producto. La cantidad ausente o inválida cuenta como 1.
func priceOrderItems(items []dto.OrderItemRequest, products map[string]*model.Product, bundles map[string]*model.Bundle) ([]model.OrderItem, decimal.Decimal) {
	var valid []model.OrderItem
	total := decimal.Zero

	for i, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			log.Printf("item %d tiene productId inválido: %s", i+1, item.ProductID)
			continue
		}

		price := decimal.NewFromFloat(product.Price)
		var bundleRef *primitive.ObjectID
		if item.BundleID != "" {
			if oid, err := primitive.ObjectIDFromHex(item.BundleID); err == nil {
				bundleRef = &oid
			}
			bundle, found := bundles[item.BundleID]
			if found && bundle.Discount > 0 {
				// precio efectivo = precio vivo × (1 − descuento/100)
				multiplier := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(bundle.Discount).Div(oneHundred))
				price = price.Mul(multiplier)
				log.Printf("descuento %.0f%% aplicado a %s: %.2f -> %s", bundle.Discount, product.Name, product.Price, price)
			} else {
				log.Printf("bundle %s inexistente o sin descuento para el item %d", item.BundleID, i+1)
			}
		}

		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))

		valid = append(valid, model.OrderItem{
			ProductID: product.ID,
			Quantity:  qty,
			BundleID:  bundleRef,
		})
	}

	return valid, total
}

// totalsMatch compara el total del cliente contra el del servidor con la
// tolerancia de un centavo.
func totalsMatch(clientTotal float64, serverTotal decimal.Decimal) bool {
	diff := decimal.NewFromFloat(clientTotal).Sub(serverTotal).Abs()
	return diff.LessThanOrEqual(totalTolerance)
}
