package service

import (
	"context"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/model"
	"ethioshop-backend/internal/repository"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BundleService struct {
	bundles  BundleRepository
	products ProductRepository
}

func NewBundleService(bundles BundleRepository, products ProductRepository) *BundleService {
	return &BundleService{bundles: bundles, products: products}
}

func (s *BundleService) GetAll(ctx context.Context) ([]*model.Bundle, error) {
	return s.bundles.FindAll(ctx)
}

func (s *BundleService) Get(ctx context.Context, id primitive.ObjectID) (*model.Bundle, error) {
	b, err := s.bundles.FindByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, ErrBundleNotFound
	}
	return b, err
}

// Create valida que todos los productos existan y precalcula el precio del
// combo con el descuento aplicado. El precio guardado es informativo: el
// checkout siempre recalcula sobre precios vivos.
func (s *BundleService) Create(ctx context.Context, req dto.BundleRequest) (*model.Bundle, error) {
	ids, products, err := s.resolveProducts(ctx, req.Products)
	if err != nil {
		return nil, err
	}

	b := &model.Bundle{
		Name:        req.Name,
		Description: req.Description,
		Products:    ids,
		Discount:    req.Discount,
		Price:       bundlePrice(products, req.Discount),
	}
	if err := s.bundles.Insert(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BundleService) Update(ctx context.Context, id primitive.ObjectID, req dto.BundleRequest) (*model.Bundle, error) {
	b, err := s.bundles.FindByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, ErrBundleNotFound
	}
	if err != nil {
		return nil, err
	}

	ids, products, err := s.resolveProducts(ctx, req.Products)
	if err != nil {
		return nil, err
	}

	b.Name = req.Name
	b.Description = req.Description
	b.Products = ids
	b.Discount = req.Discount
	b.Price = bundlePrice(products, req.Discount)

	if err := s.bundles.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BundleService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.bundles.Delete(ctx, id)
	if err == repository.ErrNotFound {
		return ErrBundleNotFound
	}
	return err
}

func (s *BundleService) resolveProducts(ctx context.Context, hexIDs []string) ([]primitive.ObjectID, []*model.Product, error) {
	if len(hexIDs) == 0 {
		return nil, nil, ErrBundleProductsMiss
	}
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, h := range hexIDs {
		id, err := primitive.ObjectIDFromHex(h)
		if err != nil {
			return nil, nil, ErrBundleProductsMiss
		}
		ids = append(ids, id)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	if len(products) != len(ids) {
		return nil, nil, ErrBundleProductsMiss
	}
	return ids, products, nil
}

// bundlePrice suma los precios con el multiplicador 1 - descuento/100,
// redondeado a dos decimales.
func bundlePrice(products []*model.Product, discount float64) float64 {
	sum := decimal.Zero
	for _, p := range products {
		sum = sum.Add(decimal.NewFromFloat(p.Price))
	}
	multiplier := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(discount).Div(decimal.NewFromInt(100)))
	price, _ := sum.Mul(multiplier).Round(2).Float64()
	return price
}
