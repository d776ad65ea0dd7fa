package service

import (
	"context"
	"strings"
	"time"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/model"
	"ethioshop-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DiscountService struct {
	discounts DiscountRepository
}

func NewDiscountService(discounts DiscountRepository) *DiscountService {
	return &DiscountService{discounts: discounts}
}

func (s *DiscountService) GetAll(ctx context.Context) ([]*model.Discount, error) {
	return s.discounts.FindAll(ctx)
}

// Create da de alta el código en mayúsculas. El porcentaje tiene que venir y
// estar entre 0 y 100.
func (s *DiscountService) Create(ctx context.Context, req dto.DiscountRequest) (*model.Discount, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" || req.Percentage == nil {
		return nil, ErrMissingFields
	}
	if *req.Percentage < 0 || *req.Percentage > 100 {
		return nil, ErrInvalidPercentage
	}

	if _, err := s.discounts.FindByCode(ctx, code); err == nil {
		return nil, ErrDiscountExists
	} else if err != repository.ErrNotFound {
		return nil, err
	}

	d := &model.Discount{
		Code:       code,
		Percentage: *req.Percentage,
		Active:     true,
		ExpiresAt:  req.ExpiresAt,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.discounts.Insert(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DiscountService) Update(ctx context.Context, id primitive.ObjectID, req dto.DiscountRequest) (*model.Discount, error) {
	d, err := s.discounts.FindByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, ErrDiscountNotFound
	}
	if err != nil {
		return nil, err
	}

	if req.Code != "" {
		d.Code = strings.ToUpper(strings.TrimSpace(req.Code))
	}
	if req.Percentage != nil {
		if *req.Percentage < 0 || *req.Percentage > 100 {
			return nil, ErrInvalidPercentage
		}
		d.Percentage = *req.Percentage
	}
	if req.ExpiresAt != nil {
		d.ExpiresAt = req.ExpiresAt
	}

	if err := s.discounts.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *DiscountService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.discounts.Delete(ctx, id)
	if err == repository.ErrNotFound {
		return ErrDiscountNotFound
	}
	return err
}

// Validate busca el código activo. Si está vencido lo desactiva en el momento
// (expiración perezosa: nada barre los códigos vencidos de fondo).
func (s *DiscountService) Validate(ctx context.Context, code string) (*model.Discount, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrMissingFields
	}

	d, err := s.discounts.FindActiveByCode(ctx, code)
	if err == repository.ErrNotFound {
		return nil, ErrInvalidDiscount
	}
	if err != nil {
		return nil, err
	}

	if d.ExpiresAt != nil && d.ExpiresAt.Before(time.Now()) {
		d.Active = false
		if err := s.discounts.Update(ctx, d); err != nil {
			return nil, err
		}
		return nil, ErrDiscountExpired
	}
	return d, nil
}
