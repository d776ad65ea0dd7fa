package service

import (
	"context"
	"time"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/model"
	"ethioshop-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ---- categorías ----

type CategoryRepository interface {
	Insert(ctx context.Context, c *model.Category) error
	FindAll(ctx context.Context) ([]*model.Category, error)
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type CategoryService struct {
	categories CategoryRepository
}

func NewCategoryService(categories CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) GetAll(ctx context.Context) ([]*model.Category, error) {
	return s.categories.FindAll(ctx)
}

func (s *CategoryService) Create(ctx context.Context, req dto.CategoryRequest) (*model.Category, error) {
	c := &model.Category{Name: req.Name, Description: req.Description}
	if err := s.categories.Insert(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id primitive.ObjectID, req dto.CategoryRequest) (*model.Category, error) {
	c := &model.Category{ID: id, Name: req.Name, Description: req.Description}
	if err := s.categories.Update(ctx, c); err == repository.ErrNotFound {
		return nil, ErrCategoryNotFound
	} else if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.categories.Delete(ctx, id)
	if err == repository.ErrNotFound {
		return ErrCategoryNotFound
	}
	return err
}

// ---- feedback ----

type FeedbackRepository interface {
	Insert(ctx context.Context, f *model.Feedback) error
	FindByOrderAndUser(ctx context.Context, orderID, userID primitive.ObjectID) (*model.Feedback, error)
}

type FeedbackService struct {
	feedback FeedbackRepository
	orders   OrderRepository
}

func NewFeedbackService(feedback FeedbackRepository, orders OrderRepository) *FeedbackService {
	return &FeedbackService{feedback: feedback, orders: orders}
}

// Submit registra feedback de una orden propia. Repetir orden pisa nada:
// simplemente se rechaza el duplicado.
func (s *FeedbackService) Submit(ctx context.Context, userID primitive.ObjectID, req dto.FeedbackRequest) (*model.Feedback, error) {
	orderID, err := primitive.ObjectIDFromHex(req.OrderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	order, err := s.orders.FindByID(ctx, orderID)
	if err == repository.ErrNotFound {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrNotAuthorized
	}

	if _, err := s.feedback.FindByOrderAndUser(ctx, orderID, userID); err == nil {
		return nil, ErrFeedbackDuplicate
	} else if err != repository.ErrNotFound {
		return nil, err
	}

	f := &model.Feedback{
		UserID:    userID,
		OrderID:   orderID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.feedback.Insert(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

// GetForOrder devuelve el feedback propio de una orden, o nil si todavía no
// hay. El feedback de otros usuarios sobre la misma orden no se expone.
func (s *FeedbackService) GetForOrder(ctx context.Context, userID primitive.ObjectID, orderID string) (*model.Feedback, error) {
	oid, err := primitive.ObjectIDFromHex(orderID)
	if err != nil {
		return nil, ErrOrderNotFound
	}
	f, err := s.feedback.FindByOrderAndUser(ctx, oid, userID)
	if err == repository.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ---- soporte ----

type SupportRepository interface {
	Insert(ctx context.Context, s *model.SupportRequest) error
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.SupportRequest, error)
}

type SupportService struct {
	support SupportRepository
}

func NewSupportService(support SupportRepository) *SupportService {
	return &SupportService{support: support}
}

func (s *SupportService) Submit(ctx context.Context, userID primitive.ObjectID, req dto.SupportRequestInput) (*model.SupportRequest, error) {
	sr := &model.SupportRequest{
		UserID:    userID,
		Subject:   req.Subject,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.support.Insert(ctx, sr); err != nil {
		return nil, err
	}
	return sr, nil
}

func (s *SupportService) History(ctx context.Context, userID primitive.ObjectID) ([]*model.SupportRequest, error) {
	return s.support.FindByUser(ctx, userID)
}
