package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/model"
	"ethioshop-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReturnService struct {
	returns       ReturnRepository
	orders        OrderRepository
	notifications NotificationRepository
}

func NewReturnService(returns ReturnRepository, orders OrderRepository, notifications NotificationRepository) *ReturnService {
	return &ReturnService{returns: returns, orders: orders, notifications: notifications}
}

// Create acepta devoluciones sólo de órdenes entregadas del propio usuario,
// una por orden.
func (s *ReturnService) Create(ctx context.Context, userID primitive.ObjectID, req dto.CreateReturnRequest) (*model.ReturnRequest, error) {
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
	if order.Status != model.OrderDelivered {
		return nil, ErrReturnNotAllowed
	}

	if _, err := s.returns.FindByOrderAndUser(ctx, orderID, userID); err == nil {
		return nil, ErrReturnDuplicate
	} else if err != repository.ErrNotFound {
		return nil, err
	}

	rr := &model.ReturnRequest{
		OrderID:   orderID,
		UserID:    userID,
		Reason:    req.Reason,
		Status:    model.ReturnPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.returns.Insert(ctx, rr); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Return request for order #%s submitted.", orderID.Hex())
	if err := s.notifyUser(ctx, userID, msg); err != nil {
		return nil, err
	}
	return rr, nil
}

func (s *ReturnService) GetByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.ReturnRequest, error) {
	return s.returns.FindByUser(ctx, userID)
}

func (s *ReturnService) GetAll(ctx context.Context) ([]*model.ReturnRequest, error) {
	return s.returns.FindAll(ctx)
}

// Resolve aprueba o rechaza la devolución. Si se aprueba, la orden pasa a
// Returned con su entrada de historial.
func (s *ReturnService) Resolve(ctx context.Context, id primitive.ObjectID, status string) (*model.ReturnRequest, error) {
	if status != model.ReturnApproved && status != model.ReturnRejected {
		return nil, ErrInvalidStatus
	}

	rr, err := s.returns.FindByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, ErrReturnNotFound
	}
	if err != nil {
		return nil, err
	}

	rr.Status = status
	if err := s.returns.Update(ctx, rr); err != nil {
		return nil, err
	}

	if status == model.ReturnApproved {
		order, err := s.orders.FindByID(ctx, rr.OrderID)
		if err != nil && err != repository.ErrNotFound {
			return nil, err
		}
		if order != nil {
			order.Status = model.OrderReturned
			order.StatusHistory = append(order.StatusHistory, model.StatusEntry{
				Status:    model.OrderReturned,
				UpdatedAt: time.Now().UTC(),
			})
			if err := s.orders.Update(ctx, order); err != nil {
				return nil, err
			}
		}
	}

	msg := fmt.Sprintf("Your return request for order #%s was %s.", rr.OrderID.Hex(), strings.ToLower(status))
	if err := s.notifyUser(ctx, rr.UserID, msg); err != nil {
		return nil, err
	}
	return rr, nil
}

func (s *ReturnService) notifyUser(ctx context.Context, userID primitive.ObjectID, message string) error {
	return s.notifications.Insert(ctx, &model.Notification{
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
}
