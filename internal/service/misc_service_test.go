package service

import (
	"context"
	"testing"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/model"
	"ethioshop-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeFeedbackRepo struct {
	feedback []*model.Feedback
}

func (r *fakeFeedbackRepo) Insert(_ context.Context, f *model.Feedback) error {
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	r.feedback = append(r.feedback, f)
	return nil
}

func (r *fakeFeedbackRepo) FindByOrderAndUser(_ context.Context, orderID, userID primitive.ObjectID) (*model.Feedback, error) {
	for _, f := range r.feedback {
		if f.OrderID == orderID && f.UserID == userID {
			return f, nil
		}
	}
	return nil, repository.ErrNotFound
}

func TestFeedbackSubmit(t *testing.T) {
	owner := primitive.NewObjectID()
	order := &model.Order{ID: primitive.NewObjectID(), UserID: owner, Status: model.OrderDelivered}
	svc := NewFeedbackService(&fakeFeedbackRepo{}, newFakeOrderRepo(order))

	f, err := svc.Submit(context.Background(), owner, dto.FeedbackRequest{
		OrderID: order.ID.Hex(), Rating: 4, Comment: "Llegó rápido",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, f.Rating)

	t.Run("una sola vez por orden", func(t *testing.T) {
		_, err := svc.Submit(context.Background(), owner, dto.FeedbackRequest{
			OrderID: order.ID.Hex(), Rating: 5,
		})
		assert.ErrorIs(t, err, ErrFeedbackDuplicate)
	})

	t.Run("orden ajena", func(t *testing.T) {
		_, err := svc.Submit(context.Background(), primitive.NewObjectID(), dto.FeedbackRequest{
			OrderID: order.ID.Hex(), Rating: 3,
		})
		assert.ErrorIs(t, err, ErrNotAuthorized)
	})
}

func TestFeedbackGetForOrder(t *testing.T) {
	owner := primitive.NewObjectID()
	other := primitive.NewObjectID()
	order := &model.Order{ID: primitive.NewObjectID(), UserID: owner, Status: model.OrderDelivered}
	svc := NewFeedbackService(&fakeFeedbackRepo{}, newFakeOrderRepo(order))

	_, err := svc.Submit(context.Background(), owner, dto.FeedbackRequest{
		OrderID: order.ID.Hex(), Rating: 5, Comment: "Excelente",
	})
	require.NoError(t, err)

	f, err := svc.GetForOrder(context.Background(), owner, order.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "Excelente", f.Comment)

	t.Run("sin feedback todavía devuelve nil sin error", func(t *testing.T) {
		f, err := svc.GetForOrder(context.Background(), owner, primitive.NewObjectID().Hex())
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("el feedback de otro usuario no se ve", func(t *testing.T) {
		f, err := svc.GetForOrder(context.Background(), other, order.ID.Hex())
		require.NoError(t, err)
		assert.Nil(t, f)
	})

	t.Run("id no parseable", func(t *testing.T) {
		_, err := svc.GetForOrder(context.Background(), owner, "no-es-hex")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
