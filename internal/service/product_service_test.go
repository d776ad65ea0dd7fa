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

func newProductFixture(products ...*model.Product) (*ProductService, *fakeProductRepo, *fakeOrderRepo, *fakeUserRepo, *fakeNotificationRepo) {
	productRepo := newFakeProductRepo(products...)
	orderRepo := newFakeOrderRepo()
	userRepo := newFakeUserRepo()
	notifications := &fakeNotificationRepo{}
	return NewProductService(productRepo, orderRepo, userRepo, notifications), productRepo, orderRepo, userRepo, notifications
}

func TestProductListSorting(t *testing.T) {
	svc, _, _, _, _ := newProductFixture(
		&model.Product{Name: "B", Price: 20, Stock: 1},
		&model.Product{Name: "A", Price: 30, Stock: 2},
		&model.Product{Name: "C", Price: 10, Stock: 3},
	)

	byPrice, err := svc.List(context.Background(), repository.ProductFilter{}, "price")
	require.NoError(t, err)
	assert.Equal(t, "C", byPrice[0].Name)

	byName, err := svc.List(context.Background(), repository.ProductFilter{}, "name")
	require.NoError(t, err)
	assert.Equal(t, "A", byName[0].Name)
}

func TestProductDetailStatsSkipPending(t *testing.T) {
	p := &model.Product{
		ID:   primitive.NewObjectID(),
		Name: "Con reseñas",
		Reviews: []model.Review{
			{ID: primitive.NewObjectID(), Rating: 5, Pending: false},
			{ID: primitive.NewObjectID(), Rating: 1, Pending: true}, // pendiente no cuenta
			{ID: primitive.NewObjectID(), Rating: 3, Pending: false},
		},
	}
	svc, _, _, _, _ := newProductFixture(p)

	detail, err := svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, detail.RatingStats.TotalReviews)
	assert.Equal(t, 4.0, detail.RatingStats.AverageRating)
}

func TestProductUpdateLowStockNotifiesAdmins(t *testing.T) {
	p := &model.Product{ID: primitive.NewObjectID(), Name: "Escaso", Price: 9, Stock: 20, LowStockThreshold: 5}
	svc, _, _, userRepo, notifications := newProductFixture(p)
	admin := &model.User{ID: primitive.NewObjectID(), Role: model.RoleAdmin, Email: "admin@example.com"}
	require.NoError(t, userRepo.Insert(context.Background(), admin))

	_, err := svc.Update(context.Background(), p.ID, dto.ProductRequest{
		Name: "Escaso", Price: 9, Category: "misc", Stock: 2, LowStockThreshold: 5,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, notifications.forUser(admin.ID))
}

func TestAddAndApproveReview(t *testing.T) {
	p := &model.Product{ID: primitive.NewObjectID(), Name: "Reseñable", Price: 10}
	author := primitive.NewObjectID()
	svc, productRepo, _, _, notifications := newProductFixture(p)

	review, err := svc.AddReview(context.Background(), p.ID, author, dto.ReviewRequest{
		Rating: 4, Comment: "Muy bueno",
	})
	require.NoError(t, err)
	assert.True(t, review.Pending)
	assert.NotEmpty(t, notifications.forUser(author))

	// pendiente: no cuenta en las stats
	stored, _ := productRepo.FindByID(context.Background(), p.ID)
	assert.Equal(t, 0, stored.Stats().TotalReviews)

	approved, err := svc.ApproveReview(context.Background(), p.ID, review.ID)
	require.NoError(t, err)
	assert.False(t, approved.Pending)
	assert.Equal(t, 1, stored.Stats().TotalReviews)
}

func TestApproveReviewNotFound(t *testing.T) {
	p := &model.Product{ID: primitive.NewObjectID(), Name: "Sin reseñas", Price: 10}
	svc, _, _, _, _ := newProductFixture(p)

	_, err := svc.ApproveReview(context.Background(), p.ID, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestRecommendationsFromPurchasedCategories(t *testing.T) {
	bought := &model.Product{ID: primitive.NewObjectID(), Name: "Comprado", Category: "audio", Price: 10}
	sameCat := &model.Product{ID: primitive.NewObjectID(), Name: "Parecido", Category: "audio", Price: 12}
	otherCat := &model.Product{ID: primitive.NewObjectID(), Name: "Otra cosa", Category: "hogar", Price: 8}

	svc, _, orderRepo, _, _ := newProductFixture(bought, sameCat, otherCat)
	buyer := primitive.NewObjectID()
	require.NoError(t, orderRepo.Insert(context.Background(), &model.Order{
		UserID: buyer,
		Items:  []model.OrderItem{{ProductID: bought.ID, Quantity: 1}},
	}))

	recs, err := svc.Recommendations(context.Background(), buyer)
	require.NoError(t, err)

	names := map[string]bool{}
	for _, r := range recs {
		names[r.Name] = true
	}
	assert.True(t, names["Parecido"], "recomienda de la categoría comprada")
	assert.False(t, names["Comprado"], "no recomienda lo ya comprado")
}

func TestSalesByCategory(t *testing.T) {
	a := &model.Product{ID: primitive.NewObjectID(), Name: "A", Category: "audio", Price: 10}
	h := &model.Product{ID: primitive.NewObjectID(), Name: "H", Category: "hogar", Price: 5}
	svc, _, orderRepo, _, _ := newProductFixture(a, h)

	require.NoError(t, orderRepo.Insert(context.Background(), &model.Order{
		Items: []model.OrderItem{
			{ProductID: a.ID, Quantity: 2},
			{ProductID: h.ID, Quantity: 1},
			{ProductID: primitive.NewObjectID(), Quantity: 9}, // producto borrado: se saltea
		},
	}))

	sales, err := svc.SalesByCategory(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "audio", sales[0].Category)
	assert.Equal(t, 2, sales[0].TotalSales)
	assert.Equal(t, 20.0, sales[0].TotalRevenue)
}
