package service

import (
	"context"
	"testing"
	"time"

	"ethioshop-backend/internal/model"
	"ethioshop-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fake mínimo del repositorio de carritos
type fakeCartRepo struct {
	carts map[primitive.ObjectID]*model.Cart
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{carts: map[primitive.ObjectID]*model.Cart{}}
}

func (r *fakeCartRepo) Upsert(_ context.Context, userID primitive.ObjectID, items []model.CartItem) (*model.Cart, error) {
	if items == nil {
		items = []model.CartItem{}
	}
	c, ok := r.carts[userID]
	if !ok {
		c = &model.Cart{ID: primitive.NewObjectID(), UserID: userID}
		r.carts[userID] = c
	}
	c.Items = items
	c.UpdatedAt = time.Now().UTC()
	return c, nil
}

func (r *fakeCartRepo) FindByUser(_ context.Context, userID primitive.ObjectID) (*model.Cart, error) {
	c, ok := r.carts[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

type fakeWishlistRepo struct {
	items []*model.WishlistItem
}

func (r *fakeWishlistRepo) Insert(_ context.Context, w *model.WishlistItem) error {
	if w.ID.IsZero() {
		w.ID = primitive.NewObjectID()
	}
	r.items = append(r.items, w)
	return nil
}

func (r *fakeWishlistRepo) Exists(_ context.Context, userID, productID primitive.ObjectID) (bool, error) {
	for _, w := range r.items {
		if w.UserID == userID && w.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeWishlistRepo) FindByUser(_ context.Context, userID primitive.ObjectID) ([]*model.WishlistItem, error) {
	var out []*model.WishlistItem
	for _, w := range r.items {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWishlistRepo) Delete(_ context.Context, userID, productID primitive.ObjectID) (*model.WishlistItem, error) {
	for i, w := range r.items {
		if w.UserID == userID && w.ProductID == productID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return w, nil
		}
	}
	return nil, repository.ErrNotFound
}

func TestCartSaveAndGet(t *testing.T) {
	svc := NewCartService(newFakeCartRepo())
	userID := primitive.NewObjectID()
	productID := primitive.NewObjectID()

	// carrito inexistente: devuelve uno vacío
	cart, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	saved, err := svc.Save(context.Background(), userID, []model.CartItem{{ProductID: productID, Quantity: 2}})
	require.NoError(t, err)
	require.Len(t, saved.Items, 1)

	// guardar de nuevo pisa el contenido anterior
	saved, err = svc.Save(context.Background(), userID, nil)
	require.NoError(t, err)
	assert.Empty(t, saved.Items)
}

func TestWishlist(t *testing.T) {
	p := &model.Product{ID: primitive.NewObjectID(), Name: "Deseado", Price: 10}
	svc := NewWishlistService(&fakeWishlistRepo{}, newFakeProductRepo(p))
	userID := primitive.NewObjectID()

	_, err := svc.Add(context.Background(), userID, p.ID.Hex())
	require.NoError(t, err)

	_, err = svc.Add(context.Background(), userID, p.ID.Hex())
	assert.ErrorIs(t, err, ErrWishlistDuplicate)

	_, err = svc.Add(context.Background(), userID, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrProductNotFound)

	entries, err := svc.Get(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Deseado", entries[0].Product.Name)

	require.NoError(t, svc.Remove(context.Background(), userID, p.ID.Hex()))
	assert.ErrorIs(t, svc.Remove(context.Background(), userID, p.ID.Hex()), ErrWishlistNotFound)
}

func TestNotificationMarkRead(t *testing.T) {
	repo := &fakeNotificationRepo{}
	svc := NewNotificationService(repo)
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	n := &model.Notification{UserID: owner, Message: "hola"}
	require.NoError(t, repo.Insert(context.Background(), n))

	// ajeno: no puede tocarla
	_, err := svc.MarkRead(context.Background(), n.ID, stranger, true)
	assert.ErrorIs(t, err, ErrNotAuthorized)

	updated, err := svc.MarkRead(context.Background(), n.ID, owner, true)
	require.NoError(t, err)
	assert.True(t, updated.Read)

	// leída: desaparece de las no leídas
	unread, err := svc.Unread(context.Background(), owner)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestRecentActivityCap(t *testing.T) {
	repo := &fakeActivityRepo{}
	svc := NewActivityService(repo)
	userID := primitive.NewObjectID()

	for i := 0; i < 7; i++ {
		require.NoError(t, repo.Insert(context.Background(), &model.Activity{
			UserID: userID, Action: "Login", Timestamp: time.Now().UTC(),
		}))
	}

	recent, err := svc.Recent(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, recent, 5) // el panel del usuario muestra las últimas 5
}

func TestActivityHeatmap(t *testing.T) {
	repo := &fakeActivityRepo{}
	svc := NewActivityService(repo)
	userID := primitive.NewObjectID()
	today := time.Now().UTC()
	earlier := today.AddDate(0, 0, -3)

	require.NoError(t, repo.Insert(context.Background(), &model.Activity{
		UserID: userID, Action: "Login", Timestamp: today,
	}))
	require.NoError(t, repo.Insert(context.Background(), &model.Activity{
		UserID: userID, Action: "Order Placed", Timestamp: earlier,
	}))

	heatmap, err := svc.Heatmap(context.Background())
	require.NoError(t, err)

	// a diferencia de la serie de tendencias, sólo los días con actividad
	require.Len(t, heatmap, 2)
	assert.Equal(t, earlier.Format("2006-01-02"), heatmap[0].Date)
	assert.Equal(t, 1, heatmap[0].Purchases)
	assert.Equal(t, today.Format("2006-01-02"), heatmap[1].Date)
	assert.Equal(t, 1, heatmap[1].Logins)
}

func TestActivityTrends(t *testing.T) {
	repo := &fakeActivityRepo{}
	svc := NewActivityService(repo)
	userID := primitive.NewObjectID()
	today := time.Now().UTC()

	require.NoError(t, repo.Insert(context.Background(), &model.Activity{
		UserID: userID, Action: "Login", Timestamp: today,
	}))
	require.NoError(t, repo.Insert(context.Background(), &model.Activity{
		UserID: userID, Action: "Order Placed", Timestamp: today,
	}))
	require.NoError(t, repo.Insert(context.Background(), &model.Activity{
		UserID: userID, Action: "Chat Message", Timestamp: today, // no cuenta
	}))

	trends, err := svc.Trends(context.Background())
	require.NoError(t, err)
	require.Len(t, trends, 31) // una entrada por día, con o sin actividad

	last := trends[len(trends)-1]
	assert.Equal(t, today.Format("2006-01-02"), last.Date)
	assert.Equal(t, 1, last.Logins)
	assert.Equal(t, 1, last.Purchases)
}
