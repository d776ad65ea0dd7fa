package service

import (
	"context"
	"sort"
	"time"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/model"
	"ethioshop-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ---- carrito ----

type CartRepository interface {
	Upsert(ctx context.Context, userID primitive.ObjectID, items []model.CartItem) (*model.Cart, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*model.Cart, error)
}

type CartService struct {
	carts CartRepository
}

func NewCartService(carts CartRepository) *CartService {
	return &CartService{carts: carts}
}

func (s *CartService) Save(ctx context.Context, userID primitive.ObjectID, items []model.CartItem) (*model.Cart, error) {
	return s.carts.Upsert(ctx, userID, items)
}

// Get devuelve el carrito del usuario o uno vacío si todavía no guardó nada.
func (s *CartService) Get(ctx context.Context, userID primitive.ObjectID) (*model.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err == repository.ErrNotFound {
		return &model.Cart{UserID: userID, Items: []model.CartItem{}}, nil
	}
	return cart, err
}

// ---- wishlist ----

type WishlistRepository interface {
	Insert(ctx context.Context, w *model.WishlistItem) error
	Exists(ctx context.Context, userID, productID primitive.ObjectID) (bool, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.WishlistItem, error)
	Delete(ctx context.Context, userID, productID primitive.ObjectID) (*model.WishlistItem, error)
}

type WishlistService struct {
	wishlists WishlistRepository
	products  ProductRepository
}

func NewWishlistService(wishlists WishlistRepository, products ProductRepository) *WishlistService {
	return &WishlistService{wishlists: wishlists, products: products}
}

// WishlistEntry es el item con su producto populado.
type WishlistEntry struct {
	ID        string         `json:"id"`
	Product   *model.Product `json:"product"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (s *WishlistService) Add(ctx context.Context, userID primitive.ObjectID, productID string) (*model.WishlistItem, error) {
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return nil, ErrProductNotFound
	}
	if _, err := s.products.FindByID(ctx, pid); err == repository.ErrNotFound {
		return nil, ErrProductNotFound
	} else if err != nil {
		return nil, err
	}

	exists, err := s.wishlists.Exists(ctx, userID, pid)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrWishlistDuplicate
	}

	w := &model.WishlistItem{
		UserID:    userID,
		ProductID: pid,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.wishlists.Insert(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WishlistService) Get(ctx context.Context, userID primitive.ObjectID) ([]WishlistEntry, error) {
	items, err := s.wishlists.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var ids []primitive.ObjectID
	for _, w := range items {
		ids = append(ids, w.ProductID)
	}
	products := map[primitive.ObjectID]*model.Product{}
	if len(ids) > 0 {
		found, err := s.products.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			products[p.ID] = p
		}
	}

	entries := make([]WishlistEntry, 0, len(items))
	for _, w := range items {
		p, ok := products[w.ProductID]
		if !ok {
			// producto borrado del catálogo: el item huérfano no se muestra
			continue
		}
		entries = append(entries, WishlistEntry{ID: w.ID.Hex(), Product: p, CreatedAt: w.CreatedAt})
	}
	return entries, nil
}

func (s *WishlistService) Remove(ctx context.Context, userID primitive.ObjectID, productID string) error {
	pid, err := primitive.ObjectIDFromHex(productID)
	if err != nil {
		return ErrWishlistNotFound
	}
	if _, err := s.wishlists.Delete(ctx, userID, pid); err == repository.ErrNotFound {
		return ErrWishlistNotFound
	} else if err != nil {
		return err
	}
	return nil
}

// ---- notificaciones ----

type NotificationService struct {
	notifications NotificationRepository
}

func NewNotificationService(notifications NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

func (s *NotificationService) Unread(ctx context.Context, userID primitive.ObjectID) ([]*model.Notification, error) {
	return s.notifications.FindUnreadByUser(ctx, userID)
}

// MarkRead sólo deja tocar notificaciones propias.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID primitive.ObjectID, read bool) (*model.Notification, error) {
	n, err := s.notifications.FindByIDAndUser(ctx, id, userID)
	if err == repository.ErrNotFound {
		return nil, ErrNotAuthorized
	}
	if err != nil {
		return nil, err
	}
	if err := s.notifications.SetRead(ctx, n.ID, read); err != nil {
		return nil, err
	}
	n.Read = read
	return n, nil
}

// ---- actividades ----

type ActivityService struct {
	activities ActivityRepository
}

func NewActivityService(activities ActivityRepository) *ActivityService {
	return &ActivityService{activities: activities}
}

func (s *ActivityService) GetAll(ctx context.Context) ([]*model.Activity, error) {
	return s.activities.FindAll(ctx)
}

// Recent trae las últimas 5 actividades del usuario, para su panel.
func (s *ActivityService) Recent(ctx context.Context, userID primitive.ObjectID) ([]*model.Activity, error) {
	return s.activities.FindRecentByUser(ctx, userID, 5)
}

// countByDay agrupa logins y compras por fecha en los últimos 30 días.
func (s *ActivityService) countByDay(ctx context.Context) (map[string]*dto.DayActivity, error) {
	since := time.Now().UTC().AddDate(0, 0, -30)
	activities, err := s.activities.FindSince(ctx, since)
	if err != nil {
		return nil, err
	}

	byDay := map[string]*dto.DayActivity{}
	for _, a := range activities {
		day := a.Timestamp.UTC().Format("2006-01-02")
		d, ok := byDay[day]
		if !ok {
			d = &dto.DayActivity{Date: day}
			byDay[day] = d
		}
		switch a.Action {
		case "Login":
			d.Logins++
		case "Order Placed":
			d.Purchases++
		}
	}
	return byDay, nil
}

// Trends arma la serie de los últimos 30 días: logins y compras por fecha.
func (s *ActivityService) Trends(ctx context.Context) ([]dto.DayActivity, error) {
	byDay, err := s.countByDay(ctx)
	if err != nil {
		return nil, err
	}

	// un registro por día, incluso los días sin actividad
	out := make([]dto.DayActivity, 0, 31)
	for i := 30; i >= 0; i-- {
		day := time.Now().UTC().AddDate(0, 0, -i).Format("2006-01-02")
		if d, ok := byDay[day]; ok {
			out = append(out, *d)
		} else {
			out = append(out, dto.DayActivity{Date: day})
		}
	}
	return out, nil
}

// Heatmap devuelve sólo los días que tuvieron actividad, en orden de fecha.
func (s *ActivityService) Heatmap(ctx context.Context) ([]dto.DayActivity, error) {
	byDay, err := s.countByDay(ctx)
	if err != nil {
		return nil, err
	}

	dates := make([]string, 0, len(byDay))
	for day := range byDay {
		dates = append(dates, day)
	}
	sort.Strings(dates)

	out := make([]dto.DayActivity, 0, len(dates))
	for _, day := range dates {
		out = append(out, *byDay[day])
	}
	return out, nil
}
