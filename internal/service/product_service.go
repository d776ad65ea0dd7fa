package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/model"
	"ethioshop-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const recommendationLimit = 5

type ProductService struct {
	products      ProductRepository
	orders        OrderRepository
	users         UserRepository
	notifications NotificationRepository
}

func NewProductService(products ProductRepository, orders OrderRepository, users UserRepository,
	notifications NotificationRepository) *ProductService {
	return &ProductService{
		products:      products,
		orders:        orders,
		users:         users,
		notifications: notifications,
	}
}

// List filtra por categoría, rango de precio/stock y búsqueda por nombre.
// El ordenamiento se hace acá, después de leer.
func (s *ProductService) List(ctx context.Context, f repository.ProductFilter, sortBy string) ([]*model.Product, error) {
	products, err := s.products.Find(ctx, f)
	if err != nil {
		return nil, err
	}
	switch sortBy {
	case "price":
		sort.Slice(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case "name":
		sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	case "stock":
		sort.Slice(products, func(i, j int) bool { return products[i].Stock < products[j].Stock })
	}
	return products, nil
}

type ProductDetail struct {
	*model.Product
	RatingStats model.RatingStats `json:"ratingStats"`
}

func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*ProductDetail, error) {
	p, err := s.products.FindByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ProductDetail{Product: p, RatingStats: p.Stats()}, nil
}

func (s *ProductService) Related(ctx context.Context, id primitive.ObjectID) ([]*model.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.products.FindRelated(ctx, p.Category, p.ID, 3)
}

// Recommendations sugiere productos de las categorías ya compradas por el
// usuario y completa con los más reseñados si no alcanza.
func (s *ProductService) Recommendations(ctx context.Context, userID primitive.ObjectID) ([]*model.Product, error) {
	orders, err := s.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	orderedIDs := map[primitive.ObjectID]bool{}
	var orderedProducts []primitive.ObjectID
	for _, o := range orders {
		for _, item := range o.Items {
			if !orderedIDs[item.ProductID] {
				orderedIDs[item.ProductID] = true
				orderedProducts = append(orderedProducts, item.ProductID)
			}
		}
	}

	categorySet := map[string]bool{}
	if len(orderedProducts) > 0 {
		bought, err := s.products.FindByIDs(ctx, orderedProducts)
		if err != nil {
			return nil, err
		}
		for _, p := range bought {
			categorySet[p.Category] = true
		}
	}

	var recommendations []*model.Product
	if len(categorySet) > 0 {
		var categories []string
		for c := range categorySet {
			categories = append(categories, c)
		}
		recommendations, err = s.products.FindByCategories(ctx, categories, orderedProducts, recommendationLimit)
		if err != nil {
			return nil, err
		}
	}

	if len(recommendations) < recommendationLimit {
		existing := map[primitive.ObjectID]bool{}
		for id := range orderedIDs {
			existing[id] = true
		}
		for _, p := range recommendations {
			existing[p.ID] = true
		}

		// relleno con los más populares por cantidad de reseñas
		all, err := s.products.Find(ctx, repository.ProductFilter{})
		if err != nil {
			return nil, err
		}
		sort.Slice(all, func(i, j int) bool {
			if len(all[i].Reviews) != len(all[j].Reviews) {
				return len(all[i].Reviews) > len(all[j].Reviews)
			}
			return all[i].Stats().AverageRating > all[j].Stats().AverageRating
		})
		for _, p := range all {
			if len(recommendations) >= recommendationLimit {
				break
			}
			if existing[p.ID] {
				continue
			}
			recommendations = append(recommendations, p)
		}
	}

	return recommendations, nil
}

// ---- administración del catálogo ----

func (s *ProductService) Create(ctx context.Context, req dto.ProductRequest) (*model.Product, error) {
	p := &model.Product{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		Image:             req.Image,
		Category:          req.Category,
		Stock:             req.Stock,
		LowStockThreshold: req.LowStockThreshold,
		Reviews:           []model.Review{},
	}
	if p.LowStockThreshold == 0 {
		p.LowStockThreshold = 5
	}
	if err := s.products.Insert(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update pisa los campos editables y, si el stock quedó bajo el umbral,
// avisa a todos los admins.
func (s *ProductService) Update(ctx context.Context, id primitive.ObjectID, req dto.ProductRequest) (*model.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	p.Name = req.Name
	p.Description = req.Description
	p.Price = req.Price
	p.Image = req.Image
	p.Category = req.Category
	p.Stock = req.Stock
	if req.LowStockThreshold > 0 {
		p.LowStockThreshold = req.LowStockThreshold
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}

	if p.Stock < p.LowStockThreshold {
		admins, err := s.users.FindAdmins(ctx)
		if err != nil {
			log.Printf("no se pudo avisar stock bajo de %s: %v", p.Name, err)
		} else {
			msg := fmt.Sprintf("Product %q stock is low (%d units remaining).", p.Name, p.Stock)
			for _, admin := range admins {
				if err := s.notifyUser(ctx, admin.ID, msg); err != nil {
					log.Printf("notificación de stock bajo falló: %v", err)
				}
			}
		}
	}

	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id primitive.ObjectID) error {
	err := s.products.Delete(ctx, id)
	if err == repository.ErrNotFound {
		return ErrProductNotFound
	}
	return err
}

// ---- reseñas ----

// AddReview agrega la reseña en estado pendiente de moderación.
func (s *ProductService) AddReview(ctx context.Context, productID, userID primitive.ObjectID, req dto.ReviewRequest) (*model.Review, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err == repository.ErrNotFound {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	review := model.Review{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		Pending:   true,
		CreatedAt: time.Now().UTC(),
	}
	p.Reviews = append(p.Reviews, review)
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Your review for %q has been submitted and is awaiting approval.", p.Name)
	if err := s.notifyUser(ctx, userID, msg); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *ProductService) ApproveReview(ctx context.Context, productID, reviewID primitive.ObjectID) (*model.Review, error) {
	p, err := s.products.FindByID(ctx, productID)
	if err == repository.ErrNotFound {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	var approved *model.Review
	for i := range p.Reviews {
		if p.Reviews[i].ID == reviewID {
			p.Reviews[i].Pending = false
			approved = &p.Reviews[i]
			break
		}
	}
	if approved == nil {
		return nil, ErrReviewNotFound
	}

	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}

	msg := fmt.Sprintf("Your review for %q has been approved!", p.Name)
	if err := s.notifyUser(ctx, approved.UserID, msg); err != nil {
		return nil, err
	}
	return approved, nil
}

// ---- analíticas ----

// ReviewAnalytics resume cantidad y promedio de reseñas por producto.
func (s *ProductService) ReviewAnalytics(ctx context.Context) ([]dto.ReviewStats, error) {
	products, err := s.products.Find(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}
	stats := make([]dto.ReviewStats, 0, len(products))
	for _, p := range products {
		st := dto.ReviewStats{Name: p.Name, ReviewCount: len(p.Reviews)}
		if len(p.Reviews) > 0 {
			sum := 0
			for _, r := range p.Reviews {
				sum += r.Rating
			}
			st.AverageRating = float64(sum) / float64(len(p.Reviews))
		}
		stats = append(stats, st)
	}
	return stats, nil
}

// SalesByCategory cruza las órdenes con el catálogo y agrega ventas e
// ingresos por categoría. Los items con producto inexistente se saltean.
func (s *ProductService) SalesByCategory(ctx context.Context) ([]dto.CategorySales, error) {
	orders, err := s.orders.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	idSet := map[primitive.ObjectID]bool{}
	for _, o := range orders {
		for _, item := range o.Items {
			idSet[item.ProductID] = true
		}
	}
	var ids []primitive.ObjectID
	for id := range idSet {
		ids = append(ids, id)
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

	byCategory := map[string]*dto.CategorySales{}
	for _, o := range orders {
		for _, item := range o.Items {
			p, ok := products[item.ProductID]
			if !ok {
				log.Printf("orden %s: producto %s inexistente, se saltea", o.ID.Hex(), item.ProductID.Hex())
				continue
			}
			if p.Category == "" {
				continue
			}
			cs, ok := byCategory[p.Category]
			if !ok {
				cs = &dto.CategorySales{Category: p.Category}
				byCategory[p.Category] = cs
			}
			cs.TotalSales += item.Quantity
			cs.TotalRevenue += float64(item.Quantity) * p.Price
		}
	}

	out := make([]dto.CategorySales, 0, len(byCategory))
	for _, cs := range byCategory {
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (s *ProductService) notifyUser(ctx context.Context, userID primitive.ObjectID, message string) error {
	return s.notifications.Insert(ctx, &model.Notification{
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	})
}
