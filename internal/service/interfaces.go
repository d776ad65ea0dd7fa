package service

import (
	"context"
	"time"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/model"
	"ethioshop-backend/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Interfaces que deben implementar los repositorios Mongo. Los servicios
// dependen de esto para poder testearse con fakes en memoria.

type OrderRepository interface {
	Insert(ctx context.Context, o *model.Order) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Order, error)
	FindAll(ctx context.Context) ([]*model.Order, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Order, error)
	Update(ctx context.Context, o *model.Order) error
	AppendStatus(ctx context.Context, id primitive.ObjectID, status string, entry model.StatusEntry) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

type ProductRepository interface {
	Insert(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Product, error)
	Find(ctx context.Context, f repository.ProductFilter) ([]*model.Product, error)
	FindRelated(ctx context.Context, category string, exclude primitive.ObjectID, limit int64) ([]*model.Product, error)
	FindByCategories(ctx context.Context, categories []string, exclude []primitive.ObjectID, limit int64) ([]*model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	IncrementStock(ctx context.Context, id primitive.ObjectID, delta int) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	PullUserReviews(ctx context.Context, userID primitive.ObjectID) error
}

type BundleRepository interface {
	Insert(ctx context.Context, b *model.Bundle) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Bundle, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.Bundle, error)
	FindAll(ctx context.Context) ([]*model.Bundle, error)
	Update(ctx context.Context, b *model.Bundle) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type UserRepository interface {
	Insert(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByReferralCode(ctx context.Context, code string) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]*model.User, error)
	FindAdmins(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, u *model.User) error
	SetReferralDiscount(ctx context.Context, id primitive.ObjectID, value float64) error
	AddReferredUser(ctx context.Context, referrerID, userID primitive.ObjectID) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type ReferralRepository interface {
	Insert(ctx context.Context, ref *model.Referral) error
	FindPending(ctx context.Context, referrerID, refereeID primitive.ObjectID) (*model.Referral, error)
	FindAll(ctx context.Context) ([]*model.Referral, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

type DiscountRepository interface {
	Insert(ctx context.Context, d *model.Discount) error
	FindAll(ctx context.Context) ([]*model.Discount, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Discount, error)
	FindByCode(ctx context.Context, code string) (*model.Discount, error)
	FindActiveByCode(ctx context.Context, code string) (*model.Discount, error)
	Update(ctx context.Context, d *model.Discount) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type NotificationRepository interface {
	Insert(ctx context.Context, n *model.Notification) error
	FindUnreadByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.Notification, error)
	FindByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*model.Notification, error)
	SetRead(ctx context.Context, id primitive.ObjectID, read bool) error
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

type ActivityRepository interface {
	Insert(ctx context.Context, a *model.Activity) error
	FindAll(ctx context.Context) ([]*model.Activity, error)
	FindRecentByUser(ctx context.Context, userID primitive.ObjectID, limit int64) ([]*model.Activity, error)
	FindSince(ctx context.Context, since time.Time) ([]*model.Activity, error)
	DeleteByUser(ctx context.Context, userID primitive.ObjectID) error
}

type ReturnRepository interface {
	Insert(ctx context.Context, rr *model.ReturnRequest) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.ReturnRequest, error)
	FindByOrderAndUser(ctx context.Context, orderID, userID primitive.ObjectID) (*model.ReturnRequest, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*model.ReturnRequest, error)
	FindAll(ctx context.Context) ([]*model.ReturnRequest, error)
	Update(ctx context.Context, rr *model.ReturnRequest) error
}

// Colaboradores externos del checkout. Todos se tratan como cajas negras.

// Mailer manda el correo de confirmación. Si falla después de persistir la
// orden, el error sube igual al caller: la orden ya quedó escrita.
type Mailer interface {
	SendOrderConfirmation(email string, order *dto.OrderView) error
}

// EventPublisher anuncia la orden al resto de los microservicios. Es
// fire-and-forget: un fallo sólo se loguea.
type EventPublisher interface {
	OrderPlaced(o *model.Order)
}

// PaymentGateway consulta el estado de un intento de pago.
type PaymentGateway interface {
	IntentSucceeded(ctx context.Context, intentID string) (bool, error)
}
