// dto.go
package dto

import (
	"time"

	"ethioshop-backend/internal/model"
)

// ---- usuarios ----

type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	ReferralCode string `json:"referralCode"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	ReferralCode string `json:"referralCode"`
}

type AuthResponse struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

type ReferredUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ProfileView es el usuario sin password y con los referidos populados.
type ProfileView struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Email            string         `json:"email"`
	Role             string         `json:"role"`
	ReferralCode     string         `json:"referralCode"`
	ReferralDiscount float64        `json:"referralDiscount"`
	ReferredUsers    []ReferredUser `json:"referredUsers"`
	CreatedAt        time.Time      `json:"createdAt"`
}

type ReferralView struct {
	ID        string       `json:"id"`
	Referrer  ReferredUser `json:"referrer"`
	Referee   ReferredUser `json:"referee"`
	Code      string       `json:"referralCode"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AdminUpdateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ---- órdenes ----

type OrderItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
	BundleID  string `json:"bundleId"`
}

// PlaceOrderRequest es la entrada del checkout. Total es opcional: si el
// cliente lo manda se contrasta contra el cálculo del servidor.
type PlaceOrderRequest struct {
	Items           []OrderItemRequest  `json:"items"`
	ShippingAddress model.Address       `json:"shippingAddress"`
	BillingAddress  model.Address       `json:"billingAddress"`
	PaymentMethod   model.PaymentMethod `json:"paymentMethod"`
	ReferralCode    string              `json:"referralCode"`
	PNR             string              `json:"pnr"`
	Total           *float64            `json:"total"`
	PaymentIntentID string              `json:"paymentIntentId"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderUserView struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type OrderItemView struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
	BundleID  string  `json:"bundleId,omitempty"`
}

// OrderView es la orden "populada": items con nombre y precio vivos del
// catálogo más el email del comprador.
type OrderView struct {
	ID              string              `json:"id"`
	User            OrderUserView       `json:"user"`
	Items           []OrderItemView     `json:"items"`
	Total           float64             `json:"total"`
	Status          string              `json:"status"`
	StatusHistory   []model.StatusEntry `json:"statusHistory"`
	ShippingAddress model.Address       `json:"shippingAddress"`
	BillingAddress  model.Address       `json:"billingAddress"`
	PaymentMethod   model.PaymentMethod `json:"paymentMethod"`
	ReferralCode    string              `json:"referralCode,omitempty"`
	PNR             string              `json:"pnr,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
}

// ---- analíticas ----

type ProductSales struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type MonthlySales struct {
	Month        int     `json:"month"`
	Year         int     `json:"year"`
	TotalOrders  int     `json:"totalOrders"`
	TotalRevenue float64 `json:"totalRevenue"`
}

type OrderAnalytics struct {
	TotalOrders  int            `json:"totalOrders"`
	TotalRevenue float64        `json:"totalRevenue"`
	TopProducts  []ProductSales `json:"topProducts"`
	MonthlySales []MonthlySales `json:"monthlySales"`
}

type ReviewStats struct {
	Name          string  `json:"name"`
	ReviewCount   int     `json:"reviewCount"`
	AverageRating float64 `json:"averageRating"`
}

type CategorySales struct {
	Category     string  `json:"category"`
	TotalSales   int     `json:"totalSales"`
	TotalRevenue float64 `json:"totalRevenue"`
}

type DayActivity struct {
	Date      string `json:"date"`
	Logins    int    `json:"logins"`
	Purchases int    `json:"purchases"`
}

// ---- catálogo ----

type ProductRequest struct {
	Name              string  `json:"name" binding:"required"`
	Description       string  `json:"description"`
	Price             float64 `json:"price" binding:"required"`
	Image             string  `json:"image"`
	Category          string  `json:"category" binding:"required"`
	Stock             int     `json:"stock"`
	LowStockThreshold int     `json:"lowStockThreshold"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

type BundleRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Products    []string `json:"products" binding:"required"`
	Discount    float64  `json:"discount"`
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// ---- descuentos ----

type DiscountRequest struct {
	Code       string     `json:"code"`
	Percentage *float64   `json:"percentage"`
	ExpiresAt  *time.Time `json:"expiresAt"`
}

type ValidateDiscountRequest struct {
	Code string `json:"code"`
}

// ---- carrito y wishlist ----

type CartRequest struct {
	UserID string           `json:"userId" binding:"required"`
	Items  []model.CartItem `json:"items"`
}

type WishlistRequest struct {
	UserID    string `json:"userId"`
	ProductID string `json:"productId"`
}

// ---- devoluciones y feedback ----

type CreateReturnRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Reason  string `json:"reason"`
}

type UpdateReturnRequest struct {
	Status string `json:"status" binding:"required"` // Approved o Rejected
}

type FeedbackRequest struct {
	OrderID string `json:"orderId" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type SupportRequestInput struct {
	UserID  string `json:"userId"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ---- notificaciones ----

type UpdateNotificationRequest struct {
	Read bool `json:"read"`
}

// ---- pagos ----

type PaymentIntentRequest struct {
	Amount float64 `json:"amount"`
}

type MobilePaymentRequest struct {
	Amount float64 `json:"amount"`
	Phone  string  `json:"phone"`
	PNR    string  `json:"pnr"`
}
