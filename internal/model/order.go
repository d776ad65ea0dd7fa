package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Estados posibles de una orden.
const (
	OrderPending   = "Pending"
	OrderShipped   = "Shipped"
	OrderDelivered = "Delivered"
	OrderCanceled  = "Canceled"
	OrderReturned  = "Returned"
)

type Address struct {
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state" json:"state"`
	PostalCode string `bson:"postal_code" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
}

func (a Address) Empty() bool {
	return a == Address{}
}

type PaymentMethod struct {
	Type  string `bson:"type" json:"type"` // card, telebirr o mpesa
	Last4 string `bson:"last4,omitempty" json:"last4,omitempty"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// OrderItem guarda sólo la referencia al producto: el precio NO se congela
// en la orden, se relee del catálogo al mostrarla.
type OrderItem struct {
	ProductID primitive.ObjectID  `bson:"product_id" json:"productId"`
	Quantity  int                 `bson:"quantity" json:"quantity"`
	BundleID  *primitive.ObjectID `bson:"bundle_id" json:"bundleId"`
}

type StatusEntry struct {
	Status    string    `bson:"status" json:"status"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}

type TrackingEvent struct {
	Status    string    `bson:"status" json:"status"`
	Location  string    `bson:"location" json:"location"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user_id" json:"userId"`
	Items           []OrderItem        `bson:"items" json:"items"`
	Total           float64            `bson:"total" json:"total"`
	Status          string             `bson:"status" json:"status"`
	StatusHistory   []StatusEntry      `bson:"status_history" json:"statusHistory"`
	ShippingAddress Address            `bson:"shipping_address" json:"shippingAddress"`
	BillingAddress  Address            `bson:"billing_address" json:"billingAddress"`
	PaymentMethod   PaymentMethod      `bson:"payment_method" json:"paymentMethod"`
	TrackingEvents  []TrackingEvent    `bson:"tracking_events" json:"trackingEvents"`
	ReferralCode    string             `bson:"referral_code,omitempty" json:"referralCode,omitempty"`
	PNR             string             `bson:"pnr,omitempty" json:"pnr,omitempty"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}

// Estados de una solicitud de devolución.
const (
	ReturnPending  = "Pending"
	ReturnApproved = "Approved"
	ReturnRejected = "Rejected"
)

type ReturnRequest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OrderID   primitive.ObjectID `bson:"order_id" json:"orderId"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Reason    string             `bson:"reason" json:"reason"`
	Status    string             `bson:"status" json:"status"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updatedAt"`
}
