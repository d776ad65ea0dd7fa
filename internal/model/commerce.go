package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Bundle agrupa productos con un descuento porcentual. El precio guardado es
// el total precalculado al crearlo; al facturar se aplica el descuento sobre
// el precio vivo de cada producto, no sobre este campo.
type Bundle struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name        string               `bson:"name" json:"name"`
	Description string               `bson:"description" json:"description"`
	Products    []primitive.ObjectID `bson:"products" json:"products"`
	Discount    float64              `bson:"discount" json:"discount"` // porcentaje 0-100
	Price       float64              `bson:"price" json:"price"`
	CreatedAt   time.Time            `bson:"created_at" json:"createdAt"`
}

type Discount struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Code       string             `bson:"code" json:"code"`
	Percentage float64            `bson:"percentage" json:"percentage"`
	Active     bool               `bson:"active" json:"active"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
	ExpiresAt  *time.Time         `bson:"expires_at" json:"expiresAt"`
}

// Estados de un referido. Pasa a Completed una única vez, cuando el referido
// hace su primera orden.
const (
	ReferralPending   = "Pending"
	ReferralCompleted = "Completed"
)

type Referral struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReferrerID   primitive.ObjectID `bson:"referrer_id" json:"referrerId"`
	RefereeID    primitive.ObjectID `bson:"referee_id" json:"refereeId"`
	ReferralCode string             `bson:"referral_code" json:"referralCode"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}
