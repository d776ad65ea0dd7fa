package model

import (
	"math/rand"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	GoogleID         string               `bson:"google_id,omitempty" json:"googleId,omitempty"`
	Name             string               `bson:"name" json:"name"`
	Email            string               `bson:"email" json:"email"`
	Password         string               `bson:"password" json:"-"`
	Role             string               `bson:"role" json:"role"`
	ReferralCode     string               `bson:"referral_code" json:"referralCode"`
	ReferredUsers    []primitive.ObjectID `bson:"referred_users" json:"referredUsers"`
	ReferralDiscount float64              `bson:"referral_discount" json:"referralDiscount"`
	CreatedAt        time.Time            `bson:"created_at" json:"createdAt"`
}

const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateReferralCode arma el código único de referidos: prefijo del nombre
// más un sufijo aleatorio. Ej: "ABE3K9X2QD".
func GenerateReferralCode(name string) string {
	prefix := strings.ToUpper(name)
	if len(prefix) > 3 {
		prefix = prefix[:3]
	}
	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return prefix + string(suffix)
}

// NewUser construye un usuario válido. El código de referido se genera acá,
// de forma explícita, y no como hook de persistencia.
func NewUser(name, email, hashedPassword string) *User {
	return &User{
		Name:          name,
		Email:         email,
		Password:      hashedPassword,
		Role:          RoleUser,
		ReferralCode:  GenerateReferralCode(name),
		ReferredUsers: []primitive.ObjectID{},
		CreatedAt:     time.Now().UTC(),
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
