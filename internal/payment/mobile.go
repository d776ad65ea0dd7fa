// mobile.go
package payment

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MobileReceipt es la respuesta de las billeteras locales (Telebirr y
// M-Pesa). Por ahora los proveedores no exponen API sandbox, así que la
// integración simula la transacción y devuelve la referencia.
type MobileReceipt struct {
	Provider    string    `json:"provider"`
	Reference   string    `json:"reference"`
	Amount      float64   `json:"amount"`
	Phone       string    `json:"phone"`
	PNR         string    `json:"pnr,omitempty"`
	ProcessedAt time.Time `json:"processedAt"`
}

type MobileGateway struct{}

func NewMobileGateway() *MobileGateway {
	return &MobileGateway{}
}

func (g *MobileGateway) Charge(provider string, amount float64, phone, pnr string) *MobileReceipt {
	return &MobileReceipt{
		Provider:    provider,
		Reference:   fmt.Sprintf("%s-%s", provider, primitive.NewObjectID().Hex()),
		Amount:      amount,
		Phone:       phone,
		PNR:         pnr,
		ProcessedAt: time.Now().UTC(),
	}
}
