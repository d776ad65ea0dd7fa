package controller

import (
	"net/http"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/payment"

	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	Stripe *payment.StripeGateway
	Mobile *payment.MobileGateway
}

func NewPaymentController(stripe *payment.StripeGateway, mobile *payment.MobileGateway) *PaymentController {
	return &PaymentController{Stripe: stripe, Mobile: mobile}
}

// POST /api/payments/create-intent — requiere token
func (ctl *PaymentController) CreateIntent(c *gin.Context) {
	var req dto.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be greater than zero"})
		return
	}

	clientSecret, err := ctl.Stripe.CreateIntent(c.Request.Context(), req.Amount)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payment processing failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}

// POST /api/payments/telebirr — requiere token
func (ctl *PaymentController) PayWithTelebirr(c *gin.Context) {
	ctl.mobileCharge(c, "telebirr")
}

// POST /api/payments/mpesa — requiere token
func (ctl *PaymentController) PayWithMpesa(c *gin.Context) {
	ctl.mobileCharge(c, "mpesa")
}

func (ctl *PaymentController) mobileCharge(c *gin.Context, provider string) {
	var req dto.MobilePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Amount <= 0 || req.Phone == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount and phone are required"})
		return
	}

	receipt := ctl.Mobile.Charge(provider, req.Amount, req.Phone, req.PNR)
	c.JSON(http.StatusOK, receipt)
}
