package service

import (
	"errors"
	"fmt"
)

// Errores de negocio exportados (los usan los controllers para decidir el
// código HTTP). El texto es el mensaje que ve el cliente.
var (
	ErrMissingFields       = errors.New("Missing required fields")
	ErrNoValidItems        = errors.New("No valid items in order")
	ErrPaymentNotCompleted = errors.New("Payment not completed")
	ErrOrderNotFound       = errors.New("Order not found")
	ErrProductNotFound     = errors.New("Product not found")
	ErrBundleNotFound      = errors.New("Bundle not found")
	ErrUserNotFound        = errors.New("User not found")
	ErrCategoryNotFound    = errors.New("Category not found")
	ErrDiscountNotFound    = errors.New("Discount not found")
	ErrReviewNotFound      = errors.New("Review not found")
	ErrNotAuthorized       = errors.New("Not authorized")
	ErrNotCancelable       = errors.New("Only pending orders can be canceled")
	ErrInvalidStatus       = errors.New("Invalid order status")
	ErrUserExists          = errors.New("User already exists")
	ErrInvalidCredentials  = errors.New("Invalid credentials")
	ErrNoReferralDiscount  = errors.New("No referral discount available")
	ErrDiscountExists      = errors.New("Discount code already exists")
	ErrInvalidDiscount     = errors.New("Invalid or inactive discount code")
	ErrDiscountExpired     = errors.New("Discount code expired")
	ErrInvalidPercentage   = errors.New("Percentage must be 0-100")
	ErrBundleProductsMiss  = errors.New("One or more products not found")
	ErrWishlistDuplicate   = errors.New("Item already exists in the wishlist")
	ErrWishlistNotFound    = errors.New("Item not found in the wishlist")
	ErrReturnNotAllowed    = errors.New("Only delivered orders can be returned")
	ErrReturnDuplicate     = errors.New("Return request already submitted for this order")
	ErrReturnNotFound      = errors.New("Return request not found")
	ErrFeedbackDuplicate   = errors.New("Feedback already submitted for this order")
)

// TotalMismatchError reporta ambos totales cuando el del cliente no coincide
// con el recalculado por el servidor.
type TotalMismatchError struct {
	ClientTotal float64
	ServerTotal float64
}

func (e *TotalMismatchError) Error() string {
	return fmt.Sprintf("Total mismatch between client and server calculation (client %.2f, server %.2f)",
		e.ClientTotal, e.ServerTotal)
}
