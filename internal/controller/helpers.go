// helpers.go
package controller

import (
	"errors"
	"net/http"

	"ethioshop-backend/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID saca el id que dejó el middleware en el contexto.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// pathID parsea un ObjectID de la ruta; responde 400 si no es válido.
func pathID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondError mapea los errores de negocio a códigos HTTP. Cualquier error
// no reconocido es un 500 genérico.
func respondError(c *gin.Context, err error) {
	var mismatch *service.TotalMismatchError
	if errors.As(err, &mismatch) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":       "Total mismatch between client and server calculation",
			"clientTotal": mismatch.ClientTotal,
			"serverTotal": mismatch.ServerTotal,
		})
		return
	}

	switch err {
	case service.ErrInvalidCredentials:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case service.ErrNotAuthorized:
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case service.ErrOrderNotFound, service.ErrProductNotFound, service.ErrBundleNotFound,
		service.ErrUserNotFound, service.ErrCategoryNotFound, service.ErrDiscountNotFound,
		service.ErrReviewNotFound, service.ErrWishlistNotFound, service.ErrReturnNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case service.ErrMissingFields, service.ErrNoValidItems, service.ErrPaymentNotCompleted,
		service.ErrNotCancelable, service.ErrInvalidStatus, service.ErrUserExists,
		service.ErrNoReferralDiscount, service.ErrDiscountExists, service.ErrInvalidDiscount,
		service.ErrDiscountExpired, service.ErrInvalidPercentage, service.ErrBundleProductsMiss,
		service.ErrWishlistDuplicate, service.ErrReturnNotAllowed, service.ErrReturnDuplicate,
		service.ErrFeedbackDuplicate:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}
