// Carrito, wishlist, notificaciones y actividades.
package controller

import (
	"net/http"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/model"
	"ethioshop-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- carrito ----

type CartController struct {
	Service *service.CartService
}

func NewCartController(s *service.CartService) *CartController {
	return &CartController{Service: s}
}

// POST /api/cart — requiere token. Pisa el carrito completo del usuario.
func (ctl *CartController) SaveCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req struct {
		Items []model.CartItem `json:"items"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart, err := ctl.Service.Save(c.Request.Context(), userID, req.Items)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// GET /api/cart — requiere token
func (ctl *CartController) GetCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	cart, err := ctl.Service.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

// ---- wishlist ----

type WishlistController struct {
	Service *service.WishlistService
}

func NewWishlistController(s *service.WishlistService) *WishlistController {
	return &WishlistController{Service: s}
}

// POST /api/wishlist — requiere token
func (ctl *WishlistController) AddItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.WishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := ctl.Service.Add(c.Request.Context(), userID, req.ProductID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GET /api/wishlist — requiere token
func (ctl *WishlistController) GetWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	entries, err := ctl.Service.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// DELETE /api/wishlist/:productId — requiere token
func (ctl *WishlistController) RemoveItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := ctl.Service.Remove(c.Request.Context(), userID, c.Param("productId")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from wishlist"})
}

// ---- notificaciones ----

type NotificationController struct {
	Service *service.NotificationService
}

func NewNotificationController(s *service.NotificationService) *NotificationController {
	return &NotificationController{Service: s}
}

// GET /api/notifications — requiere token. Sólo las no leídas.
func (ctl *NotificationController) GetNotifications(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	notifications, err := ctl.Service.Unread(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// PUT /api/notifications/:id — requiere token
func (ctl *NotificationController) UpdateNotification(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	n, err := ctl.Service.MarkRead(c.Request.Context(), id, userID, req.Read)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// ---- actividades ----

type ActivityController struct {
	Service *service.ActivityService
}

func NewActivityController(s *service.ActivityService) *ActivityController {
	return &ActivityController{Service: s}
}

// GET /api/activities — admin only
func (ctl *ActivityController) GetActivities(c *gin.Context) {
	activities, err := ctl.Service.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

// GET /api/activities/my-activity — requiere token
func (ctl *ActivityController) GetMyActivity(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	activities, err := ctl.Service.Recent(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

// GET /api/activities/trends — admin only
func (ctl *ActivityController) GetTrends(c *gin.Context) {
	trends, err := ctl.Service.Trends(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, trends)
}

// GET /api/activities/heatmap — admin only
func (ctl *ActivityController) GetHeatmap(c *gin.Context) {
	heatmap, err := ctl.Service.Heatmap(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, heatmap)
}
