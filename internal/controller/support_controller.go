// Feedback de órdenes y pedidos de soporte.
package controller

import (
	"net/http"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedbackController struct {
	Service *service.FeedbackService
}

func NewFeedbackController(s *service.FeedbackService) *FeedbackController {
	return &FeedbackController{Service: s}
}

// POST /api/feedback — requiere token
func (ctl *FeedbackController) SubmitFeedback(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := ctl.Service.Submit(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// GET /api/feedback/order/:orderId — requiere token. Sin feedback todavía
// responde un objeto vacío, no 404.
func (ctl *FeedbackController) GetOrderFeedback(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	f, err := ctl.Service.GetForOrder(c.Request.Context(), userID, c.Param("orderId"))
	if err != nil {
		respondError(c, err)
		return
	}
	if f == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, f)
}

type SupportController struct {
	Service *service.SupportService
}

func NewSupportController(s *service.SupportService) *SupportController {
	return &SupportController{Service: s}
}

// POST /api/support — requiere token
func (ctl *SupportController) SubmitRequest(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.SupportRequestInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sr, err := ctl.Service.Submit(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sr)
}

// GET /api/support/my-requests — requiere token
func (ctl *SupportController) GetMyRequests(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	requests, err := ctl.Service.History(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, requests)
}
