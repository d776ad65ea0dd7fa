package controller

import (
	"net/http"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type DiscountController struct {
	Service *service.DiscountService
}

func NewDiscountController(s *service.DiscountService) *DiscountController {
	return &DiscountController{Service: s}
}

// GET /api/discounts — admin only
func (ctl *DiscountController) GetDiscounts(c *gin.Context) {
	discounts, err := ctl.Service.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, discounts)
}

// POST /api/discounts — admin only
func (ctl *DiscountController) CreateDiscount(c *gin.Context) {
	var req dto.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := ctl.Service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, d)
}

// PUT /api/discounts/:id — admin only
func (ctl *DiscountController) UpdateDiscount(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.DiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := ctl.Service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// DELETE /api/discounts/:id — admin only
func (ctl *DiscountController) DeleteDiscount(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Discount deleted"})
}

// POST /api/discounts/validate — requiere token
func (ctl *DiscountController) ValidateDiscount(c *gin.Context) {
	var req dto.ValidateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := ctl.Service.Validate(c.Request.Context(), req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":      true,
		"code":       d.Code,
		"percentage": d.Percentage,
	})
}
