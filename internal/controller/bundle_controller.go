package controller

import (
	"net/http"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type BundleController struct {
	Service *service.BundleService
}

func NewBundleController(s *service.BundleService) *BundleController {
	return &BundleController{Service: s}
}

// GET /api/bundles — No requiere token
func (ctl *BundleController) GetBundles(c *gin.Context) {
	bundles, err := ctl.Service.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bundles)
}

// GET /api/bundles/:id — No requiere token
func (ctl *BundleController) GetBundle(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	b, err := ctl.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// POST /api/bundles — admin only
func (ctl *BundleController) CreateBundle(c *gin.Context) {
	var req dto.BundleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := ctl.Service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// PUT /api/bundles/:id — admin only
func (ctl *BundleController) UpdateBundle(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.BundleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := ctl.Service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DELETE /api/bundles/:id — admin only
func (ctl *BundleController) DeleteBundle(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bundle deleted"})
}
