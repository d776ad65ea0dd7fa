package controller

import (
	"net/http"
	"strconv"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/repository"
	"ethioshop-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductController struct {
	Service *service.ProductService
}

func NewProductController(s *service.ProductService) *ProductController {
	return &ProductController{Service: s}
}

// GET /api/products — No requiere token. Filtros por query string.
func (ctl *ProductController) GetProducts(c *gin.Context) {
	filter := repository.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil {
		filter.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil {
		filter.MaxPrice = &v
	}
	if v, err := strconv.Atoi(c.Query("minStock")); err == nil {
		filter.MinStock = &v
	}
	if v, err := strconv.Atoi(c.Query("maxStock")); err == nil {
		filter.MaxStock = &v
	}

	products, err := ctl.Service.List(c.Request.Context(), filter, c.Query("sortBy"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /api/products/:id — No requiere token
func (ctl *ProductController) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := ctl.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// GET /api/products/:id/related — No requiere token
func (ctl *ProductController) GetRelated(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	related, err := ctl.Service.Related(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, related)
}

// GET /api/products/recommendations — requiere token
func (ctl *ProductController) GetRecommendations(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recs, err := ctl.Service.Recommendations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

// POST /api/products — admin only
func (ctl *ProductController) CreateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := ctl.Service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// PUT /api/products/:id — admin only
func (ctl *ProductController) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := ctl.Service.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /api/products/:id — admin only
func (ctl *ProductController) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

// POST /api/products/:id/reviews — requiere token
func (ctl *ProductController) AddReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	review, err := ctl.Service.AddReview(c.Request.Context(), productID, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review submitted for approval", "review": review})
}

// PUT /api/products/:id/reviews/:reviewId/approve — admin only
func (ctl *ProductController) ApproveReview(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "reviewId")
	if !ok {
		return
	}
	review, err := ctl.Service.ApproveReview(c.Request.Context(), productID, reviewID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

// GET /api/products/analytics/reviews — admin only
func (ctl *ProductController) ReviewAnalytics(c *gin.Context) {
	stats, err := ctl.Service.ReviewAnalytics(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GET /api/products/analytics/category-sales — admin only
func (ctl *ProductController) CategorySales(c *gin.Context) {
	sales, err := ctl.Service.SalesByCategory(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}
