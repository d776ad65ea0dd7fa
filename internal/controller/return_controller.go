package controller

import (
	"net/http"

	"ethioshop-backend/internal/dto"
	"ethioshop-backend/internal/service"

	"github.com/gin-gonic/gin"
)

type ReturnController struct {
	Service *service.ReturnService
}

func NewReturnController(s *service.ReturnService) *ReturnController {
	return &ReturnController{Service: s}
}

// POST /api/returns — requiere token
func (ctl *ReturnController) CreateReturn(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rr, err := ctl.Service.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rr)
}

// GET /api/returns/my-returns — requiere token
func (ctl *ReturnController) GetMyReturns(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	returns, err := ctl.Service.GetByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, returns)
}

// GET /api/returns — admin only
func (ctl *ReturnController) GetAllReturns(c *gin.Context) {
	returns, err := ctl.Service.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, returns)
}

// PUT /api/returns/:id — admin only (Approved o Rejected)
func (ctl *ReturnController) ResolveReturn(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rr, err := ctl.Service.Resolve(c.Request.Context(), id, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rr)
}
