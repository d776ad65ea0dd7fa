// handler.go
package chat

import (
	"net/http"

	"ethioshop-backend/internal/model"
	"ethioshop-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// el front corre en otro origen; el token ya autentica
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub  *Hub
	auth *service.AuthService
}

func NewHandler(hub *Hub, auth *service.AuthService) *Handler {
	return &Handler{hub: hub, auth: auth}
}

// GET /api/chat/ws/:conversationId?token=... — el token va por query porque
// los browsers no dejan mandar headers en el handshake de WebSocket.
func (h *Handler) Serve(c *gin.Context) {
	claims, err := h.auth.ValidateToken(c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	conversationID := c.Param("conversationId")
	isAdmin := claims.Role == model.RoleAdmin

	// un usuario común sólo puede entrar a su propia conversación
	if !isAdmin && conversationID != claims.UserID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := &Client{
		hub:            h.hub,
		conn:           conn,
		send:           make(chan []byte, 16),
		conversationID: conversationID,
		userID:         claims.UserID,
		isAdmin:        isAdmin,
	}
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}

// GET /api/chat/history/:conversationId — requiere token (dueño o admin)
func (h *Handler) History(c *gin.Context) {
	conversationID := c.Param("conversationId")
	isAdmin := c.GetString("userRole") == model.RoleAdmin
	if !isAdmin && conversationID != c.GetString("userID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized"})
		return
	}

	history, err := h.hub.store.History(c.Request.Context(), conversationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	c.JSON(http.StatusOK, history)
}
