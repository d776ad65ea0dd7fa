// hub.go
package chat

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ethioshop-backend/internal/model"
	"ethioshop-backend/internal/service"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hub rutea mensajes entre los clientes de cada conversación. Una
// conversación junta al usuario que abre el chat con los admins conectados.
type Hub struct {
	store      Store
	activities service.ActivityRepository

	register   chan *Client
	unregister chan *Client
	inbound    chan inboundMessage

	// conversaciones -> clientes conectados. Sólo lo toca el loop de Run.
	conversations map[string]map[*Client]bool
}

type inboundMessage struct {
	client *Client
	text   string
}

func NewHub(store Store, activities service.ActivityRepository) *Hub {
	return &Hub{
		store:         store,
		activities:    activities,
		register:      make(chan *Client),
		unregister:    make(chan *Client),
		inbound:       make(chan inboundMessage),
		conversations: map[string]map[*Client]bool{},
	}
}

// Run es el loop central del hub. Se lanza una sola vez en el arranque.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			clients, ok := h.conversations[c.conversationID]
			if !ok {
				clients = map[*Client]bool{}
				h.conversations[c.conversationID] = clients
			}
			clients[c] = true

		case c := <-h.unregister:
			if clients, ok := h.conversations[c.conversationID]; ok {
				if clients[c] {
					delete(clients, c)
					close(c.send)
					if len(clients) == 0 {
						delete(h.conversations, c.conversationID)
					}
				}
			}

		case in := <-h.inbound:
			h.handleMessage(in)
		}
	}
}

func (h *Hub) handleMessage(in inboundMessage) {
	msg := &model.ChatMessage{
		ConversationID: in.client.conversationID,
		UserID:         in.client.userID,
		Message:        in.text,
		IsAdmin:        in.client.isAdmin,
		Timestamp:      time.Now().UTC(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.store.Append(ctx, msg); err != nil {
		log.Println("❌ Error guardando mensaje de chat:", err)
		return
	}

	// el chat también queda en el feed de actividades del usuario
	if uid, err := primitive.ObjectIDFromHex(in.client.userID); err == nil {
		err := h.activities.Insert(ctx, &model.Activity{
			UserID:    uid,
			Action:    "Chat Message",
			Details:   in.text,
			Timestamp: msg.Timestamp,
		})
		if err != nil {
			log.Println("actividad de chat no registrada:", err)
		}
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Println("❌ Error serializando mensaje de chat:", err)
		return
	}
	for c := range h.conversations[in.client.conversationID] {
		select {
		case c.send <- payload:
		default:
			// cliente lento: se lo desconecta para no frenar al resto
			delete(h.conversations[in.client.conversationID], c)
			close(c.send)
		}
	}
}
