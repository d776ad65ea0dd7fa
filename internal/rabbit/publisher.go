// publisher.go
package rabbit

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ethioshop-backend/internal/model"

	"github.com/rabbitmq/amqp091-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderPlacedPublisher anuncia cada orden nueva por el exchange fanout
// order_placed. Los micros de logística y facturación escuchan ahí.
type OrderPlacedPublisher struct {
	ch *amqp091.Channel
}

func NewOrderPlacedPublisher(ch *amqp091.Channel) (*OrderPlacedPublisher, error) {
	err := ch.ExchangeDeclare(
		"order_placed",
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, err
	}
	return &OrderPlacedPublisher{ch: ch}, nil
}

type orderPlacedMessage struct {
	CorrelationID string `json:"correlation_id"`
	Exchange      string `json:"exchange"`
	RoutingKey    string `json:"routing_key"`
	Message       struct {
		OrderID  string `json:"orderId"`
		UserID   string `json:"userId"`
		Articles []struct {
			ArticleID string `json:"articleId"`
			Quantity  int    `json:"quantity"`
		} `json:"articles"`
	} `json:"message"`
}

// OrderPlaced es fire-and-forget: el checkout no espera ni falla por Rabbit.
func (p *OrderPlacedPublisher) OrderPlaced(o *model.Order) {
	var event orderPlacedMessage
	event.CorrelationID = primitive.NewObjectID().Hex()
	event.Exchange = "order_placed"
	event.Message.OrderID = o.ID.Hex()
	event.Message.UserID = o.UserID.Hex()
	for _, item := range o.Items {
		event.Message.Articles = append(event.Message.Articles, struct {
			ArticleID string `json:"articleId"`
			Quantity  int    `json:"quantity"`
		}{ArticleID: item.ProductID.Hex(), Quantity: item.Quantity})
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Println("❌ Error serializando evento order_placed:", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.ch.PublishWithContext(ctx,
		"order_placed",
		"", // fanout ignora routing key
		false,
		false,
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		log.Println("❌ Error publicando order_placed:", err)
		return
	}
	log.Println("🐰 Evento order_placed publicado para orden:", o.ID.Hex())
}
