package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review vive embebida dentro del producto. "pending" marca que todavía
// no pasó moderación.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Rating    int                `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	Pending   bool               `bson:"pending" json:"pending"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

type Product struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	Description       string             `bson:"description" json:"description"`
	Price             float64            `bson:"price" json:"price"`
	Image             string             `bson:"image" json:"image"`
	Category          string             `bson:"category" json:"category"`
	Stock             int                `bson:"stock" json:"stock"`
	LowStockThreshold int                `bson:"low_stock_threshold" json:"lowStockThreshold"`
	Reviews           []Review           `bson:"reviews" json:"reviews"`
}

// RatingStats resume las reseñas aprobadas de un producto.
type RatingStats struct {
	TotalReviews       int     `json:"totalReviews"`
	AverageRating      float64 `json:"averageRating"`
	RatingDistribution [5]int  `json:"ratingDistribution"`
}

// Stats ignora las reseñas pendientes de moderación.
func (p *Product) Stats() RatingStats {
	var s RatingStats
	sum := 0
	for _, r := range p.Reviews {
		if r.Pending {
			continue
		}
		s.TotalReviews++
		sum += r.Rating
		if r.Rating >= 1 && r.Rating <= 5 {
			s.RatingDistribution[r.Rating-1]++
		}
	}
	if s.TotalReviews > 0 {
		s.AverageRating = float64(sum) / float64(s.TotalReviews)
	}
	return s
}

type Category struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
}
