// config.go
package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI    string
	MongoDBName string
	Port        string
	JWTSecret   string
	RabbitURL   string

	// SMTP para los correos de confirmación de orden
	SMTPHost string
	SMTPPort string
	SMTPUser string
	SMTPPass string

	// Pasarela de pago
	StripeKey string
}

func Load() *Config {
	// .env es opcional; en producción las variables vienen del entorno
	_ = godotenv.Load()

	return &Config{
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName: getEnv("MONGO_DB_NAME", "ethioshop"),
		Port:        getEnv("PORT", "5000"),
		JWTSecret:   getEnv("JWT_SECRET", "your_jwt_secret"),
		RabbitURL:   getEnv("RABBIT_URL", "amqp://localhost"),
		SMTPHost:    getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:    getEnv("SMTP_PORT", "587"),
		SMTPUser:    getEnv("EMAIL_USER", ""),
		SMTPPass:    getEnv("EMAIL_PASS", ""),
		StripeKey:   getEnv("STRIPE_SECRET_KEY", ""),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
