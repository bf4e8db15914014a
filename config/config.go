package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries every environment-derived setting. It is built once in main
// and handed to the components that need it; nothing reads the environment
// after startup.
type Config struct {
	Addr         string // listen address, e.g. ":5000"
	MongoURI     string
	MongoDB      string
	RedisAddr    string
	JWTSecret    []byte
	StripeSecret string
	UploadDir    string
}

// Load reads .env (if present) and assembles the Config.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	cfg := Config{
		Addr:         getenv("PORT", ":5000"),
		MongoURI:     getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:      getenv("MONGO_DB", "doctor_portal"),
		RedisAddr:    getenv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:    []byte(os.Getenv("ACCESS_TOKEN_SECRET")),
		StripeSecret: os.Getenv("STRIPE_SECRET_KEY"),
		UploadDir:    getenv("UPLOAD_DIR", "./static"),
	}
	if cfg.Addr[0] != ':' {
		cfg.Addr = ":" + cfg.Addr
	}
	if len(cfg.JWTSecret) == 0 {
		return Config{}, fmt.Errorf("ACCESS_TOKEN_SECRET is not set")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
