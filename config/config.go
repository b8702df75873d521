package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything loaded from the environment at startup.
type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	JWTSecret   []byte
	SendGridKey string
	EmailSender string
	LogLevel    string
}

func must(v, name string) string {
	if v == "" {
		log.Fatalf("missing required env %s", name)
	}
	return v
}

// Load reads .env (if present) and the process environment.
// It fails fast on missing secrets; optional values get defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	cfg := &Config{
		Port:        os.Getenv("PORT"),
		MongoURI:    must(os.Getenv("MONGO_URI"), "MONGO_URI"),
		DBName:      os.Getenv("DB_NAME"),
		JWTSecret:   []byte(must(os.Getenv("JWT_SECRET"), "JWT_SECRET")),
		SendGridKey: os.Getenv("SENDGRID_API_KEY"),
		EmailSender: os.Getenv("EMAIL_SENDER"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
	}

	if cfg.Port == "" {
		cfg.Port = "8000"
	}
	if cfg.DBName == "" {
		cfg.DBName = "ecommerce"
	}

	return cfg
}
