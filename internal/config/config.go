package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultJWTSecret используется только когда JWT_SECRET не задан.
// В деплое это ошибка конфигурации, сервер пишет об этом warning при старте.
const DefaultJWTSecret = "dev_secret"

// Config собирается один раз при старте и передаётся по ссылке,
// хендлеры не читают окружение напрямую.
type Config struct {
	Port              string
	MongoURI          string
	MongoDBName       string
	JWTSecret         string
	InstitutionDomain string
	TokenTTL          time.Duration
	UploadDir         string
}

func Load() *Config {
	if err := godotenv.Load(".env.local"); err != nil {
		_ = godotenv.Load()
	}

	cfg := &Config{
		Port:              getEnv("PORT", "5001"),
		MongoURI:          getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:       getEnv("MONGO_DB", "studnet"),
		JWTSecret:         getEnv("JWT_SECRET", DefaultJWTSecret),
		InstitutionDomain: getEnv("INSTITUTION_DOMAIN", "@stud.rau.ro"),
		TokenTTL:          7 * 24 * time.Hour,
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
	}

	if days, err := strconv.Atoi(os.Getenv("TOKEN_TTL_DAYS")); err == nil && days > 0 {
		cfg.TokenTTL = time.Duration(days) * 24 * time.Hour
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
