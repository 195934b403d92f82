package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// Backends de stockage de session acceptés par STORE_BACKEND
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendScylla = "scylla"
)

type Config struct {
	Port          string
	APIBaseURL    string
	FrontendURL   string
	SessionSecret string
	Env           string

	StoreBackend string
	StoreDir     string

	RedisHost     string
	RedisPassword string

	ScyllaHosts    []string
	ScyllaKeyspace string
	ScyllaUsername string
	ScyllaPassword string
	ScyllaSSL      bool
	ScyllaCAPath   string

	// mock de l'API amont
	MockAPIPort string
	JWTSecret   string
}

// FromEnv lit la configuration après Load, avec des valeurs par défaut de développement
func FromEnv() Config {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		APIBaseURL:     strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:5000"), "/"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		Env:            getEnv("APP_ENV", "development"),
		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", BackendMemory)),
		StoreDir:       getEnv("STORE_DIR", "data/sessions"),
		RedisHost:      os.Getenv("REDIS_HOST"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		ScyllaKeyspace: getEnv("SCYLLA_KEYSPACE", "storefront"),
		ScyllaUsername: os.Getenv("SCYLLA_USERNAME"),
		ScyllaPassword: os.Getenv("SCYLLA_PASSWORD"),
		ScyllaSSL:      strings.ToLower(os.Getenv("SCYLLA_SSL_ENABLED")) == "true",
		ScyllaCAPath:   os.Getenv("SCYLLA_SSL_CA_PATH"),
		MockAPIPort:    getEnv("MOCKAPI_PORT", "5000"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
	}

	for _, h := range strings.Split(os.Getenv("SCYLLA_HOSTS"), ",") {
		if h = strings.TrimSpace(h); h != "" {
			cfg.ScyllaHosts = append(cfg.ScyllaHosts, h)
		}
	}
	return cfg
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
