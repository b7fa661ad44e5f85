package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the env file named by START (".env-local" for a local
// setup, ".env.docker" inside the container) and verifies everything
// the server needs before anything connects.
func Load() {
	if envFile := os.Getenv("START"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Fatalf("Env file %s not found", envFile)
		}
	} else {
		// optional fallback for bare `go run`
		_ = godotenv.Load()
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatalf("JWT_SECRET is not set in environment")
	}
	if os.Getenv("MONGO_URI") == "" {
		log.Fatalf("MONGO_URI is not set in environment")
	}
	if os.Getenv("MONGO_DB_NAME") == "" {
		log.Fatalf("MONGO_DB_NAME is not set in environment")
	}
	if CredStore() == "mysql" && os.Getenv("MYSQL_DSN") == "" {
		log.Fatalf("MYSQL_DSN is not set in environment")
	}
}

// CredStore selects the credential-store backend: "mongo" (default)
// or "mysql".
func CredStore() string {
	if store := os.Getenv("CRED_STORE"); store != "" {
		return store
	}
	return "mongo"
}

// SessionLifetime parses SESSION_TTL as a Go duration. Zero means
// "use the default" of 30 days.
func SessionLifetime() time.Duration {
	raw := os.Getenv("SESSION_TTL")
	if raw == "" {
		return 0
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil || ttl <= 0 {
		log.Fatalf("SESSION_TTL is not a valid duration: %q", raw)
	}
	return ttl
}
