package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	AuthHMACSecret string
	// SeedUsers is "username:role:bcrypt-hash" triples; the local login
	// endpoint authenticates against these. Real identity providers replace
	// this in production deployments.
	SeedUsers []SeedUser

	CORSOrigins []string

	// Optional broker for attempt events; empty disables publishing.
	AMQPURL      string
	AMQPExchange string

	// Grading knobs.
	PartialMultiCredit bool

	// AssetDir is the filesystem root for exam attachments.
	AssetDir string
}

type SeedUser struct {
	Username string
	Role     string
	PassHash string // bcrypt
}

// FromEnv loads a local .env when present, then reads settings from the
// environment.
func FromEnv() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:           envOr("HTTP_ADDR", ":8080"),
		DBDriver:           envOr("DB_DRIVER", "sqlite"),
		DBDSN:              envOr("DB_DSN", ""),
		AuthHMACSecret:     envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		SeedUsers:          parseUsers(os.Getenv("SEED_USERS")),
		CORSOrigins:        csvOr("CORS_ORIGINS", "http://localhost:3000"),
		AMQPURL:            os.Getenv("AMQP_URL"),
		AMQPExchange:       envOr("AMQP_EXCHANGE", "examforge.events"),
		PartialMultiCredit: envBool("GRADING_PARTIAL_MULTI", false),
		AssetDir:           envOr("ASSET_DIR", "./data/assets"),
	}
}

func parseUsers(v string) []SeedUser {
	if v == "" {
		return nil
	}
	var out []SeedUser
	for _, entry := range strings.Split(v, ",") {
		parts := strings.SplitN(strings.TrimSpace(entry), ":", 3)
		if len(parts) != 3 {
			continue
		}
		out = append(out, SeedUser{Username: parts[0], Role: parts[1], PassHash: parts[2]})
	}
	return out
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
