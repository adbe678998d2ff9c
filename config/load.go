package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Load() App {
	_ = godotenv.Load()

	cfg := App{
		Port:           getenv("APP_PORT", "8080"),
		DatabaseURL:    must("DATABASE_URL"),
		JWTSecret:      getenv("JWT_SECRET", "local_dev_secret"),
		Env:            getenv("APP_ENV", "dev"),
		PageLimit:      getint("PAGE_LIMIT", 10),
		Replicated:     getenv("REPLICATED", "0") == "1",
		MailAPIKey:     os.Getenv("MAIL_API_KEY"),
		MailDomain:     getenv("MAIL_DOMAIN", "mg.ecobnb.app"),
		MailFrom:       getenv("MAIL_FROM", "no-reply@ecobnb.app"),
		VerifyURL:      getenv("VERIFY_URL", "https://ecobnb.app/verify"),
		DefaultEmail:   getenv("DEFAULT_EMAIL", "admin@ecobnb.app"),
		RemindInterval: getint("REMIND_INTERVAL_MIN", 60),
	}
	return cfg
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("bad numeric env, using default", "key", k, "value", v)
		return def
	}
	return n
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		slog.Error("required env missing", "key", k)
		panic("missing env " + k)
	}
	return v
}
