package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	APIBaseURL  string
	AuthToken   string
	HTTPTimeout time.Duration
	AlertTTL    time.Duration
	StubAddr    string
	ServiceName string
}

func Load() Config {
	return Config{
		APIBaseURL:  getenv("API_BASE_URL", "https://ecommerce-backend-green-iota.vercel.app"),
		AuthToken:   getenv("AUTH_TOKEN", ""),
		HTTPTimeout: getdur("HTTP_TIMEOUT", 15*time.Second),
		AlertTTL:    getdur("ALERT_TTL", 3*time.Second),
		StubAddr:    getenv("STUB_ADDR", ":8090"),
		ServiceName: getenv("SERVICE_NAME", "vendas-core"),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if s, err := strconv.Atoi(v); err == nil {
		return time.Duration(s) * time.Second
	}
	return def
}
