package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port            string
	SessionStore    string // redis, postgres or memory
	RedisURL        string
	DatabaseURL     string
	SessionTTL      time.Duration
	AllowedOrigins  []string
	PaymentPageURL  string
	Providers       []string
	ProviderURLs    map[string]string
	ProviderTimeout time.Duration
	NATSURL         string
	KafkaBrokers    string
	JaegerEndpoint  string
}

var defaultProviders = []string{
	"Provider_1", "Provider_2", "Provider_3", "Provider_4", "Provider_5",
	"Provider_6", "Provider_7", "Provider_8", "Provider_9", "Provider_10",
}

func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	store := os.Getenv("SESSION_STORE")
	if store == "" {
		store = "redis"
	}

	ttl := 900 * time.Second
	if v := os.Getenv("SESSION_TTL_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}

	providerTimeout := 2 * time.Second
	if v := os.Getenv("PROVIDER_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			providerTimeout = time.Duration(ms) * time.Millisecond
		}
	}

	providers := defaultProviders
	if v := os.Getenv("PROVIDERS"); v != "" {
		providers = splitList(v)
	}

	// PROVIDER_URLS maps provider names to HTTP endpoints, e.g.
	// "Provider_1=http://p1:9001,Provider_2=http://p2:9002". Providers
	// without a URL fall back to the simulated gateway.
	providerURLs := map[string]string{}
	if v := os.Getenv("PROVIDER_URLS"); v != "" {
		for _, pair := range splitList(v) {
			name, url, ok := strings.Cut(pair, "=")
			if ok && name != "" && url != "" {
				providerURLs[name] = url
			}
		}
	}

	origins := []string{"*"}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins = splitList(v)
	}

	pageURL := os.Getenv("PAYMENT_PAGE_URL")
	if pageURL == "" {
		pageURL = "http://localhost:5173"
	}

	return &Config{
		Port:            port,
		SessionStore:    store,
		RedisURL:        os.Getenv("REDIS_URL"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		SessionTTL:      ttl,
		AllowedOrigins:  origins,
		PaymentPageURL:  pageURL,
		Providers:       providers,
		ProviderURLs:    providerURLs,
		ProviderTimeout: providerTimeout,
		NATSURL:         os.Getenv("NATS_URL"),
		KafkaBrokers:    os.Getenv("KAFKA_BROKERS"),
		JaegerEndpoint:  os.Getenv("JAEGER_ENDPOINT"),
	}
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
