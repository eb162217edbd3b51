package main

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"PlantStore/internal/catalog"
	"PlantStore/internal/storefront"
	"PlantStore/pkg/kit"
)

type config struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	CatalogBaseURL string        `envconfig:"CATALOG_BASE_URL" default:"https://openapi.programming-hero.com/api"`
	PageSize       int           `envconfig:"PAGE_SIZE" default:"6"`
	SessionTTL     time.Duration `envconfig:"SESSION_TTL" default:"30m"`

	RateLimit       int `envconfig:"RATE_LIMIT" default:"60"`
	RateLimitWindow int `envconfig:"RATE_LIMIT_WINDOW_SECONDS" default:"60"`

	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"`
	MetricsToken   string `envconfig:"METRICS_TOKEN"`

	DevLog bool `envconfig:"DEV_LOG"`
}

func main() {
	service := "storefront"

	var cfg config
	if err := envconfig.Process("", &cfg); err != nil {
		panic(err)
	}

	log := kit.NewLogger(service, cfg.DevLog)
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()

	s := &storefront.Server{
		Sessions: storefront.NewSessions(cfg.SessionTTL),
		Catalog:  catalog.NewClient(cfg.CatalogBaseURL),
		PageSize: cfg.PageSize,
		Log:      log,
		Metrics:  storefront.NewMetrics(reg),
		Limiter:  kit.NewIPRateLimiter(cfg.RateLimit, cfg.RateLimitWindow),
	}

	h := storefront.NewHandler(s, storefront.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.MetricsEnabled,
		MetricsToken:   cfg.MetricsToken,
	})

	if err := kit.RunHTTPServer(":"+cfg.Port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}
