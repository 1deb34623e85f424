package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"energy-dashboard/internal/api/handlers"
	"energy-dashboard/internal/api/middleware"
	"energy-dashboard/internal/config"
	"energy-dashboard/internal/dashboard"
	"energy-dashboard/internal/data"
	"energy-dashboard/internal/model"
	"energy-dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	cfgPath := os.Getenv("DASHBOARD_CONFIG")
	if cfgPath == "" {
		cfgPath = "dashboard.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config %s: %v", cfgPath, err)
	}
	sources, err := config.Normalize(cfg.Sources)
	if err != nil {
		log.Fatalf("Invalid source config: %v", err)
	}
	nm := config.NormalizeNetMetering(cfg.NetMetering)
	period, _ := model.ParsePeriod(cfg.Period)

	engine := dashboard.New(dashboard.Formatter{
		Currency:      cfg.Format.Currency,
		ValueDecimals: *cfg.Format.ValueDecimals,
		CostDecimals:  *cfg.Format.CostDecimals,
	})

	source, host := buildDataSource(cfg)
	svc := service.New(source, engine, sources, nm, period)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// External date-window broadcasts replace the period-derived window.
	if host != nil {
		unsub, err := host.SubscribeWindow(ctx, func(w model.TimeWindow) {
			svc.SetWindow(ctx, w)
		})
		if err != nil {
			log.Printf("Window subscription unavailable, using configured period: %v", err)
		} else {
			defer unsub()
		}
	}

	interval := 5 * time.Minute
	if v := os.Getenv("REFRESH_INTERVAL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			interval = parsed
		}
	}
	go svc.Run(ctx, interval)

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	summaryHandler := handlers.NewSummaryHandler(svc)
	sourcesHandler := handlers.NewSourcesHandler(sources)
	renderHandler := handlers.NewRenderHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.GET("/summary", summaryHandler.GetSummary)
		api.GET("/sources", sourcesHandler.ListSources)
		api.GET("/kinds", sourcesHandler.ListKinds)
		api.POST("/render", renderHandler.Render)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting API server on %s (config=%s)", addr, cfgPath)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildDataSource picks the statistics backend: a fixture file when
// STATS_FIXTURE is set, otherwise the host WebSocket client.
func buildDataSource(cfg *config.Config) (service.DataSource, *data.HostClient) {
	if fixturePath := os.Getenv("STATS_FIXTURE"); fixturePath != "" {
		fixture, err := data.LoadFixture(fixturePath)
		if err != nil {
			log.Fatalf("Failed to load fixture %s: %v", fixturePath, err)
		}
		log.Printf("Using fixture statistics from %s", fixturePath)
		return fixture, nil
	}
	if cfg.Host.URL == "" {
		log.Fatalf("host.url is required unless STATS_FIXTURE is set")
	}
	host := data.NewHostClient(cfg.Host.URL, cfg.Host.Token, cfg.Host.Timeout())
	return host, host
}
