package app

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"contentai/internal/cache"
	"contentai/internal/config"
	"contentai/internal/pdf"
	"contentai/internal/quota"
	"contentai/internal/ratelimit"
	"contentai/internal/services"
	"contentai/internal/usage"
)

// App wires the configuration into the service graph shared by the
// HTTP server, the CLI, and the worker.
type App struct {
	Config *config.Config

	Provider       services.GenerationProvider
	Gateway        *services.GenerationService
	Limiter        *ratelimit.Limiter
	Quota          *quota.Tracker
	Cache          *cache.Cache
	UsageQueue     *usage.Queue
	ContentService *services.ContentService
	PDFRenderer    *pdf.Renderer
}

func NewApp(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}

	if err := app.initProvider(); err != nil {
		return nil, err
	}
	app.initAdmission()
	app.initUsageQueue()
	app.initContentService()
	app.PDFRenderer = pdf.NewRenderer()

	log.Println("Application initialization complete.")
	return app, nil
}

func (a *App) initProvider() error {
	cfg := a.Config
	timeout := time.Duration(cfg.Provider.TimeoutSeconds) * time.Second

	var (
		provider services.GenerationProvider
		err      error
	)
	switch cfg.Provider.Name {
	case "openai":
		provider, err = services.NewOpenAIProvider(cfg.Provider.OpenaiApiKey, cfg.Provider.OpenaiModel)
	case "gemini":
		provider, err = services.NewGeminiProvider(context.Background(), cfg.Provider.GoogleApiKey, cfg.Provider.GeminiModel)
	case "falcon":
		provider, err = services.NewFalconProvider(cfg.Provider.FalconBaseURL, cfg.Provider.FalconApiKey, cfg.Provider.FalconModel, timeout)
	default:
		return fmt.Errorf("unknown provider configured: %s", cfg.Provider.Name)
	}
	if err != nil {
		return fmt.Errorf("init %s provider: %w", cfg.Provider.Name, err)
	}

	log.Infof("Initialized %s generation provider (model: %s)", provider.Name(), provider.ModelName())
	a.Provider = provider
	a.Gateway = services.NewGenerationService(provider)
	return nil
}

func (a *App) initAdmission() {
	cfg := a.Config
	a.Limiter = ratelimit.New(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)
	a.Quota = quota.New(cfg.Quota.MaxTokensPerDay, cfg.Quota.MaxRequestsPerDay)
	a.Cache = cache.New()
}

func (a *App) initUsageQueue() {
	cfg := a.Config
	a.UsageQueue = usage.NewQueue(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	if a.UsageQueue == nil {
		log.Println("Redis not configured, usage records will only be logged in-process.")
	}
}

func (a *App) initContentService() {
	a.ContentService = services.NewContentService(services.ContentServiceDeps{
		Gateway:  a.Gateway,
		Limiter:  a.Limiter,
		Quota:    a.Quota,
		Cache:    a.Cache,
		Usage:    a.UsageQueue,
		CacheTTL: time.Duration(a.Config.Cache.TTLSeconds) * time.Second,
	})
}

// Close releases held connections.
func (a *App) Close() {
	if err := a.UsageQueue.Close(); err != nil {
		log.Warnf("Error closing usage queue: %v", err)
	}
	if closer, ok := a.Provider.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			log.Warnf("Error closing provider: %v", err)
		}
	}
}
