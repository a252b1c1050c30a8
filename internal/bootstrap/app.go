package bootstrap

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"applymail-backend/internal/analyses"
	"applymail-backend/internal/emails"
	"applymail-backend/internal/gmail"
	"applymail-backend/internal/jobpostings"
	"applymail-backend/internal/llm"
	"applymail-backend/internal/llm/gemini"
	"applymail-backend/internal/llm/openai"
	"applymail-backend/internal/resumes"
	"applymail-backend/internal/shared/config"
	"applymail-backend/internal/shared/metrics"
	"applymail-backend/internal/shared/server/middleware"
	"applymail-backend/internal/shared/storage/object"
	"applymail-backend/internal/shared/storage/object/local"
	"applymail-backend/internal/web"
)

// App wires configuration, storage, services and the HTTP router.
type App struct {
	Config config.Config
	Router *gin.Engine

	Store object.ObjectStore

	Resumes  *resumes.Service
	Jobs     *jobpostings.Service
	Analyses *analyses.Service
	Emails   *emails.Service
}

// Options lets callers substitute external dependencies. Zero-value
// fields fall back to the configured defaults.
type Options struct {
	LLM        llm.Client
	Dispatcher emails.Dispatcher
	Store      object.ObjectStore
}

// Build assembles the application from configuration.
func Build(cfg config.Config) (*App, error) {
	return BuildWithOptions(cfg, Options{})
}

// BuildWithOptions assembles the application, honoring any overrides.
func BuildWithOptions(cfg config.Config, opts Options) (*App, error) {
	store := opts.Store
	if store == nil {
		store = local.New(cfg.LocalStoreDir)
	}

	llmClient := opts.LLM
	if llmClient == nil {
		var err error
		llmClient, err = buildLLMClient(cfg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: %w", err)
		}
	}

	dispatcher := opts.Dispatcher
	if dispatcher == nil {
		dispatcher = gmail.NewClient(cfg.GmailCredsFile, cfg.GmailTokenFile)
	}

	resumeSvc := &resumes.Service{
		Store: store,
		Repo:  resumes.NewMemoryRepo(),
	}
	jobSvc := &jobpostings.Service{
		Repo:    jobpostings.NewMemoryRepo(),
		Fetcher: jobpostings.NewFetcher(),
	}
	analysisSvc := &analyses.Service{
		Repo:     analyses.NewMemoryRepo(),
		Resumes:  resumeSvc,
		Jobs:     jobSvc,
		LLM:      llmClient,
		Provider: cfg.LLMProvider,
		Model:    cfg.LLMModel,
	}
	emailSvc := &emails.Service{
		Repo:       emails.NewMemoryRepo(),
		Resumes:    resumeSvc,
		Jobs:       jobSvc,
		Analyses:   analysisSvc,
		LLM:        llmClient,
		Dispatcher: dispatcher,
		History:    emails.NewHistory(cfg.HistoryFile),
	}

	app := &App{
		Config:   cfg,
		Store:    store,
		Resumes:  resumeSvc,
		Jobs:     jobSvc,
		Analyses: analysisSvc,
		Emails:   emailSvc,
	}
	app.Router = buildRouter(app)

	return app, nil
}

func buildLLMClient(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return llm.Unconfigured{}, nil
		}
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	default:
		if cfg.GeminiAPIKey == "" {
			return llm.Unconfigured{}, nil
		}
		return gemini.NewClient(context.Background(), cfg.GeminiAPIKey, cfg.LLMModel)
	}
}

func buildRouter(app *App) *gin.Engine {
	if app.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(app.Config.CORSAllowOrigin))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	resumes.NewHandler(app.Resumes).RegisterRoutes(api)
	jobpostings.NewHandler(app.Jobs).RegisterRoutes(api)
	analyses.NewHandler(app.Analyses).RegisterRoutes(api)
	emails.NewHandler(app.Emails).RegisterRoutes(api)

	web.RegisterRoutes(r)

	return r
}
