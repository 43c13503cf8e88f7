// Package app provides application initialization and lifecycle management.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/smartassist/campus-assistant-go/internal/buildinfo"
	"github.com/smartassist/campus-assistant-go/internal/config"
	"github.com/smartassist/campus-assistant-go/internal/ctxutil"
	"github.com/smartassist/campus-assistant-go/internal/followup"
	"github.com/smartassist/campus-assistant-go/internal/knowledge"
	"github.com/smartassist/campus-assistant-go/internal/llm"
	"github.com/smartassist/campus-assistant-go/internal/logger"
	"github.com/smartassist/campus-assistant-go/internal/metrics"
	"github.com/smartassist/campus-assistant-go/internal/modules/campusmap"
	"github.com/smartassist/campus-assistant-go/internal/modules/chat"
	ticketmodule "github.com/smartassist/campus-assistant-go/internal/modules/ticket"
	"github.com/smartassist/campus-assistant-go/internal/rag"
	"github.com/smartassist/campus-assistant-go/internal/sentry"
	"github.com/smartassist/campus-assistant-go/internal/ticket"
)

// Application manages the application lifecycle and dependencies.
type Application struct {
	cfg       *config.Config
	logger    *logger.Logger
	metrics   *metrics.Metrics
	registry  *prometheus.Registry
	provider  *rag.HTTPProvider
	store     knowledge.Store
	esStore   *knowledge.ESStore // nil when running on the in-memory store
	llmClient llm.Client
	generator *followup.Generator
	server    *http.Server
}

// Initialize creates and initializes a new application with all dependencies.
func Initialize(ctx context.Context, cfg *config.Config) (*Application, error) {
	log := logger.NewWithOptions(cfg.LogLevel, os.Stdout, logger.Options{
		BetterStackToken:    cfg.BetterStackToken,
		BetterStackEndpoint: cfg.BetterStackEndpoint,
	})

	log = log.WithField("service", "campus-assistant-go")
	if host, err := os.Hostname(); err == nil && host != "" {
		log = log.WithField("instance_id", host)
	}

	// Set as default logger to enable context value extraction (request ID,
	// question hash) via ContextHandler in package-level slog.*Context() calls.
	slog.SetDefault(log.Logger)

	log.Info("Initializing application...")
	if cfg.BetterStackToken != "" {
		log.WithField("endpoint", cfg.BetterStackEndpoint).Info("Better Stack logging enabled")
	}

	if cfg.SentryEnabled {
		release := cfg.SentryRelease
		if release == "" {
			release = buildinfo.Version
		}
		if err := sentry.Initialize(sentry.Config{
			Token:       cfg.SentryToken,
			Host:        cfg.SentryHost,
			Environment: cfg.SentryEnvironment,
			Release:     release,
			SampleRate:  cfg.SentrySampleRate,
		}); err != nil {
			return nil, fmt.Errorf("sentry: %w", err)
		}
		log.WithField("host", cfg.SentryHost).Info("Sentry error tracking enabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewBuildInfoCollector(),
	)
	m := metrics.New(registry)

	provider := rag.NewHTTPProvider(cfg.RAGBaseURL, &http.Client{Timeout: cfg.RAGTimeout}, log)
	log.WithField("base_url", cfg.RAGBaseURL).Info("Answer provider configured")

	store, esStore := buildKnowledgeStore(ctx, cfg, log, m)

	var llmClient llm.Client
	if cfg.HasOpenAI() && cfg.UseLLMFollowups {
		llmClient = llm.NewFallbackClient(
			llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL),
			llm.NewLegacyClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL),
			cfg.FollowupModelLegacy,
			log, m,
		)
		log.WithField("model", cfg.FollowupModel).
			WithField("legacy_model", cfg.FollowupModelLegacy).
			Info("LLM follow-up generation enabled")
	} else {
		log.Info("LLM follow-up generation disabled, using search fallback")
	}

	generator := followup.NewGenerator(store, llmClient, cfg.FollowupModel, cfg.UseLLMFollowups, log, m)

	chatHandler := chat.NewHandler(provider, generator, cfg.FollowupCount, cfg.DebugFollowups, log, m)
	ticketHandler := ticketmodule.NewHandler(ticket.NewAnalyzer(provider, log, m), log)
	mapHandler := campusmap.NewHandler(log, m)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.SentryEnabled {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(securityHeadersMiddleware())
	router.Use(loggingMiddleware(log))

	app := &Application{
		cfg:       cfg,
		logger:    log,
		metrics:   m,
		registry:  registry,
		provider:  provider,
		store:     store,
		esStore:   esStore,
		llmClient: llmClient,
		generator: generator,
	}

	router.GET("/", app.redirectToGitHub)
	router.GET("/livez", app.livenessCheck)
	router.HEAD("/livez", app.livenessCheck)
	router.GET("/readyz", app.readinessCheck)
	router.HEAD("/readyz", app.readinessCheck)
	router.GET("/metrics",
		metricsAuthMiddleware(cfg.MetricsAuthEnabled, cfg.MetricsUsername, cfg.MetricsPassword),
		gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	chatHandler.RegisterRoutes(router)
	ticketHandler.RegisterRoutes(router)
	mapHandler.RegisterRoutes(router)

	app.server = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: config.HTTPReadHeader,
		ReadTimeout:       config.HTTPRead,
		IdleTimeout:       config.HTTPIdle,
		// WriteTimeout stays zero: the chat stream endpoint holds the
		// response open for the duration of the answer stream.
	}

	log.Info("Initialization complete")
	return app, nil
}

// buildKnowledgeStore prefers Elasticsearch and falls back to the in-memory
// BM25 index over the seed corpus when ES is unconfigured or unreachable.
func buildKnowledgeStore(ctx context.Context, cfg *config.Config, log *logger.Logger, m *metrics.Metrics) (knowledge.Store, *knowledge.ESStore) {
	if cfg.HasElasticsearch() {
		esStore, err := knowledge.NewESStore(knowledge.ESConfig{
			Addresses: cfg.ESAddresses,
			Username:  cfg.ESUsername,
			Password:  cfg.ESPassword,
			Index:     cfg.ESIndex,
		}, log, m)
		if err == nil {
			if err := bootstrapIndex(ctx, esStore, log); err != nil {
				log.WithError(err).Warn("Knowledge index bootstrap failed, continuing with empty index")
			}
			log.WithField("index", cfg.ESIndex).Info("Elasticsearch knowledge store enabled")
			return esStore, esStore
		}
		log.WithError(err).Warn("Elasticsearch unavailable, falling back to in-memory index")
	}

	memStore, err := knowledge.NewMemoryStore(knowledge.SeedDocuments(), log, m)
	if err != nil {
		// Seed corpus is compiled in; this only fires on a programming error.
		log.WithError(err).Error("In-memory knowledge store failed to build")
		return nil, nil
	}
	return memStore, nil
}

// bootstrapIndex creates the index and seeds it with the built-in corpus
// when it is empty, so a fresh cluster immediately serves useful hits.
func bootstrapIndex(ctx context.Context, store *knowledge.ESStore, log *logger.Logger) error {
	bootCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := store.EnsureIndex(bootCtx); err != nil {
		return err
	}

	count, err := store.Count(bootCtx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	docs := knowledge.SeedDocuments()
	if err := store.IndexDocuments(bootCtx, docs); err != nil {
		return err
	}
	log.WithField("documents", len(docs)).Info("Seeded empty knowledge base index")
	return nil
}

func (a *Application) redirectToGitHub(c *gin.Context) {
	c.Redirect(http.StatusTemporaryRedirect, "https://github.com/smartassist/campus-assistant-go")
}

func (a *Application) livenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "alive",
		"version": buildinfo.Version,
	})
}

func (a *Application) getFeatures() map[string]bool {
	return map[string]bool{
		"elasticsearch": a.esStore != nil,
		"llm_followups": a.llmClient != nil,
		"debug":         a.cfg.DebugFollowups,
	}
}

// readinessCheck probes the answer service and the knowledge store in
// parallel. The knowledge store is advisory: follow-ups degrade gracefully
// without it, so only the answer service gates readiness.
func (a *Application) readinessCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), config.ReadinessCheckTimeout)
	defer cancel()

	var ragErr, esErr error
	g, probeCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ragErr = a.provider.Ping(probeCtx)
		return nil
	})
	if a.esStore != nil {
		g.Go(func() error {
			esErr = a.esStore.Ping(probeCtx)
			return nil
		})
	}
	_ = g.Wait()

	if ragErr != nil {
		a.logger.WithError(ragErr).Warn("Readiness check failed: answer service unavailable")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "answer service unavailable",
		})
		return
	}

	knowledgeStatus := "memory"
	if a.esStore != nil {
		if esErr != nil {
			a.logger.WithError(esErr).Warn("Readiness check: elasticsearch unreachable")
			knowledgeStatus = "degraded"
		} else {
			knowledgeStatus = "connected"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    "ready",
		"answerer":  "connected",
		"knowledge": knowledgeStatus,
		"features":  a.getFeatures(),
	})
}

// Run starts the HTTP server and blocks until a shutdown signal arrives,
// then drains in-flight requests and flushes telemetry.
func (a *Application) Run() error {
	a.startHTTPServer()

	sig := a.waitForShutdownSignal()
	a.logger.WithField("signal", sig.String()).Info("Received shutdown signal")

	return a.shutdown()
}

// startHTTPServer starts the HTTP server in a goroutine.
func (a *Application) startHTTPServer() {
	go func() {
		a.logger.WithField("port", a.cfg.Port).Info("Starting HTTP server")
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.WithError(err).Error("HTTP server error")
		}
	}()
}

// waitForShutdownSignal blocks until SIGINT/SIGTERM is received.
func (a *Application) waitForShutdownSignal() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}

// shutdown performs graceful shutdown of the HTTP server and telemetry.
// Order: stop accepting requests, drain in-flight requests (including open
// SSE streams), flush Sentry, flush the async log handler.
func (a *Application) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	a.logger.Info("Stopping HTTP server...")
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Error("HTTP server shutdown error")
	}

	if sentry.IsEnabled() {
		if !sentry.Flush(2 * time.Second) {
			a.logger.Warn("Sentry flush timed out")
		}
	}

	if err := a.logger.Shutdown(shutdownCtx); err != nil {
		a.logger.WithError(err).Warn("Logger shutdown timed out")
	}

	a.logger.Info("Shutdown complete")
	return nil
}

// securityHeadersMiddleware adds security headers to responses.
func securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Header("Content-Security-Policy", "default-src 'none'")
		c.Header("X-Permitted-Cross-Domain-Policies", "none")
		c.Next()
	}
}

// loggingMiddleware logs HTTP requests with status-based log levels:
// 5xx=Error, 4xx=Warn, 404=Debug, 3xx/2xx=Debug. A request ID is taken
// from upstream headers or generated, propagated via context, and echoed
// back on the response.
func loggingMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		requestID := c.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = c.GetHeader("X-Correlation-Id")
		}
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx := ctxutil.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-Id", requestID)

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		entry := log.WithField("http_method", method).
			WithField("http_path", path).
			WithField("http_status", status).
			WithField("duration_ms", duration.Milliseconds()).
			WithField("client_ip", c.ClientIP()).
			WithRequestID(requestID)

		if status >= 500 {
			entry.Error("HTTP request failed")
		} else if status >= 400 && status != 404 {
			entry.Warn("HTTP request rejected")
		} else if status == 404 {
			entry.Debug("HTTP request not found")
		} else {
			entry.Debug("HTTP request completed")
		}
	}
}
