package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/compat_oai/openai"
	"github.com/openai/openai-go/option"

	"github.com/concierge-ai/concierge/internal/agent"
	"github.com/concierge-ai/concierge/internal/api"
	"github.com/concierge-ai/concierge/internal/config"
	"github.com/concierge-ai/concierge/internal/log"
	"github.com/concierge-ai/concierge/internal/tools"
)

// Server timeout configuration.
const (
	readHeaderTimeout = 10 * time.Second
	readTimeout       = 30 * time.Second
	writeHeadroom     = 30 * time.Second // slack beyond the model-call timeout
	idleTimeout       = 2 * time.Minute
	shutdownTimeout   = 30 * time.Second
)

// writeTimeoutFor sizes the server's write budget so the configured
// model-call timeout can fully elapse and the 503 still reaches the client.
func writeTimeoutFor(requestTimeout time.Duration) time.Duration {
	return requestTimeout + writeHeadroom
}

// runServe initializes and starts the HTTP API server.
func runServe() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	level := log.ParseLevel(cfg.LogLevel)
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := log.New(log.Config{Level: level, JSON: !cfg.Debug})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info("starting HTTP API server", "version", Version, "model", cfg.ModelName)

	g, err := provideGenkit(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing genkit: %w", err)
	}

	stubs, err := tools.NewStubs(logger)
	if err != nil {
		return fmt.Errorf("creating tools: %w", err)
	}
	registered, err := tools.Register(g, stubs)
	if err != nil {
		return fmt.Errorf("registering tools: %w", err)
	}
	registry := tools.NewRegistry(g)

	chatAgent, err := agent.New(agent.Config{
		Genkit:      g,
		Tools:       registered,
		Logger:      logger,
		Model:       cfg.ModelName,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		MaxTurns:    cfg.MaxTurns,
	})
	if err != nil {
		return fmt.Errorf("creating agent: %w", err)
	}

	apiServer, err := api.NewServer(api.ServerConfig{
		Logger:  logger,
		Agent:   chatAgent,
		Catalog: registry,
		Config:  cfg,
		Version: Version,
	})
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeoutFor(cfg.Timeout()),
		IdleTimeout:       idleTimeout,
	}

	logger.Info("HTTP server ready",
		"addr", cfg.Addr(),
		"api", "/api/*",
		"health", "/health",
		"debug", cfg.Debug,
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down HTTP server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down server: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP server: %w", err)
	}
}

// provideGenkit initializes Genkit against the configured OpenAI-compatible
// endpoint (OpenRouter by default) and registers the chat model.
// OpenRouter model identifiers are not in the plugin's known-model list, so
// the model is defined explicitly with its capabilities.
func provideGenkit(ctx context.Context, cfg *config.Config) (*genkit.Genkit, error) {
	plugin := &openai.OpenAI{
		APIKey: cfg.OpenRouterAPIKey,
		Opts: []option.RequestOption{
			option.WithBaseURL(cfg.OpenRouterBaseURL),
		},
	}

	g := genkit.Init(ctx, genkit.WithPlugins(plugin))
	if g == nil {
		return nil, errors.New("initializing genkit with openai provider")
	}

	model := plugin.DefineModel(cfg.ModelName, ai.ModelOptions{
		Label: cfg.ModelName,
		Supports: &ai.ModelSupports{
			Multiturn:  true,
			Tools:      true,
			SystemRole: true,
		},
	})
	if model == nil {
		return nil, fmt.Errorf("defining model %q", cfg.ModelName)
	}

	return g, nil
}
