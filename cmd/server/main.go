package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UkralStul/video-ideas-service/internal/analysis"
	"github.com/UkralStul/video-ideas-service/internal/analysis/llm"
	"github.com/UkralStul/video-ideas-service/internal/analysis/transcript"
	"github.com/UkralStul/video-ideas-service/internal/analysis/youtube"
	"github.com/UkralStul/video-ideas-service/internal/config"
	"github.com/UkralStul/video-ideas-service/internal/domain"
	"github.com/UkralStul/video-ideas-service/internal/httpapi"
	"github.com/UkralStul/video-ideas-service/internal/mcpserver"
	"github.com/UkralStul/video-ideas-service/internal/observer"
	"github.com/UkralStul/video-ideas-service/internal/service"
	"github.com/UkralStul/video-ideas-service/internal/storage"
	"github.com/UkralStul/video-ideas-service/internal/storage/inmemory"
	"github.com/UkralStul/video-ideas-service/internal/storage/postgres"
	"github.com/UkralStul/video-ideas-service/internal/storage/sqlite"
	"golang.org/x/time/rate"
	"gorm.io/gorm/logger"
)

const version = "0.1.0"

func main() {
	storageType := flag.String("storage", "", "Storage type (in-memory, postgres or sqlite); overrides storage.type")
	seed := flag.Bool("seed", false, "Fill in-memory storage with demo ideas")
	debug := flag.Bool("debug", false, "Enable debug logging")
	mcpMode := flag.Bool("mcp", false, "Serve MCP tools over stdio instead of HTTP")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	// stdout carries the MCP protocol in -mcp mode
	logOut := os.Stdout
	if *mcpMode {
		logOut = os.Stderr
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load()
	if err != nil {
		fatal("failed to load config", err)
	}
	if *storageType != "" {
		cfg.Storage.Type = *storageType
	}
	if err := cfg.Validate(); err != nil {
		fatal("invalid config", err)
	}

	store, err := openStorage(cfg)
	if err != nil {
		fatal("failed to open storage", err)
	}
	defer store.Close()

	ideas := service.NewIdeaService(store)
	if *seed && cfg.Storage.Type == config.StorageInMemory {
		fillWithDemoIdeas(ideas)
	}

	// nil interface, not a typed nil: handlers check it to disable analysis
	var analyzer httpapi.Analyzer
	if err := cfg.ValidateAnalysis(); err != nil {
		slog.Warn("video analysis disabled", slog.Any("reason", err))
	} else {
		analyzer = newAnalyzer(cfg)
	}

	if *mcpMode {
		if err := mcpserver.ServeStdio(mcpserver.NewHandlers(ideas, analyzer), version); err != nil {
			fatal("mcp server failed", err)
		}
		return
	}

	var limiter *rate.Limiter
	if cfg.Analyze.RatePerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.Analyze.RatePerMinute)), max(cfg.Analyze.Burst, 1))
	}

	router := httpapi.NewRouter(&httpapi.Handlers{
		Ideas:          ideas,
		Analyzer:       analyzer,
		Observer:       observer.New(),
		AnalyzeLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := run(srv, cfg.Server.ShutdownTimeout); err != nil {
		fatal("server failed", err)
	}
	slog.Info("server stopped")
}

func newAnalyzer(cfg *config.Config) *analysis.Analyzer {
	httpClient := &http.Client{Timeout: cfg.HTTP.Timeout}
	return analysis.New(
		youtube.NewClient(cfg.YouTube.APIKey, cfg.YouTube.BaseURL, httpClient),
		transcript.NewAssemblyAI(transcript.Config{
			APIKey:       cfg.AssemblyAI.APIKey,
			BaseURL:      cfg.AssemblyAI.BaseURL,
			LanguageCode: cfg.AssemblyAI.LanguageCode,
			PollInterval: cfg.AssemblyAI.PollInterval,
		}, httpClient),
		llm.NewClient(llm.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.Model,
			Temperature: cfg.LLM.Temperature,
			TopP:        cfg.LLM.TopP,
			MaxTokens:   cfg.LLM.MaxTokens,
		}, httpClient),
	)
}

func openStorage(cfg *config.Config) (storage.Storage, error) {
	slog.Info("starting server", slog.String("storage", cfg.Storage.Type))
	switch cfg.Storage.Type {
	case config.StoragePostgres:
		level := logger.Warn
		if cfg.Storage.LogSQL {
			level = logger.Info
		}
		return postgres.New(cfg.Storage.DSN, level)
	case config.StorageSQLite:
		return sqlite.New(cfg.Storage.SQLitePath)
	default:
		return inmemory.New(), nil
	}
}

// run serves until SIGINT/SIGTERM, then drains in-flight requests.
func run(srv *http.Server, shutdownTimeout time.Duration) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	slog.Info("listening", slog.String("addr", srv.Addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-sigCh:
		slog.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

func fillWithDemoIdeas(ideas *service.IdeaService) {
	ctx := context.Background()
	category := "Productivity"

	demo := []service.CreateInput{
		{
			Title:       "Meeting notes summariser",
			Description: "Turns recorded stand-ups into action items for small teams.",
			Tags:        []string{"demo", "youtube"},
			Category:    &category,
			UserID:      "demo-user",
			Metadata: &domain.IdeaMetadata{
				MVPFeatures:    "Upload audio, get a bullet list",
				ViabilityScore: "7/10",
			},
		},
		{
			Title:       "Invoice chaser",
			Description: "Emails polite reminders for overdue freelancer invoices.",
			Tags:        []string{"demo"},
			UserID:      "demo-user",
		},
	}

	for _, in := range demo {
		idea, err := ideas.Create(ctx, in)
		if err != nil {
			fatal("failed to seed demo idea", err)
		}
		slog.Info("seeded demo idea", slog.String("id", idea.ID), slog.String("user_id", idea.UserID))
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, slog.Any("error", err))
	os.Exit(1)
}
