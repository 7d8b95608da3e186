package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/handlers"
	"alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
	"alfredoptarigan/resume-matcher/internal/views"
)

const (
	shutdownTimeout = 10 * time.Second
	janitorInterval = time.Minute
	// multipartOverhead leaves room for form framing around a file of the
	// maximum size, so oversize files reach the upload check.
	multipartOverhead = 1 << 20
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg := config.Load()

	l, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	defer func() { _ = l.Sync() }()

	l.Info("✅ Config loaded",
		zap.String("version", version),
		zap.String("mode", cfg.Server.Env),
		zap.String("api_base", cfg.Analyzer.BaseURL),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := services.NewMetrics(reg)

	// Initialize services
	pdfParser := services.NewPDFParserService()
	uploadService := services.NewUploadService(pdfParser, cfg.Storage.MaxFileSize, l)
	analyzer := services.NewAnalyzerClient(cfg.Analyzer.BaseURL, cfg.Analyzer.Timeout, l)
	l.Info("✅ Services initialized")

	repo := repositories.NewWorkflowRepository(func(id uuid.UUID) *services.Workflow {
		return services.NewWorkflow(id, analyzer, metrics, l)
	}, metrics, l)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo.StartJanitor(ctx, janitorInterval, cfg.Session.Expiration)

	// Runs outlive the signal so in-flight analyses are not cut short; Stop
	// fails whatever is still queued.
	worker := services.NewWorker(cfg.Worker.Concurrency, cfg.Worker.QueueSize, metrics, l)
	worker.Start(context.Background())

	store := session.New(session.Config{
		Expiration:     cfg.Session.Expiration,
		KeyLookup:      "cookie:" + handlers.SessionCookieName,
		CookieHTTPOnly: true,
		CookieSecure:   cfg.IsProduction(),
		CookieSameSite: fiber.CookieSameSiteLaxMode,
	})

	h := &handlers.Handlers{
		Session:     handlers.NewSessionMiddleware(store, repo, l),
		Page:        handlers.NewPageHandler(),
		Upload:      handlers.NewUploadHandler(uploadService, metrics, l),
		Description: handlers.NewDescriptionHandler(),
		Analyze:     handlers.NewAnalyzeHandler(worker, l),
	}
	l.Info("✅ Handlers initialized")

	app := fiber.New(fiber.Config{
		AppName:               "ResumeSync",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		BodyLimit:             int(cfg.Storage.MaxFileSize) + multipartOverhead,
		ErrorHandler:          handlers.ErrorHandler,
		Views:                 views.NewEngine(),
		DisableStartupMessage: cfg.Log.JSON,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	h.Register(app)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		l.Info("🚀 Server starting", zap.String("addr", addr))

		if err := app.Listen(addr); err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		l.Info("🛑 Shutting down server...")

		err := app.ShutdownWithTimeout(shutdownTimeout)
		worker.Stop()
		if err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		l.Error("❌ Server stopped with error", zap.Error(err))
		return err
	}

	l.Info("✅ Server stopped")
	return nil
}
