package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"newsdesk/internal/config"
	pgRepo "newsdesk/internal/infra/adapter/persistence/postgres"
	sqliteRepo "newsdesk/internal/infra/adapter/persistence/sqlite"
	"newsdesk/internal/infra/db"
	"newsdesk/internal/observability/logging"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/render"
	"newsdesk/internal/repository"
	commentUC "newsdesk/internal/usecase/comment"
	newsUC "newsdesk/internal/usecase/news"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(openApp, os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// app holds the components one command invocation works with.
type app struct {
	logger   *slog.Logger
	news     *newsUC.Service
	comments *commentUC.Service
	renderer *render.Renderer
	close    func()
}

// openApp loads configuration, connects to the store and wires the services.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger, logCloser := logging.New(cfg.Log, os.Stderr)
	slog.SetDefault(logger)

	conn, dialect, err := db.Open(ctx, cfg.Database, logger)
	if err != nil {
		_ = logCloser.Close()
		return nil, err
	}
	if err := db.EnsureSchema(ctx, conn, dialect); err != nil {
		_ = conn.Close()
		_ = logCloser.Close()
		return nil, err
	}

	gw := db.New(conn, dialect, logger, db.WithStatementTimeout(cfg.Database.StatementTimeout))
	a := newApp(gw, logger)
	a.close = func() {
		exportMetrics(cfg.Metrics.Textfile, prometheus.DefaultGatherer, logger)
		if err := gw.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
		_ = logCloser.Close()
	}
	return a, nil
}

// newApp builds the repositories and services for the gateway's dialect.
func newApp(gw *db.Gateway, logger *slog.Logger) *app {
	var (
		newsRepo    repository.NewsRepository
		commentRepo repository.CommentRepository
	)
	if gw.Dialect() == db.DialectPostgres {
		newsRepo, commentRepo = pgRepo.NewNewsRepo(gw), pgRepo.NewCommentRepo(gw)
	} else {
		newsRepo, commentRepo = sqliteRepo.NewNewsRepo(gw), sqliteRepo.NewCommentRepo(gw)
	}

	newsSvc := &newsUC.Service{Repo: newsRepo}
	commentSvc := &commentUC.Service{Repo: commentRepo, News: newsRepo}

	return &app{
		logger:   logger,
		news:     newsSvc,
		comments: commentSvc,
		renderer: render.New(newsSvc, commentSvc),
		close:    func() {},
	}
}

// exportMetrics writes the gathered metrics to path. An empty path disables the export.
func exportMetrics(path string, g prometheus.Gatherer, logger *slog.Logger) {
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path, g); err != nil {
		logger.Error("failed to export metrics", slog.Any("error", err))
	}
}

func getVersion() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return version
}

