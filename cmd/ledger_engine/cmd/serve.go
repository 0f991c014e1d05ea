package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/ledger_engine/internal/handlers"
	"github.com/SscSPs/ledger_engine/internal/middleware"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/pkg/database"
)

const shutdownTimeout = 10 * time.Second

var (
	serveSkipMigrate bool
	serveSeed        bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Apply pending migrations and serve the ledger API until interrupted.

With LEDGER_STORE=memory no database is used; pass --seed to start with the
default chart of accounts.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveSkipMigrate, "skip-migrate", false, "do not apply migrations on start")
	serveCmd.Flags().BoolVar(&serveSeed, "seed", false, "seed the default chart of accounts on start")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if appCfg.LedgerStore == config.StorePostgres && !serveSkipMigrate {
		logger.Info("Running database migrations...")
		if err := database.Migrate(appCfg.DatabaseURL, database.Up, logger); err != nil {
			logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
			return err
		}
	}

	b, err := openBackend(ctx, appCfg, true)
	if err != nil {
		logger.Error("Failed to open backend", slog.String("error", err.Error()))
		return err
	}
	defer b.Close()

	svc := b.services(appCfg)
	if serveSeed {
		if _, _, err := seedChart(ctx, svc.Account, ""); err != nil {
			return err
		}
	}

	lim, err := middleware.NewLimiter(appCfg.RateLimit, b.redis)
	if err != nil {
		logger.Error("Failed to create rate limiter", slog.String("error", err.Error()))
		return err
	}

	if appCfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	handlers.RegisterRoutes(r, appCfg, svc, handlers.RouteOptions{
		Limiter:      lim,
		HealthChecks: b.healthChecks(),
	})

	srv := &http.Server{
		Addr:              ":" + appCfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server starting", slog.String("port", appCfg.Port), slog.String("store", appCfg.LedgerStore))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to run: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server stopped with error", slog.String("error", err.Error()))
		return err
	}
	logger.Info("Server stopped")
	return nil
}
