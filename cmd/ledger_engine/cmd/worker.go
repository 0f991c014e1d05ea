package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"

	"github.com/SscSPs/ledger_engine/internal/jobs"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
)

var (
	workerConcurrency int
	workerEnqueue     bool
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the background integrity worker",
	Long: `Process ledger integrity checks from the redis queue and schedule them
on INTEGRITY_CRON. With --enqueue a single check is queued and the command exits.`,
	RunE: runWorker,
}

func init() {
	workerCmd.Flags().IntVar(&workerConcurrency, "concurrency", 2, "number of concurrent task processors")
	workerCmd.Flags().BoolVar(&workerEnqueue, "enqueue", false, "queue one integrity check and exit")
}

func runWorker(cmd *cobra.Command, _ []string) error {
	if appCfg.RedisURL == "" {
		return errors.New("worker requires REDIS_URL")
	}
	redisOpt, err := asynq.ParseRedisURI(appCfg.RedisURL)
	if err != nil {
		return fmt.Errorf("invalid REDIS_URL: %w", err)
	}

	if workerEnqueue {
		client := asynq.NewClient(redisOpt)
		defer client.Close()
		info, err := jobs.EnqueueIntegrity(cmd.Context(), client)
		if err != nil {
			return fmt.Errorf("failed to enqueue integrity check: %w", err)
		}
		logger.Info("Integrity check enqueued", slog.String("task_id", info.ID), slog.String("queue", info.Queue))
		return nil
	}

	if appCfg.LedgerStore != config.StorePostgres {
		return errors.New("worker requires LEDGER_STORE=postgres")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := openBackend(ctx, appCfg, false)
	if err != nil {
		return err
	}
	defer b.Close()

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpt:    redisOpt,
		Logger:      logger,
		Concurrency: workerConcurrency,
		Integrity:   jobs.NewIntegrityHandler(b.services(appCfg).Integrity, logger),
		Cron:        []jobs.CronRegistration{jobs.IntegritySchedule(appCfg.IntegrityCron)},
	})
	if err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}

	logger.Info("Worker starting", slog.Int("concurrency", workerConcurrency), slog.String("integrity_cron", appCfg.IntegrityCron))
	return worker.Run(ctx)
}
