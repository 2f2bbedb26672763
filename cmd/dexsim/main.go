package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dexsim/internal/config"
	"dexsim/internal/pool"
	"dexsim/internal/registry"
	"dexsim/internal/sim"
	"dexsim/internal/storage"
	"dexsim/internal/storage/postgres"
)

func main() {
	root := &cobra.Command{
		Use:          "dexsim",
		Short:        "Constant-product pool simulator",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run a simulation session",
		RunE:  runSession,
	}

	runCmd.Flags().Uint64("fee-rate-bps", 30, "swap fee in basis points")
	runCmd.Flags().String("scenario", "", "scenario JSONL path (default scenario if empty)")
	runCmd.Flags().String("out", "./data/journal.jsonl", "output journal JSONL path")
	runCmd.Flags().String("snapshot", "./data/snapshot.json", "snapshot file path")
	runCmd.Flags().Bool("snapshot-enabled", true, "enable snapshot file")
	runCmd.Flags().String("pg-dsn", "", "optional Postgres DSN for the journal")
	runCmd.Flags().String("session-id", "", "session id (generated if empty)")
	runCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd)

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Price a swap without executing it",
		RunE:  runQuote,
	}

	quoteCmd.Flags().Uint64("amount-in", 0, "input amount in micro-units")
	quoteCmd.Flags().String("asset-in", "base", "input asset (base or quote)")
	quoteCmd.Flags().Uint64("reserve-base", 0, "base reserve (ignored when --snapshot is set)")
	quoteCmd.Flags().Uint64("reserve-quote", 0, "quote reserve (ignored when --snapshot is set)")
	quoteCmd.Flags().Uint64("total-shares", 0, "total shares (ignored when --snapshot is set)")
	quoteCmd.Flags().Uint64("fee-rate-bps", 30, "swap fee in basis points")
	quoteCmd.Flags().String("snapshot", "", "price against a saved snapshot file")
	quoteCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(quoteCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSession(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	sessionID := cfg.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	state, err := pool.NewState(cfg.FeeRateBps)
	if err != nil {
		return err
	}
	participants := registry.New()
	engine := pool.NewEngine(state, participants, logger)

	journals := []storage.Journal{storage.NewJsonlJournal(cfg.Out)}
	snapshots := []storage.SnapshotSink{sim.NewSnapshotStore(cfg.SnapshotPath, cfg.SnapshotEnabled)}

	var store *postgres.Store
	if cfg.PGDSN != "" {
		store, err = postgres.NewStore(ctx, cfg.PGDSN)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer store.Close()
		journals = append(journals, store)
		snapshots = append(snapshots, store)

		lastSeq, ok, err := store.LoadState(ctx, "session:"+sessionID)
		if err != nil {
			return fmt.Errorf("load session state: %w", err)
		}
		if ok {
			logger.Warn("session id already has journaled steps", zap.Uint64("last_seq", lastSeq))
		}
	}

	scenario := sim.DefaultScenario()
	if cfg.ScenarioPath != "" {
		scenario, err = sim.LoadScenario(cfg.ScenarioPath)
		if err != nil {
			return err
		}
	}

	logger.Info("run start",
		zap.String("session_id", sessionID),
		zap.Uint64("fee_rate_bps", cfg.FeeRateBps),
		zap.String("scenario", scenario.Name),
		zap.String("out", cfg.Out),
		zap.Bool("snapshot_enabled", cfg.SnapshotEnabled),
		zap.String("snapshot", cfg.SnapshotPath),
		zap.String("pg_dsn", redactDSN(cfg.PGDSN)),
	)

	runner := sim.NewRunner(sessionID, engine, participants, journals, snapshots, logger)
	totals, err := runner.Run(ctx, scenario)
	if err != nil {
		return err
	}

	if store != nil {
		if err := store.SaveState(ctx, "session:"+sessionID, totals.Steps); err != nil {
			return fmt.Errorf("save session state: %w", err)
		}
	}

	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

func redactDSN(dsn string) string {
	if dsn == "" {
		return dsn
	}
	return "***"
}
