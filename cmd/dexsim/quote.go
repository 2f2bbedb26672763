package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dexsim/internal/config"
	"dexsim/internal/model"
	"dexsim/internal/pool"
	"dexsim/internal/sim"
)

func runQuote(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadQuote(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	assetIn, err := model.ParseAsset(cfg.AssetIn)
	if err != nil {
		return err
	}
	if cfg.AmountIn == 0 {
		return fmt.Errorf("amount-in is required")
	}

	snap := model.PoolSnapshot{
		ReserveBase:  cfg.ReserveBase,
		ReserveQuote: cfg.ReserveQuote,
		TotalShares:  cfg.TotalShares,
		FeeRateBps:   cfg.FeeRateBps,
	}

	if cfg.SnapshotPath != "" {
		record, ok, err := sim.NewSnapshotStore(cfg.SnapshotPath, true).Load()
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no snapshot at %s", cfg.SnapshotPath)
		}
		snap = record.Pool
		logger.Info("quoting against snapshot",
			zap.String("session_id", record.SessionID),
			zap.Uint64("last_seq", record.LastSeq),
		)
	}

	quote, err := pool.QuoteAgainst(snap, cfg.AmountIn, assetIn)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(quote, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
