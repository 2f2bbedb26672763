package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds run configuration loaded from flags, env, or config file.
type Config struct {
	FeeRateBps      uint64
	ScenarioPath    string
	Out             string
	SnapshotPath    string
	SnapshotEnabled bool
	PGDSN           string
	SessionID       string
	LogLevel        string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"fee-rate-bps":     uint64(30),
		"out":              "./data/journal.jsonl",
		"snapshot":         "./data/snapshot.json",
		"snapshot-enabled": true,
		"log-level":        "info",
	})
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		FeeRateBps:      v.GetUint64("fee-rate-bps"),
		ScenarioPath:    v.GetString("scenario"),
		Out:             v.GetString("out"),
		SnapshotPath:    v.GetString("snapshot"),
		SnapshotEnabled: v.GetBool("snapshot-enabled"),
		PGDSN:           v.GetString("pg-dsn"),
		SessionID:       v.GetString("session-id"),
		LogLevel:        v.GetString("log-level"),
	}

	return cfg, nil
}

// QuoteConfig holds configuration for the read-only quote command.
type QuoteConfig struct {
	AmountIn     uint64
	AssetIn      string
	ReserveBase  uint64
	ReserveQuote uint64
	TotalShares  uint64
	FeeRateBps   uint64
	SnapshotPath string
	LogLevel     string
}

// LoadQuote merges config file, environment variables, and flags into QuoteConfig.
func LoadQuote(cfgFile string, flags *pflag.FlagSet) (QuoteConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]interface{}{
		"asset-in":     "base",
		"fee-rate-bps": uint64(30),
		"log-level":    "info",
	})
	if err != nil {
		return QuoteConfig{}, err
	}

	cfg := QuoteConfig{
		AmountIn:     v.GetUint64("amount-in"),
		AssetIn:      v.GetString("asset-in"),
		ReserveBase:  v.GetUint64("reserve-base"),
		ReserveQuote: v.GetUint64("reserve-quote"),
		TotalShares:  v.GetUint64("total-shares"),
		FeeRateBps:   v.GetUint64("fee-rate-bps"),
		SnapshotPath: v.GetString("snapshot"),
		LogLevel:     v.GetString("log-level"),
	}

	return cfg, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet, defaults map[string]interface{}) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("DEXSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	return v, nil
}
