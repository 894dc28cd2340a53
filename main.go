package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	pooltop "github.com/jondoveston/pooltop/internal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

var cfgFile string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pooltop",
	Short: "Terminal dashboard for a Monero mining pool",
	Long: `pooltop shows network, pool and wallet statistics of a Monero mining
pool together with 24 hour hashrate charts, refreshed every minute.

Examples:
  pooltop
  pooltop login 4AdUndXHHZ6cfufTMvppY6JwXNouMBzSkbLYfpAV5Usx3skxNgYeYTRj5UzqtReoS44qo9mtmXCqY45DJ852K5Jv2684Rge
  pooltop export --out ./charts
  POOLTOP_API_URL=https://pool.example/api pooltop watch`,
	Args:              cobra.NoArgs,
	Version:           version,
	PersistentPreRunE: initConfig,
	RunE:              runDashboard,
	SilenceUsage:      true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/pooltop/config.yaml)")
	flags.String("api-url", pooltop.DEFAULT_API_URL, "pool API base URL")
	flags.String("bonus-url", pooltop.DEFAULT_BONUS_URL, "bonus hashrate API URL")
	flags.String("price-url", pooltop.DEFAULT_PRICE_URL, "coin price API URL")
	flags.Duration("refresh-interval", pooltop.RefreshDuration(), "time between refresh cycles")
	flags.String("log-file", "pooltop.log", "log file used while the dashboard owns the terminal")
	flags.String("address", "", "wallet address to track (overrides the stored one)")
	flags.Bool("debug", false, "enable debug logging")

	// dashes in flags become underscores in viper keys
	for _, key := range []string{"api_url", "bonus_url", "price_url", "refresh_interval", "log_file", "address", "debug"} {
		if err := viper.BindPFlag(key, flags.Lookup(flagName(key))); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("pooltop")
	viper.AutomaticEnv()

	rootCmd.AddCommand(watchCmd, exportCmd, loginCmd, logoutCmd, thresholdCmd, emailCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	return nil
}

func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pooltop", "config.yaml"), nil
}

// newLogger writes JSON to the log file when the dashboard owns the
// terminal and console lines to stderr otherwise
func newLogger(toFile bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if toFile {
		cfg = zap.NewProductionConfig()
		cfg.Sampling = nil
		cfg.OutputPaths = []string{viper.GetString("log_file")}
		cfg.ErrorOutputPaths = []string{viper.GetString("log_file")}
	}
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if viper.GetBool("debug") {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// app holds everything a command needs to talk to the pool
type app struct {
	client    *pooltop.Client
	refresher *pooltop.Refresher
	metrics   *pooltop.Metrics
	state     *pooltop.State
	log       *zap.Logger
}

func newApp(log *zap.Logger) (*app, error) {
	sources, err := pooltop.ParseSources(
		viper.GetString("api_url"),
		viper.GetString("bonus_url"),
		viper.GetString("price_url"),
	)
	if err != nil {
		return nil, err
	}

	address := viper.GetString("address")
	if address != "" {
		if address, err = pooltop.ValidateAddress(address); err != nil {
			return nil, err
		}
	}

	client := pooltop.NewClient(sources, log)
	state := pooltop.NewState(address)
	metrics := pooltop.NewMetrics()
	return &app{
		client:    client,
		refresher: pooltop.NewApp(client, pooltop.NewPriceService(sources), state, metrics, log),
		metrics:   metrics,
		state:     state,
		log:       log,
	}, nil
}

// followStoredAddress switches the tracked wallet when login or logout
// rewrites the config file of a running process
func followStoredAddress(a *app) {
	viper.OnConfigChange(func(e fsnotify.Event) {
		if err := a.refresher.Track(viper.GetString("address")); err != nil {
			a.log.Warn("ignoring stored address", zap.String("file", e.Name), zap.Error(err))
		}
	})
	viper.WatchConfig()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	log, err := newLogger(true)
	if err != nil {
		return err
	}
	defer log.Sync()
	log.Info("starting pooltop", zap.String("version", version))

	a, err := newApp(log)
	if err != nil {
		return err
	}

	followStoredAddress(a)

	ctx, cancel := signalContext()
	defer cancel()
	return pooltop.Dashboard(ctx, a.refresher, viper.GetDuration("refresh_interval"), log)
}

func flagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}
