// Package cmd implements the TripWing command line interface.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tripwing/tripwing/internal/config"
	"github.com/tripwing/tripwing/internal/llm"
	"github.com/tripwing/tripwing/internal/logger"
	"github.com/tripwing/tripwing/internal/memory"
	"github.com/tripwing/tripwing/internal/planner"
	"github.com/tripwing/tripwing/store"
)

var (
	cfgFile string
	verbose bool
	version = "0.1.0"
)

var rootCmd = &cobra.Command{
	Use:     "tripwing",
	Short:   "TripWing answers questions about your trip and reshapes your days.",
	Long:    `TripWing is the reasoning core of a trip planner: it indexes your itinerary into a semantic memory, answers questions from it, finds free time and replans days either in the cloud or fully on-device.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetCommand(cmd.Name())
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

// Execute runs the root command. Called by main.main().
func Execute() {
	defer logger.HandlePanic()
	logger.SetVersion(version)
	if dir, err := config.GetGlobalConfigDir(); err == nil {
		logger.SetBasePath(dir)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ~/.tripwing/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// getStore opens the trip store under the configured data directory.
func getStore() (store.TripStore, error) {
	s, err := store.NewOSTripStore(config.GetTripsPath())
	if err != nil {
		return nil, fmt.Errorf("open trip store: %w", err)
	}
	return s, nil
}

// getMemory opens the memory service over the SQLite chunk store and the
// configured embedding provider. The caller must Close the returned store.
func getMemory() (*memory.Service, *memory.SQLiteStore, error) {
	llmCfg, err := config.LoadLLMConfig()
	if err != nil {
		return nil, nil, err
	}
	chunkStore, err := memory.NewSQLiteStore(config.GetDataBasePath())
	if err != nil {
		return nil, nil, fmt.Errorf("open memory store: %w", err)
	}
	return memory.NewService(chunkStore, llm.NewEinoEmbedder(llmCfg)), chunkStore, nil
}

// getCompleter builds the completion engine and its readiness probe.
func getCompleter() (llm.Completer, llm.Readiness, error) {
	llmCfg, err := config.LoadLLMConfig()
	if err != nil {
		return nil, nil, err
	}
	return llm.NewEinoCompleter(llmCfg), getReadiness(llmCfg), nil
}

// getReadiness returns the "engine available" probe: for Ollama a live
// check that the model is downloaded, for cloud providers the presence of
// an API key.
func getReadiness(cfg llm.Config) llm.Readiness {
	if cfg.Provider == llm.ProviderOllama {
		return llm.NewOllamaReadiness(cfg.BaseURL, cfg.Model)
	}
	hasKey := cfg.APIKey != ""
	return llm.ReadyFunc(func(ctx context.Context) bool { return hasKey })
}

// getRouter wires the hybrid planning router.
func getRouter(mem *memory.Service, trips store.TripStore) (*planner.Router, error) {
	completer, readiness, err := getCompleter()
	if err != nil {
		return nil, err
	}
	cloudCfg := config.LoadCloudConfig()
	var cloud planner.CloudPlanner
	if cloudCfg.BaseURL != "" {
		cloud = planner.NewHTTPCloudPlanner(cloudCfg.BaseURL, cloudCfg.APIKey)
	}
	connectivity := planner.Connectivity(planner.NewHTTPConnectivity())
	if cloud == nil {
		// No cloud endpoint configured: never route to cloud.
		connectivity = planner.OnlineFunc(func(ctx context.Context) bool { return false })
	}
	return planner.NewRouter(cloud, connectivity, completer, readiness, mem, trips), nil
}

// setupLogging routes slog to stderr, debug level when --verbose.
func setupLogging() {
	level := slog.LevelInfo
	if verbose || viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
