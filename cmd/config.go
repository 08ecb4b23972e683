package cmd

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tripwing/tripwing/internal/config"
)

const envPrefix = "TRIPWING"

// initConfig loads .env, binds environment variables and reads the config
// file. Called once through cobra.OnInitialize.
func initConfig() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if dir, err := config.GetGlobalConfigDir(); err == nil {
			viper.AddConfigPath(dir)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Warn("config file unreadable", "file", viper.ConfigFileUsed(), "error", err)
		}
	}

	setupLogging()
}
