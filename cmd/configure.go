package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tripwing/tripwing/internal/config"
	"github.com/tripwing/tripwing/internal/llm"
)

var (
	configProvider string
	configModel    string
	configKey      string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage TripWing configuration",
}

var configLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Save the completion engine provider, model and API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, err := llm.ValidateProvider(configProvider)
		if err != nil {
			return err
		}
		if err := config.SaveGlobalLLMConfig(provider, configModel, configKey); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		model := configModel
		if model == "" {
			model = llm.DefaultModelForProvider(provider)
		}
		fmt.Printf("Saved: provider=%s model=%s\n", provider, model)
		return nil
	},
}

func init() {
	configLLMCmd.Flags().StringVar(&configProvider, "provider", llm.DefaultProvider, "openai, ollama, anthropic or gemini")
	configLLMCmd.Flags().StringVar(&configModel, "model", "", "chat model (provider default if empty)")
	configLLMCmd.Flags().StringVar(&configKey, "key", "", "API key (not needed for ollama)")

	configCmd.AddCommand(configLLMCmd)
	rootCmd.AddCommand(configCmd)
}
