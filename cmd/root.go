// -- cmd/root.go --
package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/guided-explorer/internal/config"
	"github.com/xkilldash9x/guided-explorer/internal/observability"
)

type contextKey string

const configKey contextKey = "config"

// rootFlags holds the persistent flags shared by every subcommand.
type rootFlags struct {
	cfgFile    string
	endpoint   string
	model      string
	appPackage string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "guided-explorer",
		Short:         "LLM-guided action selection for automated Android UI exploration.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v := viper.New()
			config.SetDefaults(v)

			// 1. Initialize configuration loading
			if err := initializeConfig(v, flags.cfgFile); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}

			// 2. Create the configuration object from viper.
			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				return fmt.Errorf("failed to load or validate config: %w", err)
			}
			applyFlagOverrides(cmd, flags, cfg)

			// 3. Initialize the logger with the loaded config. Logs go to
			// stderr; stdout carries the JSON results.
			observability.InitializeLogger(cfg.Logger())
			observability.GetLogger().Debug("Starting guided-explorer",
				zap.String("version", Version),
				zap.String("provider", string(cfg.LLM().Provider)),
				zap.String("model", cfg.LLM().Model))

			// 4. Store the validated config in the command's context for subcommands.
			cmd.SetContext(context.WithValue(cmd.Context(), configKey, cfg))
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.cfgFile, "config", "c", "", "config file (default is ./config.yaml or ~/.guided-explorer/config.yaml)")
	cmd.PersistentFlags().StringVar(&flags.endpoint, "endpoint", "", "inference endpoint URL (overrides llm.endpoint)")
	cmd.PersistentFlags().StringVar(&flags.model, "model", "", "model name (overrides llm.model)")
	cmd.PersistentFlags().StringVar(&flags.appPackage, "package", "", "package of the application under exploration")
	cmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	cmd.AddCommand(newDecideCmd())
	cmd.AddCommand(newPromptCmd())
	cmd.AddCommand(newReplayCmd())
	cmd.AddCommand(newFollowCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// Execute runs the command tree with the given (signal-aware) context.
func Execute(ctx context.Context) error {
	err := NewRootCmd().ExecuteContext(ctx)
	observability.Sync()
	return err
}

// initializeConfig reads in config file and ENV variables if set.
func initializeConfig(v *viper.Viper, cfgFile string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".guided-explorer"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("GUIDED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults/env vars
	}
	return nil
}

func applyFlagOverrides(cmd *cobra.Command, flags *rootFlags, cfg config.Interface) {
	if cmd.Flags().Changed("endpoint") {
		cfg.SetLLMEndpoint(flags.endpoint)
	}
	if cmd.Flags().Changed("model") {
		cfg.SetLLMModel(flags.model)
	}
	if cmd.Flags().Changed("package") {
		cfg.SetExplorerAppPackage(flags.appPackage)
	}
}

// getConfigFromContext retrieves the validated configuration stored by the
// root command's PersistentPreRunE.
func getConfigFromContext(ctx context.Context) (config.Interface, error) {
	cfg, ok := ctx.Value(configKey).(config.Interface)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("configuration not found in context")
	}
	return cfg, nil
}
