// -- cmd/root.go --
package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/ordinal/internal/config"
	"github.com/xkilldash9x/ordinal/internal/observability"
)

// NewRootCommand builds the ordinal command tree. Every call returns a fresh
// root with its own viper instance, so tests can execute commands without
// sharing flag or config state.
func NewRootCommand() *cobra.Command {
	root, _ := newRootCommand()
	return root
}

// newRootCommand returns the root command plus a pointer to its config
// variable, letting tests inspect the configuration a run resolved.
func newRootCommand() (*cobra.Command, *config.Interface) {
	var (
		cfgFile   string
		appConfig config.Interface
	)
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "ordinal",
		Short: "Ordinal renders HTML documents into styled box geometry.",
		Long: `Ordinal parses HTML and CSS from scratch, runs the cascade, and lays the
document out against a configurable viewport. It reports the resulting box
tree as text, JSON, or an indented tree dump.`,
		// Version is stamped at build time. See cmd/version.go.
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Runs before any subcommand, setting up config and logging.
			if err := initializeViper(v, cfgFile); err != nil {
				return err
			}

			cfg, err := config.NewConfigFromViper(v)
			if err != nil {
				// Bring up a fallback logger so the failure is visible.
				observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "ordinal"})
				return fmt.Errorf("failed to load config: %w", err)
			}
			appConfig = cfg

			observability.InitializeLogger(cfg.Logger())
			observability.GetLogger().Info("Starting ordinal", zap.String("version", Version))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./ordinal.yaml)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.AddCommand(newRenderCmd(&appConfig))

	return rootCmd, &appConfig
}

// Execute runs the root command under ctx and hands the error back to main,
// which maps it to an exit code.
func Execute(ctx context.Context) error {
	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		observability.GetLogger().Error("Command execution failed", zap.Error(err))
		return err
	}
	return nil
}

// initializeViper layers the config file and ORDINAL_* environment variables
// over the built-in defaults.
func initializeViper(v *viper.Viper, cfgFile string) error {
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("ordinal")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("ORDINAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// No config file; defaults and env vars carry the day.
	}
	return nil
}
