package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/yotei-chat/yotei/pkg/api"
	"github.com/yotei-chat/yotei/pkg/config"
	"github.com/yotei-chat/yotei/pkg/headless"
	"github.com/yotei-chat/yotei/pkg/logger"
	"github.com/yotei-chat/yotei/pkg/tui"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:          "yotei",
	Short:        "Chat client for the calendar scheduling assistant",
	Long:         `Terminal chat client that streams replies from the scheduling backend and keeps a local transcript.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setup(); err != nil {
			return err
		}

		prompt := viper.GetString("prompt")
		headlessMode := viper.GetBool("headless")
		continueHistory := viper.GetBool("continue")

		if headlessMode || prompt != "" {
			runner, err := headless.NewRunner(continueHistory)
			if err != nil {
				return fmt.Errorf("failed to initialize headless mode: %w", err)
			}
			return runner.Run(cmd.Context(), prompt)
		}

		return tui.StartApp(continueHistory)
	},
}

// setup loads config and initializes logging. Every subcommand runs it
// before touching the backend.
func setup() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// newClient builds a backend client from global config after setup.
func newClient() (*api.Client, error) {
	if err := setup(); err != nil {
		return nil, err
	}
	settings := config.Get()
	return api.NewClientWithTimeout(settings.Server.URL, settings.ServerTimeout()), nil
}

func Execute() {
	err := rootCmd.Execute()
	logger.Close()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", ".yotei/settings.yaml", "config file (default is .yotei/settings.yaml)")

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().StringP("server", "s", "", "backend server URL")
	viper.BindPFlag("server.url", rootCmd.PersistentFlags().Lookup("server"))

	rootCmd.PersistentFlags().Bool("continue", false, "continue from previous chat history instead of starting fresh")
	viper.BindPFlag("continue", rootCmd.PersistentFlags().Lookup("continue"))

	rootCmd.PersistentFlags().StringP("prompt", "p", "", "execute a prompt directly without entering TUI")
	viper.BindPFlag("prompt", rootCmd.PersistentFlags().Lookup("prompt"))

	rootCmd.PersistentFlags().BoolP("headless", "H", false, "run without TUI (requires --prompt)")
	viper.BindPFlag("headless", rootCmd.PersistentFlags().Lookup("headless"))

	config.SetDefaults()
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}

	viper.SetEnvPrefix("YOTEI")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
