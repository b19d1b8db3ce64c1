package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/jobfeed/internal/config"
	"github.com/rshade/jobfeed/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the jobfeed CLI.
// It wires up configuration, logging, tracing, and the browse, list, and
// config subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "jobfeed",
		Short:   "Browse paginated job postings from the terminal",
		Long:    "jobfeed: browse job postings with pull-to-refresh, infinite scroll, and expandable titles",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyGlobalFlags(cmd); err != nil {
				return err
			}
			logResult = setupLogging(cmd)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("api-url", "", "jobs API base URL (overrides config file and JOBFEED_API_URL)")
	cmd.PersistentFlags().Duration("timeout", 0, "per-request timeout, e.g. 10s (overrides config file and JOBFEED_TIMEOUT)")
	cmd.AddCommand(NewBrowseCmd(), NewListCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Browse jobs interactively
  jobfeed browse

  # Print the first three pages as a table
  jobfeed list --pages 3

  # Print page 2 as JSON sorted by title
  jobfeed list --page 2 --sort title --output json

  # Use another API endpoint with a short timeout
  jobfeed browse --api-url http://localhost:8080 --timeout 5s

  # Initialize configuration
  jobfeed config init

  # Set configuration values
  jobfeed config set ui.greeting "Hello Asha"`

// applyGlobalFlags layers explicitly set global flags over the global
// configuration.
func applyGlobalFlags(cmd *cobra.Command) error {
	cfg := config.GetGlobalConfig()

	if cmd.Flags().Changed("api-url") {
		apiURL, _ := cmd.Flags().GetString("api-url")
		cfg.API.BaseURL = apiURL
	}
	if cmd.Flags().Changed("timeout") {
		timeout, _ := cmd.Flags().GetDuration("timeout")
		if timeout <= 0 {
			return fmt.Errorf("timeout must be positive, got %s", timeout)
		}
		cfg.API.Timeout = timeout
	}
	return nil
}

// runtimeConfig returns the validated global configuration for commands
// that talk to the API.
func runtimeConfig() (*config.Config, error) {
	cfg := config.GetGlobalConfig()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
