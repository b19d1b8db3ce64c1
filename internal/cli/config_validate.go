package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rshade/jobfeed/internal/config"
)

// NewConfigValidateCmd creates the config validate command for validating configuration.
func NewConfigValidateCmd() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate configuration file",
		Long: `Validates the configuration file together with environment overrides.

This includes:
- YAML syntax and known sections
- Schema version compatibility
- API base URL and timeout
- UI end-of-list threshold`,
		Example: `  # Validate current configuration
  jobfeed config validate

  # Validate and show the effective values
  jobfeed config validate --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfigValidate(cmd, verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show detailed validation information")

	return cmd
}

// runConfigValidate executes the configuration validation logic.
func runConfigValidate(cmd *cobra.Command, verbose bool) error {
	cfg, err := config.LoadFile()
	if err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	cfg.ApplyEnv(os.LookupEnv)

	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	cmd.Println("Configuration is valid")
	if verbose {
		cmd.Printf("Configuration file: %s\n", cfg.ConfigPath())
		printConfig(cmd, cfg)
	}
	return nil
}
