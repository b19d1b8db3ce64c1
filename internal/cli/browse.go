package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/jobfeed/internal/cli/pagination"
	"github.com/rshade/jobfeed/internal/feed"
	"github.com/rshade/jobfeed/internal/tui"
)

// NewBrowseCmd creates the browse command, the interactive job list.
func NewBrowseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse job postings interactively",
		Long: `Opens the interactive job list.

Cards show up to two lines of each title; press enter or space on a card to
expand it. Press r to refresh from the first page. Moving the selection to
the end of the list loads the next page automatically.

When standard output is not a terminal the first page is printed as a table
instead.`,
		Example: `  # Browse jobs
  jobfeed browse

  # Browse with a custom greeting
  jobfeed config set ui.greeting "Hello Asha" && jobfeed browse`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd)
		},
	}
}

func runBrowse(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := runtimeConfig()
	if err != nil {
		return err
	}

	if !isInteractive(cmd.OutOrStdout()) {
		logger.Debug().Ctx(ctx).Msg("output is not a terminal, printing the first page")
		return runList(cmd, listParams{
			PaginationParams: *pagination.NewPaginationParams(),
			output:           string(outputTable),
		})
	}

	model := tui.NewJobsModel(ctx, newJobsClient(cfg), tui.JobsOptions{
		Greeting:     cfg.UI.Greeting,
		Timeout:      cfg.API.Timeout,
		EndThreshold: cfg.UI.EndThreshold,
		Feed:         feed.Options{ClearErrorOnSuccess: cfg.UI.ClearErrorOnSuccess},
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive job browser: %w", err)
	}
	return nil
}

// isInteractive reports whether w is a terminal.
func isInteractive(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}
