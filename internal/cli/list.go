package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rshade/jobfeed/internal/cli/pagination"
	"github.com/rshade/jobfeed/internal/config"
	"github.com/rshade/jobfeed/internal/feed"
	"github.com/rshade/jobfeed/internal/jobs"
	"github.com/rshade/jobfeed/internal/logging"
)

// listParams holds the list command flags.
type listParams struct {
	pagination.PaginationParams

	sort   string
	output string
}

// NewListCmd creates the list command, which walks server pages through the
// same paging state machine as the interactive screen and prints the result.
func NewListCmd() *cobra.Command {
	params := listParams{PaginationParams: *pagination.NewPaginationParams()}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print job postings",
		Long: `Fetches one or more consecutive pages of job postings and prints them.

The walk starts at --page and stops after --pages pages, at the first empty
page, or at the first failed page. Postings already fetched are still printed
when a later page fails.`,
		Example: `  # Print the first page
  jobfeed list

  # Print pages 2 to 4 sorted by title
  jobfeed list --page 2 --pages 3 --sort title

  # Stream the first 25 postings as NDJSON
  jobfeed list --pages 5 --limit 25 --output ndjson`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, params)
		},
	}

	cmd.Flags().IntVar(&params.Page, "page", pagination.DefaultPage, "first page to fetch (1-based)")
	cmd.Flags().IntVar(&params.Pages, "pages", pagination.DefaultPages, "number of consecutive pages to fetch")
	cmd.Flags().IntVar(&params.Limit, "limit", pagination.DefaultLimit, "maximum number of postings to print (0 = all)")
	cmd.Flags().StringVar(&params.sort, "sort", "", "sort by field[:order]; fields: id, title, place")
	cmd.Flags().StringVar(&params.output, "output", string(outputTable), "Output format: table, json, or ndjson")

	return cmd
}

func runList(cmd *cobra.Command, params listParams) error {
	ctx := cmd.Context()
	log := logging.FromContext(ctx)

	if err := params.Validate(); err != nil {
		return fmt.Errorf("invalid pagination: %w", err)
	}
	format, err := parseOutputFormat(params.output)
	if err != nil {
		return err
	}
	field, order, err := pagination.ParseSort(params.sort)
	if err != nil {
		return err
	}
	sorter := pagination.NewPostingSorter()
	if err = sorter.ValidateField(field); err != nil {
		return err
	}

	cfg, err := runtimeConfig()
	if err != nil {
		return err
	}
	walk, err := walkPages(ctx, newJobsClient(cfg), cfg, params.PaginationParams)
	if err != nil {
		log.Error().Ctx(ctx).Err(err).Int("page", params.Page).Msg("listing failed")
		return err
	}
	if walk.state.LastError != "" {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", walk.state.LastError)
	}

	postings := sorter.Sort(walk.state.Items, field, order)
	postings = pagination.ApplyLimit(params.PaginationParams, postings)
	meta := pagination.NewPaginationMeta(
		params.PaginationParams,
		walk.pages,
		len(walk.state.Items),
		len(postings),
		walk.state.HasMore,
		walk.state.Cursor,
	)

	log.Debug().Ctx(ctx).
		Int("pages", walk.pages).
		Int("items", len(walk.state.Items)).
		Bool("has_more", walk.state.HasMore).
		Msg("listing complete")

	return renderPostings(cmd.OutOrStdout(), format, postings, meta, walk.state.LastError)
}

// walkResult is the final state of a page walk.
type walkResult struct {
	state feed.State
	// pages counts the pages that loaded successfully.
	pages int
}

// walkPages drives a feed.Controller from params.Page for up to params.Pages
// pages. It fails only when nothing could be loaded.
func walkPages(
	ctx context.Context,
	fetcher feed.Fetcher,
	cfg *config.Config,
	params pagination.PaginationParams,
) (walkResult, error) {
	log := logging.ComponentLogger(*logging.FromContext(ctx), "list")

	ctrl := feed.NewController(fetcher,
		feed.WithTimeout(cfg.API.Timeout),
		feed.WithOptions(feed.Options{ClearErrorOnSuccess: cfg.UI.ClearErrorOnSuccess}),
		feed.WithObserver(feed.ObserverFunc(func(prev, next feed.State, _ feed.Event) {
			if len(next.Items) != len(prev.Items) {
				log.Debug().Int("items", len(next.Items)).Int("cursor", next.Cursor).Msg("page committed")
			}
		})),
	)
	defer ctrl.Close()

	var result walkResult
	state := ctrl.LoadPage(ctx, params.Page, false)
	for {
		if state.LastError != "" {
			break
		}
		result.pages++
		if !state.HasMore || result.pages >= params.Pages || ctx.Err() != nil {
			break
		}
		state = ctrl.RequestNextPage(ctx)
	}
	result.state = state

	if state.LastError != "" && len(state.Items) == 0 {
		return result, fmt.Errorf("%s: %w", state.LastError, jobs.ErrFetch)
	}
	return result, nil
}
