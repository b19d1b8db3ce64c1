package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/jobfeed/internal/cli/pagination"
	"github.com/rshade/jobfeed/internal/jobs"
	"github.com/rshade/jobfeed/internal/tui"
)

// outputFormat selects how list results are printed.
type outputFormat string

const (
	outputTable  outputFormat = "table"
	outputJSON   outputFormat = "json"
	outputNDJSON outputFormat = "ndjson"
)

// tabPadding is the minimum column padding for tabwriter output.
const tabPadding = 2

// maxTableTitle is the widest title printed in table output.
const maxTableTitle = 60

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case outputTable, outputJSON, outputNDJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", s)
	}
}

// postingJSON is the wire shape of a posting in JSON output.
type postingJSON struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Place string `json:"place,omitempty"`
}

type listJSONOutput struct {
	Jobs       []postingJSON             `json:"jobs"`
	Pagination pagination.PaginationMeta `json:"pagination"`
	Error      string                    `json:"error,omitempty"`
}

type ndjsonSummary struct {
	Type       string `json:"type"`
	TotalCount int    `json:"total_count"`
	HasMore    bool   `json:"has_more"`
	Error      string `json:"error,omitempty"`
}

type ndjsonJob struct {
	Type string `json:"type"`
	postingJSON
}

func toPostingJSON(p jobs.Posting) postingJSON {
	return postingJSON{ID: p.ID, Title: p.Title, Place: p.Place}
}

func renderPostings(
	w io.Writer,
	format outputFormat,
	postings []jobs.Posting,
	meta pagination.PaginationMeta,
	fetchErr string,
) error {
	switch format {
	case outputJSON:
		return renderPostingsJSON(w, postings, meta, fetchErr)
	case outputNDJSON:
		err := renderPostingsNDJSON(w, postings, meta, fetchErr)
		// Piping into `head` closes stdout early; that is not a failure.
		if isBrokenPipe(err) {
			return nil
		}
		return err
	case outputTable:
		return renderPostingsTable(w, postings, meta)
	}
	return fmt.Errorf("unsupported output format: %s", format)
}

func renderPostingsJSON(
	w io.Writer,
	postings []jobs.Posting,
	meta pagination.PaginationMeta,
	fetchErr string,
) error {
	output := listJSONOutput{
		Jobs:       make([]postingJSON, 0, len(postings)),
		Pagination: meta,
		Error:      fetchErr,
	}
	for _, p := range postings {
		output.Jobs = append(output.Jobs, toPostingJSON(p))
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// renderPostingsNDJSON writes a summary line followed by one line per posting.
// Pagination metadata is left out; NDJSON is meant for line-by-line streaming.
func renderPostingsNDJSON(
	w io.Writer,
	postings []jobs.Posting,
	meta pagination.PaginationMeta,
	fetchErr string,
) error {
	encoder := json.NewEncoder(w)

	summary := ndjsonSummary{
		Type:       "summary",
		TotalCount: len(postings),
		HasMore:    meta.HasMore,
		Error:      fetchErr,
	}
	if err := encoder.Encode(summary); err != nil {
		return fmt.Errorf("encoding NDJSON summary: %w", err)
	}

	for _, p := range postings {
		if err := encoder.Encode(ndjsonJob{Type: "job", postingJSON: toPostingJSON(p)}); err != nil {
			return fmt.Errorf("encoding NDJSON job %d: %w", p.ID, err)
		}
	}
	return nil
}

func renderPostingsTable(w io.Writer, postings []jobs.Posting, meta pagination.PaginationMeta) error {
	printer := message.NewPrinter(language.English)

	if len(postings) == 0 {
		_, err := fmt.Fprintln(w, tui.EmptyLabel)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tPLACE")
	for _, p := range postings {
		title := p.Title
		if strings.TrimSpace(title) == "" {
			title = tui.NoTitleLabel
		}
		place := p.Place
		if !p.HasPlace() {
			place = tui.NoLocationLabel
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", p.ID, truncate(title, maxTableTitle), place)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	printer.Fprintf(w, "Showing %d of %d jobs (pages %d-%d)\n",
		meta.Returned, meta.TotalItems, meta.StartPage, meta.EndPage)
	if meta.HasMore {
		fmt.Fprintf(w, "More jobs available: jobfeed list --page %d\n", meta.NextPage)
	}
	return nil
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

// isBrokenPipe checks if the error is a broken pipe error (EPIPE).
func isBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EPIPE
	}
	return strings.Contains(err.Error(), "broken pipe")
}
