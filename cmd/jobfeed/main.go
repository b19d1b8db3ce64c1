// Command jobfeed browses paginated job postings from the terminal.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/jobfeed/internal/cli"
	"github.com/rshade/jobfeed/internal/jobs"
	"github.com/rshade/jobfeed/pkg/version"
)

// Process exit codes.
const (
	exitOK         = 0
	exitFailure    = 1
	exitFetchError = 2
)

func run(ctx context.Context, args []string) error {
	root := cli.NewRootCmd(version.GetVersion())
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// exitCode maps a command error to the process exit code. Network failures
// get their own code so scripts can retry them.
func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, jobs.ErrFetch):
		return exitFetchError
	default:
		return exitFailure
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	// cobra has already printed the error.
	err := run(ctx, os.Args[1:])
	stop()
	os.Exit(exitCode(err))
}
