package cli_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rshade/jobfeed/internal/cli"
	"github.com/rshade/jobfeed/internal/config"
)

// setupCLITest isolates config and logs in a temporary JOBFEED_HOME.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvTimeout, "")
	t.Setenv(config.EnvLogLevel, "error")
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// execute runs the root command and returns what it wrote to stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// newJobsServer serves the given bodies by page number. Missing pages are
// empty; a body of "500" answers with a server error.
func newJobsServer(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/common/jobs" {
			http.NotFound(w, r)
			return
		}
		body, ok := pages[r.URL.Query().Get("page")]
		switch {
		case !ok:
			body = `{"results":[]}`
		case body == "500":
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const (
	pageOne = `{"results":[
		{"id":1,"title":"Delivery Driver","primary_details":{"Place":"Pune"}},
		{"id":2,"title":"Cook","primary_details":{"Place":"Delhi"}}
	]}`
	pageTwo = `{"results":[
		{"id":3,"title":"Accountant","primary_details":{"Place":"Agra"}},
		{"id":4,"title":""}
	]}`
)
