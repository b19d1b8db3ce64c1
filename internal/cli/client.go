package cli

import (
	"github.com/rshade/jobfeed/internal/config"
	"github.com/rshade/jobfeed/internal/jobs"
	"github.com/rshade/jobfeed/pkg/version"
)

// newJobsClient builds an API client from the effective configuration.
func newJobsClient(cfg *config.Config) *jobs.Client {
	client := jobs.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	client.UserAgent = cfg.API.UserAgent
	if client.UserAgent == "" {
		client.UserAgent = "jobfeed/" + version.GetVersion()
	}
	return client
}
