package config

import (
	"flag"
	"os"
	"time"

	"careportal/internal/flagx"
)

// parseFlags overlays command line flags onto cfg. Only the flags owned by
// this package are parsed; -c/-config are handled by parseJson.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-s", "-t"})

	var (
		baseURL  string
		stateDir string
		timeout  int
	)

	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	fs.StringVar(&baseURL, "a", "", "API base URL")
	fs.StringVar(&stateDir, "s", "", "Directory for local client state")
	fs.IntVar(&timeout, "t", 0, "Request timeout in seconds")
	_ = fs.Parse(args)

	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if stateDir != "" {
		cfg.StateDir = stateDir
	}
	if timeout > 0 {
		cfg.RequestTimeout = time.Duration(timeout) * time.Second
	}
}
