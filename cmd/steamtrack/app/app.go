// Package app wires the steamtrack CLI together: configuration loading,
// logger setup, lazy engine construction, and the cobra command tree.
package app

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"

	"github.com/steamtrack/steamtrack"
	"github.com/steamtrack/steamtrack/pkg/constants"
	"github.com/steamtrack/steamtrack/pkg/pins"
)

// App carries the CLI's dependencies.
type App struct {
	version string
	commit  string
	date    string

	config *Config
	logger *zerolog.Logger

	mu     sync.Mutex
	client *steamtrack.Client
}

// New creates an App, loading configuration and building the logger.
func New(version, commit, date string) (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := NewLogger(cfg)
	return &App{
		version: version,
		commit:  commit,
		date:    date,
		config:  cfg,
		logger:  &logger,
	}, nil
}

// Version returns the version string.
func (a *App) Version() string { return a.version }

// Config returns the loaded configuration.
func (a *App) Config() *Config { return a.config }

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger { return a.logger }

// Client returns the engine client, building it on first use.
func (a *App) Client() (*steamtrack.Client, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.client != nil {
		return a.client, nil
	}

	opts := []steamtrack.Option{
		steamtrack.WithRegion(a.config.Region()),
		steamtrack.WithRegionDetection(a.config.DetectRegion),
		steamtrack.WithPinStore(pins.NewFileStore(a.config.PinsFile)),
	}
	if a.config.Proxy != "" {
		opts = append(opts, steamtrack.WithProxy(a.config.Proxy))
	}

	client, err := steamtrack.New(opts...)
	if err != nil {
		return nil, err
	}
	a.client = client
	return client, nil
}

// Execute runs the root command with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.CommandTimeout)
	defer cancel()

	root := a.RootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// ExitOnError prints the error to stderr and exits non-zero.
func ExitOnError(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
