package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	client "github.com/mutablelogic/go-client"
	"github.com/spf13/pflag"

	"github.com/JaimeStill/agent-meet/internal/agents"
	"github.com/JaimeStill/agent-meet/internal/config"
	"github.com/JaimeStill/agent-meet/internal/meetings"
	"github.com/JaimeStill/agent-meet/pkg/logging"
	"github.com/JaimeStill/agent-meet/pkg/querycache"
	"github.com/JaimeStill/agent-meet/pkg/rpc"
)

type options struct {
	configDir string
	baseURL   string
	timeout   time.Duration
	logFile   string
}

func (o *options) addFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.configDir, "config-dir", ".", "directory holding config.toml")
	fs.StringVar(&o.baseURL, "url", "", "RPC endpoint (default: client.base_url)")
	fs.DurationVar(&o.timeout, "timeout", 0, "per-call timeout (default: client.timeout)")
	fs.StringVar(&o.logFile, "log-file", "", "log file (default: logging.file or agentctl.log)")
}

// app holds the collaborators shared by every command.
type app struct {
	logger   *slog.Logger
	cache    *querycache.Cache
	agents   *agents.Client
	meetings *meetings.Client
}

func newApp(opts options) (*app, error) {
	cfg, err := config.LoadDir(opts.configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := newLogger(cfg.Logging, opts.logFile)

	baseURL := cfg.Client.BaseURL
	if opts.baseURL != "" {
		baseURL = opts.baseURL
	}
	timeout := cfg.Client.TimeoutDuration()
	if opts.timeout > 0 {
		timeout = opts.timeout
	}

	caller, err := rpc.NewClient(baseURL,
		client.OptTimeout(timeout),
		client.OptUserAgent("agentctl/"+cfg.Version),
	)
	if err != nil {
		return nil, err
	}
	cache := querycache.New(logger)

	logger.Info("agentctl started", "url", baseURL, "timeout", timeout)

	return &app{
		logger:   logger,
		cache:    cache,
		agents:   agents.NewClient(caller, cache),
		meetings: meetings.NewClient(caller, cache),
	}, nil
}

// newLogger writes to the rotating file only; the terminal belongs to the
// command output and the form.
func newLogger(cfg logging.Config, file string) *slog.Logger {
	cfg.Output = logging.OutputFile
	switch {
	case file != "":
		cfg.File = file
	case cfg.File == "":
		cfg.File = filepath.Join(".", "agentctl.log")
	}
	return logging.New(&cfg)
}
