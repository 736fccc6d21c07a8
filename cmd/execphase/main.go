package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rickgao/kalshi-oracle/internal/api"
	"github.com/rickgao/kalshi-oracle/internal/config"
	"github.com/rickgao/kalshi-oracle/internal/database"
	"github.com/rickgao/kalshi-oracle/internal/host"
	"github.com/rickgao/kalshi-oracle/internal/journal"
	"github.com/rickgao/kalshi-oracle/internal/phase"
	"github.com/rickgao/kalshi-oracle/internal/replay"
	"github.com/rickgao/kalshi-oracle/internal/simulate"
	"github.com/rickgao/kalshi-oracle/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

type flags struct {
	configPath  string
	input       string
	inputSet    bool
	replayPath  string
	capturePath string
	nodes       int
	showVersion bool
}

func parseFlags(args []string, stderr io.Writer) (*flags, error) {
	fs := flag.NewFlagSet("execphase", flag.ContinueOnError)
	fs.SetOutput(stderr)

	f := &flags{}
	fs.StringVar(&f.configPath, "config", "", "path to config file (optional)")
	fs.StringVar(&f.input, "input", "", "market ticker input; read from stdin when not set")
	fs.StringVar(&f.replayPath, "replay", "", "serve a captured response instead of calling the API")
	fs.StringVar(&f.capturePath, "capture", "", "write the upstream response to this file")
	fs.IntVar(&f.nodes, "nodes", 0, "number of simulated nodes (overrides simulate.nodes)")
	fs.BoolVar(&f.showVersion, "version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(fl *flag.Flag) {
		if fl.Name == "input" {
			f.inputSet = true
		}
	})
	return f, nil
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	f, err := parseFlags(args, stderr)
	if err != nil {
		return host.ExitStartup
	}
	if f.showVersion {
		fmt.Fprintln(stdout, version.String())
		return host.ExitSuccess
	}

	cfg, err := config.LoadAndValidate(f.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "load config: %v\n", err)
		return host.ExitStartup
	}

	// Set up structured logging
	logger := newLogger(cfg.Log, stderr)
	slog.SetDefault(logger)

	logger.Info("starting execution phase",
		version.Attr(),
		"instance_id", cfg.Instance.ID,
		"api_url", cfg.API.RestURL,
		"config", f.configPath,
	)

	verbosity, _ := phase.ParseVerbosity(cfg.Phase.LogVerbosity)
	opts := phase.Options{
		BaseURL:      cfg.API.RestURL,
		PinnedTicker: cfg.Phase.PinnedTicker,
		Verbosity:    verbosity,
	}

	input, err := readInput(f, stdin, cfg.Phase.PinnedTicker != "")
	if err != nil {
		logger.Error("failed to read input", "error", err)
		return host.ExitStartup
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fetcher, recorder, err := newFetcher(f, cfg, logger)
	if err != nil {
		logger.Error("failed to set up fetcher", "error", err)
		return host.ExitStartup
	}

	var store *journal.Store
	if cfg.Journal.Enabled {
		logger.Info("connecting to journal database",
			"host", cfg.Journal.Database.Host,
			"port", cfg.Journal.Database.Port,
			"database", cfg.Journal.Database.Name,
		)
		pool, err := database.Connect(ctx, cfg.Journal.Database)
		if err != nil {
			logger.Error("failed to connect to journal database", "error", err)
			return host.ExitStartup
		}
		defer pool.Close()

		store = journal.NewStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Error("failed to prepare journal", "error", err)
			return host.ExitStartup
		}
	}

	nodes := cfg.Simulate.Nodes
	if f.nodes > 0 {
		nodes = f.nodes
	}

	var code int
	if nodes > 1 {
		code = runNodes(ctx, nodes, cfg, input, fetcher, store, opts, stdout, logger)
	} else {
		code = runOnce(ctx, cfg, input, fetcher, store, opts, stdout, logger)
	}

	if recorder != nil {
		saveCapture(recorder, f.capturePath, logger)
	}

	logger.Info("execution phase finished", "exit_code", code)
	return code
}

func runOnce(ctx context.Context, cfg *config.PhaseConfig, input []byte, fetcher phase.Fetcher,
	store *journal.Store, opts phase.Options, stdout io.Writer, logger *slog.Logger) int {
	proc := host.NewProcess(stdout, logger)

	o, err := phase.Execute(ctx, phase.Host{
		Input:    input,
		Fetcher:  fetcher,
		Reporter: proc,
		Logger:   logger,
	}, opts)
	if err != nil {
		logger.Error("execution phase aborted", "ticker", o.Ticker, "error", err)
	}
	if perr := proc.Err(); perr != nil {
		logger.Error("host report failed", "error", perr)
	}

	if store != nil {
		entry := journal.NewEntry(uuid.New(), cfg.Instance.ID, 0, o, time.Now())
		if err := store.Record(ctx, entry); err != nil {
			logger.Warn("failed to journal outcome", "error", err)
		}
	}

	return proc.ExitCode(err)
}

func runNodes(ctx context.Context, nodes int, cfg *config.PhaseConfig, input []byte, fetcher phase.Fetcher,
	store *journal.Store, opts phase.Options, stdout io.Writer, logger *slog.Logger) int {
	results, err := simulate.Run(ctx, nodes, 0, func(node int) phase.Host {
		return phase.Host{
			Input:   input,
			Fetcher: fetcher,
			Logger:  logger.With("node", node),
		}
	}, opts)
	if err != nil {
		logger.Error("node simulation failed", "error", err)
		return host.ExitHardFailure
	}

	for _, r := range results {
		fmt.Fprintf(stdout, "node %d: %s\n", r.Node, r.Signature())
	}

	if store != nil {
		now := time.Now()
		entries := make([]journal.Entry, 0, len(results))
		for _, r := range results {
			entries = append(entries, journal.NewEntry(uuid.New(), cfg.Instance.ID, r.Node, r.Outcome, now))
		}
		if err := store.RecordAll(ctx, entries); err != nil {
			logger.Warn("failed to journal outcomes", "error", err)
		}
	}

	if !simulate.Agree(results) {
		logger.Error("nodes disagree", "tally", simulate.Tally(results))
		return host.ExitHardFailure
	}

	logger.Info("nodes agree", "nodes", nodes, "outcome", results[0].Signature())
	return host.ExitCodeFor(results[0].Outcome.Kind)
}

func readInput(f *flags, stdin io.Reader, pinned bool) ([]byte, error) {
	if f.inputSet {
		return []byte(f.input), nil
	}
	if pinned {
		return nil, nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return data, nil
}

func newFetcher(f *flags, cfg *config.PhaseConfig, logger *slog.Logger) (phase.Fetcher, *replay.Recorder, error) {
	var fetcher phase.Fetcher
	if f.replayPath != "" {
		c, err := replay.Load(f.replayPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("replaying captured response", "path", f.replayPath, "status", c.Status)
		fetcher = replay.NewFetcher(c)
	} else {
		fetcher = api.NewClient(
			api.WithLogger(logger),
			api.WithTimeout(cfg.API.Timeout),
		)
	}

	if f.capturePath == "" {
		return fetcher, nil, nil
	}
	recorder := replay.NewRecorder(fetcher)
	return recorder, recorder, nil
}

func saveCapture(recorder *replay.Recorder, path string, logger *slog.Logger) {
	c := recorder.Last()
	if c == nil {
		logger.Warn("no upstream response to capture", "path", path)
		return
	}
	if err := c.Save(path); err != nil {
		logger.Error("failed to save capture", "path", path, "error", err)
		return
	}
	logger.Info("captured upstream response", "path", path, "status", c.Status)
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
