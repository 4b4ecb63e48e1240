// Command domreplay replays a recorded DOM transition log against a
// live page over the Chrome DevTools Protocol.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/odvcencio/domreplay/pkg/browser"
	"github.com/odvcencio/domreplay/pkg/browser/adapters/cdp"
	"github.com/odvcencio/domreplay/pkg/config"
	"github.com/odvcencio/domreplay/pkg/logging"
	"github.com/odvcencio/domreplay/pkg/replay"
)

// Version information - set via ldflags during build
var (
	version   = "1.0.0-dev"
	commit    = "unknown"
	buildDate = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "domreplay: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  = flag.String("config", "", "path to domreplay.yaml")
		endpoint    = flag.String("endpoint", "", "DevTools websocket URL (overrides config)")
		inputPath   = flag.String("in", "", "JSONL replay log to play back (required)")
		outputPath  = flag.String("out", "", "where to write the transitions produced by playback")
		showVersion = flag.Bool("version", false, "print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("domreplay %s (%s, built %s)\n", version, commit, buildDate)
		return nil
	}
	if *inputPath == "" {
		return fmt.Errorf("-in is required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *endpoint != "" {
		cfg.Browser.EndpointURL = *endpoint
	}
	if cfg.Browser.EndpointURL == "" {
		return fmt.Errorf("no DevTools endpoint configured (-endpoint or browser.endpoint_url)")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := buildLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Close()

	registry := prometheus.NewRegistry()
	metrics := replay.NewMetrics(registry)
	if cfg.Metrics.Listen != "" {
		go serveMetrics(cfg.Metrics.Listen, registry)
	}

	in, err := os.Open(*inputPath)
	if err != nil {
		return fmt.Errorf("failed to open replay log: %w", err)
	}
	log, err := replay.ReadJSONL(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("failed to read replay log: %w", err)
	}
	logger.Info(logging.CategoryReplay, "log_loaded", *inputPath, map[string]any{
		"entries": log.Len(),
		"depth":   log.Depth(),
	})

	runtime, err := cdp.NewRuntime(cdp.Config{
		EndpointURL:      cfg.Browser.EndpointURL,
		ConnectTimeout:   cfg.Browser.ConnectTimeout(),
		OperationTimeout: cfg.Browser.OperationTimeout(),
	})
	if err != nil {
		return err
	}
	manager := browser.NewManager(runtime)
	defer manager.Close()

	sessCfg := browser.DefaultSessionConfig()
	sessCfg.InitialURL = cfg.Browser.InitialURL
	sessCfg.UserAgent = cfg.Browser.UserAgent
	sess, err := manager.CreateSession(ctx, sessCfg)
	if err != nil {
		return fmt.Errorf("failed to open browser session: %w", err)
	}
	logger.Info(logging.CategorySession, "session_created", sess.ID(), nil)

	replayer := replay.NewReplayer(sess).WithLogger(logger).WithMetrics(metrics)
	result, replayErr := replayer.Replay(ctx, log)

	fmt.Printf("replayed %d, skipped %d, failed %d (produced %d)\n",
		result.Replayed, result.Skipped, result.Failed, result.Produced.Len())

	if *outputPath != "" {
		out, err := os.Create(*outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output log: %w", err)
		}
		defer out.Close()
		if err := replay.WriteJSONL(out, result.Produced); err != nil {
			return fmt.Errorf("failed to write output log: %w", err)
		}
	}
	return replayErr
}

func buildLogger(cfg config.LoggingConfig) (*logging.Logger, error) {
	var logger *logging.Logger
	if cfg.File != "" {
		var err error
		logger, err = logging.NewFileLogger(cfg.File, "")
		if err != nil {
			return nil, err
		}
	} else {
		logger = logging.NewLogger(os.Stderr, "")
	}
	if cfg.Level != "" {
		logger.SetMinLevel(logging.Level(cfg.Level))
	}
	return logger, nil
}

func serveMetrics(addr string, registry *prometheus.Registry) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	// Best effort; a failed metrics listener must not kill the replay.
	_ = http.ListenAndServe(addr, mux)
}
