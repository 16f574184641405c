// geodsolve solves inverse geodesic problems.
// Reads "lat1 lon1 lat2 lon2" lines (degrees) from stdin and writes
// "azi1 azi2 s12" lines, or the full geodesic record with -f, to stdout.
// Logs go to stderr.
//
// Usage:
//
//	echo 40.6 -73.8 49.01666667 2.55 | geodsolve -p 0
//	geodsolve -config geodsolve.yaml -workers 8 -metrics-port 9090 < problems.txt
//
// Env vars:
//
//	ENV: logger environment: prod, local, dev (overrides logging.env)
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/lazylynx/geodesy/internal/config"
	logpkg "github.com/lazylynx/geodesy/internal/logger"
	"github.com/lazylynx/geodesy/internal/metrics"
	"github.com/lazylynx/geodesy/internal/solver"
	"github.com/lazylynx/geodesy/internal/version"
)

func main() {
	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout); err != nil {
		cancel()
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "geodsolve:", err)
		os.Exit(1)
	}
}

type cliFlags struct {
	configPath  string
	radius      float64
	flattening  float64
	precision   int
	full        bool
	longUnroll  bool
	workers     int
	metricsPort int
	logLevel    string
	version     bool

	set map[string]bool
}

func parseFlags(args []string) (cliFlags, error) {
	var f cliFlags
	fs := flag.NewFlagSet("geodsolve", flag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", "", "YAML config file (default: built-in WGS-84 settings)")
	fs.Float64Var(&f.radius, "a", 0, "equatorial radius in meters")
	fs.Float64Var(&f.flattening, "flat", 0, "flattening; values above 1 are taken as inverse flattening")
	fs.IntVar(&f.precision, "p", 0, "output precision in decimals of a meter")
	fs.BoolVar(&f.full, "f", false, "print the full geodesic record")
	fs.BoolVar(&f.longUnroll, "u", false, "unroll longitudes in the full record")
	fs.IntVar(&f.workers, "workers", 0, "number of solver workers")
	fs.IntVar(&f.metricsPort, "metrics-port", 0, "Prometheus metrics port (0 disables)")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}
	if fs.NArg() > 0 {
		return cliFlags{}, fmt.Errorf("unexpected arguments %q", fs.Args())
	}
	f.set = make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })
	return f, nil
}

// apply overrides cfg with the flags given on the command line.
func (f cliFlags) apply(cfg *config.Config) {
	if f.set["a"] {
		cfg.Ellipsoid.Radius = f.radius
	}
	if f.set["flat"] {
		cfg.Ellipsoid.Flattening, cfg.Ellipsoid.InverseFlattening = f.flattening, 0
		if f.flattening > 1 {
			cfg.Ellipsoid.Flattening, cfg.Ellipsoid.InverseFlattening = 0, f.flattening
		}
	}
	if f.set["p"] {
		cfg.Output.Precision = f.precision
	}
	if f.set["f"] {
		cfg.Output.Full = f.full
	}
	if f.set["u"] {
		cfg.Output.LongUnroll = f.longUnroll
	}
	if f.set["workers"] {
		cfg.Workers = f.workers
	}
	if f.set["metrics-port"] {
		cfg.Metrics.Port = f.metricsPort
	}
	if f.set["log-level"] {
		cfg.Logging.Level = f.logLevel
	}
	if env := os.Getenv("ENV"); env != "" {
		cfg.Logging.Env = env
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	if f.version {
		_, err := fmt.Fprintln(stdout, "geodsolve", version.String())
		return err
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	f.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, err := logpkg.NewLogger(cfg.Logging.Env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	e, err := cfg.NewEllipsoid()
	if err != nil {
		return err
	}

	logger.Info("starting geodsolve",
		zap.String("version", version.Version),
		zap.Float64("radius", e.EquatorialRadius()),
		zap.Float64("flattening", e.Flattening()),
		zap.Int("workers", cfg.Workers),
		zap.Bool("full", cfg.Output.Full),
	)

	reg := prometheus.NewRegistry()
	m := metrics.NewSolverMetrics(reg)
	if cfg.Metrics.Port > 0 {
		srv := serveMetrics(logger, cfg.Metrics.Port, reg)
		defer func() {
			shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutCancel()
			_ = srv.Shutdown(shutCtx)
		}()
	}

	r := solver.NewRunner(e, cfg.Workers, solver.Options{
		Precision:  cfg.Output.Precision,
		Full:       cfg.Output.Full,
		LongUnroll: cfg.Output.LongUnroll,
	}, m)
	st, err := r.Run(logpkg.ContextWithLogger(ctx, logger), stdin, stdout)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	logger.Info("done",
		zap.Int64("problems", st.Lines),
		zap.Int64("solved", st.Solved),
		zap.Int64("malformed", st.Malformed),
		zap.Duration("duration", st.Duration),
	)
	return nil
}

// serveMetrics starts the HTTP server for Prometheus scrapes.
func serveMetrics(logger *zap.Logger, port int, reg *prometheus.Registry) *http.Server {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(port),
		Handler:           metrics.Handler(reg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("metrics server listening", zap.String("addr", srv.Addr+"/metrics"))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", zap.Error(err))
		}
	}()

	return srv
}
