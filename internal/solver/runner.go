// Package solver runs batches of inverse geodesic problems read one per
// line, on a pool of workers, writing the answers in input order.
package solver

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lazylynx/geodesy"
	"github.com/lazylynx/geodesy/internal/logger"
	"github.com/lazylynx/geodesy/internal/metrics"
)

// Runner solves problems on a fixed ellipsoid.
type Runner struct {
	ellipsoid *geodesy.Ellipsoid
	opts      Options
	workers   int
	metrics   *metrics.SolverMetrics
}

// Stats summarizes a run.
type Stats struct {
	Lines     int64 // problem lines, comments and blanks excluded
	Solved    int64
	Malformed int64
	Duration  time.Duration
}

// NewRunner creates a Runner. m may be nil.
func NewRunner(e *geodesy.Ellipsoid, workers int, opts Options, m *metrics.SolverMetrics) *Runner {
	if workers <= 0 {
		workers = 1
	}
	return &Runner{ellipsoid: e, opts: opts, workers: workers, metrics: m}
}

// job is one input line. The worker answers on result, which has room
// for exactly one value.
type job struct {
	lineNo int
	text   string
	result chan string
}

type counters struct {
	lines, solved, malformed atomic.Int64
}

// Run reads problems from in and writes one output line per problem to
// out. Blank lines and lines starting with '#' are skipped. A malformed
// line yields "ERROR <reason>" in its place and does not stop the run.
func (r *Runner) Run(ctx context.Context, in io.Reader, out io.Writer) (Stats, error) {
	log := logger.FromContext(ctx)
	start := time.Now()
	r.metrics.SetWorkers(r.workers)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan job, r.workers*2)
	// pending carries result channels in input order to the writer.
	pending := make(chan chan string, r.workers*4)
	var c counters

	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				j.result <- r.solve(log, j, &c)
			}
		}()
	}

	readErr := make(chan error, 1)
	go func() {
		defer close(pending)
		defer close(jobs)
		readErr <- r.read(ctx, in, jobs, pending, &c)
	}()

	w := bufio.NewWriter(out)
	var writeErr error
	for res := range pending {
		line := <-res
		if writeErr != nil {
			continue
		}
		if _, err := w.WriteString(line + "\n"); err != nil {
			writeErr = fmt.Errorf("write output: %w", err)
			cancel()
		}
	}
	wg.Wait()
	if writeErr == nil {
		if err := w.Flush(); err != nil {
			writeErr = fmt.Errorf("write output: %w", err)
		}
	}

	st := Stats{
		Lines:     c.lines.Load(),
		Solved:    c.solved.Load(),
		Malformed: c.malformed.Load(),
		Duration:  time.Since(start),
	}
	if writeErr != nil {
		return st, writeErr
	}
	if err := <-readErr; err != nil {
		return st, err
	}
	log.Debug("batch finished",
		zap.Int64("lines", st.Lines),
		zap.Int64("solved", st.Solved),
		zap.Int64("malformed", st.Malformed),
		zap.Duration("duration", st.Duration),
	)
	return st, nil
}

func (r *Runner) read(ctx context.Context, in io.Reader, jobs chan<- job, pending chan<- chan string, c *counters) error {
	sc := bufio.NewScanner(in)
	lineNo := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		c.lines.Add(1)

		// The job is queued before its result channel so that the writer
		// only ever waits on work that a worker will pick up.
		j := job{lineNo: lineNo, text: text, result: make(chan string, 1)}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case jobs <- j:
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case pending <- j.result:
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input at line %d: %w", lineNo+1, err)
	}
	return nil
}

func (r *Runner) solve(log *zap.Logger, j job, c *counters) string {
	start := time.Now()
	p, err := ParseLine(j.text)
	if err != nil {
		c.malformed.Add(1)
		r.metrics.ObserveSolve(metrics.OutcomeMalformed, 0)
		log.Warn("skipping malformed line", zap.Int("line", j.lineNo), zap.Error(err))
		return "ERROR " + strings.TrimPrefix(err.Error(), ErrMalformedLine.Error()+": ")
	}

	res := r.ellipsoid.Inverse(p.Lat1, p.Lon1, p.Lat2, p.Lon2, r.opts.Mask())
	c.solved.Add(1)
	outcome := metrics.OutcomeSolved
	if math.IsNaN(res.Distance) {
		outcome = metrics.OutcomeNaN
	}
	r.metrics.ObserveSolve(outcome, time.Since(start))
	return Format(res, r.opts)
}
