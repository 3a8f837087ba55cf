// Package fileproc runs the per-file pipelines concurrently: one producer
// walks the filesystem, the workers parse and analyze.
package fileproc

import (
	"fmt"
	"os"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/panbanda/augur/internal/progress"
	"github.com/panbanda/augur/internal/scanner"
	"github.com/panbanda/augur/pkg/config"
	"github.com/panbanda/augur/pkg/parser"
)

// ErrorKind tags an infrastructure failure of the runner.
type ErrorKind string

const (
	// ErrProducer marks a failure while walking the inputs.
	ErrProducer ErrorKind = "producer"
	// ErrConsumer marks a worker failure.
	ErrConsumer ErrorKind = "consumer"
	// ErrSender marks a failure handing a file to the queue.
	ErrSender ErrorKind = "sender"
	// ErrThread marks a failure spawning or joining workers.
	ErrThread ErrorKind = "thread"
)

// RunnerError is an infrastructure failure; per-file failures never become
// one.
type RunnerError struct {
	Kind ErrorKind
	Err  error
}

func (e *RunnerError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *RunnerError) Unwrap() error { return e.Err }

// ProcessingError is one file's failure.
type ProcessingError struct {
	Path string
	Err  error
}

func (e ProcessingError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// ProcessingErrors collects per-file failures across workers.
type ProcessingErrors struct {
	mu     sync.Mutex
	Errors []ProcessingError
}

// Add appends an error; safe for concurrent use.
func (e *ProcessingErrors) Add(path string, err error) {
	e.mu.Lock()
	e.Errors = append(e.Errors, ProcessingError{Path: path, Err: err})
	e.mu.Unlock()
}

// HasErrors reports whether anything failed.
func (e *ProcessingErrors) HasErrors() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Errors) > 0
}

// ProcessFunc handles one file with a worker-owned parser.
type ProcessFunc func(psr *parser.Parser, path string) error

// Options configure a run.
type Options struct {
	Cfg     *config.Config
	Paths   []string
	Include []string
	Exclude []string
	// Quiet disables the progress spinner.
	Quiet bool
}

// Run walks the inputs and processes every selected file. Per-file errors
// are logged to stderr and collected; only infrastructure failures abort.
// The returned map indexes every walked file by basename, for the include
// resolver.
func Run(opts Options, proc ProcessFunc) (map[string][]string, *ProcessingErrors, error) {
	jobs := opts.Cfg.Jobs()
	files := make(chan string, jobs*4)
	errs := &ProcessingErrors{}

	var tracker *progress.Tracker
	if !opts.Quiet {
		tracker = progress.NewSpinner("analyzing")
	}

	workers := pool.New().WithMaxGoroutines(jobs)
	for i := 0; i < jobs; i++ {
		workers.Go(func() {
			psr := parser.New()
			defer psr.Close()
			for path := range files {
				if err := proc(psr, path); err != nil {
					errs.Add(path, err)
					fmt.Fprintf(os.Stderr, "Warning: %v for file %s\n", err, path)
				}
				if tracker != nil {
					tracker.Tick()
				}
			}
		})
	}

	sc := scanner.New(opts.Cfg, opts.Include, opts.Exclude)
	allFiles, walkErr := sc.Scan(opts.Paths, opts.Cfg.Analysis.Gitignore, func(path string) {
		files <- path
	})
	close(files)
	workers.Wait()

	if tracker != nil {
		tracker.FinishSuccess()
	}

	if walkErr != nil {
		return nil, errs, &RunnerError{Kind: ErrProducer, Err: walkErr}
	}
	return allFiles, errs, nil
}
