package conformance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tmc/palfmt/printf"
)

// Sink is a route a vector's output takes before it is compared.
type Sink string

const (
	SinkString Sink = "string" // printf.Sprintf
	SinkFile   Sink = "file"   // printf.Fprintf into a file, then read back
)

// DefaultSinks is used when a Runner has no sinks configured.
var DefaultSinks = []Sink{SinkString, SinkFile}

// ParseSinks parses a comma separated sink list.
func ParseSinks(s string) ([]Sink, error) {
	var sinks []Sink
	for _, name := range strings.Split(s, ",") {
		switch sink := Sink(strings.TrimSpace(name)); sink {
		case SinkString, SinkFile:
			sinks = append(sinks, sink)
		case "":
		default:
			return nil, fmt.Errorf("unknown sink %q", name)
		}
	}
	if len(sinks) == 0 {
		return nil, fmt.Errorf("no sinks in %q", s)
	}
	return sinks, nil
}

// ErrExpectedFailure is reported when a vector expects a formatting error
// and formatting succeeds.
var ErrExpectedFailure = errors.New("expected a formatting error")

// MismatchError reports output that differs from every expected string.
type MismatchError struct {
	Format string
	Value  string
	Want   []string
	Got    string
	Sink   Sink
}

func (e *MismatchError) Error() string {
	quoted := make([]string, len(e.Want))
	for i, w := range e.Want {
		quoted[i] = fmt.Sprintf("%q", w)
	}
	return fmt.Sprintf("failed to format %s into %q: expected %s, got %q",
		e.Value, e.Format, strings.Join(quoted, " or "), e.Got)
}

// Result is the outcome of one vector through one sink.
type Result struct {
	Vector Vector
	Sink   Sink
	Got    string
	Err    error // nil when the vector passed
}

func (r Result) Passed() bool { return r.Err == nil }

// Report collects a suite's results.
type Report struct {
	Suite   *Suite
	Results []Result
}

// Passed reports whether every result passed.
func (r *Report) Passed() bool {
	return len(r.Failures()) == 0
}

// Failures returns the results that did not pass.
func (r *Report) Failures() []Result {
	var failed []Result
	for _, res := range r.Results {
		if !res.Passed() {
			failed = append(failed, res)
		}
	}
	return failed
}

// Err combines every failure into one error, or returns nil.
func (r *Report) Err() error {
	var err error
	for _, res := range r.Failures() {
		err = multierr.Append(err, fmt.Errorf("%s/%s [%s]: %w", r.Suite.Name, res.Vector.Name, res.Sink, res.Err))
	}
	return err
}

// Runner formats vectors and compares the output with the expected text.
type Runner struct {
	Logger  *zap.Logger
	Sinks   []Sink
	TempDir string // where file sink output goes; os.TempDir() if empty
}

func (r *Runner) logger() *zap.Logger {
	if r.Logger == nil {
		return zap.NewNop()
	}
	return r.Logger
}

func (r *Runner) sinks() []Sink {
	if len(r.Sinks) == 0 {
		return DefaultSinks
	}
	return r.Sinks
}

// Run checks every vector of s through every sink. Vector failures are
// recorded in the report; the returned error is for problems that stop the
// run, such as file I/O or cancellation.
func (r *Runner) Run(ctx context.Context, s *Suite) (*Report, error) {
	log := r.logger().With(zap.String("suite", s.Name))
	report := &Report{Suite: s}

	for _, v := range s.Vectors {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		args, err := v.Values()
		if err != nil {
			return report, fmt.Errorf("suite %s: vector %s: %w", s.Name, v.Name, err)
		}
		for _, sink := range r.sinks() {
			got, fmtErr, err := r.format(sink, v.Format, args)
			if err != nil {
				return report, fmt.Errorf("suite %s: vector %s: %s sink: %w", s.Name, v.Name, sink, err)
			}
			res := Result{Vector: v, Sink: sink, Got: got, Err: check(v, sink, got, fmtErr)}
			report.Results = append(report.Results, res)

			if res.Passed() {
				log.Debug("vector passed",
					zap.String("vector", v.Name),
					zap.String("sink", string(sink)),
					zap.String("format", v.Format),
					zap.String("got", got))
			} else {
				log.Error("vector failed",
					zap.String("vector", v.Name),
					zap.String("sink", string(sink)),
					zap.Error(res.Err))
			}
		}
	}
	log.Info("suite finished",
		zap.Int("checks", len(report.Results)),
		zap.Int("failed", len(report.Failures())))
	return report, nil
}

// RunAll runs suites in order and stops at the first error.
func (r *Runner) RunAll(ctx context.Context, suites []*Suite) ([]*Report, error) {
	reports := make([]*Report, 0, len(suites))
	for _, s := range suites {
		rep, err := r.Run(ctx, s)
		if err != nil {
			return reports, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

// check compares one formatting outcome with the vector's expectation.
func check(v Vector, sink Sink, got string, fmtErr error) error {
	if v.WantErr != "" {
		if fmtErr == nil {
			return fmt.Errorf("%w containing %q, got output %q", ErrExpectedFailure, v.WantErr, got)
		}
		if !strings.Contains(fmtErr.Error(), v.WantErr) {
			return fmt.Errorf("error %q does not contain %q", fmtErr, v.WantErr)
		}
		return nil
	}
	if fmtErr != nil {
		return fmtErr
	}
	if v.accepts(got) {
		return nil
	}
	return &MismatchError{
		Format: v.Format,
		Value:  v.Describe(),
		Want:   append([]string{v.Want}, v.Also...),
		Got:    got,
		Sink:   sink,
	}
}

// format sends one vector through sink. fmtErr is a formatting error, err
// is anything else.
func (r *Runner) format(sink Sink, format string, args []any) (got string, fmtErr, err error) {
	switch sink {
	case SinkString:
		got, fmtErr = printf.Sprintf(format, args...)
		return got, fmtErr, nil
	case SinkFile:
		return r.formatFile(format, args)
	}
	return "", nil, fmt.Errorf("unknown sink %q", sink)
}

// formatFile writes through Fprintf into a fresh file, rewinds it and reads
// the output back.
func (r *Runner) formatFile(format string, args []any) (got string, fmtErr, err error) {
	f, err := os.CreateTemp(r.TempDir, "palfmt-*.txt")
	if err != nil {
		return "", nil, err
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if _, err := printf.Fprintf(f, format, args...); err != nil {
		var perr *printf.Error
		if errors.As(err, &perr) {
			return "", err, nil
		}
		return "", nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", nil, err
	}
	b, err := io.ReadAll(f)
	if err != nil {
		return "", nil, err
	}
	return string(b), nil, nil
}
