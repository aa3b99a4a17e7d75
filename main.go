package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tmc/palfmt/conformance"
	"github.com/tmc/palfmt/printf"
)

const (
	exitPass  = 0
	exitFail  = 1
	exitUsage = 2
)

const usage = `usage:
  palfmt [flags] FORMAT [ARG...]   format ARGs with FORMAT and print the result
  palfmt -explain FORMAT           list the pieces of FORMAT
  palfmt -conformance [flags]      run the conformance suites
  ... | palfmt                     format each FORMAT<TAB>ARG... line of stdin

ARG is "type:value" (int32:-42, int64:0x10, double:1.5, char:a, string:x)
or an untyped literal whose type is inferred.

flags:
`

// Config holds the command line settings.
type Config struct {
	Conformance bool
	Explain     bool
	Suite       string // regexp selecting suites by name
	Dir         string // extra directory of .txtar suites
	Sinks       []conformance.Sink
	Verbose     bool
	Color       string // auto, always or never
}

var DefaultConfig = Config{
	Sinks: conformance.DefaultSinks,
	Color: "auto",
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg := DefaultConfig

	flags := flag.NewFlagSet("palfmt", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprint(stderr, usage)
		flags.PrintDefaults()
	}
	flags.BoolVar(&cfg.Conformance, "conformance", false, "run the conformance suites; exit 0 on PASS, 1 on FAIL")
	flags.BoolVar(&cfg.Explain, "explain", false, "print the parsed pieces of FORMAT instead of formatting")
	flags.StringVar(&cfg.Suite, "suite", "", "only run suites whose name matches this regexp")
	flags.StringVar(&cfg.Dir, "dir", "", "also run the .txtar suites in this directory")
	flags.BoolVar(&cfg.Verbose, "v", false, "log every vector")
	flags.StringVar(&cfg.Color, "color", cfg.Color, "color the report: auto, always or never")
	sinks := flags.String("sinks", "string,file", "comma separated sinks each vector goes through")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitPass
		}
		return exitUsage
	}

	var err error
	if cfg.Sinks, err = conformance.ParseSinks(*sinks); err != nil {
		fmt.Fprintln(stderr, "palfmt:", err)
		return exitUsage
	}
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		fmt.Fprintf(stderr, "palfmt: bad -color %q\n", cfg.Color)
		return exitUsage
	}

	logger := newLogger(cfg.Verbose, stderr)
	defer logger.Sync()

	switch {
	case cfg.Conformance:
		return runConformance(ctx, &cfg, logger, stdout, stderr)
	case cfg.Explain:
		if flags.NArg() != 1 {
			flags.Usage()
			return exitUsage
		}
		return explain(flags.Arg(0), stdout, stderr)
	case flags.NArg() > 0:
		if err := formatArgs(stdout, flags.Arg(0), flags.Args()[1:]); err != nil {
			fmt.Fprintln(stderr, "palfmt:", err)
			return exitFail
		}
		return exitPass
	case isInteractive(stdin):
		flags.Usage()
		fmt.Fprintln(stderr, "Expects FORMAT or input on stdin")
		return exitUsage
	}

	if err := formatLines(stdout, stdin, logger); err != nil {
		fmt.Fprintln(stderr, "palfmt:", err)
		return exitFail
	}
	return exitPass
}

func newLogger(verbose bool, w io.Writer) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// formatArgs formats one FORMAT with typed argument literals.
func formatArgs(w io.Writer, format string, literals []string) error {
	values := make([]any, len(literals))
	for i, lit := range literals {
		a, err := conformance.ParseArg(lit)
		if err != nil {
			return err
		}
		if values[i], err = a.Decode(); err != nil {
			return err
		}
	}
	_, err := printf.Fprintf(w, format, values...)
	return err
}

// formatLines formats every FORMAT<TAB>ARG... line of r, one output line each.
func formatLines(w io.Writer, r io.Reader, logger *zap.Logger) error {
	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		logger.Debug("formatting line", zap.Int("line", lineNum), zap.String("format", fields[0]))
		if err := formatArgs(w, fields[0], fields[1:]); err != nil {
			return fmt.Errorf("line %d: %w", lineNum, err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading input: %w", err)
	}
	return nil
}

func explain(format string, stdout, stderr io.Writer) int {
	pieces, err := printf.Parse(format)
	if err != nil {
		fmt.Fprintln(stderr, "palfmt:", err)
		return exitFail
	}
	for _, p := range pieces {
		d := p.Directive
		if d == nil {
			fmt.Fprintf(stdout, "literal    %q\n", p.Literal)
			continue
		}
		fmt.Fprintf(stdout, "directive  %-12s offset=%d flags=%q width=%s precision=%s length=%q verb=%c\n",
			d.Text, d.Offset, d.Flags.String(), starOr(d.WidthArg, d.Width, d.Width > 0),
			starOr(d.PrecisionArg, d.Precision, d.Precision >= 0), d.Length.String(), d.Verb)
	}
	return exitPass
}

func starOr(star bool, n int, set bool) string {
	switch {
	case star:
		return "*"
	case set:
		return fmt.Sprint(n)
	}
	return "-"
}

func runConformance(ctx context.Context, cfg *Config, logger *zap.Logger, stdout, stderr io.Writer) int {
	suites, err := conformance.Builtin()
	if err != nil {
		fmt.Fprintln(stderr, "palfmt:", err)
		return exitFail
	}
	if cfg.Dir != "" {
		more, err := conformance.LoadDir(cfg.Dir)
		if err != nil {
			fmt.Fprintln(stderr, "palfmt:", err)
			return exitFail
		}
		suites = append(suites, more...)
	}
	if cfg.Suite != "" {
		re, err := regexp.Compile(cfg.Suite)
		if err != nil {
			fmt.Fprintln(stderr, "palfmt: bad -suite:", err)
			return exitUsage
		}
		var selected []*conformance.Suite
		for _, s := range suites {
			if re.MatchString(s.Name) {
				selected = append(selected, s)
			}
		}
		suites = selected
	}
	if len(suites) == 0 {
		fmt.Fprintln(stderr, "palfmt: no suites selected")
		return exitUsage
	}

	r := &conformance.Runner{Logger: logger, Sinks: cfg.Sinks}
	reports, err := r.RunAll(ctx, suites)
	if err != nil {
		fmt.Fprintln(stderr, "palfmt:", err)
		return exitFail
	}

	opts := conformance.ReportOptions{
		Color: useColor(cfg.Color, stdout),
		Width: terminalColumns(stdout),
	}
	if err := conformance.WriteReport(stdout, reports, opts); err != nil {
		fmt.Fprintln(stderr, "palfmt:", err)
		return exitFail
	}
	for _, rep := range reports {
		if !rep.Passed() {
			return exitFail
		}
	}
	return exitPass
}
