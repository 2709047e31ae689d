// Command csvre applies a regular-expression find/replace to exactly one
// column of delimiter-separated input.
//
// It streams records from standard input (or a file, or an HTTP URL),
// rewrites the selected column of each record, and streams the result to
// standard output (or a file), preserving the delimiter, the row structure,
// and the optional header row. One pass, one row in memory at a time.
//
// Example:
//
//	csvre -column=email '@example\.(com|org)' '@example.net' < in.csv > out.csv
//
// Exit codes: 0 on success or when the downstream consumer closes the output
// pipe early (e.g. piping into head); 1 on any other error, with a single
// message on stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
	"unicode/utf8"

	"github.com/oskaritimperi/csvre/internal/config"
	"github.com/oskaritimperi/csvre/internal/csvio"
	"github.com/oskaritimperi/csvre/internal/datasource"
	"github.com/oskaritimperi/csvre/internal/datasource/file"
	"github.com/oskaritimperi/csvre/internal/datasource/httpds"
	"github.com/oskaritimperi/csvre/internal/metrics"
	"github.com/oskaritimperi/csvre/internal/metrics/datadog"
	"github.com/oskaritimperi/csvre/internal/metrics/prompush"
	"github.com/oskaritimperi/csvre/internal/pipeline"
	"github.com/oskaritimperi/csvre/internal/rewrite"
	"github.com/oskaritimperi/csvre/internal/textenc"
)

const version = "1.1.0"

func main() {
	ignoreBrokenPipeSignal()
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// ignoreBrokenPipeSignal keeps the runtime from killing the process when a
// write to stdout hits a closed pipe. With SIGPIPE ignored the write returns
// EPIPE instead, which run maps to a silent exit 0.
func ignoreBrokenPipeSignal() {
	signal.Ignore(syscall.SIGPIPE)
}

// run is the whole program behind main, factored out so tests can drive it
// with their own streams and argument lists.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("csvre", flag.ContinueOnError)
	fs.SetOutput(stderr)
	logger := log.New(stderr, "", log.LstdFlags)

	var (
		flagColumn     = fs.String("column", "", "column to operate on: a header name or a zero-based index (required)")
		flagDelimiter  = fs.String("delimiter", ",", "field delimiter for input and output (single character)")
		flagNoHeaders  = fs.Bool("no-headers", false, "the input has no header row; the first row is data and -column must be an index")
		flagBytes      = fs.Bool("bytes", false, "do not assume UTF-8 input; match on raw bytes instead")
		flagInput      = fs.String("input", "", "read input from this file instead of stdin")
		flagURL        = fs.String("url", "", "stream input from this HTTP URL instead of stdin")
		flagOutput     = fs.String("output", "", "write output to this file instead of stdout")
		flagEncoding   = fs.String("input-encoding", "", "decode input from this IANA charset (e.g. windows-1250) before matching; text mode only")
		flagMetrics    = fs.String("metrics-backend", "none", "metrics backend to use (pushgateway, datadog, none)")
		flagGatewayURL = fs.String("pushgateway-url", "http://localhost:9091", "Pushgateway base URL for -metrics-backend=pushgateway")
		flagStatsdAddr = fs.String("statsd-addr", "127.0.0.1:8125", "DogStatsD address for -metrics-backend=datadog")
		flagJob        = fs.String("job", "csvre", "job label attached to emitted metrics")
		flagVersion    = fs.Bool("version", false, "print the version and exit")
		verbose        = fs.Bool("v", false, "enable verbose logs")
	)

	fs.Usage = func() {
		fmt.Fprintf(stderr, `Usage: csvre [options] -column=COLUMN <regex> <replacement>

Replace data in one CSV column using a regular expression. Input is read
from stdin and output written to stdout unless -input/-url/-output say
otherwise.

The replacement may reference capture groups with $1, $name or ${name};
$$ inserts a literal dollar sign. A reference to a capture group that does
not exist expands to the empty string.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		// flag has already printed the problem and the usage.
		return 1
	}

	if *flagVersion {
		fmt.Fprintln(stdout, version)
		return 0
	}

	if fs.NArg() != 2 {
		fmt.Fprintln(stderr, "error: expected exactly two arguments: <regex> <replacement>")
		fs.Usage()
		return 1
	}

	delim, _ := utf8.DecodeRuneInString(*flagDelimiter)
	if delim == utf8.RuneError {
		delim = 0 // caught by validation below
	}

	cfg := config.Config{
		Pattern:       fs.Arg(0),
		Replacement:   fs.Arg(1),
		Column:        *flagColumn,
		Delimiter:     delim,
		NoHeaders:     *flagNoHeaders,
		Bytes:         *flagBytes,
		Input:         *flagInput,
		URL:           *flagURL,
		Output:        *flagOutput,
		InputEncoding: *flagEncoding,
		Job:           *flagJob,
	}

	hasError := false
	for _, iss := range config.Validate(cfg) {
		if iss.Severity == config.SeverityError {
			hasError = true
			fmt.Fprintf(stderr, "error: %s: %s\n", iss.Path, iss.Message)
		} else if *verbose {
			fmt.Fprintf(stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		}
	}
	if hasError {
		return 1
	}

	initMetrics(logger, *flagMetrics, *flagGatewayURL, *flagStatsdAddr, *verbose)

	start := time.Now()
	res, err := execute(context.Background(), cfg, stdin, stdout)

	metrics.RecordRows(cfg.Job, "processed", res.Rows)
	metrics.RecordRows(cfg.Job, "rewritten", res.Rewritten)
	metrics.RecordRun(cfg.Job, err, time.Since(start))
	if ferr := metrics.Flush(); ferr != nil {
		logger.Printf("metrics: flush error: %v", ferr)
	}

	if err != nil {
		if isBrokenPipe(err) {
			// The downstream consumer stopped reading; that is normal for
			// truncating consumers such as head or a pager.
			return 0
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if *verbose {
		logger.Printf("done: rows=%d rewritten=%d in %s",
			res.Rows, res.Rewritten, time.Since(start).Truncate(time.Millisecond))
	}
	return 0
}

// execute wires the source, sink, and rule together and runs the pipeline.
// It returns whatever partial Result was accumulated when an error occurs.
func execute(ctx context.Context, cfg config.Config, stdin io.Reader, stdout io.Writer) (pipeline.Result, error) {
	var res pipeline.Result

	rule, err := rewrite.Compile(cfg.Pattern, cfg.Replacement, cfg.Bytes)
	if err != nil {
		return res, err
	}

	var src datasource.Source
	switch {
	case cfg.URL != "":
		src = httpds.NewRemote(cfg.URL, httpds.Config{})
	case cfg.Input != "":
		src = file.NewLocal(cfg.Input)
	default:
		src = datasource.Stdin(stdin)
	}

	in, err := src.Open(ctx)
	if err != nil {
		return res, err
	}
	defer in.Close()

	var r io.Reader = in
	if cfg.InputEncoding != "" {
		r, err = textenc.NewReader(r, cfg.InputEncoding)
		if err != nil {
			return res, err
		}
	}

	var out io.Writer = stdout
	var outFile *os.File
	if cfg.Output != "" {
		outFile, err = os.Create(cfg.Output)
		if err != nil {
			return res, fmt.Errorf("create %s: %w", cfg.Output, err)
		}
		out = outFile
	}

	opt := csvio.Options{Comma: cfg.Delimiter}
	sink := csvio.NewWriter(out, opt)

	res, err = pipeline.Run(ctx, csvio.NewReader(r, opt), sink, pipeline.Params{
		ColumnSpec: cfg.Column,
		Headers:    !cfg.NoHeaders,
		Rule:       rule,
	})
	if err == nil {
		err = sink.Flush()
	}
	if outFile != nil {
		if cerr := outFile.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", cfg.Output, cerr)
		}
	}
	return res, err
}

// initMetrics installs the selected metrics backend. Failures never abort
// the run; the nop backend stays in place instead.
func initMetrics(logger *log.Logger, backendName, gatewayURL, statsdAddr string, verbose bool) {
	switch backendName {
	case "pushgateway":
		if gatewayURL == "" {
			gatewayURL = os.Getenv("PUSHGATEWAY_URL")
		}
		b, err := prompush.NewBackend("csvre", gatewayURL)
		if err != nil {
			logger.Printf("metrics: failed to init pushgateway backend: %v; using nop", err)
			return
		}
		metrics.SetBackend(b)

	case "datadog":
		b, err := datadog.NewBackend(datadog.Config{Addr: statsdAddr, Namespace: "csvre."})
		if err != nil {
			logger.Printf("metrics: failed to init datadog backend: %v; using nop", err)
			return
		}
		metrics.SetBackend(b)

	case "", "none":
		if verbose {
			logger.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		logger.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}
}

// isBrokenPipe reports whether err means the reader of our output went away.
func isBrokenPipe(err error) bool {
	return errors.Is(err, syscall.EPIPE)
}
