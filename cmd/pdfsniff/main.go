// pdfsniff reports whether files are PDF documents and, if so, which kind:
// a generic PDF or a PDF-based subtype such as Adobe Illustrator artwork.
//
// Each file is classified by content. The output has one line per file:
//
//	path<TAB>extension<TAB>mime
//
// or "path<TAB>unknown" when the file is not a PDF. With --json each line
// is a JSON object instead.
//
// The exit status is 0 when every file is a PDF, 1 when at least one is
// not, and 2 when a file could not be read or scanned.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/tsawler/pdfsniff"
	"github.com/tsawler/pdfsniff/format"
	"github.com/tsawler/pdfsniff/internal/config"
	"github.com/tsawler/pdfsniff/source"
)

const (
	exitOK      = 0
	exitNotPDF  = 1
	exitFailure = 2
	programName = "pdfsniff"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath       string
	debug            bool
	maxScanLines     int
	maxStreamLength  int64
	maxDecodedLength int64
	json             bool
	warnExtension    bool
}

// result is the JSON form of one file's classification.
type result struct {
	Path            string `json:"path"`
	PDF             bool   `json:"pdf"`
	Extension       string `json:"extension,omitempty"`
	MIME            string `json:"mime,omitempty"`
	Probe           string `json:"probe,omitempty"`
	SignatureOffset int    `json:"signature_offset,omitempty"`
	Lines           int    `json:"lines,omitempty"`
	Error           string `json:"error,omitempty"`
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options

	flagSet := pflag.NewFlagSet(programName, pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVar(&opts.configPath, "config", "", "YAML config file (default: $"+config.EnvVar+")")
	flagSet.BoolVar(&opts.debug, "debug", false, "log scan diagnostics to stderr")
	flagSet.IntVar(&opts.maxScanLines, "max-scan-lines", pdfsniff.DefaultMaxScanLines, "maximum number of body lines to examine")
	flagSet.Int64Var(&opts.maxStreamLength, "max-stream-length", pdfsniff.DefaultMaxStreamLength, "skip streams declaring a larger Length")
	flagSet.Int64Var(&opts.maxDecodedLength, "max-decoded-length", pdfsniff.DefaultMaxDecodedLength, "cap on the decompressed size of a stream")
	flagSet.BoolVar(&opts.json, "json", false, "print one JSON object per file")
	flagSet.BoolVar(&opts.warnExtension, "warn-extension", false, "warn when a file's extension disagrees with its content")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(stderr, flagSet)
			return exitOK
		}
		return exitFailure
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return exitOK
	}

	files := flagSet.Args()
	if len(files) == 0 {
		fmt.Fprintln(stderr, "error: no files given")
		printHelp(stderr, flagSet)
		return exitFailure
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailure
	}
	applyFlags(cfg, flagSet, &opts)

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	detectOpts := append(cfg.Options(), pdfsniff.WithLogger(logger))

	status := exitOK
	encoder := json.NewEncoder(stdout)
	for _, path := range files {
		res := classify(path, detectOpts)
		switch {
		case res.Error != "":
			logger.Error("detection failed", "path", path, "error", res.Error)
			status = exitFailure
		case !res.PDF && status == exitOK:
			status = exitNotPDF
		}

		if opts.warnExtension && res.Error == "" {
			warnExtension(logger, res)
		}

		if opts.json {
			if err := encoder.Encode(res); err != nil {
				fmt.Fprintf(stderr, "error: %v\n", err)
				return exitFailure
			}
			continue
		}
		switch {
		case res.Error != "":
			fmt.Fprintf(stdout, "%s\terror\n", res.Path)
		case res.PDF:
			fmt.Fprintf(stdout, "%s\t%s\t%s\n", res.Path, res.Extension, res.MIME)
		default:
			fmt.Fprintf(stdout, "%s\tunknown\n", res.Path)
		}
	}
	return status
}

// applyFlags copies flags set on the command line over the file values.
func applyFlags(cfg *config.Config, flagSet *pflag.FlagSet, opts *options) {
	if flagSet.Changed("debug") {
		cfg.Debug = opts.debug
	}
	if flagSet.Changed("max-scan-lines") {
		cfg.MaxScanLines = opts.maxScanLines
	}
	if flagSet.Changed("max-stream-length") {
		cfg.MaxStreamLength = opts.maxStreamLength
	}
	if flagSet.Changed("max-decoded-length") {
		cfg.MaxDecodedLength = opts.maxDecodedLength
	}
}

func classify(path string, opts []pdfsniff.Option) result {
	res := result{Path: path}

	f, err := os.Open(path)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	report, err := pdfsniff.Analyze(source.NewReader(f), opts...)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.PDF = report.IsPDF
	res.Extension = report.Type.Extension
	res.MIME = report.Type.MIME
	res.Probe = report.Probe
	res.SignatureOffset = report.SignatureOffset
	res.Lines = report.Lines
	return res
}

func warnExtension(logger *slog.Logger, res result) {
	expected, known := format.FromFilename(res.Path)
	switch {
	case known && !res.PDF:
		logger.Warn("file is not a PDF", "path", res.Path, "extension", filepath.Ext(res.Path))
	case known && expected.Extension != res.Extension:
		logger.Warn("extension does not match content", "path", res.Path,
			"extension", filepath.Ext(res.Path), "detected", res.Extension)
	case !known && res.PDF:
		logger.Warn("PDF with unexpected extension", "path", res.Path,
			"extension", filepath.Ext(res.Path), "detected", res.Extension)
	}
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, `pdfsniff classifies files as generic PDF or Adobe Illustrator by content.

Usage:
  pdfsniff [flags] FILE...

Examples:
  # Classify every PDF in a directory
  pdfsniff *.pdf

  # Machine-readable output with scan diagnostics
  pdfsniff --json --debug artwork.ai

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
