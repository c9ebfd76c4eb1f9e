package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	json "github.com/goccy/go-json"

	"github.com/reoring/fieldpipe"
	"github.com/reoring/fieldpipe/i18n"
	"github.com/reoring/fieldpipe/rules"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitUsage   = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return exitUsage
	}
	switch args[0] {
	case "check":
		return checkCmd(args[1:], stdout, stderr)
	case "checks":
		for _, name := range rules.Names() {
			fmt.Fprintln(stdout, name)
		}
		return exitOK
	default:
		usage(stderr)
		return exitUsage
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "fieldpipe CLI\n\nUsage:\n  fieldpipe check -rules rules.yaml -input data.json [-errno] [-lang en|ja] [-v]\n  fieldpipe checks\n\nNotes:\n  - Input files ending in .yaml/.yml are read as YAML, everything else as JSON.")
}

func checkCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var rulesPath, inputPath, lang string
	var errNo, verbose bool
	fs.StringVar(&rulesPath, "rules", "", "rule document (YAML or JSON)")
	fs.StringVar(&inputPath, "input", "", "record to validate (JSON or YAML)")
	fs.StringVar(&lang, "lang", "en", "default message language (en, ja)")
	fs.BoolVar(&errNo, "errno", false, "suppress failures and fall back to defaults")
	fs.BoolVar(&verbose, "v", false, "enable debug logs")
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if rulesPath == "" || inputPath == "" {
		fs.Usage()
		return exitUsage
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	i18n.SetLanguage(lang)

	rulesData, err := os.ReadFile(rulesPath)
	if err != nil {
		logger.Error("read rules", "path", rulesPath, "error", err)
		return exitUsage
	}
	v, err := rules.Load(rulesData, fieldpipe.WithLogger(logger))
	if err != nil {
		logger.Error("load rules", "path", rulesPath, "error", err)
		return exitUsage
	}
	if errNo {
		v.ErrNo()
	}
	logger.Debug("rules loaded", "path", rulesPath, "fields", v.Fields())

	input, err := os.ReadFile(inputPath)
	if err != nil {
		logger.Error("read input", "path", inputPath, "error", err)
		return exitUsage
	}
	dec := fieldpipe.DecoderFor(inputPath)
	out, err := v.ValidateWith(dec, input)
	if err != nil {
		if ne, ok := fieldpipe.AsNamedError(err); ok {
			fmt.Fprintf(stderr, "%s: %s (value: %v)\n", ne.Field, ne.Message, ne.Value)
			return exitInvalid
		}
		if errors.Is(err, fieldpipe.ErrDecode) {
			logger.Error("decode input", "path", inputPath, "decoder", dec.Name(), "error", err)
			return exitUsage
		}
		logger.Error("validate", "error", err)
		return exitInvalid
	}

	b, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		logger.Error("encode output", "error", err)
		return exitInvalid
	}
	fmt.Fprintln(stdout, string(b))
	return exitOK
}
