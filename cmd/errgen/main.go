// Command errgen writes the error metadata methods of the annotated error
// enums of one Go package. It is meant to run from go:generate:
//
//	//go:generate go run github.com/tbourn/go-error-codes/cmd/errgen
//
// Every enum gets its own <enum>_errgen.go file. An enum whose annotations
// are invalid gets no file (a stale one is removed), the diagnostic is
// printed, and errgen exits non-zero. Other enums are still generated.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	kongyaml "github.com/alecthomas/kong-yaml"
	"github.com/rs/zerolog"

	"github.com/tbourn/go-error-codes/internal/errgen"
)

// CLI is the errgen command line. Flags may also come from ERRGEN_*
// variables or from a YAML file: errgen.yaml in the working directory (the
// package directory under go:generate) or --config.
type CLI struct {
	Config      kong.ConfigFlag `help:"YAML configuration file." env:"ERRGEN_CONFIG"`
	Dir         string          `arg:"" optional:"" default:"." type:"existingdir" help:"Package directory."`
	Strict      bool            `help:"Reject unknown annotation fields." env:"ERRGEN_STRICT"`
	UniqueCodes bool            `name:"unique-codes" help:"Reject an error code used by two variants of one enum." env:"ERRGEN_UNIQUE_CODES"`
	Runtime     string          `help:"Import path of the response error runtime." default:"github.com/tbourn/go-error-codes/pkg/httperr" env:"ERRGEN_RUNTIME"`
	DryRun      bool            `name:"dry-run" help:"Print generated sources to stdout instead of writing files." env:"ERRGEN_DRY_RUN"`
	LogLevel    string          `name:"log-level" help:"Log level." default:"info" enum:"debug,info,warn,error" env:"ERRGEN_LOG_LEVEL"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, generates and returns the process exit code: 0 on
// success, 1 when an enum failed, 2 on usage errors.
func run(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("errgen"),
		kong.Description("Derive error code methods for annotated error enums."),
		kong.Writers(stdout, stderr),
		kong.Configuration(kongyaml.Loader, "errgen.yaml"),
	)
	if err != nil {
		fmt.Fprintln(stderr, "errgen:", err)
		return 2
	}
	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintln(stderr, "errgen:", err)
		return 2
	}

	logger := newLogger(stderr, cli.LogLevel)
	if err := cli.Run(logger, stdout); err != nil {
		logger.Error().Err(err).Msg("generation failed")
		return 1
	}
	return 0
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}).
		Level(lvl)
}

// Run generates every enum of c.Dir.
func (c *CLI) Run(logger zerolog.Logger, stdout io.Writer) error {
	pkg, err := errgen.LoadDir(c.Dir)
	if err != nil {
		return err
	}
	logger.Debug().Str("package", pkg.Name).Str("dir", c.Dir).Msg("loaded")

	targets, err := pkg.Targets()
	if err != nil {
		return err
	}

	opts := errgen.Options{Strict: c.Strict, UniqueCodes: c.UniqueCodes}
	written := make(map[string]bool, len(targets))
	var failed []string
	for _, t := range targets {
		f, err := errgen.Generate(pkg, t, opts, c.Runtime)
		if err != nil {
			ev := logger.Error().Str("enum", t.Name)
			if kind, ok := errgen.KindOf(err); ok {
				ev = ev.Stringer("kind", kind)
			}
			ev.Msg(err.Error())
			failed = append(failed, t.Name)
			continue
		}
		written[f.Name] = true

		if c.DryRun {
			fmt.Fprintf(stdout, "// %s\n%s", f.Name, f.Source)
			continue
		}
		changed, err := writeIfChanged(filepath.Join(c.Dir, f.Name), f.Source)
		if err != nil {
			return err
		}
		logger.Info().
			Str("enum", t.Name).
			Stringer("generator", t.Generator).
			Str("file", f.Name).
			Bool("changed", changed).
			Msg("generated")
	}

	if !c.DryRun {
		if err := removeStale(logger, c.Dir, written); err != nil {
			return err
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("%d of %d enums failed: %s", len(failed), len(targets), strings.Join(failed, ", "))
	}
	if len(targets) == 0 {
		logger.Info().Str("package", pkg.Name).Msg("no errgen:derive directives")
	}
	return nil
}

// writeIfChanged writes src to path unless the file already holds src.
func writeIfChanged(path string, src []byte) (bool, error) {
	old, err := os.ReadFile(path)
	if err == nil && bytes.Equal(old, src) {
		return false, nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

// removeStale deletes generated files of dir that were not written in this
// run: enums that failed or lost their directive. Files without the
// generated header are never touched.
func removeStale(logger zerolog.Logger, dir string, keep map[string]bool) error {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+errgen.GeneratedSuffix))
	if err != nil {
		return err
	}
	for _, path := range matches {
		if keep[filepath.Base(path)] {
			continue
		}
		src, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !bytes.HasPrefix(src, []byte(errgen.GeneratedHeader)) {
			continue
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		logger.Warn().Str("file", filepath.Base(path)).Msg("removed stale generated file")
	}
	return nil
}
