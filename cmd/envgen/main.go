// Command envgen documents the environment variables bound by config.Load.
//
// It scans the packages of a module for structs annotated with @config, and renders the
// environment variable of every field, named exactly like config.Load names them:
//
//	// @config prefix="APP"
//	// AppConfig contains application configuration
//	type AppConfig struct {
//		DatabaseURL string `mapstructure:"database_url"`
//	}
//
// documents APP_DATABASE_URL. It can be used from a go:generate directive.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

type cliOptions struct {
	dir      string
	format   string
	output   string
	patterns []string
	dryRun   bool
}

func parseFlags(args []string) (cliOptions, error) {
	opts := cliOptions{dryRun: os.Getenv("DRY_RUN") == "true"}

	fs := flag.NewFlagSet("envgen", flag.ContinueOnError)
	fs.StringVar(&opts.dir, "dir", "", "directory of the module to scan (default: module root of the working directory)")
	fs.StringVar(&opts.format, "format", formatMarkdown, "output format: markdown or env")
	fs.StringVar(&opts.output, "o", "", "output file (default: stdout)")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	opts.patterns = fs.Args()
	if len(opts.patterns) == 0 {
		opts.patterns = []string{"./..."}
	}
	if opts.dir == "" {
		opts.dir = findModuleRoot()
	}

	return opts, nil
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached root
		}
		dir = parent
	}
	return "."
}

func generate(logger *zerolog.Logger, opts cliOptions, stdout io.Writer) error {
	startScan := time.Now()

	definitions, err := newScanner(logger, opts.dir).scan(opts.patterns...)
	if err != nil {
		return err
	}

	logger.Info().Msgf("🎯 %d config found in %s", len(definitions), opts.dir)
	for _, definition := range definitions {
		logger.Debug().
			Str("struct", definition.TypeName).
			Str("package", definition.ImportPath).
			Int("variables", len(definition.Variables)).
			Msg("Config")
	}
	logger.Info().Msgf("🕵️‍♂️ Scanning completed in %s", time.Since(startScan))

	if opts.output == "" {
		return render(stdout, opts.format, definitions)
	}

	outputPath := opts.output
	if opts.dryRun {
		outputPath = filepath.Join(os.TempDir(), filepath.Base(outputPath))
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", outputPath, err)
	}
	if err := render(f, opts.format, definitions); err != nil {
		_ = f.Close()
		return fmt.Errorf("unable to write %s: %w", outputPath, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to write %s: %w", outputPath, err)
	}

	logger.Info().Msgf("✅ Documentation generated successfully in %s", outputPath)
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if os.Getenv("DEBUG") == "true" {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).
		With().
		Timestamp().
		Logger()

	if err := generate(&logger, opts, os.Stdout); err != nil {
		logger.Error().Err(err).Msg("Failed to generate documentation")
		os.Exit(1)
	}
}
