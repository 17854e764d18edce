// Command screamcase converts text to SCREAMING_SNAKE_CASE, or checks that it already is.
//
// Lines are read from the files given as arguments, or from stdin when there is none, and the result
// of every line is written on stdout, in order.
//
//	echo "fooBar3" | screamcase          # FOO_BAR_3
//	screamcase -check constants.txt      # true / false per line, exit status 1 on any false
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/a-peyrard/inflector/config"
	"github.com/rs/zerolog"
)

const envPrefix = "SCREAMCASE"

// @config prefix="SCREAMCASE"
// Config is read from SCREAMCASE_* environment variables, and optionally from a file given with -config.
type Config struct {
	LogLevel     string `mapstructure:"log_level"`
	MaxLineBytes int    `mapstructure:"max_line_bytes"`
	Workers      int    `mapstructure:"workers"`
}

func (c *Config) ApplyDefault() {
	if c.LogLevel == "" {
		c.LogLevel = zerolog.InfoLevel.String()
	}
	if c.MaxLineBytes <= 0 {
		c.MaxLineBytes = 1 << 20
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
}

type cliOptions struct {
	check      bool
	printEnv   bool
	configFile string
}

var errRejected = errors.New("some lines are not in SCREAMING_SNAKE_CASE")

func newLogger(level string) (*zerolog.Logger, error) {
	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("invalid log level %s: %w", level, err)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.DateTime}).
		Level(parsed).
		With().
		Timestamp().
		Logger()

	return &logger, nil
}

func parseFlags(args []string) (cliOptions, []string, error) {
	var opts cliOptions

	fs := flag.NewFlagSet("screamcase", flag.ContinueOnError)
	fs.BoolVar(&opts.check, "check", false, "print whether each line is already in SCREAMING_SNAKE_CASE")
	fs.BoolVar(&opts.printEnv, "print-env", false, "print the environment variables read by screamcase and exit")
	fs.StringVar(&opts.configFile, "config", "", "optional config file (yaml, json, toml...)")
	if err := fs.Parse(args); err != nil {
		return opts, nil, err
	}

	return opts, fs.Args(), nil
}

func loadConfig(opts cliOptions) (*Config, error) {
	configOpts := []config.Option{config.WithEnvPrefix(envPrefix)}
	if opts.configFile != "" {
		configOpts = append(configOpts, config.WithConfigFile(opts.configFile))
	}
	return config.Load[Config](configOpts...)
}

func printEnv(w io.Writer) error {
	for _, key := range config.EnvKeys[Config](config.WithEnvPrefix(envPrefix)) {
		if _, err := fmt.Fprintln(w, key.Env); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	opts, files, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	if opts.printEnv {
		if err := printEnv(os.Stdout); err != nil {
			os.Exit(1)
		}
		return
	}

	conf, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "screamcase: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(conf.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "screamcase: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = run(ctx, logger, *conf, opts, files, os.Stdin, os.Stdout)
	switch {
	case errors.Is(err, errRejected):
		logger.Debug().Msg(err.Error())
		stop()
		os.Exit(1)
	case err != nil:
		logger.Error().Err(err).Msg("screamcase failed")
		stop()
		os.Exit(1)
	}
}
