package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/a-peyrard/inflector/runner"
	"github.com/a-peyrard/inflector/str"
	"github.com/rs/zerolog"
)

type lineProcessor struct {
	check        bool
	maxLineBytes int
}

// process writes the result of every line of r to w, and returns the number of lines that are not
// in SCREAMING_SNAKE_CASE when checking.
func (p lineProcessor) process(ctx context.Context, r io.Reader, w io.Writer) (rejected int, err error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, min(64*1024, p.maxLineBytes)), p.maxLineBytes)
	out := bufio.NewWriter(w)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return rejected, err
		}

		line := scanner.Text()
		if p.check {
			valid := str.IsScreamingSnakeCase(line)
			if !valid {
				rejected++
			}
			_, _ = out.WriteString(strconv.FormatBool(valid))
		} else {
			_, _ = out.WriteString(str.ToScreamingSnakeCase(line))
		}
		if err := out.WriteByte('\n'); err != nil {
			return rejected, fmt.Errorf("unable to write output: %w", err)
		}
	}
	// lines processed before a read error are still written
	flushErr := out.Flush()
	if err := scanner.Err(); err != nil {
		return rejected, fmt.Errorf("unable to read input: %w", err)
	}
	if flushErr != nil {
		return rejected, fmt.Errorf("unable to write output: %w", flushErr)
	}
	return rejected, nil
}

// fileJob processes one file into its own buffer, so that outputs can be written in argument order.
type fileJob struct {
	path      string
	processor lineProcessor
	logger    *zerolog.Logger

	output   bytes.Buffer
	rejected int
}

func (j *fileJob) Run(ctx context.Context) error {
	f, err := os.Open(j.path)
	if err != nil {
		return fmt.Errorf("unable to open %s: %w", j.path, err)
	}
	defer f.Close()

	j.rejected, err = j.processor.process(ctx, f, &j.output)
	if err != nil {
		return fmt.Errorf("unable to process %s: %w", j.path, err)
	}

	j.logger.Debug().Str("file", j.path).Int("rejected", j.rejected).Msg("File processed")
	return nil
}

func run(
	ctx context.Context,
	logger *zerolog.Logger,
	conf Config,
	opts cliOptions,
	files []string,
	stdin io.Reader,
	stdout io.Writer,
) error {
	processor := lineProcessor{check: opts.check, maxLineBytes: conf.MaxLineBytes}

	var rejected int
	if len(files) == 0 {
		logger.Debug().Msg("Reading stdin")
		var err error
		if rejected, err = processor.process(ctx, stdin, stdout); err != nil {
			return err
		}
	} else {
		jobs := make([]*fileJob, len(files))
		runnables := make([]runner.Runnable, len(files))
		for i, path := range files {
			jobLogger := logger.With().Str("file", path).Logger()
			jobs[i] = &fileJob{path: path, processor: processor, logger: &jobLogger}
			runnables[i] = jobs[i]
		}

		logger.Debug().Int("files", len(files)).Int("workers", conf.Workers).Msg("Processing files")
		if err := runner.RunLimited(ctx, conf.Workers, runnables...); err != nil {
			return err
		}

		for _, job := range jobs {
			if _, err := job.output.WriteTo(stdout); err != nil {
				return fmt.Errorf("unable to write output: %w", err)
			}
			rejected += job.rejected
		}
	}

	if rejected > 0 {
		return fmt.Errorf("%w: %d rejected", errRejected, rejected)
	}
	return nil
}
