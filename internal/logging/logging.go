package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/diode"

	"github.com/jask/toastimer/internal/config"
)

func init() { //nolint:gochecknoinits
	zerolog.TimeFieldFormat = time.RFC3339Nano
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup builds a logger from cfg. The terminal belongs to the UI, so output
// only ever goes to a file; with no file configured the logger discards.
// The returned closer flushes and closes the file.
func Setup(cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	if cfg.File == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}

	level := zerolog.InfoLevel
	if cfg.Level != "" {
		l, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), nil, errors.WithStack(err)
		}
		level = l
	}

	out, err := Output(cfg.File)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	return New(out, level, cfg.Format), out, nil
}

// New wraps output in a zerolog logger. format "terminal" uses the console
// writer, coloured when stdout is a terminal.
func New(output io.Writer, level zerolog.Level, format string) zerolog.Logger {
	o := output
	if format == "terminal" {
		o = zerolog.ConsoleWriter{
			Out:        output,
			TimeFormat: time.RFC3339Nano,
			NoColor:    !isatty.IsTerminal(os.Stdout.Fd()),
		}
	}

	z := zerolog.New(o).With().Timestamp()
	if level <= zerolog.DebugLevel {
		z = z.Caller()
	}
	return z.Logger().Level(level)
}

// Output opens f for appending behind a non-blocking diode writer.
func Output(f string) (diode.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(f), 0o755); err != nil {
		return diode.Writer{}, errors.Wrapf(err, "failed to create log dir for %q", f)
	}
	out, err := os.OpenFile(filepath.Clean(f), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644) //nolint:gosec
	if err != nil {
		return diode.Writer{}, errors.Wrapf(err, "failed to open file, %q", f)
	}

	return diode.NewWriter(out, 1000, 10*time.Millisecond, func(int) {}), nil
}
