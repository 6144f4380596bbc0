package bootstrap

import (
	"io"
	"os"
	"time"

	"github.com/kbukum/authgate/logger"
)

type settings struct {
	log   *logger.Logger
	grace time.Duration
	out   io.Writer
}

// Option overrides a NewApp default.
type Option func(*settings)

// WithLogger replaces the logger built from the logging config.
func WithLogger(l *logger.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithGracefulTimeout bounds the whole shutdown. The default is 15s.
func WithGracefulTimeout(d time.Duration) Option {
	return func(s *settings) { s.grace = d }
}

// WithSummaryOutput sends the startup summary to w instead of stdout.
func WithSummaryOutput(w io.Writer) Option {
	return func(s *settings) { s.out = w }
}

func newSettings(opts []Option) settings {
	s := settings{grace: 15 * time.Second, out: os.Stdout}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}
