package session

import (
	"os"

	"github.com/mj1618/fontproject/internal/logging"
	"github.com/mj1618/fontproject/internal/projectfile"
)

type settings struct {
	log        *logging.Logger
	fileExists func(string) bool
	format     projectfile.Format
}

// Option configures a Capturer, Restorer or Extension.
type Option func(*settings)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *logging.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.log = l
		}
	}
}

// WithFileExists replaces the filesystem check used to resolve document paths.
func WithFileExists(fn func(path string) bool) Option {
	return func(s *settings) {
		if fn != nil {
			s.fileExists = fn
		}
	}
}

// WithFormat sets the encoding the Extension saves projects in.
func WithFormat(f projectfile.Format) Option {
	return func(s *settings) {
		s.format = f
	}
}

func newSettings(opts []Option) settings {
	s := settings{
		log:        logging.NewNop(),
		fileExists: fileExists,
		format:     projectfile.FormatXML,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
