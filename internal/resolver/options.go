package resolver

import "os"

// StatFunc reports information about a path. os.Stat satisfies it.
type StatFunc func(name string) (os.FileInfo, error)

type settings struct {
	stat    StatFunc
	sandbox bool
}

// Option configures a single Resolve call.
type Option func(*settings)

// WithRootCheck makes Resolve require the project root to exist and be a
// directory. A nil stat uses os.Stat.
func WithRootCheck(stat StatFunc) Option {
	return func(s *settings) {
		if stat == nil {
			stat = os.Stat
		}
		s.stat = stat
	}
}

// WithSandbox makes Resolve reject any alias that resolves outside the
// project root.
func WithSandbox() Option {
	return func(s *settings) {
		s.sandbox = true
	}
}
