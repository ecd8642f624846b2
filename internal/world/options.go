package world

import "log"

// Option customises a Registry or Streamer.
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger routes lifecycle and failure messages to logger instead of the
// standard logger.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{logger: log.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
