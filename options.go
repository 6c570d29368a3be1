package typebus

import "log/slog"

// Option configures a Bus during construction.
type Option func(*Bus)

// WithLogger attaches a logger used for debug-level dispatch tracing.
// Without it the bus is silent.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bus) {
		b.logger = logger
	}
}
