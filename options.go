package depot

import "go.uber.org/zap"

// Option configures a container.
type Option func(*options)

type options struct {
	serverMode bool
	logger     *zap.Logger
}

func defaultOptions() *options {
	return &options{
		logger: zap.NewNop(),
	}
}

// WithServerMode marks the container as running in a server context.
// Server containers never reuse cached singletons, so instance state does not
// leak across unrelated requests. The flag is fixed for the container's life.
func WithServerMode(server bool) Option {
	return func(o *options) {
		o.serverMode = server
	}
}

// WithLogger sets the logger that receives declaration diagnostics.
// A nil logger is ignored.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
