package ustar

import "log/slog"

// openConfig holds configuration for scanning an archive stream.
type openConfig struct {
	strict bool
	logger *slog.Logger
}

func (c *openConfig) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// OpenOption configures how an archive stream is scanned.
type OpenOption func(*openConfig)

// OpenWithStrict makes scanning propagate decode failures other than the
// end-of-archive sentinel. By default any failure ends the scan and the
// entries collected so far are returned, matching lenient readers that
// cannot tell a missing terminator from corruption.
func OpenWithStrict() OpenOption {
	return func(c *openConfig) {
		c.strict = true
	}
}

// OpenWithLogger sets the logger for scan operations. When unset,
// logging is discarded.
func OpenWithLogger(logger *slog.Logger) OpenOption {
	return func(c *openConfig) {
		c.logger = logger
	}
}
