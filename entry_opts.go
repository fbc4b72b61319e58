package ustar

import "log/slog"

// buildConfig holds configuration for building entries from paths.
type buildConfig struct {
	provider  MetadataProvider
	ownerName string
	groupName string
	logger    *slog.Logger
}

func (c *buildConfig) log() *slog.Logger {
	if c.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.logger
}

// BuildOption configures how entries are built from filesystem paths.
type BuildOption func(*buildConfig)

// BuildWithMetadataProvider substitutes the metadata source used to
// resolve paths. The default provider stats the local filesystem without
// following symlinks.
func BuildWithMetadataProvider(p MetadataProvider) BuildOption {
	return func(c *buildConfig) {
		c.provider = p
	}
}

// BuildWithOwnerName sets the textual owner name recorded in built
// headers. When unset the owner name field stays zero-filled; callers
// wanting the conventional behavior pass os.Getenv("USER") themselves.
func BuildWithOwnerName(name string) BuildOption {
	return func(c *buildConfig) {
		c.ownerName = name
	}
}

// BuildWithGroupName sets the textual group name recorded in built
// headers. When unset the group name field stays zero-filled.
func BuildWithGroupName(name string) BuildOption {
	return func(c *buildConfig) {
		c.groupName = name
	}
}

// BuildWithLogger sets the logger for build operations. When unset,
// logging is discarded.
func BuildWithLogger(logger *slog.Logger) BuildOption {
	return func(c *buildConfig) {
		c.logger = logger
	}
}

func newBuildConfig(opts []BuildOption) buildConfig {
	cfg := buildConfig{provider: systemProvider{}}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
