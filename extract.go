package ustar

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/meigma/ustar/internal/platform"
)

// ErrUnsafeName is returned when an entry name would escape the
// extraction directory.
var ErrUnsafeName = errors.New("ustar: unsafe entry name")

// ExtractOption configures extraction to a directory.
type ExtractOption func(*extractConfig)

type extractConfig struct {
	overwrite     bool
	preserveMode  bool
	preserveTimes bool
}

// ExtractWithOverwrite allows overwriting existing files. By default an
// existing file fails the extraction.
func ExtractWithOverwrite(overwrite bool) ExtractOption {
	return func(c *extractConfig) {
		c.overwrite = overwrite
	}
}

// ExtractWithPreserveMode preserves permission bits from entry headers.
// By default created files use umask defaults.
func ExtractWithPreserveMode(preserve bool) ExtractOption {
	return func(c *extractConfig) {
		c.preserveMode = preserve
	}
}

// ExtractWithPreserveTimes preserves modification times from entry
// headers.
func ExtractWithPreserveTimes(preserve bool) ExtractOption {
	return func(c *extractConfig) {
		c.preserveTimes = preserve
	}
}

// Extract materializes every entry under destDir.
//
// Regular files are written truncated to their header size, directories
// are created with MkdirAll, symlinks and named pipes are recreated, and
// device nodes are created when the platform and privileges allow it.
// Hard links and unknown types fail the extraction. Entry names that are
// absolute or contain a ".." element are rejected with [ErrUnsafeName].
func (a *Archive) Extract(destDir string, opts ...ExtractOption) error {
	cfg := extractConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	for _, e := range a.entries {
		if err := extractEntry(e, destDir, &cfg); err != nil {
			return fmt.Errorf("extract %s: %w", e.Header.Name, err)
		}
	}
	return nil
}

func extractEntry(e *Entry, destDir string, cfg *extractConfig) error {
	name := e.Header.Name
	if !safeName(name) {
		return ErrUnsafeName
	}
	dst := filepath.Join(destDir, filepath.FromSlash(name))

	if !cfg.overwrite {
		if _, err := os.Lstat(dst); err == nil {
			return fs.ErrExist
		}
	}

	mode := fs.FileMode(e.Header.Mode).Perm()
	switch e.Header.Type {
	case TypeNormal:
		if err := writeRegular(dst, e.Content(), mode, cfg); err != nil {
			return err
		}
	case TypeDir:
		if err := os.MkdirAll(dst, modeOrDefault(mode, cfg, 0o755)); err != nil {
			return err
		}
	case TypeSymlink:
		if cfg.overwrite {
			_ = os.Remove(dst)
		}
		if err := os.Symlink(e.Header.LinkTarget, dst); err != nil {
			return err
		}
	case TypeFIFO:
		if err := platform.Mkfifo(dst, uint32(modeOrDefault(mode, cfg, 0o644))); err != nil {
			return err
		}
	case TypeChar:
		return platform.Mknod(dst, uint32(modeOrDefault(mode, cfg, 0o644)), e.Header.DevMajor, e.Header.DevMinor, false)
	case TypeBlock:
		return platform.Mknod(dst, uint32(modeOrDefault(mode, cfg, 0o644)), e.Header.DevMajor, e.Header.DevMinor, true)
	default:
		return fmt.Errorf("unsupported entry type %q", e.Header.Type.String())
	}

	if cfg.preserveTimes && !e.Header.ModTime.IsZero() && e.Header.Type != TypeSymlink {
		if err := os.Chtimes(dst, e.Header.ModTime, e.Header.ModTime); err != nil {
			return err
		}
	}
	return nil
}

func writeRegular(dst string, content []byte, mode fs.FileMode, cfg *extractConfig) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(dst, content, modeOrDefault(mode, cfg, 0o644)); err != nil {
		return err
	}
	if cfg.preserveMode && mode != 0 {
		// The process umask applies at create time.
		return os.Chmod(dst, mode)
	}
	return nil
}

func modeOrDefault(mode fs.FileMode, cfg *extractConfig, def fs.FileMode) fs.FileMode {
	if cfg.preserveMode && mode != 0 {
		return mode
	}
	return def
}

// safeName rejects absolute names and any ".." path element.
func safeName(name string) bool {
	if name == "" || strings.HasPrefix(name, "/") {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(name), "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
