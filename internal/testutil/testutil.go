// Package testutil provides shared filesystem fixtures for tests.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates a file under dir with the given content and returns
// its path.
func WriteFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", name, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

// WriteTree creates every file in files under dir.
func WriteTree(t *testing.T, dir string, files map[string][]byte) {
	t.Helper()
	for name, content := range files {
		WriteFile(t, dir, name, content)
	}
}

// Pattern returns n bytes of a repeating, non-zero byte pattern, useful
// for checking block padding boundaries.
func Pattern(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(1 + i%251)
	}
	return out
}

// AllZero reports whether every byte of b is zero.
func AllZero(b []byte) bool {
	return len(bytes.Trim(b, "\x00")) == 0
}
