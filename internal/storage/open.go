package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendMemory Backend = "memory"
)

// Open builds the repository for backend. For sqlite, path is the database
// file; for file it is the document directory; memory ignores it.
func Open(backend Backend, path string) (Repository, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(string(backend)))) {
	case BackendSQLite, "":
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create data dir: %w", err)
			}
		}
		return OpenSQLite(path)
	case BackendFile:
		return NewFileRepository(path)
	case BackendMemory:
		return NewMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}

var (
	_ Repository = (*SQLiteRepository)(nil)
	_ Versioned  = (*SQLiteRepository)(nil)
)
