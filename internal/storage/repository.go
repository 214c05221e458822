package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Keys of the documents the tracker persists.
const (
	KeyTasks   = "trackio.tasks.v2"
	KeyProfile = "trackio.profile.v1"
	KeyTheme   = "trackio.theme.v1"
)

type Repository interface {
	GetDocument(ctx context.Context, key string) (Document, error)
	PutDocument(ctx context.Context, in Document) error
	DeleteDocument(ctx context.Context, key string) error
	ListDocuments(ctx context.Context, filter DocumentListFilter) ([]Document, error)
	Close() error
}

// Versioned is implemented by backends whose schema is managed by
// migrations.
type Versioned interface {
	SchemaVersion() (string, error)
	Rollback() error
}
