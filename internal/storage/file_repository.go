package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const documentExt = ".json"

// FileRepository keeps one file per document under dir. Writes go through a
// temp file and a rename so a crash never leaves a half-written document.
type FileRepository struct {
	dir string
}

func NewFileRepository(dir string) (*FileRepository, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("storage: file repository needs a directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileRepository{dir: dir}, nil
}

func (r *FileRepository) Close() error { return nil }

func (r *FileRepository) path(key string) string {
	return filepath.Join(r.dir, key+documentExt)
}

func (r *FileRepository) GetDocument(ctx context.Context, key string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	if err := (Document{Key: key}).Validate(); err != nil {
		return Document{}, err
	}
	return r.read(key)
}

func (r *FileRepository) read(key string) (Document, error) {
	p := r.path(key)
	raw, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	info, err := os.Stat(p)
	if err != nil {
		return Document{}, err
	}
	return Document{Key: key, Body: raw, UpdatedAt: info.ModTime()}, nil
}

func (r *FileRepository) PutDocument(ctx context.Context, in Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return err
	}
	target := r.path(in.Key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, in.Body, 0o644); err != nil {
		return err
	}
	if !in.UpdatedAt.IsZero() {
		_ = os.Chtimes(tmp, in.UpdatedAt, in.UpdatedAt)
	}
	return os.Rename(tmp, target)
}

func (r *FileRepository) DeleteDocument(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := (Document{Key: key}).Validate(); err != nil {
		return err
	}
	if err := os.Remove(r.path(key)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (r *FileRepository) ListDocuments(ctx context.Context, filter DocumentListFilter) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, documentExt) {
			continue
		}
		key := strings.TrimSuffix(name, documentExt)
		if filter.matches(key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	out := make([]Document, 0, len(keys))
	for _, key := range keys {
		doc, err := r.read(key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return paginate(out, filter.Limit, filter.Offset), nil
}

var _ Repository = (*FileRepository)(nil)
