package storage

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository is an in-process Repository, mostly for tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[string]Document
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: make(map[string]Document)}
}

func (r *MemoryRepository) Close() error { return nil }

func (r *MemoryRepository) GetDocument(_ context.Context, key string) (Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.docs[key]
	if !ok {
		return Document{}, ErrNotFound
	}
	return cloneDocument(doc), nil
}

func (r *MemoryRepository) PutDocument(_ context.Context, in Document) error {
	if err := in.Validate(); err != nil {
		return err
	}
	if in.UpdatedAt.IsZero() {
		in.UpdatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.docs[in.Key] = cloneDocument(in)
	return nil
}

func (r *MemoryRepository) DeleteDocument(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[key]; !ok {
		return ErrNotFound
	}
	delete(r.docs, key)
	return nil
}

func (r *MemoryRepository) ListDocuments(_ context.Context, filter DocumentListFilter) ([]Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Document, 0, len(r.docs))
	for key, doc := range r.docs {
		if filter.matches(key) {
			out = append(out, cloneDocument(doc))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return paginate(out, filter.Limit, filter.Offset), nil
}

var _ Repository = (*MemoryRepository)(nil)
