package storage

import (
	"errors"
	"strings"
	"time"
)

// Document is one opaque JSON body stored under a key.
type Document struct {
	Key       string
	Body      []byte
	UpdatedAt time.Time
}

func (d Document) Validate() error {
	if strings.TrimSpace(d.Key) == "" {
		return errors.New("storage: document key is required")
	}
	if strings.ContainsAny(d.Key, `/\`) {
		return errors.New("storage: document key must not contain path separators")
	}
	return nil
}

type DocumentListFilter struct {
	Prefix string
	Limit  int
	Offset int
}

func (f DocumentListFilter) matches(key string) bool {
	return f.Prefix == "" || strings.HasPrefix(key, f.Prefix)
}

// paginate applies the filter's limit and offset to an already ordered slice.
func paginate(in []Document, limit, offset int) []Document {
	if offset > 0 {
		if offset >= len(in) {
			return []Document{}
		}
		in = in[offset:]
	}
	if limit > 0 && len(in) > limit {
		in = in[:limit]
	}
	return in
}

func cloneDocument(d Document) Document {
	out := d
	out.Body = append([]byte(nil), d.Body...)
	return out
}
