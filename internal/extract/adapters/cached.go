package adapters

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ppiankov/verdict/internal/cache"
)

// CachedAnnotator memoizes a slow annotator by text. Errors are never cached.
type CachedAnnotator struct {
	inner Annotator
	cache cache.Cache
	ttl   time.Duration
	salt  string
}

// NewCachedAnnotator wraps inner. salt separates entries of different
// models behind the same annotator name.
func NewCachedAnnotator(inner Annotator, c cache.Cache, ttl time.Duration, salt string) *CachedAnnotator {
	return &CachedAnnotator{inner: inner, cache: c, ttl: ttl, salt: salt}
}

// Name returns the wrapped annotator's name
func (a *CachedAnnotator) Name() string {
	return a.inner.Name()
}

// Annotate serves from cache or delegates and stores the result
func (a *CachedAnnotator) Annotate(ctx context.Context, text string) ([]Annotation, error) {
	key := cache.Key(a.inner.Name(), a.salt, text)
	if data, ok := a.cache.Get(key); ok {
		var cached []Annotation
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
		_ = a.cache.Delete(key)
	}

	annotations, err := a.inner.Annotate(ctx, text)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(annotations); err == nil {
		_ = a.cache.Set(key, data, a.ttl)
	}
	return annotations, nil
}
