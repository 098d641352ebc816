// Package cache implements read-through caching of catalog reads.
//
// The cache is never authoritative: every failure on the cache path degrades
// to the loader, and only successful loads are stored.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"openmusic-service/internal/metrics"
)

const DefaultTTL = 30 * time.Minute

func SongKey(id string) string  { return "song:" + id }
func AlbumKey(id string) string { return "album:" + id }
func LikeKey(id string) string  { return "like:" + id }

// Aside is a typed cache-aside view over a Backend. kind labels metrics and
// logs ("song", "album", "like").
type Aside[T any] struct {
	backend Backend
	kind    string
	ttl     time.Duration
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewAside[T any](backend Backend, kind string, ttl time.Duration, logger *zap.Logger, m *metrics.Metrics) *Aside[T] {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aside[T]{backend: backend, kind: kind, ttl: ttl, logger: logger, metrics: m}
}

// Fetch returns the cached value for key, or calls loader and stores its
// result. fromCache is true only when the value came out of the backend.
// A loader error is returned unchanged and nothing is stored.
func (a *Aside[T]) Fetch(ctx context.Context, key string, loader func(context.Context) (T, error)) (T, bool, error) {
	raw, ok, err := a.backend.Get(ctx, key)
	switch {
	case err != nil:
		a.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		a.metrics.CacheRequest(a.kind, "error")
	case ok:
		var v T
		uerr := json.Unmarshal(raw, &v)
		if uerr == nil {
			a.metrics.CacheRequest(a.kind, "hit")
			return v, true, nil
		}
		a.logger.Warn("cache entry corrupt", zap.String("key", key), zap.Error(uerr))
		a.metrics.CacheRequest(a.kind, "error")
	default:
		a.metrics.CacheRequest(a.kind, "miss")
	}

	v, err := loader(ctx)
	if err != nil {
		var zero T
		return zero, false, err
	}

	payload, err := json.Marshal(v)
	if err != nil {
		a.logger.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return v, false, nil
	}
	if err := a.backend.Set(ctx, key, payload, a.ttl); err != nil {
		a.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return v, false, nil
}

// Invalidate drops keys. Failures are logged; the underlying write has
// already committed and entries expire on their own.
func (a *Aside[T]) Invalidate(ctx context.Context, keys ...string) {
	Invalidate(ctx, a.backend, a.logger, a.metrics, a.kind, keys...)
}

// Invalidate is the untyped form used by mutations that touch several
// namespaces at once.
func Invalidate(ctx context.Context, backend Backend, logger *zap.Logger, m *metrics.Metrics, kind string, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := backend.Delete(ctx, keys...); err != nil {
		if logger != nil {
			logger.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
		}
		m.CacheInvalidation(kind, "error")
		return
	}
	m.CacheInvalidation(kind, "ok")
}
