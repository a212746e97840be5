// Package cache memoizes generated articles. Generation is deterministic for
// a prompt, file name and capture day, so a cached article is always the one
// the generator would produce again.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/family-gazette-api/internal/generator"
)

// KeyPrefix namespaces article entries in a shared Redis
const KeyPrefix = "gazette:article:"

// ArticleCache stores generated articles by key
type ArticleCache interface {
	Get(ctx context.Context, key string) (*generator.Article, bool, error)
	Set(ctx context.Context, key string, article *generator.Article) error
}

// Key derives the cache key for a generation request. The capture time is
// bucketed by calendar day in its own location.
func Key(prompt, fileName string, capturedAt time.Time) string {
	sum := sha256.Sum256([]byte(prompt + "|" + fileName + "|" + capturedAt.Format("2006-01-02")))
	return KeyPrefix + hex.EncodeToString(sum[:])
}

// Noop never stores anything
type Noop struct{}

// NewNoop returns a cache that always misses
func NewNoop() Noop { return Noop{} }

func (Noop) Get(context.Context, string) (*generator.Article, bool, error) { return nil, false, nil }

func (Noop) Set(context.Context, string, *generator.Article) error { return nil }
