package mocks

import (
	"context"
	"sync"

	"github.com/family-gazette-api/internal/cache"
	"github.com/family-gazette-api/internal/generator"
)

// Verify interface compliance
var _ cache.ArticleCache = (*MockArticleCache)(nil)

// MockArticleCache is an in-memory ArticleCache that counts calls
type MockArticleCache struct {
	mu       sync.Mutex
	Articles map[string]generator.Article
	GetError error
	SetError error
	Gets     int
	Hits     int
	Sets     int
}

func NewMockArticleCache() *MockArticleCache {
	return &MockArticleCache{Articles: make(map[string]generator.Article)}
}

func (m *MockArticleCache) Get(ctx context.Context, key string) (*generator.Article, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Gets++
	if m.GetError != nil {
		return nil, false, m.GetError
	}
	article, ok := m.Articles[key]
	if !ok {
		return nil, false, nil
	}
	m.Hits++
	return &article, true, nil
}

func (m *MockArticleCache) Set(ctx context.Context, key string, article *generator.Article) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sets++
	if m.SetError != nil {
		return m.SetError
	}
	m.Articles[key] = *article
	return nil
}
