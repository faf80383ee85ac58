package mocks

import (
	"context"
	"time"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/cache"
	"github.com/stretchr/testify/mock"
)

// Cache is a testify mock of cache.Cache. A Get expectation may pass a
// func(value any) as its third return value to fill the destination.
type Cache struct {
	mock.Mock
}

func (m *Cache) Get(ctx context.Context, key string, value any) (bool, error) {
	args := m.Called(ctx, key, value)

	if len(args) > 2 {
		if fill, ok := args.Get(2).(func(any)); ok && fill != nil {
			fill(value)
		}
	}

	return args.Bool(0), args.Error(1)
}

func (m *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *Cache) Swap(ctx context.Context, entries []cache.Entry, ttl time.Duration, drop ...string) error {
	return m.Called(ctx, entries, ttl, drop).Error(0)
}

func (m *Cache) Close() error {
	return m.Called().Error(0)
}
