package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/gaborage/salesquery/cache"
)

// MockCache provides a testify-based mock implementation of cache.Cache.
type MockCache struct {
	mock.Mock
}

// Get implements cache.Cache
func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	arguments := m.Called(ctx, key)
	data, _ := arguments.Get(0).([]byte)
	return data, arguments.Error(1)
}

// Set implements cache.Cache
func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

// Delete implements cache.Cache
func (m *MockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// Health implements cache.Cache
func (m *MockCache) Health(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// Stats implements cache.Cache
func (m *MockCache) Stats() (map[string]any, error) {
	arguments := m.Called()
	stats, _ := arguments.Get(0).(map[string]any)
	return stats, arguments.Error(1)
}

// Close implements cache.Cache
func (m *MockCache) Close() error {
	return m.Called().Error(0)
}

// ExpectMiss makes every Get report cache.ErrNotFound.
func (m *MockCache) ExpectMiss() *mock.Call {
	return m.On("Get", mock.Anything, mock.Anything).Return(nil, cache.ErrNotFound)
}

// ExpectSet accepts every Set and returns err.
func (m *MockCache) ExpectSet(err error) *mock.Call {
	return m.On("Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(err)
}

var _ cache.Cache = (*MockCache)(nil)
