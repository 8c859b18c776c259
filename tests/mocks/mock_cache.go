package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetJSON(ctx context.Context, key string, dest any) bool {
	args := m.Called(ctx, key, dest)
	return args.Bool(0)
}

func (m *MockCache) Set(ctx context.Context, key string, value any, ttl time.Duration) bool {
	args := m.Called(ctx, key, value, ttl)
	return args.Bool(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) bool {
	args := m.Called(ctx, key)
	return args.Bool(0)
}

func (m *MockCache) GetInt(ctx context.Context, key string) (int64, bool) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Bool(1)
}

func (m *MockCache) Increment(ctx context.Context, key string, amount int64) int64 {
	args := m.Called(ctx, key, amount)
	return args.Get(0).(int64)
}

func (m *MockCache) IncrementWithTTL(ctx context.Context, key string, amount int64, ttl time.Duration) int64 {
	args := m.Called(ctx, key, amount, ttl)
	return args.Get(0).(int64)
}

func (m *MockCache) Expire(ctx context.Context, key string, ttl time.Duration) bool {
	args := m.Called(ctx, key, ttl)
	return args.Bool(0)
}
