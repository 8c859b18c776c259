package mocks

import (
	"context"
	"time"

	"github.com/Javets70/url-shortner-backend/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockURLRepository struct {
	mock.Mock
}

func (m *MockURLRepository) Create(ctx context.Context, url *domain.ShortURL) error {
	args := m.Called(ctx, url)
	return args.Error(0)
}

func (m *MockURLRepository) GetByCode(ctx context.Context, shortCode string) (*domain.ShortURL, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}

func (m *MockURLRepository) CodeExists(ctx context.Context, shortCode string) (bool, error) {
	args := m.Called(ctx, shortCode)
	return args.Bool(0), args.Error(1)
}

func (m *MockURLRepository) GetByOwner(ctx context.Context, ownerID int64, limit, offset int) ([]domain.ShortURL, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShortURL), args.Error(1)
}

func (m *MockURLRepository) Deactivate(ctx context.Context, id, ownerID int64) (string, error) {
	args := m.Called(ctx, id, ownerID)
	return args.String(0), args.Error(1)
}

func (m *MockURLRepository) IncrementVisits(ctx context.Context, id int64) (int64, time.Time, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Get(1).(time.Time), args.Error(2)
}
