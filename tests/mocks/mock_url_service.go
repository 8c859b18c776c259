package mocks

import (
	"context"

	"github.com/Javets70/url-shortner-backend/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockURLService struct {
	mock.Mock
}

func (m *MockURLService) CreateShortURL(ctx context.Context, req *domain.CreateURLRequest, ownerID int64) (*domain.ShortURL, error) {
	args := m.Called(ctx, req, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}

func (m *MockURLService) Resolve(ctx context.Context, shortCode string) (*domain.ShortURL, error) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}

func (m *MockURLService) GetUserURLs(ctx context.Context, ownerID int64, limit, offset int) ([]domain.ShortURL, error) {
	args := m.Called(ctx, ownerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ShortURL), args.Error(1)
}

func (m *MockURLService) DeactivateURL(ctx context.Context, id, ownerID int64) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

type MockVisitRecorder struct {
	mock.Mock
}

func (m *MockVisitRecorder) Record(ctx context.Context, url *domain.ShortURL, ipAddress, userAgent, referer string) (*domain.ShortURL, error) {
	args := m.Called(ctx, url, ipAddress, userAgent, referer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShortURL), args.Error(1)
}
