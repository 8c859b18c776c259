package mocks

import (
	"context"

	"github.com/Javets70/url-shortner-backend/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockVisitRepository struct {
	mock.Mock
}

func (m *MockVisitRepository) Record(ctx context.Context, visit *domain.VisitRequest) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}
