package mocks

import (
	"context"

	"github.com/Javets70/url-shortner-backend/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event domain.Event) bool {
	args := m.Called(ctx, event)
	return args.Bool(0)
}
