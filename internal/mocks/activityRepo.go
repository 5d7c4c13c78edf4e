package mocks

import (
	"context"

	"github.com/cradoe/profilegate/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockActivityRepo struct {
	mock.Mock
}

func (m *MockActivityRepo) Insert(ctx context.Context, log *repository.ActivityLog) (*repository.ActivityLog, error) {
	args := m.Called(ctx, log)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ActivityLog), args.Error(1)
}

func (m *MockActivityRepo) ListByUser(ctx context.Context, userID string, limit int) ([]repository.ActivityLog, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ActivityLog), args.Error(1)
}
