package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) ReviewCompleted(ctx context.Context, documentID, status string) error {
	args := m.Called(ctx, documentID, status)
	return args.Error(0)
}
