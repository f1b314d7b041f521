package mocks

import (
	"context"
	"io"

	"docmanage/internal/model"
	"docmanage/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, r io.Reader, originalFilename, contentType string, size int64, ownerID string) (*model.Document, error) {
	args := m.Called(ctx, r, originalFilename, contentType, size, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) ListOwn(ctx context.Context, ownerID string) ([]model.Document, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentService) ListAll(ctx context.Context, q service.ListQuery) ([]model.Document, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentService) Review(ctx context.Context, documentID, newStatus string) (*service.ReviewResult, error) {
	args := m.Called(ctx, documentID, newStatus)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReviewResult), args.Error(1)
}

func (m *MockDocumentService) DownloadURL(ctx context.Context, documentID string, caller *model.User) (string, error) {
	args := m.Called(ctx, documentID, caller)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentService) History(ctx context.Context, documentID string) ([]model.StatusHistoryEntry, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StatusHistoryEntry), args.Error(1)
}
