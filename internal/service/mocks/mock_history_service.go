package mocks

import (
	"context"

	"docflow/internal/model"
	"docflow/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockHistoryService struct {
	mock.Mock
}

func (m *MockHistoryService) Create(ctx context.Context, data model.DocumentHistoryCreate) (*model.DocumentHistory, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentHistory), args.Error(1)
}

func (m *MockHistoryService) List(ctx context.Context, filter model.DocumentHistoryFilter) (*service.DocumentListResult, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentListResult), args.Error(1)
}

func (m *MockHistoryService) Get(ctx context.Context, id, orgID string) (*model.DocumentHistory, error) {
	args := m.Called(ctx, id, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentHistory), args.Error(1)
}

func (m *MockHistoryService) ListByPatient(ctx context.Context, patientID, orgID string) ([]model.DocumentHistory, error) {
	args := m.Called(ctx, patientID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentHistory), args.Error(1)
}

func (m *MockHistoryService) ListByDoctor(ctx context.Context, doctorID, orgID string) ([]model.DocumentHistory, error) {
	args := m.Called(ctx, doctorID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentHistory), args.Error(1)
}

func (m *MockHistoryService) Update(ctx context.Context, id, orgID string, patch model.DocumentHistoryUpdate) (*model.DocumentHistory, error) {
	args := m.Called(ctx, id, orgID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentHistory), args.Error(1)
}

func (m *MockHistoryService) Approve(ctx context.Context, id, orgID, doctorNotes string) (*model.DocumentHistory, error) {
	args := m.Called(ctx, id, orgID, doctorNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentHistory), args.Error(1)
}

func (m *MockHistoryService) Send(ctx context.Context, id, orgID, sentTo string) (*model.DocumentHistory, error) {
	args := m.Called(ctx, id, orgID, sentTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentHistory), args.Error(1)
}

func (m *MockHistoryService) Cancel(ctx context.Context, id, orgID, reason string) (*model.DocumentHistory, error) {
	args := m.Called(ctx, id, orgID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentHistory), args.Error(1)
}

func (m *MockHistoryService) Stats(ctx context.Context, orgID, doctorID string) (*model.DocumentStats, error) {
	args := m.Called(ctx, orgID, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentStats), args.Error(1)
}
