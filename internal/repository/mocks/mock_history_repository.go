package mocks

import (
	"context"

	"docflow/internal/model"
	"docflow/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockHistoryRepository struct {
	mock.Mock
}

func (m *MockHistoryRepository) Create(ctx context.Context, data model.DocumentHistoryCreate) (*model.DocumentHistory, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentHistory), args.Error(1)
}

func (m *MockHistoryRepository) FindByID(ctx context.Context, id, orgID string) (*model.DocumentHistory, error) {
	args := m.Called(ctx, id, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentHistory), args.Error(1)
}

func (m *MockHistoryRepository) List(ctx context.Context, filter model.DocumentHistoryFilter) (*repository.PageResult[model.DocumentHistory], error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.DocumentHistory]), args.Error(1)
}

func (m *MockHistoryRepository) ListByPatient(ctx context.Context, patientID, orgID string) ([]model.DocumentHistory, error) {
	args := m.Called(ctx, patientID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentHistory), args.Error(1)
}

func (m *MockHistoryRepository) ListByDoctor(ctx context.Context, doctorID, orgID string) ([]model.DocumentHistory, error) {
	args := m.Called(ctx, doctorID, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentHistory), args.Error(1)
}

func (m *MockHistoryRepository) Update(ctx context.Context, id, orgID string, patch model.DocumentHistoryUpdate, allowedFrom []model.DocumentStatus) (*model.DocumentHistory, error) {
	args := m.Called(ctx, id, orgID, patch, allowedFrom)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentHistory), args.Error(1)
}

func (m *MockHistoryRepository) Stats(ctx context.Context, orgID, doctorID string) ([]repository.StatRow, error) {
	args := m.Called(ctx, orgID, doctorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.StatRow), args.Error(1)
}
