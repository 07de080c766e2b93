package mocks

import (
	"context"
	"encoding/json"

	"docflow/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockGeneratorService struct {
	mock.Mock
}

func (m *MockGeneratorService) Generate(ctx context.Context, orgID string, req service.GenerateRequest) (*service.GenerateResult, error) {
	args := m.Called(ctx, orgID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GenerateResult), args.Error(1)
}

func (m *MockGeneratorService) GenerateWithAI(ctx context.Context, orgID string, req service.GenerateRequest) (*service.GenerateResult, error) {
	args := m.Called(ctx, orgID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GenerateResult), args.Error(1)
}

func (m *MockGeneratorService) Preview(ctx context.Context, orgID string, req service.GenerateRequest) (json.RawMessage, error) {
	args := m.Called(ctx, orgID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
