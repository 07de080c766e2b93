package mocks

import (
	"context"
	"encoding/json"

	"docflow/internal/render"
	"github.com/stretchr/testify/mock"
)

type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Generate(ctx context.Context, req render.Request) (*render.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*render.Result), args.Error(1)
}

func (m *MockRenderer) Preview(ctx context.Context, req render.Request) (json.RawMessage, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}
