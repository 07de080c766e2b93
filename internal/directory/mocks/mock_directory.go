package mocks

import (
	"context"

	"docflow/internal/directory"
	"github.com/stretchr/testify/mock"
)

type MockDirectory struct {
	mock.Mock
}

func (m *MockDirectory) GetPatient(ctx context.Context, id, orgID string) (*directory.Patient, error) {
	args := m.Called(ctx, id, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Patient), args.Error(1)
}

func (m *MockDirectory) GetDoctor(ctx context.Context, id, orgID string) (*directory.Doctor, error) {
	args := m.Called(ctx, id, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Doctor), args.Error(1)
}
