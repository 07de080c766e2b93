package mocks

import (
	"context"

	"docflow/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockAssetRepository struct {
	mock.Mock
}

func (m *MockAssetRepository) List(ctx context.Context, orgID string, assetType model.AssetType) ([]model.DocumentAsset, error) {
	args := m.Called(ctx, orgID, assetType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentAsset), args.Error(1)
}

func (m *MockAssetRepository) FindByID(ctx context.Context, id, orgID string) (*model.DocumentAsset, error) {
	args := m.Called(ctx, id, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentAsset), args.Error(1)
}

func (m *MockAssetRepository) ListDefaults(ctx context.Context, orgID string) ([]model.DocumentAsset, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentAsset), args.Error(1)
}

func (m *MockAssetRepository) Create(ctx context.Context, data model.DocumentAssetCreate) (*model.DocumentAsset, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentAsset), args.Error(1)
}

func (m *MockAssetRepository) Update(ctx context.Context, id, orgID string, patch model.DocumentAssetUpdate) (*model.DocumentAsset, error) {
	args := m.Called(ctx, id, orgID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentAsset), args.Error(1)
}

func (m *MockAssetRepository) SoftDelete(ctx context.Context, id, orgID string) error {
	args := m.Called(ctx, id, orgID)
	return args.Error(0)
}
