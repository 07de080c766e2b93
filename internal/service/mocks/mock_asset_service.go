package mocks

import (
	"context"
	"io"

	"docflow/internal/model"
	"docflow/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockAssetService struct {
	mock.Mock
}

func (m *MockAssetService) List(ctx context.Context, orgID string, assetType model.AssetType) ([]model.DocumentAsset, error) {
	args := m.Called(ctx, orgID, assetType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentAsset), args.Error(1)
}

func (m *MockAssetService) Get(ctx context.Context, id, orgID string) (*model.DocumentAsset, error) {
	args := m.Called(ctx, id, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentAsset), args.Error(1)
}

func (m *MockAssetService) GetDefaults(ctx context.Context, orgID string) (map[model.AssetType]model.DocumentAsset, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.AssetType]model.DocumentAsset), args.Error(1)
}

func (m *MockAssetService) GetByType(ctx context.Context, orgID string) (map[model.AssetType][]model.DocumentAsset, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.AssetType][]model.DocumentAsset), args.Error(1)
}

func (m *MockAssetService) Create(ctx context.Context, data model.DocumentAssetCreate) (*model.DocumentAsset, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentAsset), args.Error(1)
}

func (m *MockAssetService) Update(ctx context.Context, id, orgID string, patch model.DocumentAssetUpdate) (*model.DocumentAsset, error) {
	args := m.Called(ctx, id, orgID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentAsset), args.Error(1)
}

func (m *MockAssetService) SetAsDefault(ctx context.Context, id, orgID string) (*model.DocumentAsset, error) {
	args := m.Called(ctx, id, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentAsset), args.Error(1)
}

func (m *MockAssetService) Delete(ctx context.Context, id, orgID string) error {
	args := m.Called(ctx, id, orgID)
	return args.Error(0)
}

func (m *MockAssetService) Upload(ctx context.Context, orgID, userID string, r io.Reader, up service.AssetUpload) (*model.DocumentAsset, error) {
	args := m.Called(ctx, orgID, userID, r, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentAsset), args.Error(1)
}
