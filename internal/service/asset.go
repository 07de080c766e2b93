package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"docflow/internal/model"
	"docflow/internal/repository"
	"docflow/internal/storage"
)

var (
	ErrAssetNotFound    = errors.New("asset not found")
	ErrInvalidAssetType = errors.New("invalid asset type")
	ErrMimeNotAllowed   = errors.New("file type not allowed for asset type")
)

const presignExpiry = time.Hour

// AssetUpload carries the upload form fields alongside the file stream.
type AssetUpload struct {
	Type        model.AssetType
	Name        string
	Description string
	IsDefault   bool
	Filename    string
	MimeType    string
	Size        int64
}

// AssetService defines the use cases of the asset registry: CRUD over
// organization-scoped branding assets plus the one-default-per-type
// invariant.
type AssetService interface {
	// List returns active assets, optionally filtered by type,
	// defaults first.
	List(ctx context.Context, orgID string, assetType model.AssetType) ([]model.DocumentAsset, error)

	// Get returns one asset. Cross-tenant ids come back as not-found.
	Get(ctx context.Context, id, orgID string) (*model.DocumentAsset, error)

	// GetDefaults returns the current default per type, one entry per type
	// that has one.
	GetDefaults(ctx context.Context, orgID string) (map[model.AssetType]model.DocumentAsset, error)

	// GetByType partitions active assets by type. Every known type is
	// present as a key even when its slice is empty.
	GetByType(ctx context.Context, orgID string) (map[model.AssetType][]model.DocumentAsset, error)

	// Create inserts a new asset record; a requested default displaces the
	// previous default of its type atomically.
	Create(ctx context.Context, data model.DocumentAssetCreate) (*model.DocumentAsset, error)

	// Update applies a partial update. An empty patch is a no-op returning
	// the current state.
	Update(ctx context.Context, id, orgID string, patch model.DocumentAssetUpdate) (*model.DocumentAsset, error)

	// SetAsDefault makes the asset its type's default.
	SetAsDefault(ctx context.Context, id, orgID string) (*model.DocumentAsset, error)

	// Delete soft-deletes the asset. The stored file is removed best-effort:
	// a storage failure is logged, never surfaced.
	Delete(ctx context.Context, id, orgID string) error

	// Upload validates the declared type and content type, streams the file
	// to object storage, and records the asset. Validation failures occur
	// before any I/O; a storage failure leaves no asset record behind.
	Upload(ctx context.Context, orgID, userID string, r io.Reader, up AssetUpload) (*model.DocumentAsset, error)
}

type assetService struct {
	store storage.Storage
	repo  repository.AssetRepository
}

// NewAssetService constructs a new AssetService.
func NewAssetService(store storage.Storage, repo repository.AssetRepository) AssetService {
	return &assetService{store: store, repo: repo}
}

func (s *assetService) List(ctx context.Context, orgID string, assetType model.AssetType) ([]model.DocumentAsset, error) {
	if assetType != "" && !assetType.Valid() {
		return nil, ErrInvalidAssetType
	}
	return s.repo.List(ctx, orgID, assetType)
}

func (s *assetService) Get(ctx context.Context, id, orgID string) (*model.DocumentAsset, error) {
	asset, err := s.findByID(ctx, id, orgID)
	if err != nil {
		return nil, err
	}
	// Signed URL is presentation sugar; the asset is returned without one
	// when presigning fails.
	if url, err := s.store.PresignGet(ctx, asset.FileURL, presignExpiry); err == nil {
		asset.DownloadURL = url
	}
	return asset, nil
}

func (s *assetService) findByID(ctx context.Context, id, orgID string) (*model.DocumentAsset, error) {
	asset, err := s.repo.FindByID(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return asset, nil
}

func (s *assetService) GetDefaults(ctx context.Context, orgID string) (map[model.AssetType]model.DocumentAsset, error) {
	assets, err := s.repo.ListDefaults(ctx, orgID)
	if err != nil {
		return nil, err
	}
	defaults := make(map[model.AssetType]model.DocumentAsset, len(assets))
	for _, a := range assets {
		defaults[a.Type] = a
	}
	return defaults, nil
}

func (s *assetService) GetByType(ctx context.Context, orgID string) (map[model.AssetType][]model.DocumentAsset, error) {
	assets, err := s.repo.List(ctx, orgID, "")
	if err != nil {
		return nil, err
	}
	byType := make(map[model.AssetType][]model.DocumentAsset, len(model.AssetTypes))
	for _, t := range model.AssetTypes {
		byType[t] = []model.DocumentAsset{}
	}
	for _, a := range assets {
		if _, known := byType[a.Type]; known {
			byType[a.Type] = append(byType[a.Type], a)
		}
	}
	return byType, nil
}

func (s *assetService) Create(ctx context.Context, data model.DocumentAssetCreate) (*model.DocumentAsset, error) {
	if !data.Type.Valid() {
		return nil, ErrInvalidAssetType
	}
	return s.repo.Create(ctx, data)
}

func (s *assetService) Update(ctx context.Context, id, orgID string, patch model.DocumentAssetUpdate) (*model.DocumentAsset, error) {
	// Zero-field patches are a read, not a write.
	if patch.Empty() {
		return s.Get(ctx, id, orgID)
	}
	asset, err := s.repo.Update(ctx, id, orgID, patch)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAssetNotFound
		}
		return nil, err
	}
	return asset, nil
}

func (s *assetService) SetAsDefault(ctx context.Context, id, orgID string) (*model.DocumentAsset, error) {
	isDefault := true
	return s.Update(ctx, id, orgID, model.DocumentAssetUpdate{IsDefault: &isDefault})
}

func (s *assetService) Delete(ctx context.Context, id, orgID string) error {
	asset, err := s.findByID(ctx, id, orgID)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id, orgID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAssetNotFound
		}
		return err
	}
	// The record is the source of truth; losing the blob only costs storage.
	if err := s.store.Delete(ctx, asset.FileURL); err != nil {
		logEvent(map[string]any{
			"component": "asset_service",
			"event":     "asset_file_cleanup_failed",
			"asset_id":  id,
			"file_url":  asset.FileURL,
			"error":     err.Error(),
		})
	}
	return nil
}

func (s *assetService) Upload(ctx context.Context, orgID, userID string, r io.Reader, up AssetUpload) (*model.DocumentAsset, error) {
	if !up.Type.Valid() {
		return nil, ErrInvalidAssetType
	}
	if !up.Type.MimeAllowed(up.MimeType) {
		return nil, fmt.Errorf("%w: %s for %s", ErrMimeNotAllowed, up.MimeType, up.Type)
	}

	key := filepath.ToSlash(filepath.Join(
		"assets", orgID, string(up.Type),
		fmt.Sprintf("%d_%s", time.Now().UnixMilli(), filepath.Base(up.Filename)),
	))

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        up.Size,
		ContentType: up.MimeType,
		Metadata: map[string]string{
			"original-filename": up.Filename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	asset, err := s.Create(ctx, model.DocumentAssetCreate{
		OrganizationID: orgID,
		Type:           up.Type,
		Name:           up.Name,
		Description:    up.Description,
		FileURL:        objInfo.Key,
		FileSize:       objInfo.Size,
		MimeType:       up.MimeType,
		IsDefault:      up.IsDefault,
		UploadedBy:     userID,
	})
	if err != nil {
		// Rollback: remove the uploaded object so no orphan remains.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return asset, nil
}
