package repository

import (
	"context"

	"docflow/internal/model"
)

// AssetRepository defines data access for document assets using SQL queries
// only. No business logic here — strictly persistence operations.
//
// Every method is tenant-scoped: rows belonging to another organization are
// invisible, indistinguishable from absent rows.
type AssetRepository interface {
	// List returns active assets for the organization, optionally filtered
	// by type, ordered default-first then by name.
	List(ctx context.Context, orgID string, assetType model.AssetType) ([]model.DocumentAsset, error)

	// FindByID returns an active asset by id within the organization.
	// Returns sql.ErrNoRows when absent or owned by another tenant.
	FindByID(ctx context.Context, id, orgID string) (*model.DocumentAsset, error)

	// ListDefaults returns the active default assets of the organization,
	// at most one per type.
	ListDefaults(ctx context.Context, orgID string) ([]model.DocumentAsset, error)

	// Create inserts a new asset. When data.IsDefault is set, any existing
	// default of the same (organization, type) pair is cleared in the same
	// transaction as the insert.
	Create(ctx context.Context, data model.DocumentAssetCreate) (*model.DocumentAsset, error)

	// Update applies a typed partial update. When the patch sets IsDefault,
	// clearing the previous default and applying the patch happen in one
	// transaction. Returns sql.ErrNoRows when the asset is absent.
	Update(ctx context.Context, id, orgID string, patch model.DocumentAssetUpdate) (*model.DocumentAsset, error)

	// SoftDelete marks the asset inactive. Returns sql.ErrNoRows when the
	// asset is absent or already inactive.
	SoftDelete(ctx context.Context, id, orgID string) error
}
