package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"docflow/internal/model"
	"docflow/internal/repository"
)

const assetColumns = `id, organization_id, type, name, COALESCE(description, ''), file_url,
		file_size, mime_type, is_active, is_default, uploaded_by, created_at, updated_at`

// AssetPostgres is a PostgreSQL implementation of repository.AssetRepository.
// It uses database/sql with parameterized queries and contains no business
// logic. The one-default-per-type invariant is protected by running the
// clear-then-set sequence inside a single transaction; a partial unique
// index on (organization_id, type) WHERE is_default AND is_active backstops
// it at the schema level.
type AssetPostgres struct {
	db *sql.DB
}

// NewAssetPostgres creates a new AssetPostgres repository.
func NewAssetPostgres(db *sql.DB) *AssetPostgres {
	return &AssetPostgres{db: db}
}

var _ repository.AssetRepository = (*AssetPostgres)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (*model.DocumentAsset, error) {
	var a model.DocumentAsset
	if err := row.Scan(
		&a.ID,
		&a.OrganizationID,
		&a.Type,
		&a.Name,
		&a.Description,
		&a.FileURL,
		&a.FileSize,
		&a.MimeType,
		&a.IsActive,
		&a.IsDefault,
		&a.UploadedBy,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns active assets for one organization, optionally filtered by
// type, defaults first then by name.
func (r *AssetPostgres) List(ctx context.Context, orgID string, assetType model.AssetType) ([]model.DocumentAsset, error) {
	q := `
		SELECT ` + assetColumns + `
		FROM document_assets
		WHERE organization_id = $1 AND is_active = TRUE`
	args := []any{orgID}
	if assetType != "" {
		q += ` AND type = $2`
		args = append(args, assetType)
	}
	q += ` ORDER BY is_default DESC, name ASC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := make([]model.DocumentAsset, 0)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *a)
	}
	return assets, rows.Err()
}

// FindByID fetches an active asset scoped to the organization.
func (r *AssetPostgres) FindByID(ctx context.Context, id, orgID string) (*model.DocumentAsset, error) {
	q := `
		SELECT ` + assetColumns + `
		FROM document_assets
		WHERE id = $1 AND organization_id = $2 AND is_active = TRUE`
	return scanAsset(r.db.QueryRowContext(ctx, q, id, orgID))
}

// ListDefaults returns the active default assets, at most one per type.
func (r *AssetPostgres) ListDefaults(ctx context.Context, orgID string) ([]model.DocumentAsset, error) {
	q := `
		SELECT ` + assetColumns + `
		FROM document_assets
		WHERE organization_id = $1 AND is_default = TRUE AND is_active = TRUE`
	rows, err := r.db.QueryContext(ctx, q, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := make([]model.DocumentAsset, 0)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *a)
	}
	return assets, rows.Err()
}

const assetInsert = `
		INSERT INTO document_assets (
			organization_id, type, name, description, file_url,
			file_size, mime_type, is_default, uploaded_by
		)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6, $7, $8, $9)
		RETURNING ` + assetColumns

const assetUnsetDefaults = `
		UPDATE document_assets
		SET is_default = FALSE, updated_at = now()
		WHERE organization_id = $1 AND type = $2 AND is_default = TRUE`

// Create inserts a new asset. A default insert clears the previous default
// of the same (organization, type) pair in the same transaction.
func (r *AssetPostgres) Create(ctx context.Context, data model.DocumentAssetCreate) (*model.DocumentAsset, error) {
	args := []any{
		data.OrganizationID,
		data.Type,
		data.Name,
		data.Description,
		data.FileURL,
		data.FileSize,
		data.MimeType,
		data.IsDefault,
		data.UploadedBy,
	}

	if !data.IsDefault {
		return scanAsset(r.db.QueryRowContext(ctx, assetInsert, args...))
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, assetUnsetDefaults, data.OrganizationID, data.Type); err != nil {
		return nil, err
	}
	a, err := scanAsset(tx.QueryRowContext(ctx, assetInsert, args...))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return a, nil
}

// assetPatchSQL compiles the typed patch into a SET clause with positional
// parameters. Column names are fixed here; caller input never reaches the
// SQL text.
func assetPatchSQL(patch model.DocumentAssetUpdate) (string, []any) {
	var sets []string
	var args []any
	n := 0
	add := func(col string, v any) {
		n++
		sets = append(sets, fmt.Sprintf("%s = $%d", col, n))
		args = append(args, v)
	}
	if patch.Name != nil {
		add("name", *patch.Name)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.IsActive != nil {
		add("is_active", *patch.IsActive)
	}
	if patch.IsDefault != nil {
		add("is_default", *patch.IsDefault)
	}
	sets = append(sets, "updated_at = now()")

	q := `
		UPDATE document_assets
		SET ` + strings.Join(sets, ", ") + `
		WHERE id = $` + strconv.Itoa(n+1) + ` AND organization_id = $` + strconv.Itoa(n+2) + `
		RETURNING ` + assetColumns
	return q, args
}

// Update applies a typed partial update. Setting IsDefault clears the prior
// default of the asset's type first, inside one transaction.
func (r *AssetPostgres) Update(ctx context.Context, id, orgID string, patch model.DocumentAssetUpdate) (*model.DocumentAsset, error) {
	q, args := assetPatchSQL(patch)
	args = append(args, id, orgID)

	if patch.IsDefault == nil || !*patch.IsDefault {
		return scanAsset(r.db.QueryRowContext(ctx, q, args...))
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// The asset's type drives which defaults get cleared.
	var assetType model.AssetType
	err = tx.QueryRowContext(ctx,
		`SELECT type FROM document_assets WHERE id = $1 AND organization_id = $2 AND is_active = TRUE`,
		id, orgID,
	).Scan(&assetType)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, assetUnsetDefaults, orgID, assetType); err != nil {
		return nil, err
	}
	a, err := scanAsset(tx.QueryRowContext(ctx, q, args...))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return a, nil
}

// SoftDelete marks the asset inactive. The underlying row is kept.
func (r *AssetPostgres) SoftDelete(ctx context.Context, id, orgID string) error {
	const q = `
		UPDATE document_assets
		SET is_active = FALSE, is_default = FALSE, updated_at = now()
		WHERE id = $1 AND organization_id = $2 AND is_active = TRUE`
	res, err := r.db.ExecContext(ctx, q, id, orgID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
