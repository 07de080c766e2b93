package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"docflow/internal/model"
)

var assetTestColumns = []string{
	"id", "organization_id", "type", "name", "description", "file_url",
	"file_size", "mime_type", "is_active", "is_default", "uploaded_by",
	"created_at", "updated_at",
}

func assetRow(id, orgID string, assetType model.AssetType, isDefault bool) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(assetTestColumns).
		AddRow(id, orgID, assetType, "clinic logo", "", "assets/key.png",
			int64(512), "image/png", true, isDefault, "user-1", now, now)
}

func TestAssetPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAssetPostgres(db)
	ctx := context.Background()

	t.Run("without type filter", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM document_assets WHERE organization_id = (.+) AND is_active = TRUE ORDER BY is_default DESC").
			WithArgs("org-1").
			WillReturnRows(assetRow("a-1", "org-1", model.AssetTypeLogo, true))

		assets, err := repo.List(ctx, "org-1", "")

		assert.NoError(t, err)
		assert.Len(t, assets, 1)
		assert.Equal(t, "a-1", assets[0].ID)
	})

	t.Run("with type filter", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM document_assets WHERE organization_id = (.+) AND type = (.+) ORDER BY is_default DESC").
			WithArgs("org-1", model.AssetTypeSignature).
			WillReturnRows(sqlmock.NewRows(assetTestColumns))

		assets, err := repo.List(ctx, "org-1", model.AssetTypeSignature)

		assert.NoError(t, err)
		assert.Empty(t, assets)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssetPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAssetPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM document_assets WHERE id = (.+) AND organization_id = (.+)").
			WithArgs("a-1", "org-1").
			WillReturnRows(assetRow("a-1", "org-1", model.AssetTypeLogo, false))

		asset, err := repo.FindByID(ctx, "a-1", "org-1")

		assert.NoError(t, err)
		assert.Equal(t, "a-1", asset.ID)
	})

	t.Run("cross-tenant id is no rows", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM document_assets WHERE id = (.+) AND organization_id = (.+)").
			WithArgs("a-1", "org-2").
			WillReturnError(sql.ErrNoRows)

		asset, err := repo.FindByID(ctx, "a-1", "org-2")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, asset)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssetPostgres_Create(t *testing.T) {
	ctx := context.Background()

	data := model.DocumentAssetCreate{
		OrganizationID: "org-1",
		Type:           model.AssetTypeLogo,
		Name:           "clinic logo",
		FileURL:        "assets/key.png",
		FileSize:       512,
		MimeType:       "image/png",
		UploadedBy:     "user-1",
	}

	t.Run("non-default inserts without a transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := NewAssetPostgres(db)

		mock.ExpectQuery("INSERT INTO document_assets").
			WithArgs("org-1", model.AssetTypeLogo, "clinic logo", "", "assets/key.png",
				int64(512), "image/png", false, "user-1").
			WillReturnRows(assetRow("a-1", "org-1", model.AssetTypeLogo, false))

		asset, err := repo.Create(ctx, data)

		assert.NoError(t, err)
		assert.Equal(t, "a-1", asset.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("default clears the previous default in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := NewAssetPostgres(db)

		defaultData := data
		defaultData.IsDefault = true

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE document_assets SET is_default = FALSE").
			WithArgs("org-1", model.AssetTypeLogo).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO document_assets").
			WillReturnRows(assetRow("a-2", "org-1", model.AssetTypeLogo, true))
		mock.ExpectCommit()

		asset, err := repo.Create(ctx, defaultData)

		assert.NoError(t, err)
		assert.True(t, asset.IsDefault)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := NewAssetPostgres(db)

		defaultData := data
		defaultData.IsDefault = true

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE document_assets SET is_default = FALSE").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("INSERT INTO document_assets").
			WillReturnError(errors.New("unique violation"))
		mock.ExpectRollback()

		_, err = repo.Create(ctx, defaultData)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAssetPostgres_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("metadata patch runs as a single statement", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := NewAssetPostgres(db)

		name := "new name"
		mock.ExpectQuery("UPDATE document_assets SET name = (.+) WHERE id = (.+) AND organization_id = (.+) RETURNING").
			WithArgs(name, "a-1", "org-1").
			WillReturnRows(assetRow("a-1", "org-1", model.AssetTypeLogo, false))

		asset, err := repo.Update(ctx, "a-1", "org-1", model.DocumentAssetUpdate{Name: &name})

		assert.NoError(t, err)
		assert.Equal(t, "a-1", asset.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("setting default clears siblings inside a transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := NewAssetPostgres(db)

		isDefault := true

		mock.ExpectBegin()
		mock.ExpectQuery("SELECT type FROM document_assets").
			WithArgs("a-1", "org-1").
			WillReturnRows(sqlmock.NewRows([]string{"type"}).AddRow("logo"))
		mock.ExpectExec("UPDATE document_assets SET is_default = FALSE").
			WithArgs("org-1", model.AssetTypeLogo).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery("UPDATE document_assets SET is_default = (.+) RETURNING").
			WithArgs(true, "a-1", "org-1").
			WillReturnRows(assetRow("a-1", "org-1", model.AssetTypeLogo, true))
		mock.ExpectCommit()

		asset, err := repo.Update(ctx, "a-1", "org-1", model.DocumentAssetUpdate{IsDefault: &isDefault})

		assert.NoError(t, err)
		assert.True(t, asset.IsDefault)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown id surfaces no rows", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
		}
		defer db.Close()
		repo := NewAssetPostgres(db)

		name := "x"
		mock.ExpectQuery("UPDATE document_assets").
			WillReturnError(sql.ErrNoRows)

		_, err = repo.Update(ctx, "missing", "org-1", model.DocumentAssetUpdate{Name: &name})

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestAssetPostgres_SoftDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewAssetPostgres(db)
	ctx := context.Background()

	t.Run("marks inactive and drops default flag", func(t *testing.T) {
		mock.ExpectExec("UPDATE document_assets SET is_active = FALSE, is_default = FALSE").
			WithArgs("a-1", "org-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SoftDelete(ctx, "a-1", "org-1")

		assert.NoError(t, err)
	})

	t.Run("zero affected rows is no rows", func(t *testing.T) {
		mock.ExpectExec("UPDATE document_assets SET is_active = FALSE, is_default = FALSE").
			WithArgs("missing", "org-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SoftDelete(ctx, "missing", "org-1")

		assert.ErrorIs(t, err, sql.ErrNoRows)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
