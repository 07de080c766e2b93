package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docflow/internal/model"
	"docflow/internal/service"
)

// ListAssets returns the organization's active assets, optionally filtered
// by ?type=.
func ListAssets(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		assetType := model.AssetType(c.Query("type"))
		if assetType != "" && !assetType.Valid() {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ASSET_TYPE", "invalid asset type")
		}

		assets, err := svc.List(c.UserContext(), tenantID(c), assetType)
		if err != nil {
			return writeServiceError(c, err)
		}
		return respond(c, fiber.StatusOK, assets)
	}
}

// AssetsByType returns active assets grouped per asset type.
func AssetsByType(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		grouped, err := svc.GetByType(c.UserContext(), tenantID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return respond(c, fiber.StatusOK, grouped)
	}
}

// DefaultAssets returns the current default asset per type.
func DefaultAssets(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		defaults, err := svc.GetDefaults(c.UserContext(), tenantID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return respond(c, fiber.StatusOK, defaults)
	}
}

// GetAsset returns one asset with a short-lived download URL.
func GetAsset(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		asset, err := svc.Get(c.UserContext(), id, tenantID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return respond(c, fiber.StatusOK, asset)
	}
}

// UploadAsset accepts a multipart upload (field name: file) plus the asset
// metadata form fields. The type and name fields are mandatory.
func UploadAsset(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		up := service.AssetUpload{
			Type:        model.AssetType(c.FormValue("type")),
			Name:        c.FormValue("name"),
			Description: c.FormValue("description"),
			IsDefault:   c.FormValue("is_default") == "true",
			Filename:    fh.Filename,
			MimeType:    fh.Header.Get("Content-Type"),
			Size:        fh.Size,
		}
		if up.Type == "" || up.Name == "" {
			return writeError(c, fiber.StatusBadRequest, "MISSING_FIELDS", "type and name are required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		asset, err := svc.Upload(c.UserContext(), tenantID(c), userID(c), f, up)
		if err != nil {
			return writeServiceError(c, err)
		}
		return respondMessage(c, fiber.StatusCreated, asset, "asset uploaded")
	}
}

// UpdateAsset applies a partial update to an asset's metadata.
func UpdateAsset(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var patch model.DocumentAssetUpdate
		if err := c.BodyParser(&patch); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		asset, err := svc.Update(c.UserContext(), id, tenantID(c), patch)
		if err != nil {
			return writeServiceError(c, err)
		}
		return respond(c, fiber.StatusOK, asset)
	}
}

// SetDefaultAsset promotes the asset to its type's default, displacing the
// previous one.
func SetDefaultAsset(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		asset, err := svc.SetAsDefault(c.UserContext(), id, tenantID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return respondMessage(c, fiber.StatusOK, asset, "asset set as default")
	}
}

// DeleteAsset soft-deletes the asset record.
func DeleteAsset(svc service.AssetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Delete(c.UserContext(), id, tenantID(c)); err != nil {
			return writeServiceError(c, err)
		}
		return respondMessage(c, fiber.StatusOK, nil, "asset deleted")
	}
}
