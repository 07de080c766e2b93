package model

import "time"

// AssetType classifies an organization's branding assets used on generated
// documents.
type AssetType string

const (
	AssetTypeLogo       AssetType = "logo"
	AssetTypeSignature  AssetType = "signature"
	AssetTypeBackground AssetType = "background"
	AssetTypeLetterhead AssetType = "letterhead"
)

// AssetTypes lists every known asset type in presentation order.
var AssetTypes = []AssetType{
	AssetTypeLogo,
	AssetTypeSignature,
	AssetTypeBackground,
	AssetTypeLetterhead,
}

// Valid reports whether t is one of the known asset types.
func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeLogo, AssetTypeSignature, AssetTypeBackground, AssetTypeLetterhead:
		return true
	}
	return false
}

// AllowedMimeTypes maps each asset type to the content types accepted on
// upload. Backgrounds are raster only; letterheads additionally accept PDF.
var AllowedMimeTypes = map[AssetType][]string{
	AssetTypeLogo:       {"image/png", "image/jpeg", "image/svg+xml"},
	AssetTypeSignature:  {"image/png", "image/jpeg", "image/svg+xml"},
	AssetTypeBackground: {"image/png", "image/jpeg"},
	AssetTypeLetterhead: {"image/png", "image/jpeg", "application/pdf"},
}

// MimeAllowed reports whether the given content type is accepted for t.
func (t AssetType) MimeAllowed(mimeType string) bool {
	for _, m := range AllowedMimeTypes[t] {
		if m == mimeType {
			return true
		}
	}
	return false
}

// DocumentAsset is an organization-scoped branding asset (logo, signature,
// background or letterhead). Among active assets, at most one per
// (organization, type) pair carries IsDefault.
type DocumentAsset struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Type           AssetType `json:"type"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	FileURL        string    `json:"file_url"`
	FileSize       int64     `json:"file_size"`
	MimeType       string    `json:"mime_type"`
	IsActive       bool      `json:"is_active"`
	IsDefault      bool      `json:"is_default"`
	UploadedBy     string    `json:"uploaded_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// DownloadURL is a time-limited signed URL resolved at read time;
	// never stored.
	DownloadURL string `json:"download_url,omitempty"`
}

// DocumentAssetCreate carries the fields required to insert a new asset.
type DocumentAssetCreate struct {
	OrganizationID string    `json:"organization_id"`
	Type           AssetType `json:"type"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	FileURL        string    `json:"file_url"`
	FileSize       int64     `json:"file_size"`
	MimeType       string    `json:"mime_type"`
	IsDefault      bool      `json:"is_default,omitempty"`
	UploadedBy     string    `json:"uploaded_by"`
}

// DocumentAssetUpdate is a typed partial update. Nil fields are left
// untouched; the field set here is the complete allow-list of mutable
// columns, so patches never carry caller-controlled column names.
type DocumentAssetUpdate struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
	IsDefault   *bool   `json:"is_default,omitempty"`
}

// Empty reports whether the patch sets no fields.
func (u DocumentAssetUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.IsActive == nil && u.IsDefault == nil
}
