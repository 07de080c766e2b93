package render

import (
	"context"
	"encoding/json"
	"errors"
)

// Package render contains the client for the external document-rendering
// service, the collaborator that turns template data into a file artifact.
// Rendering itself is out of scope; only the interface boundary lives here.

// ErrUnavailable reports that the rendering service could not be reached.
// A 404 from the service maps here as well: it signals the collaborator is
// not where it should be, not that the render request was invalid.
var ErrUnavailable = errors.New("document rendering service not available")

// AssetSelection names the assets a render should use, by id. Zero-valued
// fields fall back to the organization's defaults.
type AssetSelection struct {
	LogoID       string `json:"logo_id,omitempty"`
	SignatureID  string `json:"signature_id,omitempty"`
	BackgroundID string `json:"background_id,omitempty"`
	LetterheadID string `json:"letterhead_id,omitempty"`
}

// Request is the wire payload for both generate and preview calls.
type Request struct {
	OrganizationID string          `json:"organizationId"`
	DocumentType   string          `json:"documentType"`
	TemplateData   json.RawMessage `json:"templateData"`
	PatientData    json.RawMessage `json:"patientData"`
	DoctorData     json.RawMessage `json:"doctorData"`
	Assets         *AssetSelection `json:"assets,omitempty"`
}

// Result describes the rendered artifact.
type Result struct {
	FileURL    string          `json:"fileUrl"`
	FileName   string          `json:"fileName"`
	FileSize   int64           `json:"fileSize"`
	AssetsUsed json.RawMessage `json:"assetsUsed"`
}

// Renderer is the client interface to the document-rendering service.
type Renderer interface {
	// Generate renders a document and returns the artifact reference.
	Generate(ctx context.Context, req Request) (*Result, error)
	// Preview renders without persisting anything on either side; the raw
	// preview payload is passed through to the caller.
	Preview(ctx context.Context, req Request) (json.RawMessage, error)
}
