package model

import (
	"encoding/json"
	"time"
)

// DocumentType enumerates the kinds of clinical documents the system
// generates.
type DocumentType string

const (
	DocumentTypePrescription       DocumentType = "prescription"
	DocumentTypeMedicalCertificate DocumentType = "medical_certificate"
	DocumentTypeExamOrder          DocumentType = "exam_order"
	DocumentTypeReferral           DocumentType = "referral"
	DocumentTypeDischargeSummary   DocumentType = "discharge_summary"
)

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypePrescription, DocumentTypeMedicalCertificate,
		DocumentTypeExamOrder, DocumentTypeReferral, DocumentTypeDischargeSummary:
		return true
	}
	return false
}

// DocumentStatus is the workflow state of a ledger entry.
//
// Transitions are one-directional:
//
//	draft -> approved -> sent
//	draft|approved -> cancelled
//
// sent and cancelled are terminal.
type DocumentStatus string

const (
	StatusDraft     DocumentStatus = "draft"
	StatusApproved  DocumentStatus = "approved"
	StatusSent      DocumentStatus = "sent"
	StatusCancelled DocumentStatus = "cancelled"
)

// DocumentStatuses lists every workflow state.
var DocumentStatuses = []DocumentStatus{StatusDraft, StatusApproved, StatusSent, StatusCancelled}

// GeneratedBy records how a document came to exist.
type GeneratedBy string

const (
	GeneratedByDoctor     GeneratedBy = "doctor"
	GeneratedByAIAssisted GeneratedBy = "ai_assisted"
	GeneratedByTemplate   GeneratedBy = "template"
)

// DocumentHistory is one ledger entry: a single generated document instance
// and its workflow state. PatientData and TemplateData are immutable
// snapshots captured at generation time and are stored as-is.
type DocumentHistory struct {
	ID             string          `json:"id"`
	OrganizationID string          `json:"organization_id"`
	PatientID      string          `json:"patient_id"`
	DoctorID       string          `json:"doctor_id"`
	AppointmentID  string          `json:"appointment_id,omitempty"`
	DocumentType   DocumentType    `json:"document_type"`
	TemplateName   string          `json:"template_name"`
	DocumentTitle  string          `json:"document_title"`
	FileURL        string          `json:"file_url"`
	FileSize       int64           `json:"file_size"`
	Status         DocumentStatus  `json:"status"`
	GeneratedBy    GeneratedBy     `json:"generated_by"`
	AIPrompt       string          `json:"ai_prompt,omitempty"`
	DoctorNotes    string          `json:"doctor_notes,omitempty"`
	PatientData    json.RawMessage `json:"patient_data,omitempty"`
	TemplateData   json.RawMessage `json:"template_data,omitempty"`
	AssetsUsed     json.RawMessage `json:"assets_used,omitempty"`
	ApprovedAt     *time.Time      `json:"approved_at,omitempty"`
	SentAt         *time.Time      `json:"sent_at,omitempty"`
	SentTo         string          `json:"sent_to,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Read-time enrichment from the patients/users joins; never stored.
	PatientName  string `json:"patient_name,omitempty"`
	PatientPhone string `json:"patient_phone,omitempty"`
	PatientEmail string `json:"patient_email,omitempty"`
	DoctorName   string `json:"doctor_name,omitempty"`
}

// DocumentHistoryCreate carries the fields for a new ledger entry. Status is
// not part of it: entries always start in draft.
type DocumentHistoryCreate struct {
	OrganizationID string          `json:"organization_id"`
	PatientID      string          `json:"patient_id"`
	DoctorID       string          `json:"doctor_id"`
	AppointmentID  string          `json:"appointment_id,omitempty"`
	DocumentType   DocumentType    `json:"document_type"`
	TemplateName   string          `json:"template_name"`
	DocumentTitle  string          `json:"document_title"`
	FileURL        string          `json:"file_url"`
	FileSize       int64           `json:"file_size"`
	GeneratedBy    GeneratedBy     `json:"generated_by"`
	AIPrompt       string          `json:"ai_prompt,omitempty"`
	DoctorNotes    string          `json:"doctor_notes,omitempty"`
	PatientData    json.RawMessage `json:"patient_data,omitempty"`
	TemplateData   json.RawMessage `json:"template_data,omitempty"`
	AssetsUsed     json.RawMessage `json:"assets_used,omitempty"`
}

// DocumentHistoryUpdate is the typed partial update for ledger entries. The
// fields here are the full allow-list of mutable columns.
type DocumentHistoryUpdate struct {
	Status      *DocumentStatus `json:"status,omitempty"`
	DoctorNotes *string         `json:"doctor_notes,omitempty"`
	ApprovedAt  *time.Time      `json:"approved_at,omitempty"`
	SentAt      *time.Time      `json:"sent_at,omitempty"`
	SentTo      *string         `json:"sent_to,omitempty"`
}

// Empty reports whether the patch sets no fields.
func (u DocumentHistoryUpdate) Empty() bool {
	return u.Status == nil && u.DoctorNotes == nil && u.ApprovedAt == nil &&
		u.SentAt == nil && u.SentTo == nil
}

// DocumentHistoryFilter selects ledger entries. OrganizationID is the
// mandatory tenant scope; everything else is optional.
type DocumentHistoryFilter struct {
	OrganizationID string
	PatientID      string
	DoctorID       string
	DocumentType   DocumentType
	Status         DocumentStatus
	DateFrom       *time.Time
	DateTo         *time.Time
	Search         string
	Page           int
	Limit          int
}

// StatusCounts holds per-status document counts.
type StatusCounts struct {
	Draft     int `json:"draft"`
	Approved  int `json:"approved"`
	Sent      int `json:"sent"`
	Cancelled int `json:"cancelled"`
}

// Add increments the bucket for the given status.
func (c *StatusCounts) Add(status DocumentStatus, n int) {
	switch status {
	case StatusDraft:
		c.Draft += n
	case StatusApproved:
		c.Approved += n
	case StatusSent:
		c.Sent += n
	case StatusCancelled:
		c.Cancelled += n
	}
}

// TypeStats is the per-document-type stats bucket.
type TypeStats struct {
	Total int `json:"total"`
	StatusCounts
}

// DocumentStats aggregates ledger counts by type and status.
type DocumentStats struct {
	Total    int                   `json:"total"`
	ByStatus StatusCounts          `json:"byStatus"`
	ByType   map[string]*TypeStats `json:"byType"`
}
