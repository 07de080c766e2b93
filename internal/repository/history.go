package repository

import (
	"context"

	"docflow/internal/model"
)

// StatRow is one raw aggregate row: the count of ledger entries for a
// (document_type, status) pair.
type StatRow struct {
	DocumentType model.DocumentType
	Status       model.DocumentStatus
	Count        int
}

// HistoryRepository defines data access for the document history ledger.
// Entries are never physically deleted; cancellation is a status.
type HistoryRepository interface {
	// Create inserts a new ledger entry with status draft and returns the
	// stored record.
	Create(ctx context.Context, data model.DocumentHistoryCreate) (*model.DocumentHistory, error)

	// FindByID returns an entry by id within the organization, enriched
	// with patient/doctor display names and patient contact fields.
	// Returns sql.ErrNoRows when absent or cross-tenant.
	FindByID(ctx context.Context, id, orgID string) (*model.DocumentHistory, error)

	// List returns entries matching the filter, newest-first, with the
	// total filtered count independent of page/limit.
	List(ctx context.Context, filter model.DocumentHistoryFilter) (*PageResult[model.DocumentHistory], error)

	// ListByPatient returns the patient's entries, newest-first.
	ListByPatient(ctx context.Context, patientID, orgID string) ([]model.DocumentHistory, error)

	// ListByDoctor returns the doctor's entries, newest-first.
	ListByDoctor(ctx context.Context, doctorID, orgID string) ([]model.DocumentHistory, error)

	// Update applies a typed partial update. When allowedFrom is non-empty
	// the update only matches rows whose current status is in the set, so a
	// transition from a terminal state updates zero rows. Zero matched rows
	// surface as sql.ErrNoRows.
	Update(ctx context.Context, id, orgID string, patch model.DocumentHistoryUpdate, allowedFrom []model.DocumentStatus) (*model.DocumentHistory, error)

	// Stats returns counts grouped by (document_type, status), optionally
	// scoped to one doctor.
	Stats(ctx context.Context, orgID, doctorID string) ([]StatRow, error)
}
