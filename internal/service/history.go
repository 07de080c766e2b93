package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"docflow/internal/model"
	"docflow/internal/repository"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
	ErrSentToRequired   = errors.New("sent_to field is required")
)

const defaultPageLimit = 20

// DocumentListResult is the service-level DTO for filtered ledger pages.
// Total counts all matches regardless of pagination.
type DocumentListResult struct {
	Documents []model.DocumentHistory `json:"documents"`
	Total     int                     `json:"total"`
}

// HistoryService defines the use cases of the document history ledger:
// recording generated documents and walking them through the
// draft/approved/sent/cancelled workflow.
type HistoryService interface {
	// Create records a new ledger entry. Entries always start in draft;
	// any status in the input is ignored.
	Create(ctx context.Context, data model.DocumentHistoryCreate) (*model.DocumentHistory, error)

	// List returns filtered entries newest-first with the full filtered
	// count. Page defaults to 1, limit to 20.
	List(ctx context.Context, filter model.DocumentHistoryFilter) (*DocumentListResult, error)

	// Get returns one entry enriched with patient/doctor display fields.
	Get(ctx context.Context, id, orgID string) (*model.DocumentHistory, error)

	// ListByPatient and ListByDoctor return scoped listings, newest-first.
	ListByPatient(ctx context.Context, patientID, orgID string) ([]model.DocumentHistory, error)
	ListByDoctor(ctx context.Context, doctorID, orgID string) ([]model.DocumentHistory, error)

	// Update applies a generic partial update over the mutable field set.
	// An empty patch is reported as not-found, unlike assets; the split is
	// deliberate and kept from the observed behavior of both surfaces.
	// A patch that carries a status is held to the same transition rules as
	// the dedicated operations, so sent and cancelled entries cannot be
	// regressed through this surface either.
	Update(ctx context.Context, id, orgID string, patch model.DocumentHistoryUpdate) (*model.DocumentHistory, error)

	// Approve moves draft -> approved, recording approved_at and optional
	// notes.
	Approve(ctx context.Context, id, orgID, doctorNotes string) (*model.DocumentHistory, error)

	// Send moves approved -> sent, recording sent_at and the required
	// recipient.
	Send(ctx context.Context, id, orgID, sentTo string) (*model.DocumentHistory, error)

	// Cancel moves draft|approved -> cancelled, recording an optional
	// reason in doctor_notes.
	Cancel(ctx context.Context, id, orgID, reason string) (*model.DocumentHistory, error)

	// Stats aggregates counts by (document_type, status), optionally
	// scoped to one doctor.
	Stats(ctx context.Context, orgID, doctorID string) (*model.DocumentStats, error)
}

type historyService struct {
	repo repository.HistoryRepository
}

// NewHistoryService constructs a new HistoryService.
func NewHistoryService(repo repository.HistoryRepository) HistoryService {
	return &historyService{repo: repo}
}

func (s *historyService) Create(ctx context.Context, data model.DocumentHistoryCreate) (*model.DocumentHistory, error) {
	return s.repo.Create(ctx, data)
}

func (s *historyService) List(ctx context.Context, filter model.DocumentHistoryFilter) (*DocumentListResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultPageLimit
	}
	res, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Documents: res.Items, Total: res.Total}, nil
}

func (s *historyService) Get(ctx context.Context, id, orgID string) (*model.DocumentHistory, error) {
	doc, err := s.repo.FindByID(ctx, id, orgID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *historyService) ListByPatient(ctx context.Context, patientID, orgID string) ([]model.DocumentHistory, error) {
	return s.repo.ListByPatient(ctx, patientID, orgID)
}

func (s *historyService) ListByDoctor(ctx context.Context, doctorID, orgID string) ([]model.DocumentHistory, error) {
	return s.repo.ListByDoctor(ctx, doctorID, orgID)
}

// transitionSources lists which statuses each target status may be reached
// from. Draft is absent: entries are born in draft and nothing returns there.
var transitionSources = map[model.DocumentStatus][]model.DocumentStatus{
	model.StatusApproved:  {model.StatusDraft},
	model.StatusSent:      {model.StatusApproved},
	model.StatusCancelled: {model.StatusDraft, model.StatusApproved},
}

func (s *historyService) Update(ctx context.Context, id, orgID string, patch model.DocumentHistoryUpdate) (*model.DocumentHistory, error) {
	if patch.Empty() {
		return nil, ErrDocumentNotFound
	}
	var allowedFrom []model.DocumentStatus
	if patch.Status != nil {
		allowedFrom = transitionSources[*patch.Status]
		if len(allowedFrom) == 0 {
			return nil, ErrDocumentNotFound
		}
	}
	return s.update(ctx, id, orgID, patch, allowedFrom)
}

func (s *historyService) update(ctx context.Context, id, orgID string, patch model.DocumentHistoryUpdate, allowedFrom []model.DocumentStatus) (*model.DocumentHistory, error) {
	doc, err := s.repo.Update(ctx, id, orgID, patch, allowedFrom)
	if err != nil {
		// Zero matched rows: absent, cross-tenant, or already terminal.
		// The model does not distinguish these.
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *historyService) Approve(ctx context.Context, id, orgID, doctorNotes string) (*model.DocumentHistory, error) {
	status := model.StatusApproved
	now := time.Now().UTC()
	patch := model.DocumentHistoryUpdate{Status: &status, ApprovedAt: &now}
	if doctorNotes != "" {
		patch.DoctorNotes = &doctorNotes
	}
	return s.update(ctx, id, orgID, patch, transitionSources[model.StatusApproved])
}

func (s *historyService) Send(ctx context.Context, id, orgID, sentTo string) (*model.DocumentHistory, error) {
	if sentTo == "" {
		return nil, ErrSentToRequired
	}
	status := model.StatusSent
	now := time.Now().UTC()
	patch := model.DocumentHistoryUpdate{Status: &status, SentAt: &now, SentTo: &sentTo}
	return s.update(ctx, id, orgID, patch, transitionSources[model.StatusSent])
}

func (s *historyService) Cancel(ctx context.Context, id, orgID, reason string) (*model.DocumentHistory, error) {
	status := model.StatusCancelled
	patch := model.DocumentHistoryUpdate{Status: &status}
	if reason != "" {
		patch.DoctorNotes = &reason
	}
	return s.update(ctx, id, orgID, patch, transitionSources[model.StatusCancelled])
}

func (s *historyService) Stats(ctx context.Context, orgID, doctorID string) (*model.DocumentStats, error) {
	rows, err := s.repo.Stats(ctx, orgID, doctorID)
	if err != nil {
		return nil, err
	}
	stats := &model.DocumentStats{ByType: make(map[string]*model.TypeStats)}
	for _, row := range rows {
		stats.Total += row.Count
		stats.ByStatus.Add(row.Status, row.Count)

		t, ok := stats.ByType[string(row.DocumentType)]
		if !ok {
			t = &model.TypeStats{}
			stats.ByType[string(row.DocumentType)] = t
		}
		t.Total += row.Count
		t.Add(row.Status, row.Count)
	}
	return stats, nil
}
