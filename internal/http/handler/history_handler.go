package handler

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docflow/internal/model"
	"docflow/internal/service"
)

// parseDateQuery accepts RFC3339 timestamps or plain dates (2006-01-02).
func parseDateQuery(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListHistory returns the organization's ledger entries, filtered and
// paginated, newest first.
func ListHistory(svc service.HistoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page")
		}
		limit, err := strconv.Atoi(c.Query("limit", "20"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}

		docType := model.DocumentType(c.Query("document_type"))
		if docType != "" && !docType.Valid() {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DOCUMENT_TYPE", "invalid document type")
		}

		dateFrom, err := parseDateQuery(c.Query("date_from"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "invalid date_from")
		}
		dateTo, err := parseDateQuery(c.Query("date_to"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "invalid date_to")
		}

		filter := model.DocumentHistoryFilter{
			OrganizationID: tenantID(c),
			PatientID:      c.Query("patient_id"),
			DoctorID:       c.Query("doctor_id"),
			DocumentType:   docType,
			Status:         model.DocumentStatus(c.Query("status")),
			DateFrom:       dateFrom,
			DateTo:         dateTo,
			Search:         c.Query("search"),
			Page:           page,
			Limit:          limit,
		}

		res, err := svc.List(c.UserContext(), filter)
		if err != nil {
			return writeServiceError(c, err)
		}

		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = 20
		}
		return respondPage(c, res.Documents, page, limit, res.Total)
	}
}

// HistoryStats aggregates ledger counts by type and status. Doctors see
// only their own documents; other roles may scope with ?doctor_id=.
func HistoryStats(svc service.HistoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doctorID := c.Query("doctor_id")
		if userRole(c) == "doctor" {
			doctorID = userID(c)
		}

		stats, err := svc.Stats(c.UserContext(), tenantID(c), doctorID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return respond(c, fiber.StatusOK, stats)
	}
}

// HistoryByPatient returns every ledger entry for one patient, newest first.
func HistoryByPatient(svc service.HistoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		patientID := c.Params("patientId")
		if _, err := uuid.Parse(patientID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		docs, err := svc.ListByPatient(c.UserContext(), patientID, tenantID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return respond(c, fiber.StatusOK, docs)
	}
}

// HistoryByDoctor returns every ledger entry for one doctor, newest first.
func HistoryByDoctor(svc service.HistoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doctorID := c.Params("doctorId")
		if _, err := uuid.Parse(doctorID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		docs, err := svc.ListByDoctor(c.UserContext(), doctorID, tenantID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return respond(c, fiber.StatusOK, docs)
	}
}

// GetHistory returns one ledger entry with patient/doctor display fields.
func GetHistory(svc service.HistoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		doc, err := svc.Get(c.UserContext(), id, tenantID(c))
		if err != nil {
			return writeServiceError(c, err)
		}
		return respond(c, fiber.StatusOK, doc)
	}
}

// UpdateHistory applies a generic partial update to a ledger entry.
func UpdateHistory(svc service.HistoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var patch model.DocumentHistoryUpdate
		if err := c.BodyParser(&patch); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		doc, err := svc.Update(c.UserContext(), id, tenantID(c), patch)
		if err != nil {
			return writeServiceError(c, err)
		}
		return respond(c, fiber.StatusOK, doc)
	}
}

type approveRequest struct {
	DoctorNotes string `json:"doctor_notes"`
}

// ApproveDocument moves a draft entry to approved.
func ApproveDocument(svc service.HistoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var body approveRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
			}
		}

		doc, err := svc.Approve(c.UserContext(), id, tenantID(c), body.DoctorNotes)
		if err != nil {
			return writeServiceError(c, err)
		}
		return respondMessage(c, fiber.StatusOK, doc, "document approved")
	}
}

type sendRequest struct {
	SentTo string `json:"sent_to"`
}

// SendDocument moves an approved entry to sent, recording the recipient.
func SendDocument(svc service.HistoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var body sendRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
			}
		}

		doc, err := svc.Send(c.UserContext(), id, tenantID(c), body.SentTo)
		if err != nil {
			return writeServiceError(c, err)
		}
		return respondMessage(c, fiber.StatusOK, doc, "document sent")
	}
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// CancelDocument moves a draft or approved entry to cancelled.
func CancelDocument(svc service.HistoryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var body cancelRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
			}
		}

		doc, err := svc.Cancel(c.UserContext(), id, tenantID(c), body.Reason)
		if err != nil {
			return writeServiceError(c, err)
		}
		return respondMessage(c, fiber.StatusOK, doc, "document cancelled")
	}
}
