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

const historyColumns = `dh.id, dh.organization_id, dh.patient_id, dh.doctor_id,
		COALESCE(dh.appointment_id::text, ''), dh.document_type, dh.template_name,
		dh.document_title, dh.file_url, dh.file_size, dh.status, dh.generated_by,
		COALESCE(dh.ai_prompt, ''), COALESCE(dh.doctor_notes, ''), dh.patient_data,
		dh.template_data, dh.assets_used, dh.approved_at, dh.sent_at,
		COALESCE(dh.sent_to, ''), dh.created_at, dh.updated_at`

// patientName/doctorName are read-time enrichment expressions; the names are
// never stored on the ledger row.
const (
	patientNameExpr = `p.first_name || ' ' || p.last_name`
	doctorNameExpr  = `u.first_name || ' ' || u.last_name`
	patientJoin     = `JOIN patients p ON p.id = dh.patient_id`
	doctorJoin      = `JOIN users u ON u.id = dh.doctor_id`
)

// HistoryPostgres is a PostgreSQL implementation of
// repository.HistoryRepository. Ledger rows are append-plus-update only;
// nothing here issues a DELETE.
type HistoryPostgres struct {
	db *sql.DB
}

// NewHistoryPostgres creates a new HistoryPostgres repository.
func NewHistoryPostgres(db *sql.DB) *HistoryPostgres {
	return &HistoryPostgres{db: db}
}

var _ repository.HistoryRepository = (*HistoryPostgres)(nil)

// scanHistory scans the fixed historyColumns set, then any enrichment
// destinations the query appended after them.
func scanHistory(row rowScanner, extra ...any) (*model.DocumentHistory, error) {
	var d model.DocumentHistory
	dest := []any{
		&d.ID,
		&d.OrganizationID,
		&d.PatientID,
		&d.DoctorID,
		&d.AppointmentID,
		&d.DocumentType,
		&d.TemplateName,
		&d.DocumentTitle,
		&d.FileURL,
		&d.FileSize,
		&d.Status,
		&d.GeneratedBy,
		&d.AIPrompt,
		&d.DoctorNotes,
		&d.PatientData,
		&d.TemplateData,
		&d.AssetsUsed,
		&d.ApprovedAt,
		&d.SentAt,
		&d.SentTo,
		&d.CreatedAt,
		&d.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new ledger entry. Status is hardcoded to draft:
// whatever the caller wanted, an entry starts its life unapproved.
func (r *HistoryPostgres) Create(ctx context.Context, data model.DocumentHistoryCreate) (*model.DocumentHistory, error) {
	q := `
		INSERT INTO document_history (
			organization_id, patient_id, doctor_id, appointment_id,
			document_type, template_name, document_title, file_url,
			file_size, generated_by, ai_prompt, doctor_notes,
			patient_data, template_data, assets_used, status
		)
		VALUES (
			$1, $2, $3, NULLIF($4, '')::uuid, $5, $6, $7, $8, $9, $10,
			NULLIF($11, ''), NULLIF($12, ''),
			NULLIF($13, '')::jsonb, NULLIF($14, '')::jsonb, NULLIF($15, '')::jsonb,
			'draft'
		)
		RETURNING ` + strings.ReplaceAll(historyColumns, "dh.", "")

	row := r.db.QueryRowContext(ctx, q,
		data.OrganizationID,
		data.PatientID,
		data.DoctorID,
		data.AppointmentID,
		data.DocumentType,
		data.TemplateName,
		data.DocumentTitle,
		data.FileURL,
		data.FileSize,
		data.GeneratedBy,
		data.AIPrompt,
		data.DoctorNotes,
		string(data.PatientData),
		string(data.TemplateData),
		string(data.AssetsUsed),
	)
	return scanHistory(row)
}

// FindByID returns one entry enriched with patient/doctor presentation
// fields via read-time joins.
func (r *HistoryPostgres) FindByID(ctx context.Context, id, orgID string) (*model.DocumentHistory, error) {
	q := `
		SELECT ` + historyColumns + `,
			` + patientNameExpr + ` AS patient_name,
			COALESCE(p.phone_number, '') AS patient_phone,
			COALESCE(p.email, '') AS patient_email,
			` + doctorNameExpr + ` AS doctor_name
		FROM document_history dh
		` + patientJoin + `
		` + doctorJoin + `
		WHERE dh.id = $1 AND dh.organization_id = $2`

	var patientName, patientPhone, patientEmail, doctorName string
	d, err := scanHistory(r.db.QueryRowContext(ctx, q, id, orgID),
		&patientName, &patientPhone, &patientEmail, &doctorName)
	if err != nil {
		return nil, err
	}
	d.PatientName = patientName
	d.PatientPhone = patientPhone
	d.PatientEmail = patientEmail
	d.DoctorName = doctorName
	return d, nil
}

// historyFilterSQL compiles the filter into WHERE conditions and positional
// args. Condition text is fixed; only values come from the caller.
func historyFilterSQL(f model.DocumentHistoryFilter) ([]string, []any) {
	where := []string{"dh.organization_id = $1"}
	args := []any{f.OrganizationID}
	n := 1
	add := func(format string, v any) {
		n++
		where = append(where, fmt.Sprintf(format, n))
		args = append(args, v)
	}
	if f.PatientID != "" {
		add("dh.patient_id = $%d", f.PatientID)
	}
	if f.DoctorID != "" {
		add("dh.doctor_id = $%d", f.DoctorID)
	}
	if f.DocumentType != "" {
		add("dh.document_type = $%d", f.DocumentType)
	}
	if f.Status != "" {
		add("dh.status = $%d", f.Status)
	}
	if f.DateFrom != nil {
		add("dh.created_at >= $%d", *f.DateFrom)
	}
	if f.DateTo != nil {
		add("dh.created_at <= $%d", *f.DateTo)
	}
	if f.Search != "" {
		n++
		p := strconv.Itoa(n)
		where = append(where, `(dh.document_title ILIKE $`+p+
			` OR p.first_name ILIKE $`+p+` OR p.last_name ILIKE $`+p+
			` OR u.first_name ILIKE $`+p+` OR u.last_name ILIKE $`+p+`)`)
		args = append(args, "%"+f.Search+"%")
	}
	return where, args
}

// List returns filtered entries newest-first. Total is counted over the same
// filter before LIMIT/OFFSET so it is independent of pagination.
func (r *HistoryPostgres) List(ctx context.Context, filter model.DocumentHistoryFilter) (*repository.PageResult[model.DocumentHistory], error) {
	where, args := historyFilterSQL(filter)
	from := `
		FROM document_history dh
		` + patientJoin + `
		` + doctorJoin + `
		WHERE ` + strings.Join(where, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*)`+from, args...).Scan(&total); err != nil {
		return nil, err
	}

	q := `
		SELECT ` + historyColumns + `,
			` + patientNameExpr + ` AS patient_name,
			` + doctorNameExpr + ` AS doctor_name` + from + `
		ORDER BY dh.created_at DESC`

	if filter.Limit > 0 {
		q += ` LIMIT $` + strconv.Itoa(len(args)+1)
		args = append(args, filter.Limit)
		if filter.Page > 1 {
			q += ` OFFSET $` + strconv.Itoa(len(args)+1)
			args = append(args, (filter.Page-1)*filter.Limit)
		}
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentHistory, 0)
	for rows.Next() {
		var patientName, doctorName string
		d, err := scanHistory(rows, &patientName, &doctorName)
		if err != nil {
			return nil, err
		}
		d.PatientName = patientName
		d.DoctorName = doctorName
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &repository.PageResult[model.DocumentHistory]{Items: items, Total: total}, nil
}

// ListByPatient returns the patient's entries newest-first, enriched with
// the doctor's name.
func (r *HistoryPostgres) ListByPatient(ctx context.Context, patientID, orgID string) ([]model.DocumentHistory, error) {
	q := `
		SELECT ` + historyColumns + `,
			` + doctorNameExpr + ` AS doctor_name
		FROM document_history dh
		` + doctorJoin + `
		WHERE dh.patient_id = $1 AND dh.organization_id = $2
		ORDER BY dh.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, patientID, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentHistory, 0)
	for rows.Next() {
		var doctorName string
		d, err := scanHistory(rows, &doctorName)
		if err != nil {
			return nil, err
		}
		d.DoctorName = doctorName
		items = append(items, *d)
	}
	return items, rows.Err()
}

// ListByDoctor returns the doctor's entries newest-first, enriched with the
// patient's name.
func (r *HistoryPostgres) ListByDoctor(ctx context.Context, doctorID, orgID string) ([]model.DocumentHistory, error) {
	q := `
		SELECT ` + historyColumns + `,
			` + patientNameExpr + ` AS patient_name
		FROM document_history dh
		` + patientJoin + `
		WHERE dh.doctor_id = $1 AND dh.organization_id = $2
		ORDER BY dh.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, doctorID, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentHistory, 0)
	for rows.Next() {
		var patientName string
		d, err := scanHistory(rows, &patientName)
		if err != nil {
			return nil, err
		}
		d.PatientName = patientName
		items = append(items, *d)
	}
	return items, rows.Err()
}

// historyPatchSQL compiles the typed patch plus the allowed-from status
// guard. Zero matched rows (absent, cross-tenant, or already in a terminal
// state) surface as sql.ErrNoRows from the RETURNING scan.
func historyPatchSQL(patch model.DocumentHistoryUpdate, allowedFrom []model.DocumentStatus) (string, []any) {
	var sets []string
	var args []any
	n := 0
	add := func(col string, v any) {
		n++
		sets = append(sets, fmt.Sprintf("%s = $%d", col, n))
		args = append(args, v)
	}
	if patch.Status != nil {
		add("status", *patch.Status)
	}
	if patch.DoctorNotes != nil {
		add("doctor_notes", *patch.DoctorNotes)
	}
	if patch.ApprovedAt != nil {
		add("approved_at", *patch.ApprovedAt)
	}
	if patch.SentAt != nil {
		add("sent_at", *patch.SentAt)
	}
	if patch.SentTo != nil {
		add("sent_to", *patch.SentTo)
	}
	sets = append(sets, "updated_at = now()")

	q := `
		UPDATE document_history
		SET ` + strings.Join(sets, ", ") + `
		WHERE id = $` + strconv.Itoa(n+1) + ` AND organization_id = $` + strconv.Itoa(n+2)
	n += 2

	if len(allowedFrom) > 0 {
		ph := make([]string, len(allowedFrom))
		for i := range allowedFrom {
			ph[i] = "$" + strconv.Itoa(n+1+i)
		}
		q += ` AND status IN (` + strings.Join(ph, ", ") + `)`
	}
	q += `
		RETURNING ` + strings.ReplaceAll(historyColumns, "dh.", "")
	return q, args
}

// Update applies a typed partial update behind the status guard.
func (r *HistoryPostgres) Update(ctx context.Context, id, orgID string, patch model.DocumentHistoryUpdate, allowedFrom []model.DocumentStatus) (*model.DocumentHistory, error) {
	q, args := historyPatchSQL(patch, allowedFrom)
	args = append(args, id, orgID)
	for _, s := range allowedFrom {
		args = append(args, s)
	}
	return scanHistory(r.db.QueryRowContext(ctx, q, args...))
}

// Stats returns the raw (document_type, status) counts for the
// organization, optionally scoped to one doctor.
func (r *HistoryPostgres) Stats(ctx context.Context, orgID, doctorID string) ([]repository.StatRow, error) {
	q := `
		SELECT document_type, status, COUNT(*) AS count
		FROM document_history
		WHERE organization_id = $1`
	args := []any{orgID}
	if doctorID != "" {
		q += ` AND doctor_id = $2`
		args = append(args, doctorID)
	}
	q += `
		GROUP BY document_type, status
		ORDER BY document_type, status`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]repository.StatRow, 0)
	for rows.Next() {
		var row repository.StatRow
		if err := rows.Scan(&row.DocumentType, &row.Status, &row.Count); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
