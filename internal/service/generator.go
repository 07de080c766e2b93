package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"docflow/internal/ai"
	"docflow/internal/directory"
	"docflow/internal/model"
	"docflow/internal/render"
)

var ErrMissingFields = errors.New("missing required fields")

// GenerateRequest is a request to produce one clinical document.
type GenerateRequest struct {
	PatientID     string                 `json:"patient_id"`
	DoctorID      string                 `json:"doctor_id"`
	AppointmentID string                 `json:"appointment_id,omitempty"`
	DocumentType  model.DocumentType     `json:"document_type"`
	TemplateData  json.RawMessage        `json:"template_data"`
	AIPrompt      string                 `json:"ai_prompt,omitempty"`
	Assets        *render.AssetSelection `json:"assets,omitempty"`
}

// GenerateResult is what a caller gets back from a successful generation.
// The ledger entry always starts in draft.
type GenerateResult struct {
	DocumentID string `json:"document_id"`
	FileURL    string `json:"file_url"`
	FileName   string `json:"file_name"`
	Status     string `json:"status"`
	AIEnhanced bool   `json:"ai_enhanced,omitempty"`
}

// GeneratorService turns generation requests into rendered artifacts and
// ledger entries. Validation happens before any I/O; a failed render leaves
// no ledger entry behind.
type GeneratorService interface {
	Generate(ctx context.Context, orgID string, req GenerateRequest) (*GenerateResult, error)
	GenerateWithAI(ctx context.Context, orgID string, req GenerateRequest) (*GenerateResult, error)
	// Preview renders without writing to the ledger.
	Preview(ctx context.Context, orgID string, req GenerateRequest) (json.RawMessage, error)
}

type generatorService struct {
	dir      directory.Directory
	renderer render.Renderer
	enhancer ai.Enhancer
	assets   AssetService
	history  HistoryService
}

// NewGeneratorService constructs a new GeneratorService.
func NewGeneratorService(dir directory.Directory, renderer render.Renderer, enhancer ai.Enhancer, assets AssetService, history HistoryService) GeneratorService {
	return &generatorService{
		dir:      dir,
		renderer: renderer,
		enhancer: enhancer,
		assets:   assets,
		history:  history,
	}
}

func validateGenerateRequest(req GenerateRequest) error {
	if req.PatientID == "" || req.DoctorID == "" || req.DocumentType == "" || len(req.TemplateData) == 0 {
		return ErrMissingFields
	}
	if !req.DocumentType.Valid() {
		return fmt.Errorf("%w: unknown document type %q", ErrMissingFields, req.DocumentType)
	}
	return nil
}

// buildRenderRequest resolves patient/doctor context and asset references
// into the wire payload for the rendering service. Steps 1-3 of the
// pipeline; shared by generate and preview.
func (s *generatorService) buildRenderRequest(ctx context.Context, orgID string, req GenerateRequest) (*render.Request, json.RawMessage, error) {
	patient, err := s.dir.GetPatient(ctx, req.PatientID, orgID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve patient: %w", err)
	}
	doctor, err := s.dir.GetDoctor(ctx, req.DoctorID, orgID)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve doctor: %w", err)
	}

	patientData, err := json.Marshal(patient)
	if err != nil {
		return nil, nil, err
	}
	doctorData, err := json.Marshal(doctor)
	if err != nil {
		return nil, nil, err
	}

	selection := req.Assets
	if selection == nil || *selection == (render.AssetSelection{}) {
		selection, err = s.defaultSelection(ctx, orgID)
		if err != nil {
			return nil, nil, err
		}
	}

	return &render.Request{
		OrganizationID: orgID,
		DocumentType:   string(req.DocumentType),
		TemplateData:   req.TemplateData,
		PatientData:    patientData,
		DoctorData:     doctorData,
		Assets:         selection,
	}, patientData, nil
}

// defaultSelection maps the organization's current default assets into a
// render selection.
func (s *generatorService) defaultSelection(ctx context.Context, orgID string) (*render.AssetSelection, error) {
	defaults, err := s.assets.GetDefaults(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("resolve default assets: %w", err)
	}
	sel := &render.AssetSelection{}
	if a, ok := defaults[model.AssetTypeLogo]; ok {
		sel.LogoID = a.ID
	}
	if a, ok := defaults[model.AssetTypeSignature]; ok {
		sel.SignatureID = a.ID
	}
	if a, ok := defaults[model.AssetTypeBackground]; ok {
		sel.BackgroundID = a.ID
	}
	if a, ok := defaults[model.AssetTypeLetterhead]; ok {
		sel.LetterheadID = a.ID
	}
	return sel, nil
}

func (s *generatorService) Generate(ctx context.Context, orgID string, req GenerateRequest) (*GenerateResult, error) {
	return s.generate(ctx, orgID, req, model.GeneratedByDoctor, "")
}

func (s *generatorService) GenerateWithAI(ctx context.Context, orgID string, req GenerateRequest) (*GenerateResult, error) {
	if err := validateGenerateRequest(req); err != nil {
		return nil, err
	}
	enhanced, err := s.enhancer.Enhance(ctx, req.TemplateData, req.AIPrompt)
	if err != nil {
		return nil, fmt.Errorf("enhance template data: %w", err)
	}
	req.TemplateData = enhanced
	return s.generate(ctx, orgID, req, model.GeneratedByAIAssisted, req.AIPrompt)
}

func (s *generatorService) generate(ctx context.Context, orgID string, req GenerateRequest, generatedBy model.GeneratedBy, aiPrompt string) (*GenerateResult, error) {
	if err := validateGenerateRequest(req); err != nil {
		return nil, err
	}

	renderReq, patientData, err := s.buildRenderRequest(ctx, orgID, req)
	if err != nil {
		return nil, err
	}

	rendered, err := s.renderer.Generate(ctx, *renderReq)
	if err != nil {
		return nil, err
	}

	templateName := templateNameFrom(req.TemplateData, generatedBy)
	entry, err := s.history.Create(ctx, model.DocumentHistoryCreate{
		OrganizationID: orgID,
		PatientID:      req.PatientID,
		DoctorID:       req.DoctorID,
		AppointmentID:  req.AppointmentID,
		DocumentType:   req.DocumentType,
		TemplateName:   templateName,
		DocumentTitle:  documentTitle(req.DocumentType, req.TemplateData),
		FileURL:        rendered.FileURL,
		FileSize:       rendered.FileSize,
		GeneratedBy:    generatedBy,
		AIPrompt:       aiPrompt,
		PatientData:    patientData,
		TemplateData:   req.TemplateData,
		AssetsUsed:     rendered.AssetsUsed,
	})
	if err != nil {
		// The render already happened; record the orphaned artifact so it
		// can be reconciled instead of silently leaking.
		logEvent(map[string]any{
			"component": "generator_service",
			"event":     "ledger_write_failed_after_render",
			"level":     "error",
			"file_url":  rendered.FileURL,
			"error":     err.Error(),
		})
		return nil, fmt.Errorf("record document history: %w", err)
	}

	return &GenerateResult{
		DocumentID: entry.ID,
		FileURL:    rendered.FileURL,
		FileName:   rendered.FileName,
		Status:     string(model.StatusDraft),
		AIEnhanced: generatedBy == model.GeneratedByAIAssisted,
	}, nil
}

func (s *generatorService) Preview(ctx context.Context, orgID string, req GenerateRequest) (json.RawMessage, error) {
	if err := validateGenerateRequest(req); err != nil {
		return nil, err
	}
	renderReq, _, err := s.buildRenderRequest(ctx, orgID, req)
	if err != nil {
		return nil, err
	}
	return s.renderer.Preview(ctx, *renderReq)
}

// templateNameFrom reads the template id from the payload; generation mode
// picks the fallback.
func templateNameFrom(templateData json.RawMessage, generatedBy model.GeneratedBy) string {
	var data struct {
		Template string `json:"template"`
	}
	if err := json.Unmarshal(templateData, &data); err == nil && data.Template != "" {
		return data.Template
	}
	if generatedBy == model.GeneratedByAIAssisted {
		return "ai-enhanced"
	}
	return "standard"
}

// documentTitle derives a display title from the document type and the most
// salient template field for that type.
func documentTitle(docType model.DocumentType, templateData json.RawMessage) string {
	var data map[string]any
	_ = json.Unmarshal(templateData, &data)
	field := func(key, fallback string) string {
		if v, ok := data[key].(string); ok && v != "" {
			return v
		}
		return fallback
	}

	switch docType {
	case model.DocumentTypePrescription:
		return "Prescription - " + field("diagnosis", "Medical Treatment")
	case model.DocumentTypeMedicalCertificate:
		return "Medical Certificate - " + field("certificate_type", "General")
	case model.DocumentTypeExamOrder:
		return "Exam Order - " + field("exam_type", "Medical Examination")
	case model.DocumentTypeReferral:
		return "Referral - " + field("specialist", "Specialist Consultation")
	case model.DocumentTypeDischargeSummary:
		return "Discharge Summary - " + field("admission_reason", "Hospital Stay")
	}
	return string(docType) + " Document"
}
