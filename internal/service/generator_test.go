package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	aiMocks "docflow/internal/ai/mocks"
	"docflow/internal/directory"
	dirMocks "docflow/internal/directory/mocks"
	"docflow/internal/model"
	"docflow/internal/render"
	renderMocks "docflow/internal/render/mocks"
)

// stubAssetService implements only the method the generator uses; the
// embedded interface covers the rest.
type stubAssetService struct {
	AssetService
	mock.Mock
}

func (s *stubAssetService) GetDefaults(ctx context.Context, orgID string) (map[model.AssetType]model.DocumentAsset, error) {
	args := s.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.AssetType]model.DocumentAsset), args.Error(1)
}

type stubHistoryService struct {
	HistoryService
	mock.Mock
}

func (s *stubHistoryService) Create(ctx context.Context, data model.DocumentHistoryCreate) (*model.DocumentHistory, error) {
	args := s.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentHistory), args.Error(1)
}

type generatorFixture struct {
	dir      *dirMocks.MockDirectory
	renderer *renderMocks.MockRenderer
	enhancer *aiMocks.MockEnhancer
	assets   *stubAssetService
	history  *stubHistoryService
	svc      GeneratorService
}

func newGeneratorFixture() *generatorFixture {
	f := &generatorFixture{
		dir:      new(dirMocks.MockDirectory),
		renderer: new(renderMocks.MockRenderer),
		enhancer: new(aiMocks.MockEnhancer),
		assets:   new(stubAssetService),
		history:  new(stubHistoryService),
	}
	f.svc = NewGeneratorService(f.dir, f.renderer, f.enhancer, f.assets, f.history)
	return f
}

func validRequest() GenerateRequest {
	return GenerateRequest{
		PatientID:    uuid.NewString(),
		DoctorID:     uuid.NewString(),
		DocumentType: model.DocumentTypePrescription,
		TemplateData: json.RawMessage(`{"diagnosis":"influenza","medications":[]}`),
		Assets:       &render.AssetSelection{LogoID: uuid.NewString()},
	}
}

func (f *generatorFixture) expectDirectory(req GenerateRequest) {
	f.dir.On("GetPatient", mock.Anything, req.PatientID, testOrgID).
		Return(&directory.Patient{ID: req.PatientID, Name: "Ana Garcia"}, nil).Once()
	f.dir.On("GetDoctor", mock.Anything, req.DoctorID, testOrgID).
		Return(&directory.Doctor{ID: req.DoctorID, Name: "Dr. Chen"}, nil).Once()
}

func TestGenerate(t *testing.T) {
	t.Run("missing doctor_id fails validation with no side effects", func(t *testing.T) {
		f := newGeneratorFixture()
		req := validRequest()
		req.DoctorID = ""

		_, err := f.svc.Generate(context.Background(), testOrgID, req)

		assert.ErrorIs(t, err, ErrMissingFields)
		f.dir.AssertNotCalled(t, "GetPatient", mock.Anything, mock.Anything, mock.Anything)
		f.renderer.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
		f.history.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("unknown document type fails validation", func(t *testing.T) {
		f := newGeneratorFixture()
		req := validRequest()
		req.DocumentType = "memo"

		_, err := f.svc.Generate(context.Background(), testOrgID, req)

		assert.ErrorIs(t, err, ErrMissingFields)
	})

	t.Run("unknown patient resolves to not found", func(t *testing.T) {
		f := newGeneratorFixture()
		req := validRequest()
		f.dir.On("GetPatient", mock.Anything, req.PatientID, testOrgID).
			Return(nil, directory.ErrPersonNotFound).Once()

		_, err := f.svc.Generate(context.Background(), testOrgID, req)

		assert.ErrorIs(t, err, directory.ErrPersonNotFound)
		f.renderer.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("renderer outage surfaces and nothing is recorded", func(t *testing.T) {
		f := newGeneratorFixture()
		req := validRequest()
		f.expectDirectory(req)
		f.renderer.On("Generate", mock.Anything, mock.Anything).
			Return(nil, render.ErrUnavailable).Once()

		_, err := f.svc.Generate(context.Background(), testOrgID, req)

		assert.ErrorIs(t, err, render.ErrUnavailable)
		f.history.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("success records a draft ledger entry", func(t *testing.T) {
		f := newGeneratorFixture()
		req := validRequest()
		f.expectDirectory(req)

		rendered := &render.Result{
			FileURL:  "https://files.example/prescription.pdf",
			FileName: "prescription.pdf",
			FileSize: 2048,
		}
		f.renderer.On("Generate", mock.Anything, mock.MatchedBy(func(r render.Request) bool {
			return r.OrganizationID == testOrgID &&
				r.DocumentType == "prescription" &&
				r.Assets == req.Assets
		})).Return(rendered, nil).Once()

		entryID := uuid.NewString()
		f.history.On("Create", mock.Anything, mock.MatchedBy(func(data model.DocumentHistoryCreate) bool {
			return data.OrganizationID == testOrgID &&
				data.DocumentType == model.DocumentTypePrescription &&
				data.TemplateName == "standard" &&
				data.DocumentTitle == "Prescription - influenza" &&
				data.FileURL == rendered.FileURL &&
				data.GeneratedBy == model.GeneratedByDoctor &&
				len(data.PatientData) > 0
		})).Return(&model.DocumentHistory{ID: entryID, Status: model.StatusDraft}, nil).Once()

		res, err := f.svc.Generate(context.Background(), testOrgID, req)

		require.NoError(t, err)
		assert.Equal(t, entryID, res.DocumentID)
		assert.Equal(t, rendered.FileURL, res.FileURL)
		assert.Equal(t, "draft", res.Status)
		assert.False(t, res.AIEnhanced)
		f.renderer.AssertExpectations(t)
		f.history.AssertExpectations(t)
	})

	t.Run("omitted selection falls back to org defaults", func(t *testing.T) {
		f := newGeneratorFixture()
		req := validRequest()
		req.Assets = nil
		f.expectDirectory(req)

		logoID := uuid.NewString()
		f.assets.On("GetDefaults", mock.Anything, testOrgID).
			Return(map[model.AssetType]model.DocumentAsset{
				model.AssetTypeLogo: {ID: logoID, Type: model.AssetTypeLogo},
			}, nil).Once()

		f.renderer.On("Generate", mock.Anything, mock.MatchedBy(func(r render.Request) bool {
			return r.Assets != nil && r.Assets.LogoID == logoID && r.Assets.SignatureID == ""
		})).Return(&render.Result{FileURL: "https://files/x.pdf"}, nil).Once()
		f.history.On("Create", mock.Anything, mock.Anything).
			Return(&model.DocumentHistory{ID: uuid.NewString()}, nil).Once()

		_, err := f.svc.Generate(context.Background(), testOrgID, req)

		require.NoError(t, err)
		f.assets.AssertExpectations(t)
		f.renderer.AssertExpectations(t)
	})

	t.Run("ledger write failure after render surfaces an error", func(t *testing.T) {
		f := newGeneratorFixture()
		req := validRequest()
		f.expectDirectory(req)
		f.renderer.On("Generate", mock.Anything, mock.Anything).
			Return(&render.Result{FileURL: "https://files/x.pdf"}, nil).Once()
		f.history.On("Create", mock.Anything, mock.Anything).
			Return(nil, errors.New("insert failed")).Once()

		_, err := f.svc.Generate(context.Background(), testOrgID, req)

		assert.ErrorContains(t, err, "record document history")
	})
}

func TestGenerateWithAI(t *testing.T) {
	t.Run("renders the enhanced payload and records the prompt", func(t *testing.T) {
		f := newGeneratorFixture()
		req := validRequest()
		req.AIPrompt = "expand the dosage instructions"
		f.expectDirectory(req)

		enhanced := json.RawMessage(`{"diagnosis":"influenza","ai_enhanced":true}`)
		f.enhancer.On("Enhance", mock.Anything, mock.Anything, req.AIPrompt).
			Return(enhanced, nil).Once()

		f.renderer.On("Generate", mock.Anything, mock.MatchedBy(func(r render.Request) bool {
			return string(r.TemplateData) == string(enhanced)
		})).Return(&render.Result{FileURL: "https://files/x.pdf"}, nil).Once()

		f.history.On("Create", mock.Anything, mock.MatchedBy(func(data model.DocumentHistoryCreate) bool {
			return data.GeneratedBy == model.GeneratedByAIAssisted &&
				data.AIPrompt == req.AIPrompt &&
				data.TemplateName == "ai-enhanced"
		})).Return(&model.DocumentHistory{ID: uuid.NewString()}, nil).Once()

		res, err := f.svc.GenerateWithAI(context.Background(), testOrgID, req)

		require.NoError(t, err)
		assert.True(t, res.AIEnhanced)
		f.enhancer.AssertExpectations(t)
		f.history.AssertExpectations(t)
	})

	t.Run("enhancer failure stops before rendering", func(t *testing.T) {
		f := newGeneratorFixture()
		req := validRequest()
		f.enhancer.On("Enhance", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("enhancement failed")).Once()

		_, err := f.svc.GenerateWithAI(context.Background(), testOrgID, req)

		assert.Error(t, err)
		f.renderer.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})
}

func TestPreview(t *testing.T) {
	f := newGeneratorFixture()
	req := validRequest()
	f.expectDirectory(req)

	previewDoc := json.RawMessage(`{"html":"<html></html>"}`)
	f.renderer.On("Preview", mock.Anything, mock.Anything).Return(previewDoc, nil).Once()

	got, err := f.svc.Preview(context.Background(), testOrgID, req)

	require.NoError(t, err)
	assert.JSONEq(t, string(previewDoc), string(got))
	// preview never touches the ledger
	f.history.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTemplateNameFrom(t *testing.T) {
	assert.Equal(t, "detailed", templateNameFrom(json.RawMessage(`{"template":"detailed"}`), model.GeneratedByDoctor))
	assert.Equal(t, "standard", templateNameFrom(json.RawMessage(`{}`), model.GeneratedByDoctor))
	assert.Equal(t, "ai-enhanced", templateNameFrom(json.RawMessage(`{}`), model.GeneratedByAIAssisted))
}

func TestDocumentTitle(t *testing.T) {
	assert.Equal(t, "Prescription - influenza",
		documentTitle(model.DocumentTypePrescription, json.RawMessage(`{"diagnosis":"influenza"}`)))
	assert.Equal(t, "Prescription - Medical Treatment",
		documentTitle(model.DocumentTypePrescription, json.RawMessage(`{}`)))
	assert.Equal(t, "Referral - cardiology",
		documentTitle(model.DocumentTypeReferral, json.RawMessage(`{"specialist":"cardiology"}`)))
	assert.Equal(t, "Discharge Summary - Hospital Stay",
		documentTitle(model.DocumentTypeDischargeSummary, json.RawMessage(`{}`)))
}
