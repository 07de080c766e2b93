package service

import "docflow/internal/model"

// Template describes one entry of the static per-type template catalog.
type Template struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// templateCatalog is a fixed enumeration per document type, not derived
// from stored data.
var templateCatalog = map[model.DocumentType][]Template{
	model.DocumentTypePrescription: {
		{ID: "standard", Name: "Standard Prescription", Description: "Basic prescription format"},
		{ID: "detailed", Name: "Detailed Prescription", Description: "Comprehensive prescription with instructions"},
		{ID: "minimal", Name: "Minimal Prescription", Description: "Simple prescription format"},
	},
	model.DocumentTypeMedicalCertificate: {
		{ID: "work_absence", Name: "Work Absence Certificate", Description: "Certificate for work absence"},
		{ID: "fitness", Name: "Fitness Certificate", Description: "Medical fitness certificate"},
		{ID: "disability", Name: "Disability Certificate", Description: "Certificate for disability claims"},
	},
	model.DocumentTypeExamOrder: {
		{ID: "laboratory", Name: "Laboratory Order", Description: "Order for lab tests"},
		{ID: "imaging", Name: "Imaging Order", Description: "Order for imaging studies"},
		{ID: "specialist_referral", Name: "Specialist Referral", Description: "Referral to specialist"},
	},
	model.DocumentTypeReferral: {
		{ID: "specialist", Name: "Specialist Referral", Description: "Referral to medical specialist"},
		{ID: "hospital", Name: "Hospital Referral", Description: "Referral to hospital"},
		{ID: "emergency", Name: "Emergency Referral", Description: "Emergency referral"},
	},
	model.DocumentTypeDischargeSummary: {
		{ID: "standard", Name: "Standard Summary", Description: "Standard discharge summary"},
		{ID: "detailed", Name: "Detailed Summary", Description: "Comprehensive discharge summary"},
		{ID: "brief", Name: "Brief Summary", Description: "Brief discharge summary"},
	},
}

// TemplatesFor returns the catalog entries for the given document type.
// Unknown types get an empty list, not an error.
func TemplatesFor(docType model.DocumentType) []Template {
	templates, ok := templateCatalog[docType]
	if !ok {
		return []Template{}
	}
	return templates
}
