package handler

import (
	"github.com/gofiber/fiber/v2"

	"docflow/internal/model"
	"docflow/internal/service"
)

// GenerateDocument renders a document and records it in the ledger.
func GenerateDocument(svc service.GeneratorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.GenerateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := svc.Generate(c.UserContext(), tenantID(c), req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return respondMessage(c, fiber.StatusCreated, res, "document generated")
	}
}

// GenerateDocumentAI is the AI-assisted generation path: template data is
// run through the enhancer before rendering.
func GenerateDocumentAI(svc service.GeneratorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.GenerateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		res, err := svc.GenerateWithAI(c.UserContext(), tenantID(c), req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return respondMessage(c, fiber.StatusCreated, res, "document generated")
	}
}

// PreviewDocument renders without writing anything to the ledger.
func PreviewDocument(svc service.GeneratorService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req service.GenerateRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		preview, err := svc.Preview(c.UserContext(), tenantID(c), req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return respond(c, fiber.StatusOK, preview)
	}
}

// ListTemplates returns the template catalog for one document type.
func ListTemplates() fiber.Handler {
	return func(c *fiber.Ctx) error {
		docType := model.DocumentType(c.Params("type"))
		if !docType.Valid() {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DOCUMENT_TYPE", "invalid document type")
		}
		return respond(c, fiber.StatusOK, service.TemplatesFor(docType))
	}
}
