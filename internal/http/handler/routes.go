package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"docflow/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app. The auth
// middleware guards everything under the tenant-scoped groups; health,
// docs and probes stay public.
func RegisterRoutes(
	app *fiber.App,
	db *sql.DB,
	auth fiber.Handler,
	assetSvc service.AssetService,
	historySvc service.HistoryService,
	genSvc service.GeneratorService,
) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	assets := app.Group("/document-assets", auth)
	assets.Get("/", ListAssets(assetSvc))
	assets.Post("/upload", UploadAsset(assetSvc))
	assets.Get("/by-type", AssetsByType(assetSvc))
	assets.Get("/defaults", DefaultAssets(assetSvc))
	assets.Get("/:id", GetAsset(assetSvc))
	assets.Put("/:id", UpdateAsset(assetSvc))
	assets.Post("/:id/set-default", SetDefaultAsset(assetSvc))
	assets.Delete("/:id", DeleteAsset(assetSvc))

	history := app.Group("/document-history", auth)
	history.Get("/", ListHistory(historySvc))
	history.Get("/stats", HistoryStats(historySvc))
	history.Get("/patient/:patientId", HistoryByPatient(historySvc))
	history.Get("/doctor/:doctorId", HistoryByDoctor(historySvc))
	history.Get("/:id", GetHistory(historySvc))
	history.Put("/:id", UpdateHistory(historySvc))
	history.Put("/:id/approve", ApproveDocument(historySvc))
	history.Put("/:id/send", SendDocument(historySvc))
	history.Put("/:id/cancel", CancelDocument(historySvc))

	documents := app.Group("/documents", auth)
	documents.Post("/generate", GenerateDocument(genSvc))
	documents.Post("/generate-with-ai", GenerateDocumentAI(genSvc))
	documents.Post("/preview", PreviewDocument(genSvc))
	documents.Get("/templates/:type", ListTemplates())
}
