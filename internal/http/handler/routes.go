package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"docintake/internal/extractor"
	"docintake/internal/repository"
	"docintake/internal/service"
	"docintake/internal/validation"
)

// uploadResponse is the shape returned by POST /upload: a subset of the
// stored document. The submitted personal fields and createdAt are stored but
// not echoed here; GET /document/:id returns the full record.
type uploadResponse struct {
	ID            int64  `json:"id"`
	FullName      string `json:"fullName"`
	Age           int    `json:"age"`
	ExtractedText string `json:"extractedText"`
	FileName      string `json:"fileName"`
	FileType      string `json:"fileType"`
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, docSvc service.DocumentService) {
	// Serve the API description and a Swagger UI page for it
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

	app.Get("/health", HealthCheck())
	app.Get("/healthz", LivenessProbe())
	app.Post("/upload", UploadDocument(docSvc))
	app.Get("/document/:id", GetDocument(docSvc))
}

// HealthCheck reports process health. The store is in-memory, so there is no
// dependency to ping.
func HealthCheck() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a bare liveness endpoint.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// UploadDocument handles POST /upload: multipart form with field "file" plus
// firstName, lastName and dateOfBirth.
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "MISSING_FILE", "No file uploaded")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "MISSING_FILE", "Cannot open uploaded file")
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "PROCESSING_FAILED", "Failed to read uploaded file")
		}

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := svc.ProcessUpload(c.UserContext(), service.UploadRequest{
			FileName:    fh.Filename,
			ContentType: ct,
			Data:        data,
			FirstName:   c.FormValue("firstName"),
			LastName:    c.FormValue("lastName"),
			DateOfBirth: c.FormValue("dateOfBirth"),
		})
		if err != nil {
			return writeUploadError(c, err)
		}

		return c.Status(fiber.StatusOK).JSON(uploadResponse{
			ID:            doc.ID,
			FullName:      doc.FullName,
			Age:           doc.Age,
			ExtractedText: doc.ExtractedText,
			FileName:      doc.FileName,
			FileType:      doc.FileType,
		})
	}
}

// writeUploadError maps every pipeline failure mode to its HTTP status and
// error code.
func writeUploadError(c *fiber.Ctx, err error) error {
	var formErr *validation.FormError
	var extractErr *extractor.ExtractionError

	switch {
	case errors.Is(err, validation.ErrMissingFile):
		return writeError(c, fiber.StatusBadRequest, "MISSING_FILE", "No file uploaded")
	case errors.Is(err, validation.ErrUnsupportedFileType), errors.Is(err, extractor.ErrUnsupportedType):
		return writeError(c, fiber.StatusBadRequest, "UNSUPPORTED_FILE_TYPE",
			"Unsupported file type. Allowed types: PDF, JPEG, PNG")
	case errors.Is(err, validation.ErrFileTooLarge):
		return writeError(c, fiber.StatusBadRequest, "FILE_TOO_LARGE",
			"File too large. Maximum size is 10 MB")
	case errors.As(err, &formErr):
		return writeFieldErrors(c, fiber.StatusBadRequest, "INVALID_FORM_DATA",
			"Invalid form data", formErr.Fields)
	case errors.As(err, &extractErr):
		return writeError(c, fiber.StatusInternalServerError, "EXTRACTION_FAILED", extractErr.Error())
	default:
		return writeError(c, fiber.StatusInternalServerError, "PROCESSING_FAILED", err.Error())
	}
}

// GetDocument handles GET /document/:id and returns the full stored record.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseInt(c.Params("id"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "Invalid document ID")
		}

		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "Document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "PROCESSING_FAILED", "processing failed")
		}
		return c.JSON(doc)
	}
}
