package handlers

import (
	"fmt"
	"io"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/mock-interview/internal/models"
	"alfredoptarigan/mock-interview/internal/services"
)

type UploadHandler struct {
	pdfParser services.PDFParserService
}

func NewUploadHandler(pdfParser services.PDFParserService) *UploadHandler {
	return &UploadHandler{
		pdfParser: pdfParser,
	}
}

// HandleUpload handles POST /api/upload
// @Summary      Upload a resume
// @Description  Extracts the plain text of a PDF resume, page by page.
// @Tags         interview
// @Accept       multipart/form-data
// @Produce      json
// @Param        file      formData  file    true  "Resume (.pdf)"
// @Param        job_role  formData  string  true  "Role the candidate applies for"
// @Success      200  {object}  models.UploadResponse
// @Failure      400  {object}  models.ErrorResponse
// @Failure      422  {object}  models.ValidationErrorResponse
// @Failure      500  {object}  models.ErrorResponse
// @Router       /api/upload [post]
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return &ValidationError{Fields: []models.FieldError{{
			Loc:  []string{"body"},
			Msg:  "failed to parse multipart form",
			Type: "value_error.multipart",
		}}}
	}

	files, ok := form.File["file"]
	if !ok || len(files) == 0 {
		return missingField("body", "file")
	}
	roles, ok := form.Value["job_role"]
	if !ok || len(roles) == 0 {
		return missingField("body", "job_role")
	}

	file := files[0]
	if !strings.HasSuffix(file.Filename, ".pdf") {
		return fiber.NewError(fiber.StatusBadRequest, "Only PDF files are supported")
	}

	log.Printf("📄 Parsing resume %q for role %q\n", file.Filename, roles[0])

	src, err := file.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("failed to open uploaded file: %v", err))
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("failed to read uploaded file: %v", err))
	}

	text, err := h.pdfParser.ExtractText(data)
	if err != nil {
		log.Printf("❌ Failed to parse resume %q: %v\n", file.Filename, err)
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	return c.JSON(models.UploadResponse{
		Status:        "success",
		TextLength:    utf8.RuneCountInString(text),
		ExtractedText: text,
	})
}
