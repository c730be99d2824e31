package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/models"
	"alfredoptarigan/resume-screener/internal/services"
)

const (
	jobDescriptionField = "job_description"
	resumesField        = "resumes"
)

type UploadHandler struct {
	screener    services.ScreenerService
	maxFileSize int64
	logger      *zap.Logger
}

func NewUploadHandler(
	screener services.ScreenerService,
	maxFileSize int64,
	logger *zap.Logger,
) *UploadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UploadHandler{
		screener:    screener,
		maxFileSize: maxFileSize,
		logger:      logger,
	}
}

// HandleUpload screens the uploaded resumes against the job description and
// returns the ranked candidates.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, "failed to parse multipart form")
	}

	jobFiles := form.File[jobDescriptionField]
	if len(jobFiles) == 0 {
		return errorResponse(c, fiber.StatusBadRequest, "job_description file is required")
	}

	resumeFiles := form.File[resumesField]
	if len(resumeFiles) == 0 {
		return errorResponse(c, fiber.StatusBadRequest, "No resumes provided")
	}

	job, err := h.readDocument(jobFiles[0])
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	// Resumes that cannot be read are dropped; the rest are still screened.
	var firstErr error
	resumes := make([]models.Document, 0, len(resumeFiles))
	for _, fh := range resumeFiles {
		doc, err := h.readDocument(fh)
		if err != nil {
			h.logger.Warn("dropping resume upload", zap.String("filename", fh.Filename), zap.Error(err))
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		resumes = append(resumes, doc)
	}
	if len(resumes) == 0 {
		return errorResponse(c, fiber.StatusBadRequest, firstErr.Error())
	}

	result, err := h.screener.Screen(c.UserContext(), job, resumes)
	if err != nil {
		if errors.Is(err, services.ErrNoResumes) || errors.Is(err, services.ErrUnreadableDocument) {
			return errorResponse(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error("screening failed", zap.Error(err))
		return errorResponse(c, fiber.StatusInternalServerError, fmt.Sprintf("Error processing documents: %v", err))
	}

	return c.JSON(result)
}

func (h *UploadHandler) readDocument(fh *multipart.FileHeader) (models.Document, error) {
	if h.maxFileSize > 0 && fh.Size > h.maxFileSize {
		return models.Document{}, fmt.Errorf("file %s too large. Max size: %d bytes", fh.Filename, h.maxFileSize)
	}

	file, err := fh.Open()
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.Document{}, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}

	return models.NewDocument(fh.Filename, data), nil
}

func errorResponse(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
