package handler

import (
	"mime/multipart"

	"iq-admin/internal/domain"
	"iq-admin/internal/dto"
	"iq-admin/internal/logger"
	"iq-admin/internal/middleware"
	"iq-admin/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

const importFileField = "file"

// ImportHandler exposes bulk question import sessions.
type ImportHandler struct {
	sessions *service.SessionManager
}

func NewImportHandler(sessions *service.SessionManager) *ImportHandler {
	return &ImportHandler{sessions: sessions}
}

// OpenImport godoc
// @Summary Start a bulk question import
// @Description Parses an uploaded CSV file and returns a preview. Nothing is sent to the backend yet.
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param testId path string true "Test ID"
// @Param file formData file true "CSV file"
// @Success 201 {object} dto.ImportSessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /tests/{testId}/imports [post]
func (h *ImportHandler) OpenImport(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile(importFileField)
	if err != nil {
		return domain.NewInvalidInputError("a CSV file is required in form field \"file\"")
	}

	// Params aliases the request buffer; the session outlives the request.
	session, err := h.sessions.Open(c.UserContext(), utils.CopyString(c.Params("testId")))
	if err != nil {
		return err
	}

	snapshot, err := h.load(c, session, fileHeader)
	if err != nil {
		_ = h.sessions.Discard(session.ID())
		return err
	}

	logger.Get().Info("Import started",
		zap.String("sessionID", session.ID()),
		zap.String("testID", session.TestID()),
		zap.String("operator", middleware.OperatorID(c)))
	return c.Status(fiber.StatusCreated).JSON(toSessionResponse(snapshot))
}

// GetImport godoc
// @Summary Get an import session
// @Tags imports
// @Produce json
// @Param sessionId path string true "Import session ID"
// @Success 200 {object} dto.ImportSessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /imports/{sessionId} [get]
func (h *ImportHandler) GetImport(c *fiber.Ctx) error {
	session, err := h.sessions.Get(c.Params("sessionId"))
	if err != nil {
		return err
	}
	return c.JSON(toSessionResponse(session.Snapshot()))
}

// ReplaceFile godoc
// @Summary Select a different file for an import session
// @Description Replaces the preview. A parse failure leaves the session idle with no preview.
// @Tags imports
// @Accept multipart/form-data
// @Produce json
// @Param sessionId path string true "Import session ID"
// @Param file formData file true "CSV file"
// @Success 200 {object} dto.ImportSessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /imports/{sessionId}/file [put]
func (h *ImportHandler) ReplaceFile(c *fiber.Ctx) error {
	session, err := h.sessions.Get(c.Params("sessionId"))
	if err != nil {
		return err
	}
	fileHeader, err := c.FormFile(importFileField)
	if err != nil {
		return domain.NewInvalidInputError("a CSV file is required in form field \"file\"")
	}

	snapshot, err := h.load(c, session, fileHeader)
	if err != nil {
		return err
	}
	return c.JSON(toSessionResponse(snapshot))
}

// SubmitImport godoc
// @Summary Submit the valid rows of an import
// @Description Sends every valid previewed row in one request and returns the refreshed question list.
// @Tags imports
// @Produce json
// @Param sessionId path string true "Import session ID"
// @Success 200 {object} dto.SubmitImportResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /imports/{sessionId}/submit [post]
func (h *ImportHandler) SubmitImport(c *fiber.Ctx) error {
	session, err := h.sessions.Get(c.Params("sessionId"))
	if err != nil {
		return err
	}

	result, err := session.Submit(c.UserContext())
	if err != nil {
		return err
	}

	logger.Get().Info("Import submitted",
		zap.String("sessionID", session.ID()),
		zap.String("testID", session.TestID()),
		zap.Int("submitted", result.Submitted),
		zap.String("operator", middleware.OperatorID(c)))
	return c.JSON(dto.SubmitImportResponse{
		Submitted:    result.Submitted,
		Accepted:     result.Accepted,
		Questions:    dto.NewQuestionResponses(result.Questions),
		RefreshError: result.RefreshError,
	})
}

// CancelImport godoc
// @Summary Cancel and discard an import session
// @Tags imports
// @Param sessionId path string true "Import session ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /imports/{sessionId} [delete]
func (h *ImportHandler) CancelImport(c *fiber.Ctx) error {
	if err := h.sessions.Discard(c.Params("sessionId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ImportHandler) load(c *fiber.Ctx, session *service.ImportSession, fileHeader *multipart.FileHeader) (*service.Snapshot, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, domain.NewInternalError("failed to open uploaded file", err)
	}
	defer file.Close()
	return session.Load(c.UserContext(), fileHeader.Filename, file)
}

func toSessionResponse(s *service.Snapshot) dto.ImportSessionResponse {
	rows := make([]dto.PreviewRow, len(s.Records))
	for i, r := range s.Records {
		rows[i] = dto.NewPreviewRow(i, r)
	}
	return dto.ImportSessionResponse{
		SessionID:    s.SessionID,
		TestID:       s.TestID,
		State:        string(s.State),
		FileName:     s.FileName,
		Rows:         rows,
		ValidCount:   s.ValidCount,
		InvalidCount: s.InvalidCount,
		LastError:    s.LastError,
		UpdatedAt:    s.UpdatedAt,
	}
}
