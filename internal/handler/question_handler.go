package handler

import (
	"iq-admin/internal/domain"
	"iq-admin/internal/dto"
	"iq-admin/internal/service"

	"github.com/gofiber/fiber/v2"
)

const imageField = "image"

// QuestionHandler edits stored questions and uploads question images.
type QuestionHandler struct {
	service service.QuestionService
}

func NewQuestionHandler(service service.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: service}
}

// UpdateQuestion godoc
// @Summary Edit a stored question
// @Tags questions
// @Accept json
// @Produce json
// @Param questionId path string true "Question ID"
// @Param question body dto.QuestionRequest true "Question"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /questions/{questionId} [put]
func (h *QuestionHandler) UpdateQuestion(c *fiber.Ctx) error {
	var req dto.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if err := h.service.UpdateQuestion(c.UserContext(), c.Params("questionId"), req.ToInput()); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "question updated"})
}

// DeleteQuestion godoc
// @Summary Delete a stored question
// @Tags questions
// @Param questionId path string true "Question ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /questions/{questionId} [delete]
func (h *QuestionHandler) DeleteQuestion(c *fiber.Ctx) error {
	if err := h.service.DeleteQuestion(c.UserContext(), c.Params("questionId")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// UploadImage godoc
// @Summary Upload an image
// @Description Stores the image with the backend file storage and returns its URL.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /uploads/image [post]
func (h *QuestionHandler) UploadImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile(imageField)
	if err != nil {
		return domain.NewInvalidInputError("an image is required in form field \"image\"")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInternalError("failed to open uploaded image", err)
	}
	defer file.Close()

	link, err := h.service.UploadImage(c.UserContext(), fileHeader.Filename, file)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.UploadResponse{URL: link})
}
