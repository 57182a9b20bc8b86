package handler

import (
	"iq-admin/internal/domain"
	"iq-admin/internal/dto"
	"iq-admin/internal/service"
	"iq-admin/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// TestHandler exposes the IQ test catalog.
type TestHandler struct {
	catalog   service.TestCatalog
	questions service.QuestionService
	validator *validation.Validator
}

func NewTestHandler(catalog service.TestCatalog, questions service.QuestionService, v *validation.Validator) *TestHandler {
	if v == nil {
		v = validation.NewValidator()
	}
	return &TestHandler{catalog: catalog, questions: questions, validator: v}
}

// ListTests godoc
// @Summary List IQ tests
// @Description Time limits are returned in minutes.
// @Tags tests
// @Produce json
// @Success 200 {array} dto.TestResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /tests [get]
func (h *TestHandler) ListTests(c *fiber.Ctx) error {
	tests, err := h.catalog.ListTests(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTestResponses(tests))
}

// CreateTest godoc
// @Summary Create an IQ test
// @Tags tests
// @Accept json
// @Produce json
// @Param test body dto.TestRequest true "Test (time_limit in minutes)"
// @Success 201 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /tests [post]
func (h *TestHandler) CreateTest(c *fiber.Ctx) error {
	input, err := h.parseTest(c)
	if err != nil {
		return err
	}
	if err := h.catalog.CreateTest(c.UserContext(), input); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "test created"})
}

// UpdateTest godoc
// @Summary Update an IQ test
// @Tags tests
// @Accept json
// @Produce json
// @Param testId path string true "Test ID"
// @Param test body dto.TestRequest true "Test (time_limit in minutes)"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /tests/{testId} [put]
func (h *TestHandler) UpdateTest(c *fiber.Ctx) error {
	input, err := h.parseTest(c)
	if err != nil {
		return err
	}
	if err := h.catalog.UpdateTest(c.UserContext(), c.Params("testId"), input); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "test updated"})
}

// SetTestStatus godoc
// @Summary Activate or deactivate an IQ test
// @Tags tests
// @Accept json
// @Produce json
// @Param testId path string true "Test ID"
// @Param status body dto.TestStatusRequest true "New status"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /tests/{testId}/status [put]
func (h *TestHandler) SetTestStatus(c *fiber.Ctx) error {
	var req dto.TestStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if req.IsActive == nil {
		return domain.NewInvalidInputError("is_active is required")
	}
	if err := h.catalog.SetTestActive(c.UserContext(), c.Params("testId"), *req.IsActive); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "test status updated"})
}

// ListTestQuestions godoc
// @Summary List the questions of a test
// @Description Always read from the backend, never cached.
// @Tags questions
// @Produce json
// @Param testId path string true "Test ID"
// @Success 200 {array} dto.QuestionResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Security ApiKeyAuth
// @Router /tests/{testId}/questions [get]
func (h *TestHandler) ListTestQuestions(c *fiber.Ctx) error {
	questions, err := h.questions.ListQuestions(c.UserContext(), c.Params("testId"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuestionResponses(questions))
}

func (h *TestHandler) parseTest(c *fiber.Ctx) (domain.IQTestInput, error) {
	var req dto.TestRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.IQTestInput{}, domain.NewInvalidInputError("invalid request body")
	}
	input := req.ToInput()
	if errs := h.validator.Struct(input); errs != nil {
		return domain.IQTestInput{}, errs
	}
	return input, nil
}
