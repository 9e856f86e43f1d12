package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/wikiquiz/quizforge/internal/domain"
	"github.com/wikiquiz/quizforge/internal/dto"
	"github.com/wikiquiz/quizforge/internal/logger"
	"github.com/wikiquiz/quizforge/internal/service"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{service: service}
}

// Health godoc
// @Summary Health probe
// @Description Returns the service banner
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router / [get]
func (h *QuizHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Message: "Wiki Quiz Generator API"})
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a source article
// @Description Scrapes the article and generates a quiz; repeat URLs return the stored quiz
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Source article URL"
// @Success 200 {object} dto.QuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /generate-quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	quiz, err := h.service.GenerateQuiz(c.Context(), req.URL)
	if err != nil {
		logger.Get().Error("Failed to generate quiz",
			zap.Error(err),
			zap.String("url", req.URL),
		)
		return err
	}

	return c.JSON(dto.FromDomainQuiz(quiz))
}

// ListQuizzes godoc
// @Summary List quiz history
// @Description Returns catalog entries for every generated quiz, newest first
// @Tags quiz
// @Produce json
// @Success 200 {array} dto.QuizSummaryResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	summaries, err := h.service.ListQuizSummaries(c.Context())
	if err != nil {
		logger.Get().Error("Failed to list quizzes", zap.Error(err))
		return err
	}

	return c.JSON(dto.FromDomainSummaries(summaries))
}

// GetQuiz godoc
// @Summary Get one quiz record
// @Description Returns the full quiz for an id
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return domain.NewInvalidInputError("quiz id is required")
	}

	quiz, err := h.service.GetQuiz(c.Context(), id)
	if err != nil {
		logger.Get().Warn("Failed to get quiz",
			zap.Error(err),
			zap.String("id", id),
		)
		return err
	}

	return c.JSON(dto.FromDomainQuiz(quiz))
}
