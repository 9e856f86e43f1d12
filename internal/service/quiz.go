package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/wikiquiz/quizforge/internal/domain"
	"github.com/wikiquiz/quizforge/internal/logger"
	"github.com/wikiquiz/quizforge/internal/scraper"
	"github.com/wikiquiz/quizforge/internal/util"
)

// QuizService orchestrates quiz generation, lookup, and history listing.
type QuizService interface {
	GenerateQuiz(ctx context.Context, sourceURL string) (*domain.Quiz, error)
	GetQuiz(ctx context.Context, id string) (*domain.Quiz, error)
	ListQuizSummaries(ctx context.Context) ([]domain.QuizSummary, error)
}

type quizService struct {
	repo      domain.QuizRepository
	cache     domain.QuizCache
	scraper   domain.ArticleScraper
	generator domain.QuizGenerationService
	group     singleflight.Group
}

// NewQuizService creates a new QuizService instance. The cache may be nil
// when Redis is not configured.
func NewQuizService(
	repo domain.QuizRepository,
	cache domain.QuizCache,
	articleScraper domain.ArticleScraper,
	generator domain.QuizGenerationService,
) QuizService {
	return &quizService{
		repo:      repo,
		cache:     cache,
		scraper:   articleScraper,
		generator: generator,
	}
}

// GenerateQuiz returns the quiz for a source URL, generating and storing
// it on first sight. Re-submitting a URL returns the stored quiz.
// Concurrent generations of the same URL are collapsed into one.
func (s *quizService) GenerateQuiz(ctx context.Context, sourceURL string) (*domain.Quiz, error) {
	sourceURL = strings.TrimSpace(sourceURL)
	if sourceURL == "" {
		return nil, domain.NewInvalidInputError("url is required")
	}
	if !scraper.ValidateWikipediaURL(sourceURL) {
		return nil, domain.NewInvalidInputError("Invalid Wikipedia URL")
	}

	if s.cache != nil {
		cached, err := s.cache.GetQuizByURL(ctx, sourceURL)
		if err != nil {
			logger.Get().Warn("quiz cache lookup failed", zap.String("url", sourceURL), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	existing, err := s.repo.GetQuizByURL(ctx, sourceURL)
	if err != nil {
		return nil, domain.NewInternalError("failed to look up quiz by URL", err)
	}
	if existing != nil {
		s.cacheQuiz(ctx, existing)
		return existing, nil
	}

	result, err, _ := s.group.Do(sourceURL, func() (interface{}, error) {
		return s.generate(ctx, sourceURL)
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Quiz), nil
}

func (s *quizService) generate(ctx context.Context, sourceURL string) (*domain.Quiz, error) {
	l := logger.Get()

	article, err := s.scraper.Fetch(ctx, sourceURL)
	if err != nil {
		return nil, domain.NewScrapeError(sourceURL, err)
	}

	content, err := s.generator.GenerateContent(ctx, article)
	if err != nil {
		return nil, err
	}

	quiz := &domain.Quiz{
		ID:            util.NewULID(),
		URL:           sourceURL,
		Title:         article.Title,
		Summary:       content.Summary,
		Sections:      article.Sections,
		KeyEntities:   content.KeyEntities,
		RelatedTopics: content.RelatedTopics,
		Questions:     content.Questions,
		DateGenerated: time.Now().UTC(),
	}

	if err := s.repo.SaveQuiz(ctx, quiz); err != nil {
		return nil, domain.NewInternalError("failed to save quiz", err)
	}
	s.cacheQuiz(ctx, quiz)

	l.Info("Generated quiz",
		zap.String("id", quiz.ID),
		zap.String("url", sourceURL),
		zap.Int("questions", len(quiz.Questions)),
	)
	return quiz, nil
}

// cacheQuiz is best effort; a failed cache write only gets logged.
func (s *quizService) cacheQuiz(ctx context.Context, quiz *domain.Quiz) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetQuiz(ctx, quiz.URL, quiz); err != nil {
		logger.Get().Warn("failed to cache quiz", zap.String("url", quiz.URL), zap.Error(err))
	}
}

// GetQuiz returns the full quiz record for an id.
func (s *quizService) GetQuiz(ctx context.Context, id string) (*domain.Quiz, error) {
	quiz, err := s.repo.GetQuizByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("failed to get quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(id)
	}
	return quiz, nil
}

// ListQuizSummaries returns the quiz history, newest first.
func (s *quizService) ListQuizSummaries(ctx context.Context) ([]domain.QuizSummary, error) {
	summaries, err := s.repo.ListQuizSummaries(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to list quizzes", err)
	}
	return summaries, nil
}
