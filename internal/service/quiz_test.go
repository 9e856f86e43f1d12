package service

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/wikiquiz/quizforge/internal/config"
	"github.com/wikiquiz/quizforge/internal/domain"
	"github.com/wikiquiz/quizforge/internal/logger"
)

// TestMain initializes the logger for all tests in this package
func TestMain(m *testing.M) {
	if err := logger.Initialize(config.LoggerConfig{}); err != nil {
		panic("Failed to initialize logger for tests: " + err.Error())
	}
	exitVal := m.Run()
	_ = logger.Sync()
	os.Exit(exitVal)
}

// --- Mocks ---

type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	args := m.Called(ctx, quiz)
	return args.Error(0)
}

func (m *MockQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetQuizByURL(ctx context.Context, url string) (*domain.Quiz, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizRepository) ListQuizSummaries(ctx context.Context) ([]domain.QuizSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuizSummary), args.Error(1)
}

type MockQuizCache struct {
	mock.Mock
}

func (m *MockQuizCache) GetQuizByURL(ctx context.Context, url string) (*domain.Quiz, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Quiz), args.Error(1)
}

func (m *MockQuizCache) SetQuiz(ctx context.Context, url string, quiz *domain.Quiz) error {
	args := m.Called(ctx, url, quiz)
	return args.Error(0)
}

type MockArticleScraper struct {
	mock.Mock
}

func (m *MockArticleScraper) Fetch(ctx context.Context, url string) (*domain.Article, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Article), args.Error(1)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateContent(ctx context.Context, article *domain.Article) (*domain.GeneratedContent, error) {
	args := m.Called(ctx, article)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedContent), args.Error(1)
}

// --- Fixtures ---

const wikiURL = "https://en.wikipedia.org/wiki/Go_(programming_language)"

func storedQuiz() *domain.Quiz {
	return &domain.Quiz{
		ID:            "01HQZX",
		URL:           wikiURL,
		Title:         "Go (programming language)",
		DateGenerated: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
	}
}

func generatedContent() *domain.GeneratedContent {
	return &domain.GeneratedContent{
		Summary:       "A summary.",
		KeyEntities:   map[string][]string{"people": {"Rob Pike"}},
		RelatedTopics: []string{"Plan 9"},
		Questions: []domain.Question{
			{Text: "Who?", Options: []string{"Rob Pike", "Ada"}, Answer: "Rob Pike", Difficulty: domain.DifficultyEasy},
		},
	}
}

// --- Tests ---

func TestGenerateQuiz_NewURL(t *testing.T) {
	repo := new(MockQuizRepository)
	cache := new(MockQuizCache)
	articleScraper := new(MockArticleScraper)
	generator := new(MockGenerator)
	svc := NewQuizService(repo, cache, articleScraper, generator)

	article := &domain.Article{Title: "Go (programming language)", Text: "Go is a language.", Sections: []string{"History"}}

	cache.On("GetQuizByURL", mock.Anything, wikiURL).Return(nil, nil)
	repo.On("GetQuizByURL", mock.Anything, wikiURL).Return(nil, nil)
	articleScraper.On("Fetch", mock.Anything, wikiURL).Return(article, nil)
	generator.On("GenerateContent", mock.Anything, article).Return(generatedContent(), nil)
	repo.On("SaveQuiz", mock.Anything, mock.AnythingOfType("*domain.Quiz")).Return(nil)
	cache.On("SetQuiz", mock.Anything, wikiURL, mock.AnythingOfType("*domain.Quiz")).Return(nil)

	quiz, err := svc.GenerateQuiz(context.Background(), wikiURL)
	require.NoError(t, err)

	assert.NotEmpty(t, quiz.ID)
	assert.Equal(t, wikiURL, quiz.URL)
	assert.Equal(t, "Go (programming language)", quiz.Title)
	assert.Equal(t, []string{"History"}, quiz.Sections)
	assert.Len(t, quiz.Questions, 1)
	assert.False(t, quiz.DateGenerated.IsZero())
	repo.AssertExpectations(t)
	generator.AssertExpectations(t)
}

func TestGenerateQuiz_CacheHitSkipsEverything(t *testing.T) {
	repo := new(MockQuizRepository)
	cache := new(MockQuizCache)
	svc := NewQuizService(repo, cache, new(MockArticleScraper), new(MockGenerator))

	cached := storedQuiz()
	cache.On("GetQuizByURL", mock.Anything, wikiURL).Return(cached, nil)

	quiz, err := svc.GenerateQuiz(context.Background(), wikiURL)
	require.NoError(t, err)
	assert.Equal(t, cached, quiz)
	repo.AssertNotCalled(t, "GetQuizByURL", mock.Anything, mock.Anything)
}

func TestGenerateQuiz_ExistingURLReturnsStoredQuiz(t *testing.T) {
	repo := new(MockQuizRepository)
	cache := new(MockQuizCache)
	articleScraper := new(MockArticleScraper)
	svc := NewQuizService(repo, cache, articleScraper, new(MockGenerator))

	existing := storedQuiz()
	cache.On("GetQuizByURL", mock.Anything, wikiURL).Return(nil, nil)
	repo.On("GetQuizByURL", mock.Anything, wikiURL).Return(existing, nil)
	cache.On("SetQuiz", mock.Anything, wikiURL, existing).Return(nil)

	quiz, err := svc.GenerateQuiz(context.Background(), wikiURL)
	require.NoError(t, err)
	assert.Equal(t, existing, quiz)
	articleScraper.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestGenerateQuiz_InvalidURLs(t *testing.T) {
	svc := NewQuizService(new(MockQuizRepository), nil, new(MockArticleScraper), new(MockGenerator))

	for _, url := range []string{"", "   ", "https://example.com/article"} {
		_, err := svc.GenerateQuiz(context.Background(), url)
		require.Error(t, err, url)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.ErrInvalidInput, domainErr.Code)
	}
}

func TestGenerateQuiz_ScrapeFailure(t *testing.T) {
	repo := new(MockQuizRepository)
	articleScraper := new(MockArticleScraper)
	svc := NewQuizService(repo, nil, articleScraper, new(MockGenerator))

	repo.On("GetQuizByURL", mock.Anything, wikiURL).Return(nil, nil)
	articleScraper.On("Fetch", mock.Anything, wikiURL).Return(nil, fmt.Errorf("status 403"))

	_, err := svc.GenerateQuiz(context.Background(), wikiURL)
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrScrapeFailed, domainErr.Code)
}

func TestGenerateQuiz_CacheErrorIsNonFatal(t *testing.T) {
	repo := new(MockQuizRepository)
	cache := new(MockQuizCache)
	svc := NewQuizService(repo, cache, new(MockArticleScraper), new(MockGenerator))

	existing := storedQuiz()
	cache.On("GetQuizByURL", mock.Anything, wikiURL).Return(nil, fmt.Errorf("redis down"))
	repo.On("GetQuizByURL", mock.Anything, wikiURL).Return(existing, nil)
	cache.On("SetQuiz", mock.Anything, wikiURL, existing).Return(fmt.Errorf("redis down"))

	quiz, err := svc.GenerateQuiz(context.Background(), wikiURL)
	require.NoError(t, err)
	assert.Equal(t, existing, quiz)
}

func TestGetQuiz(t *testing.T) {
	repo := new(MockQuizRepository)
	svc := NewQuizService(repo, nil, new(MockArticleScraper), new(MockGenerator))

	existing := storedQuiz()
	repo.On("GetQuizByID", mock.Anything, existing.ID).Return(existing, nil)

	quiz, err := svc.GetQuiz(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing, quiz)
}

func TestGetQuiz_NotFound(t *testing.T) {
	repo := new(MockQuizRepository)
	svc := NewQuizService(repo, nil, new(MockArticleScraper), new(MockGenerator))

	repo.On("GetQuizByID", mock.Anything, "missing").Return(nil, nil)

	_, err := svc.GetQuiz(context.Background(), "missing")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.ErrQuizNotFound, domainErr.Code)
}

func TestListQuizSummaries(t *testing.T) {
	repo := new(MockQuizRepository)
	svc := NewQuizService(repo, nil, new(MockArticleScraper), new(MockGenerator))

	want := []domain.QuizSummary{{ID: "q1", Title: "Go"}}
	repo.On("ListQuizSummaries", mock.Anything).Return(want, nil)

	got, err := svc.ListQuizSummaries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
