package domain

import "context"

// QuizRepository defines the persistence operations for quizzes.
type QuizRepository interface {
	SaveQuiz(ctx context.Context, quiz *Quiz) error
	// GetQuizByID returns (nil, nil) when no quiz exists for the id.
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)
	// GetQuizByURL returns (nil, nil) when the URL was never generated.
	GetQuizByURL(ctx context.Context, url string) (*Quiz, error)
	ListQuizSummaries(ctx context.Context) ([]QuizSummary, error)
}

// QuizCache caches generated quizzes by their source URL.
type QuizCache interface {
	// GetQuizByURL returns (nil, nil) on a cache miss.
	GetQuizByURL(ctx context.Context, url string) (*Quiz, error)
	SetQuiz(ctx context.Context, url string, quiz *Quiz) error
}

// ArticleScraper fetches a source article and extracts its text.
type ArticleScraper interface {
	Fetch(ctx context.Context, url string) (*Article, error)
}

// QuizGenerationService turns scraped article content into quiz content.
type QuizGenerationService interface {
	GenerateContent(ctx context.Context, article *Article) (*GeneratedContent, error)
}
