package domain

import (
	"strings"
	"time"
)

// Difficulty is the difficulty level assigned to a generated question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty normalizes a difficulty string coming from the LLM or the
// wire. Unknown values fall back to medium.
func ParseDifficulty(s string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy
	case "hard":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}

// Question is a single multiple-choice question of a quiz.
type Question struct {
	Text        string
	Options     []string
	Answer      string
	Explanation string
	Difficulty  Difficulty
}

// Validate checks the structural invariants of a question. The answer must
// be exactly one of the options.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewValidationError("question text is required")
	}
	if len(q.Options) == 0 {
		return NewValidationError("question options are required")
	}
	for _, opt := range q.Options {
		if opt == q.Answer {
			return nil
		}
	}
	return NewValidationError("question answer must be one of the options")
}

// Quiz is a full generated quiz record, including the article metadata it
// was generated from.
type Quiz struct {
	ID            string
	URL           string
	Title         string
	Summary       string
	Sections      []string
	KeyEntities   map[string][]string
	RelatedTopics []string
	Questions     []Question
	DateGenerated time.Time
}

// ToSummary projects the quiz down to its catalog entry.
func (q *Quiz) ToSummary() QuizSummary {
	return QuizSummary{
		ID:            q.ID,
		Title:         q.Title,
		URL:           q.URL,
		DateGenerated: q.DateGenerated,
	}
}

// QuizSummary is the lightweight catalog entry for a previously generated
// quiz. It carries no questions.
type QuizSummary struct {
	ID            string
	Title         string
	URL           string
	DateGenerated time.Time
}

// Article is the scraped content of a source article, the input to quiz
// generation.
type Article struct {
	Title    string
	Text     string
	Sections []string
}

// GeneratedContent is what the LLM produces for one article.
type GeneratedContent struct {
	Summary       string
	KeyEntities   map[string][]string
	RelatedTopics []string
	Questions     []Question
}

// HealthStatus is the payload of the service health probe.
type HealthStatus struct {
	Message string
}
