package dto

import (
	"time"

	"github.com/wikiquiz/quizforge/internal/domain"
)

// QuestionDTO is the wire shape of one multiple-choice question.
type QuestionDTO struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Difficulty  string   `json:"difficulty"`
	Explanation string   `json:"explanation"`
}

// QuizResponse is the full quiz record as it travels over the wire. The
// question list rides under the "quiz" key.
type QuizResponse struct {
	ID            string              `json:"id"`
	URL           string              `json:"url"`
	Title         string              `json:"title"`
	Summary       string              `json:"summary"`
	KeyEntities   map[string][]string `json:"key_entities"`
	Sections      []string            `json:"sections"`
	Quiz          []QuestionDTO       `json:"quiz"`
	RelatedTopics []string            `json:"related_topics"`
	DateGenerated time.Time           `json:"date_generated"`
}

// QuizSummaryResponse is one catalog entry of the quiz history listing.
type QuizSummaryResponse struct {
	ID            string    `json:"id"`
	URL           string    `json:"url"`
	Title         string    `json:"title"`
	DateGenerated time.Time `json:"date_generated"`
}

// GenerateQuizRequest is the request body for quiz generation.
type GenerateQuizRequest struct {
	URL string `json:"url"`
}

// HealthResponse is the payload of the health probe.
type HealthResponse struct {
	Message string `json:"message"`
}

// ErrorResponse carries the error detail of any non-success response.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// FromDomainQuiz maps a domain quiz onto its wire shape.
func FromDomainQuiz(q *domain.Quiz) QuizResponse {
	questions := make([]QuestionDTO, 0, len(q.Questions))
	for _, question := range q.Questions {
		questions = append(questions, QuestionDTO{
			Question:    question.Text,
			Options:     question.Options,
			Answer:      question.Answer,
			Difficulty:  string(question.Difficulty),
			Explanation: question.Explanation,
		})
	}
	return QuizResponse{
		ID:            q.ID,
		URL:           q.URL,
		Title:         q.Title,
		Summary:       q.Summary,
		KeyEntities:   q.KeyEntities,
		Sections:      q.Sections,
		Quiz:          questions,
		RelatedTopics: q.RelatedTopics,
		DateGenerated: q.DateGenerated,
	}
}

// ToDomainQuiz maps a wire quiz back into the domain model.
func (r QuizResponse) ToDomainQuiz() *domain.Quiz {
	questions := make([]domain.Question, 0, len(r.Quiz))
	for _, q := range r.Quiz {
		questions = append(questions, domain.Question{
			Text:        q.Question,
			Options:     q.Options,
			Answer:      q.Answer,
			Difficulty:  domain.ParseDifficulty(q.Difficulty),
			Explanation: q.Explanation,
		})
	}
	return &domain.Quiz{
		ID:            r.ID,
		URL:           r.URL,
		Title:         r.Title,
		Summary:       r.Summary,
		KeyEntities:   r.KeyEntities,
		Sections:      r.Sections,
		RelatedTopics: r.RelatedTopics,
		Questions:     questions,
		DateGenerated: r.DateGenerated,
	}
}

// FromDomainSummaries maps catalog entries onto their wire shape.
func FromDomainSummaries(summaries []domain.QuizSummary) []QuizSummaryResponse {
	out := make([]QuizSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, QuizSummaryResponse{
			ID:            s.ID,
			URL:           s.URL,
			Title:         s.Title,
			DateGenerated: s.DateGenerated,
		})
	}
	return out
}

// ToDomainSummary maps one wire catalog entry into the domain model.
func (r QuizSummaryResponse) ToDomainSummary() domain.QuizSummary {
	return domain.QuizSummary{
		ID:            r.ID,
		Title:         r.Title,
		URL:           r.URL,
		DateGenerated: r.DateGenerated,
	}
}
