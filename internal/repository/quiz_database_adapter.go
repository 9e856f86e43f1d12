package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/wikiquiz/quizforge/internal/domain"
	"github.com/wikiquiz/quizforge/internal/repository/models"
)

// QuizDatabaseAdapter implements domain.QuizRepository using sqlx.DB
type QuizDatabaseAdapter struct {
	db *sqlx.DB
}

// NewQuizDatabaseAdapter creates a new instance of QuizDatabaseAdapter
func NewQuizDatabaseAdapter(db *sqlx.DB) domain.QuizRepository {
	return &QuizDatabaseAdapter{db: db}
}

const quizColumns = `id, url, title, summary, sections, key_entities, related_topics, questions, date_generated`

// SaveQuiz implements domain.QuizRepository
func (a *QuizDatabaseAdapter) SaveQuiz(ctx context.Context, quiz *domain.Quiz) error {
	model := toModelQuiz(quiz)
	query := `INSERT INTO quizzes (` + quizColumns + `)
		VALUES (:id, :url, :title, :summary, :sections, :key_entities, :related_topics, :questions, :date_generated)`

	if _, err := a.db.NamedExecContext(ctx, query, model); err != nil {
		return fmt.Errorf("failed to save quiz %s: %w", quiz.ID, err)
	}
	return nil
}

// GetQuizByID implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var model models.Quiz
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE id = ?`

	err := a.db.GetContext(ctx, &model, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by ID %s: %w", id, err)
	}
	return toDomainQuiz(&model), nil
}

// GetQuizByURL implements domain.QuizRepository
func (a *QuizDatabaseAdapter) GetQuizByURL(ctx context.Context, url string) (*domain.Quiz, error) {
	var model models.Quiz
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE url = ?`

	err := a.db.GetContext(ctx, &model, query, url)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz by URL %s: %w", url, err)
	}
	return toDomainQuiz(&model), nil
}

// ListQuizSummaries implements domain.QuizRepository. Newest first, the
// server-side default ordering of the history listing.
func (a *QuizDatabaseAdapter) ListQuizSummaries(ctx context.Context) ([]domain.QuizSummary, error) {
	rows := []struct {
		ID            string       `db:"id"`
		URL           string       `db:"url"`
		Title         string       `db:"title"`
		DateGenerated sql.NullTime `db:"date_generated"`
	}{}
	query := `SELECT id, url, title, date_generated FROM quizzes ORDER BY date_generated DESC`

	if err := a.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list quiz summaries: %w", err)
	}

	summaries := make([]domain.QuizSummary, 0, len(rows))
	for _, row := range rows {
		summary := domain.QuizSummary{
			ID:    row.ID,
			URL:   row.URL,
			Title: row.Title,
		}
		if row.DateGenerated.Valid {
			summary.DateGenerated = row.DateGenerated.Time
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func toModelQuiz(quiz *domain.Quiz) *models.Quiz {
	questions := make(models.QuestionList, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, models.QuestionRecord{
			Question:    q.Text,
			Options:     q.Options,
			Answer:      q.Answer,
			Difficulty:  string(q.Difficulty),
			Explanation: q.Explanation,
		})
	}
	return &models.Quiz{
		ID:            quiz.ID,
		URL:           quiz.URL,
		Title:         quiz.Title,
		Summary:       quiz.Summary,
		Sections:      models.StringSlice(quiz.Sections),
		KeyEntities:   models.EntityMap(quiz.KeyEntities),
		RelatedTopics: models.StringSlice(quiz.RelatedTopics),
		Questions:     questions,
		DateGenerated: quiz.DateGenerated,
	}
}

func toDomainQuiz(model *models.Quiz) *domain.Quiz {
	questions := make([]domain.Question, 0, len(model.Questions))
	for _, q := range model.Questions {
		questions = append(questions, domain.Question{
			Text:        q.Question,
			Options:     q.Options,
			Answer:      q.Answer,
			Difficulty:  domain.ParseDifficulty(q.Difficulty),
			Explanation: q.Explanation,
		})
	}
	return &domain.Quiz{
		ID:            model.ID,
		URL:           model.URL,
		Title:         model.Title,
		Summary:       model.Summary,
		Sections:      model.Sections,
		KeyEntities:   model.KeyEntities,
		RelatedTopics: model.RelatedTopics,
		Questions:     questions,
		DateGenerated: model.DateGenerated,
	}
}
