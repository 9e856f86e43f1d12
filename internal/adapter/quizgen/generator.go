// Package quizgen generates quiz content from article text through an LLM.
package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"

	"github.com/wikiquiz/quizforge/internal/domain"
	"github.com/wikiquiz/quizforge/internal/logger"
)

// llmClient is the slice of the langchaingo model surface the generator
// needs; tests substitute it directly.
type llmClient interface {
	Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error)
}

// LLMQuizGenerator implements domain.QuizGenerationService.
type LLMQuizGenerator struct {
	llm llmClient
}

// NewLLMQuizGenerator creates a new instance of LLMQuizGenerator.
func NewLLMQuizGenerator(llm llmClient) domain.QuizGenerationService {
	return &LLMQuizGenerator{llm: llm}
}

const promptTemplate = `You are an expert educational content creator. Your task is to generate a quiz from a Wikipedia article.

ARTICLE TITLE: %s

ARTICLE CONTENT:
%s

Follow these exact steps:
1. Write a 3-5 sentence summary of the article.
2. Extract key entities grouped as "people", "organizations", "locations", "other".
3. Create 5 quiz questions, each with 4 options and one correct answer. The "answer" field must repeat one of the options exactly. Include a short "explanation" per question.
4. Suggest 3-5 related Wikipedia topics for further reading.
5. Assign each question a "difficulty" of "easy", "medium", or "hard".
6. All output MUST be valid JSON only - no Markdown, no text outside JSON.

Output format:
{
  "summary": "...",
  "key_entities": {"people": ["..."], "organizations": ["..."], "locations": ["..."], "other": ["..."]},
  "related_topics": ["..."],
  "quiz": [
    {"question": "...", "options": ["...", "...", "...", "..."], "answer": "...", "difficulty": "medium", "explanation": "..."}
  ]
}`

// GenerateContent implements domain.QuizGenerationService.
func (g *LLMQuizGenerator) GenerateContent(ctx context.Context, article *domain.Article) (*domain.GeneratedContent, error) {
	l := logger.Get()
	l.Info("Generating quiz content with LLM",
		zap.String("title", article.Title),
		zap.Int("text_len", len(article.Text)),
	)

	prompt := fmt.Sprintf(promptTemplate, article.Title, article.Text)

	response, err := g.llm.Call(ctx, prompt, llms.WithTemperature(0.7))
	if err != nil {
		return nil, domain.NewLLMServiceError(err)
	}

	var llmResp struct {
		Summary       string              `json:"summary"`
		KeyEntities   map[string][]string `json:"key_entities"`
		RelatedTopics []string            `json:"related_topics"`
		Quiz          []struct {
			Question    string   `json:"question"`
			Options     []string `json:"options"`
			Answer      string   `json:"answer"`
			Difficulty  string   `json:"difficulty"`
			Explanation string   `json:"explanation"`
		} `json:"quiz"`
	}

	cleaned := cleanLLMResponse(response)
	if err := json.Unmarshal([]byte(cleaned), &llmResp); err != nil {
		l.Error("Failed to parse LLM response", zap.Error(err), zap.String("response", cleaned))
		return nil, domain.NewLLMServiceError(err)
	}

	content := &domain.GeneratedContent{
		Summary:       llmResp.Summary,
		KeyEntities:   llmResp.KeyEntities,
		RelatedTopics: llmResp.RelatedTopics,
	}

	for _, q := range llmResp.Quiz {
		question := domain.Question{
			Text:        q.Question,
			Options:     q.Options,
			Answer:      q.Answer,
			Difficulty:  domain.ParseDifficulty(q.Difficulty),
			Explanation: q.Explanation,
		}
		if err := question.Validate(); err != nil {
			l.Warn("LLM generated malformed question, skipping",
				zap.String("question", q.Question),
				zap.Error(err),
			)
			continue
		}
		content.Questions = append(content.Questions, question)
	}

	if len(content.Questions) == 0 {
		return nil, domain.NewLLMServiceError(fmt.Errorf("no valid questions generated"))
	}

	l.Info("Generated quiz content", zap.Int("questions", len(content.Questions)))
	return content, nil
}

// cleanLLMResponse strips reasoning tags and Markdown code fences that
// models wrap around their JSON output.
func cleanLLMResponse(response string) string {
	s := strings.TrimSpace(response)
	if thinkStart := strings.Index(s, "<think>"); thinkStart != -1 {
		if thinkEnd := strings.Index(s, "</think>"); thinkEnd != -1 {
			s = s[thinkEnd+len("</think>"):]
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

var _ domain.QuizGenerationService = (*LLMQuizGenerator)(nil)
