// Package client implements the catalog client: a uniform request contract
// over the remote quiz service. Every failure mode, transport or
// application, is collapsed into a single *domain.DomainError so callers
// never observe raw HTTP errors.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/wikiquiz/quizforge/internal/domain"
	"github.com/wikiquiz/quizforge/internal/dto"
	"github.com/wikiquiz/quizforge/internal/logger"
)

// Client talks to the quiz service. Construct one at the composition root
// and pass it to whatever needs it; there is no package-level instance.
type Client struct {
	http    *resty.Client
	baseURL string
}

// New creates a catalog client for the service at baseURL. The timeout
// applies per request; GenerateQuiz may legitimately run for most of it.
func New(baseURL string, timeout time.Duration) *Client {
	c := resty.New()
	c.SetBaseURL(strings.TrimRight(baseURL, "/"))
	c.SetTimeout(timeout)
	c.SetHeader("Content-Type", "application/json")
	return &Client{http: c, baseURL: baseURL}
}

// ListQuizzes returns the full, unfiltered quiz history. Ordering is the
// server's choice; the catalog query engine orders for display.
func (c *Client) ListQuizzes(ctx context.Context) ([]domain.QuizSummary, error) {
	var body []dto.QuizSummaryResponse
	if err := c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.Get("/quizzes")
	}, &body); err != nil {
		return nil, err
	}
	summaries := make([]domain.QuizSummary, 0, len(body))
	for _, s := range body {
		summaries = append(summaries, s.ToDomainSummary())
	}
	return summaries, nil
}

// GetQuiz fetches the full quiz record for a previously observed id. An
// unknown id surfaces the server's detail message, typically as a
// QUIZ_NOT_FOUND error.
func (c *Client) GetQuiz(ctx context.Context, id string) (*domain.Quiz, error) {
	if strings.TrimSpace(id) == "" {
		return nil, domain.NewInvalidInputError("quiz id is required")
	}
	var body dto.QuizResponse
	if err := c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.Get("/quizzes/" + id)
	}, &body); err != nil {
		return nil, err
	}
	return body.ToDomainQuiz(), nil
}

// GenerateQuiz asks the service to generate a quiz from a source article.
// This is long-running; callers should treat it as a blocking call and
// surface an in-progress affordance rather than assume a fixed bound.
func (c *Client) GenerateQuiz(ctx context.Context, sourceURL string) (*domain.Quiz, error) {
	if strings.TrimSpace(sourceURL) == "" {
		return nil, domain.NewInvalidInputError("source URL is required")
	}
	var body dto.QuizResponse
	if err := c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.SetBody(dto.GenerateQuizRequest{URL: sourceURL}).Post("/generate-quiz")
	}, &body); err != nil {
		return nil, err
	}
	return body.ToDomainQuiz(), nil
}

// CheckHealth probes the service root. Diagnostics only.
func (c *Client) CheckHealth(ctx context.Context) (*domain.HealthStatus, error) {
	var body dto.HealthResponse
	if err := c.do(ctx, func(r *resty.Request) (*resty.Response, error) {
		return r.Get("/")
	}, &body); err != nil {
		return nil, err
	}
	return &domain.HealthStatus{Message: body.Message}, nil
}

// do issues one request and normalizes the outcome. No retries; retry
// policy belongs to the caller.
func (c *Client) do(ctx context.Context, send func(*resty.Request) (*resty.Response, error), out any) error {
	resp, err := send(c.http.R().SetContext(ctx))
	if err != nil {
		logger.Get().Warn("quiz service request failed",
			zap.String("base_url", c.baseURL),
			zap.Error(err),
		)
		return domain.NewRequestError("Network request failed", err)
	}

	if resp.IsError() {
		return c.errorFromResponse(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		logger.Get().Warn("quiz service returned malformed body",
			zap.Int("status", resp.StatusCode()),
			zap.Error(err),
		)
		return domain.NewRequestError("Malformed response from quiz service", err)
	}
	return nil
}

// errorFromResponse extracts the server's detail message when the body
// carries one, falling back to a generic message embedding the status.
func (c *Client) errorFromResponse(resp *resty.Response) error {
	message := fmt.Sprintf("request failed with status %d", resp.StatusCode())
	var payload dto.ErrorResponse
	if err := json.Unmarshal(resp.Body(), &payload); err == nil && payload.Detail != "" {
		message = payload.Detail
	}

	logger.Get().Warn("quiz service returned error response",
		zap.Int("status", resp.StatusCode()),
		zap.String("detail", message),
	)

	if resp.StatusCode() == 404 {
		return domain.NewError(domain.ErrQuizNotFound, message, nil)
	}
	return domain.NewRequestError(message, nil)
}
