package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wikiquiz/quizforge/internal/cache"
	"github.com/wikiquiz/quizforge/internal/domain"
)

// RedisCacheAdapter implements domain.QuizCache using a Redis client.
// Generated quizzes are cached by their source URL so repeat generations
// skip scraping and the LLM entirely.
type RedisCacheAdapter struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCacheAdapter creates a new instance of RedisCacheAdapter.
// It expects a connected *redis.Client.
func NewRedisCacheAdapter(client *redis.Client, ttl time.Duration) domain.QuizCache {
	return &RedisCacheAdapter{client: client, ttl: ttl}
}

// GetQuizByURL retrieves a cached quiz for the source URL. A cache miss
// returns (nil, nil).
func (r *RedisCacheAdapter) GetQuizByURL(ctx context.Context, url string) (*domain.Quiz, error) {
	val, err := r.client.Get(ctx, quizKey(url)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var quiz domain.Quiz
	if err := json.Unmarshal([]byte(val), &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// SetQuiz caches a generated quiz under its source URL.
func (r *RedisCacheAdapter) SetQuiz(ctx context.Context, url string, quiz *domain.Quiz) error {
	payload, err := json.Marshal(quiz)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, quizKey(url), payload, r.ttl).Err()
}

// quizKey hashes the URL so arbitrary-length source URLs produce bounded
// cache keys.
func quizKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return cache.GenerateCacheKey("quiz", "url", hex.EncodeToString(sum[:16]))
}
