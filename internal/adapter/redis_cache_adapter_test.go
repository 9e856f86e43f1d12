package adapter

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wikiquiz/quizforge/internal/domain"
)

const testURL = "https://en.wikipedia.org/wiki/Go_(programming_language)"

func testQuiz() *domain.Quiz {
	return &domain.Quiz{
		ID:    "01HQZX",
		URL:   testURL,
		Title: "Go (programming language)",
		Questions: []domain.Question{
			{Text: "Who?", Options: []string{"Rob Pike", "Ada"}, Answer: "Rob Pike"},
		},
		DateGenerated: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
	}
}

func TestGetQuizByURL_Hit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(client, time.Hour)

	quiz := testQuiz()
	payload, err := json.Marshal(quiz)
	require.NoError(t, err)
	mock.ExpectGet(quizKey(testURL)).SetVal(string(payload))

	got, err := cacheAdapter.GetQuizByURL(context.Background(), testURL)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, quiz.ID, got.ID)
	assert.Equal(t, quiz.Questions, got.Questions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuizByURL_Miss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(client, time.Hour)

	mock.ExpectGet(quizKey(testURL)).RedisNil()

	got, err := cacheAdapter.GetQuizByURL(context.Background(), testURL)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSetQuiz(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(client, time.Hour)

	quiz := testQuiz()
	payload, err := json.Marshal(quiz)
	require.NoError(t, err)
	mock.ExpectSet(quizKey(testURL), payload, time.Hour).SetVal("OK")

	require.NoError(t, cacheAdapter.SetQuiz(context.Background(), testURL, quiz))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuizKey_BoundedAndDistinct(t *testing.T) {
	a := quizKey("https://en.wikipedia.org/wiki/A")
	b := quizKey("https://en.wikipedia.org/wiki/B")
	assert.NotEqual(t, a, b)
	assert.Equal(t, quizKey("https://en.wikipedia.org/wiki/A"), a)
	assert.Less(t, len(a), 80)
}
