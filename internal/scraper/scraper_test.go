package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Ada Lovelace - Wikipedia</title></head>
<body>
<h1 id="firstHeading">Ada Lovelace</h1>
<div class="mw-parser-output">
<p>Augusta Ada King, Countess of Lovelace, was an English mathematician.</p>
<p></p>
<p>She is often regarded as the first computer programmer.</p>
<h2><span class="mw-headline">Biography</span></h2>
<p>Early life details.</p>
<h2><span class="mw-headline">Work</span></h2>
<h2>Legacy</h2>
</div>
</body>
</html>`

func TestValidateWikipediaURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://en.wikipedia.org/wiki/Ada_Lovelace", true},
		{"http://de.wikipedia.org/wiki/Go", true},
		{"https://wikipedia.org/wiki/Go", true},
		{"https://en.wikipedia.org/w/index.php?title=Go", false},
		{"https://evil.example.com/wiki/Go", false},
		{"https://notwikipedia.org/wiki/Go", false},
		{"ftp://en.wikipedia.org/wiki/Go", false},
		{"", false},
		{"://bad", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidateWikipediaURL(tt.url), tt.url)
	}
}

func TestParseArticle(t *testing.T) {
	article, err := parseArticle([]byte(articleHTML))
	require.NoError(t, err)

	assert.Equal(t, "Ada Lovelace", article.Title)
	assert.Contains(t, article.Text, "English mathematician")
	assert.Contains(t, article.Text, "first computer programmer")
	assert.Equal(t, []string{"Biography", "Work", "Legacy"}, article.Sections)
}

func TestParseArticle_TitleFallback(t *testing.T) {
	html := `<html><head><title>Ada Lovelace - Wikipedia</title></head>
<body><div class="mw-parser-output"><p>Text.</p></div></body></html>`

	article, err := parseArticle([]byte(html))
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", article.Title)
}

func TestParseArticle_NoText(t *testing.T) {
	_, err := parseArticle([]byte(`<html><body><div class="mw-parser-output"></div></body></html>`))
	require.Error(t, err)
}

func TestFetch(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte(articleHTML))
	}))
	defer server.Close()

	s := New(5*time.Second, "quizforge-test/1.0")
	article, err := s.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", article.Title)
	assert.Equal(t, "quizforge-test/1.0", gotUserAgent)
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("blocked"))
	}))
	defer server.Close()

	s := New(5*time.Second, "quizforge-test/1.0")
	_, err := s.Fetch(context.Background(), server.URL)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "status 403"))
}
