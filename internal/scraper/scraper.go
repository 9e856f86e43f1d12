// Package scraper fetches Wikipedia articles and extracts the text the
// quiz generator works from.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"

	"github.com/wikiquiz/quizforge/internal/domain"
)

const (
	maxHTMLBodyBytes = 2 << 20 // 2 MiB
	maxArticleChars  = 12000   // cap on text handed to the LLM
)

// Scraper fetches article pages and extracts title, body text, and section
// headings.
type Scraper struct {
	client    *resty.Client
	userAgent string
}

// New constructs a scraper with its own HTTP client.
func New(timeout time.Duration, userAgent string) *Scraper {
	c := resty.New()
	c.SetTimeout(timeout)
	return &Scraper{client: c, userAgent: userAgent}
}

// ValidateWikipediaURL reports whether rawURL points at a Wikipedia
// article page.
func ValidateWikipediaURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host != "wikipedia.org" && !strings.HasSuffix(host, ".wikipedia.org") {
		return false
	}
	return strings.HasPrefix(u.Path, "/wiki/")
}

// Fetch implements domain.ArticleScraper.
func (s *Scraper) Fetch(ctx context.Context, articleURL string) (*domain.Article, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("User-Agent", s.userAgent).
		Get(articleURL)
	if err != nil {
		return nil, fmt.Errorf("http fetch: %w", err)
	}

	if resp.StatusCode() != 200 {
		snippet := strings.TrimSpace(string(resp.Body()))
		if len(snippet) > 1024 {
			snippet = snippet[:1024]
		}
		return nil, fmt.Errorf("status %d body: %s", resp.StatusCode(), snippet)
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	return parseArticle(body)
}

// parseArticle extracts the title, paragraph text, and section headings
// from a Wikipedia article page.
func parseArticle(body []byte) (*domain.Article, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	article := &domain.Article{}

	article.Title = strings.TrimSpace(doc.Find("#firstHeading").First().Text())
	if article.Title == "" {
		title := strings.TrimSpace(doc.Find("title").First().Text())
		// "Page title - Wikipedia" -> "Page title"
		article.Title = strings.TrimSpace(strings.TrimSuffix(title, "- Wikipedia"))
	}

	var text strings.Builder
	doc.Find("div.mw-parser-output > p").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		paragraph := strings.TrimSpace(sel.Text())
		if paragraph == "" {
			return true
		}
		if text.Len() > 0 {
			text.WriteString("\n\n")
		}
		text.WriteString(paragraph)
		return text.Len() < maxArticleChars
	})
	article.Text = text.String()
	if len(article.Text) > maxArticleChars {
		article.Text = article.Text[:maxArticleChars]
	}

	doc.Find("div.mw-parser-output h2").Each(func(_ int, sel *goquery.Selection) {
		heading := strings.TrimSpace(sel.Find(".mw-headline").Text())
		if heading == "" {
			heading = strings.TrimSpace(sel.Text())
		}
		if heading != "" {
			article.Sections = append(article.Sections, heading)
		}
	})

	if article.Text == "" {
		return nil, fmt.Errorf("no article text found")
	}
	return article, nil
}
