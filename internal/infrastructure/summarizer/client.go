// Package summarizer shortens product reviews via an external
// text-generation API, degrading to a local excerpt when the API is
// unavailable.
package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// NoReviewSentinel is returned for blank input. It is part of the
// contract: callers and the UI match on it.
const NoReviewSentinel = "No review available"

// ClientConfig holds configuration for the summarization client
type ClientConfig struct {
	APIKey        string
	BaseURL       string
	Timeout       time.Duration
	MaxInputChars int
	ExcerptLength int
	Retry         RetryPolicy
}

// Client calls the summarization backend with bounded retries. It
// implements domain.Summarizer and never fails: every error path ends in
// the deterministic excerpt fallback.
type Client struct {
	httpClient    *http.Client
	apiKey        string
	baseURL       string
	maxInputChars int
	excerptLength int
	retry         RetryPolicy
	rateLimiter   *rate.Limiter
	debug         bool
}

// summaryRequest is the backend's expected payload shape
type summaryRequest struct {
	Inputs     string            `json:"inputs"`
	Parameters summaryParameters `json:"parameters"`
}

type summaryParameters struct {
	MaxLength int `json:"max_length"`
	MinLength int `json:"min_length"`
}

// summaryResponse is the backend's success payload: a list whose first
// element carries the generated text. Some model variants name the field
// summary_text instead of generated_text, so both are accepted.
type summaryResponse []struct {
	GeneratedText string `json:"generated_text"`
	SummaryText   string `json:"summary_text"`
}

// NewClient creates a summarization client
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	maxInput := config.MaxInputChars
	if maxInput <= 0 {
		maxInput = 500
	}

	excerptLen := config.ExcerptLength
	if excerptLen <= 0 {
		excerptLen = 200
	}

	retry := config.Retry
	if retry.MaxAttempts <= 0 {
		retry = DefaultRetryPolicy()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		apiKey:        config.APIKey,
		baseURL:       config.BaseURL,
		maxInputChars: maxInput,
		excerptLength: excerptLen,
		retry:         retry,
		// Free-tier inference endpoints throttle aggressively; stay
		// well under with 1 req/sec and a small burst
		rateLimiter: rate.NewLimiter(rate.Limit(1), 5),
	}
}

// SetDebug enables request/response logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// Summarize returns a short summary of the review. Blank input yields the
// fixed sentinel. Rate-limit responses back off linearly and retry, an
// authorization failure abandons the backend immediately, and anything
// else retries up to the attempt budget. All failures end in Excerpt, so
// the result is never empty for non-empty input.
func (c *Client) Summarize(ctx context.Context, review string) string {
	if strings.TrimSpace(review) == "" {
		return NoReviewSentinel
	}

	prompt := "summarize: " + truncateRunes(review, c.maxInputChars)

	var lastErr error
	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			log.Printf("[SUMMARY] Rate limiter error: %v", err)
			return c.Excerpt(review)
		}

		summary, status, err := c.requestSummary(ctx, prompt)
		if err == nil && summary != "" {
			return summary
		}

		switch status {
		case http.StatusTooManyRequests:
			if c.debug {
				log.Printf("[SUMMARY] Rate limited (attempt %d), backing off", attempt)
			}
			c.retry.Wait(c.retry.Backoff(attempt))
			continue
		case http.StatusUnauthorized, http.StatusForbidden:
			log.Printf("[SUMMARY] Backend rejected credentials, using excerpt")
			return c.Excerpt(review)
		}

		lastErr = err
		if attempt < c.retry.MaxAttempts {
			c.retry.Wait(c.retry.Delay)
		}
	}

	if lastErr != nil {
		log.Printf("[SUMMARY] All attempts failed, using excerpt: %v", lastErr)
	}
	return c.Excerpt(review)
}

// requestSummary performs one backend call. It returns the summary text,
// the HTTP status code (0 on transport errors), and any error.
func (c *Client) requestSummary(ctx context.Context, prompt string) (string, int, error) {
	payload, err := json.Marshal(summaryRequest{
		Inputs: prompt,
		Parameters: summaryParameters{
			MaxLength: 100,
			MinLength: 30,
		},
	})
	if err != nil {
		return "", 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, err
	}

	if resp.StatusCode != http.StatusOK {
		if c.debug {
			log.Printf("[SUMMARY] Backend status %d: %s", resp.StatusCode, string(body))
		}
		return "", resp.StatusCode, nil
	}

	var parsed summaryResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", resp.StatusCode, err
	}
	if len(parsed) == 0 {
		return "", resp.StatusCode, nil
	}

	text := parsed[0].GeneratedText
	if text == "" {
		text = parsed[0].SummaryText
	}
	return strings.TrimSpace(text), resp.StatusCode, nil
}

// Excerpt is the deterministic local fallback: the leading slice of the
// review, trimmed back to the last sentence boundary inside the window
// when one exists. Never empty for non-empty input.
func (c *Client) Excerpt(review string) string {
	return Excerpt(review, c.excerptLength)
}

// Excerpt shortens a review to at most maxLength characters, preferring to
// cut at the last period within the window.
func Excerpt(review string, maxLength int) string {
	if strings.TrimSpace(review) == "" {
		return NoReviewSentinel
	}

	excerpt := truncateRunes(review, maxLength)
	if idx := strings.LastIndex(excerpt, "."); idx > 0 {
		excerpt = excerpt[:idx+1]
	}
	return strings.TrimSpace(excerpt)
}

// truncateRunes bounds a string to n characters without splitting a rune
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
