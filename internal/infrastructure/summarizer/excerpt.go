package summarizer

import "context"

// ExcerptSummarizer is the offline summarizer used when no API key is
// configured: it always answers with the local excerpt.
type ExcerptSummarizer struct {
	excerptLength int
}

// NewExcerptSummarizer creates an excerpt-only summarizer
func NewExcerptSummarizer(excerptLength int) *ExcerptSummarizer {
	if excerptLength <= 0 {
		excerptLength = 200
	}
	return &ExcerptSummarizer{excerptLength: excerptLength}
}

// Summarize returns the excerpt fallback for the review
func (s *ExcerptSummarizer) Summarize(_ context.Context, review string) string {
	return Excerpt(review, s.excerptLength)
}
