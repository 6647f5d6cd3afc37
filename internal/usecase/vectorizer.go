package usecase

import (
	"math"
	"regexp"
	"strings"
)

// Package-level compiled regex pattern for performance
var punctuationRegex = regexp.MustCompile(`[^\w\s]`)

// englishStopWords are dropped before vectorization so ranking is driven
// by distinctive review and attribute terms rather than filler
var englishStopWords = map[string]bool{
	"a": true, "about": true, "above": true, "after": true, "again": true,
	"against": true, "all": true, "am": true, "an": true, "and": true,
	"any": true, "are": true, "as": true, "at": true, "be": true,
	"because": true, "been": true, "before": true, "being": true, "below": true,
	"between": true, "both": true, "but": true, "by": true, "can": true,
	"cannot": true, "could": true, "did": true, "do": true, "does": true,
	"doing": true, "down": true, "during": true, "each": true, "few": true,
	"for": true, "from": true, "further": true, "had": true, "has": true,
	"have": true, "having": true, "he": true, "her": true, "here": true,
	"hers": true, "herself": true, "him": true, "himself": true, "his": true,
	"how": true, "i": true, "if": true, "in": true, "into": true,
	"is": true, "it": true, "its": true, "itself": true, "just": true,
	"me": true, "more": true, "most": true, "my": true, "myself": true,
	"no": true, "nor": true, "not": true, "now": true, "of": true,
	"off": true, "on": true, "once": true, "only": true, "or": true,
	"other": true, "our": true, "ours": true, "ourselves": true, "out": true,
	"over": true, "own": true, "same": true, "she": true, "should": true,
	"so": true, "some": true, "such": true, "than": true, "that": true,
	"the": true, "their": true, "theirs": true, "them": true, "themselves": true,
	"then": true, "there": true, "these": true, "they": true, "this": true,
	"those": true, "through": true, "to": true, "too": true, "under": true,
	"until": true, "up": true, "very": true, "was": true, "we": true,
	"were": true, "what": true, "when": true, "where": true, "which": true,
	"while": true, "who": true, "whom": true, "why": true, "will": true,
	"with": true, "would": true, "you": true, "your": true, "yours": true,
	"yourself": true, "yourselves": true,
}

// tfidfVectorizer builds a term-weighted vector space over a document set.
// A fresh vectorizer is fitted per recommendation call because the
// candidate subset (and therefore the vocabulary) changes between calls.
type tfidfVectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

// newTFIDFVectorizer fits a vectorizer on the given documents, building
// the vocabulary and smoothed inverse document frequencies.
func newTFIDFVectorizer(docs []string) *tfidfVectorizer {
	v := &tfidfVectorizer{
		vocabulary: make(map[string]int),
	}

	docCount := float64(len(docs))
	docFreq := make(map[string]int)

	for _, doc := range docs {
		seen := make(map[string]bool)
		for _, token := range tokenize(doc) {
			if !seen[token] {
				docFreq[token]++
				seen[token] = true
			}
			if _, exists := v.vocabulary[token]; !exists {
				v.vocabulary[token] = len(v.vocabulary)
			}
		}
	}

	// Smoothed IDF keeps weights positive, so cosine stays in [0, 1]
	v.idf = make([]float64, len(v.vocabulary))
	for token, df := range docFreq {
		v.idf[v.vocabulary[token]] = math.Log(docCount/(1.0+float64(df))) + 1.0
	}

	return v
}

// transform converts a document into an L2-normalized TF-IDF vector, so
// cosine similarity between two transformed vectors is a plain dot product.
func (v *tfidfVectorizer) transform(doc string) []float64 {
	vector := make([]float64, len(v.vocabulary))

	tokens := tokenize(doc)
	if len(tokens) == 0 {
		return vector
	}

	counts := make(map[string]float64)
	for _, token := range tokens {
		counts[token]++
	}

	for token, count := range counts {
		idx, exists := v.vocabulary[token]
		if !exists {
			continue
		}
		tf := count / float64(len(tokens))
		vector[idx] = tf * v.idf[idx]
	}

	normalize(vector)
	return vector
}

// normalize scales a vector to unit length in place. Zero vectors are
// left as-is.
func normalize(vec []float64) {
	var sum float64
	for _, x := range vec {
		sum += x * x
	}
	magnitude := math.Sqrt(sum)
	if magnitude == 0 || math.IsNaN(magnitude) {
		return
	}
	for i := range vec {
		vec[i] /= magnitude
	}
}

// dot returns the dot product of two equal-length vectors. For unit
// vectors this is their cosine similarity.
func dot(a, b []float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// tokenize splits a string into normalized lowercase tokens.
// Removes punctuation, stop words, single characters, and pure numbers.
func tokenize(s string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")

	var tokens []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 1 {
			continue
		}
		if englishStopWords[word] {
			continue
		}
		if isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
