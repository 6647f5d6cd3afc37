package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skinpro/backend/internal/catalog"
	"github.com/skinpro/backend/internal/domain"
)

// ScentAll is the wildcard scent filter value: no scent restriction
const ScentAll = "All"

// RecommendServiceConfig holds configuration for the recommendation service
type RecommendServiceConfig struct {
	DefaultTopN        int
	MaxTopN            int
	SummaryWorkers     int
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// RecommendService ranks catalog products by content similarity to a
// reference product and attaches a review summary to each result.
type RecommendService struct {
	catalog        *catalog.Catalog
	summarizer     domain.Summarizer
	cache          domain.CacheRepository
	defaultTopN    int
	maxTopN        int
	summaryWorkers int
	cacheTTL       time.Duration
	debug          bool
}

// NewRecommendService creates a recommendation service with dependencies
func NewRecommendService(
	cat *catalog.Catalog,
	summarizer domain.Summarizer,
	cache domain.CacheRepository,
	config RecommendServiceConfig,
) *RecommendService {
	defaultTopN := config.DefaultTopN
	if defaultTopN <= 0 {
		defaultTopN = 20
	}

	maxTopN := config.MaxTopN
	if maxTopN <= 0 {
		maxTopN = 50
	}

	workers := config.SummaryWorkers
	if workers <= 0 {
		workers = 4
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &RecommendService{
		catalog:        cat,
		summarizer:     summarizer,
		cache:          cache,
		defaultTopN:    defaultTopN,
		maxTopN:        maxTopN,
		summaryWorkers: workers,
		cacheTTL:       cacheTTL,
		debug:          config.EnableDebugLogging,
	}
}

// RecommendByFilter ranks products matching the given skin type (and scent,
// unless it is "All") by similarity to the named reference product. If the
// reference is not in the filtered subset, the first subset row stands in
// for it. An empty subset yields ErrNoMatches, not a failure.
func (s *RecommendService) RecommendByFilter(
	ctx context.Context,
	referenceName, skinType, scent string,
	topN int,
) (results []domain.RankedProduct, err error) {
	defer recoverRanking(&err)

	if skinType == "" {
		return nil, domain.ErrInvalidRequest
	}

	candidates := dedupeByName(s.filterCandidates(skinType, scent))
	if len(candidates) == 0 {
		return nil, domain.ErrNoMatches
	}

	// Permissive fallback: an unknown reference defaults to the first row
	refIdx := 0
	for i, p := range candidates {
		if p.Name == referenceName {
			refIdx = i
			break
		}
	}

	if s.debug {
		log.Printf("[RECOMMEND] Filter skinType=%q scent=%q: %d candidates, reference %q",
			skinType, scent, len(candidates), candidates[refIdx].Name)
	}

	ranked := rank(candidates, refIdx, s.clampTopN(topN))
	return s.assemble(ctx, candidates, ranked)
}

// RecommendByProduct ranks the full catalog by similarity to the named
// product. Unlike the filtered variant there is no fallback: an unknown
// name fails closed with ErrNoMatches.
func (s *RecommendService) RecommendByProduct(
	ctx context.Context,
	referenceName string,
	topN int,
) (results []domain.RankedProduct, err error) {
	defer recoverRanking(&err)

	if referenceName == "" {
		return nil, domain.ErrInvalidRequest
	}

	candidates := s.catalog.Products()

	refIdx := -1
	for i, p := range candidates {
		if p.Name == referenceName {
			refIdx = i
			break
		}
	}
	if refIdx < 0 {
		return nil, domain.ErrNoMatches
	}

	if s.debug {
		log.Printf("[RECOMMEND] Product %q: ranking %d candidates", referenceName, len(candidates))
	}

	ranked := rank(candidates, refIdx, s.clampTopN(topN))
	return s.assemble(ctx, candidates, ranked)
}

// recoverRanking converts an unexpected panic during ranking into
// ErrRankingFailed so one bad request degrades to an empty result
// instead of taking the process down.
func recoverRanking(err *error) {
	if r := recover(); r != nil {
		log.Printf("[RECOMMEND] WARNING: ranking panic recovered: %v", r)
		*err = fmt.Errorf("%w: %v", domain.ErrRankingFailed, r)
	}
}

// clampTopN bounds the requested result count to [1, maxTopN], applying
// the default when the caller did not specify one.
func (s *RecommendService) clampTopN(topN int) int {
	if topN <= 0 {
		return s.defaultTopN
	}
	if topN > s.maxTopN {
		return s.maxTopN
	}
	return topN
}

// filterCandidates returns catalog rows whose skin type contains skinType
// and, unless scent is the wildcard, whose scent contains scent. Both
// matches are case-insensitive substring matches on free text.
func (s *RecommendService) filterCandidates(skinType, scent string) []domain.Product {
	skinTypeLower := strings.ToLower(skinType)
	scentLower := strings.ToLower(scent)
	matchScent := scent != "" && scent != ScentAll

	var matched []domain.Product
	for _, p := range s.catalog.Products() {
		if !strings.Contains(strings.ToLower(p.SkinTypeCompatibility), skinTypeLower) {
			continue
		}
		if matchScent && !strings.Contains(strings.ToLower(p.Scent), scentLower) {
			continue
		}
		matched = append(matched, p)
	}
	return matched
}

// dedupeByName drops duplicate product names, keeping the first occurrence
func dedupeByName(products []domain.Product) []domain.Product {
	seen := make(map[string]bool, len(products))
	deduped := products[:0:0]
	for _, p := range products {
		if seen[p.Name] {
			continue
		}
		seen[p.Name] = true
		deduped = append(deduped, p)
	}
	return deduped
}

// scoredIndex pairs a candidate index with its similarity to the reference
type scoredIndex struct {
	index int
	score float64
}

// rank computes TF-IDF cosine similarity of every candidate against the
// reference and returns up to topN candidate indices, most similar first.
// The vector space is rebuilt from scratch for exactly this candidate set.
// Ties keep catalog order and the reference never ranks itself.
func rank(candidates []domain.Product, refIdx, topN int) []scoredIndex {
	docs := make([]string, len(candidates))
	for i, p := range candidates {
		docs[i] = p.CombinedText
	}

	vectorizer := newTFIDFVectorizer(docs)

	refVector := vectorizer.transform(docs[refIdx])

	scored := make([]scoredIndex, 0, len(candidates)-1)
	for i, doc := range docs {
		if i == refIdx {
			continue
		}
		scored = append(scored, scoredIndex{
			index: i,
			score: dot(refVector, vectorizer.transform(doc)),
		})
	}

	// Stable sort keeps catalog order on equal scores
	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].score > scored[b].score
	})

	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}

// assemble turns ranked indices into result records, summarizing each
// product's review. Summaries fan out over a bounded worker group; result
// order is fixed by index so parallelism never reorders the ranking.
func (s *RecommendService) assemble(
	ctx context.Context,
	candidates []domain.Product,
	ranked []scoredIndex,
) ([]domain.RankedProduct, error) {
	results := make([]domain.RankedProduct, len(ranked))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.summaryWorkers)

	for i, entry := range ranked {
		product := candidates[entry.index]
		results[i] = domain.RankedProduct{
			Name:        product.Name,
			Brand:       product.Brand,
			ImageLink:   product.ImageLink,
			ProductLink: product.ProductLink,
			EaseOfUse:   product.EaseOfUse,
			Score:       entry.score,
		}

		group.Go(func() error {
			results[i].Summary = s.summarize(groupCtx, product.Reviews)
			return nil
		})
	}

	// Workers never return errors; Wait only joins them
	_ = group.Wait()

	return results, nil
}

// summarize fetches a review summary through the memoization cache.
// Summaries are keyed by a digest of the exact review text, so identical
// reviews across products or calls hit the external backend only once.
func (s *RecommendService) summarize(ctx context.Context, review string) string {
	if strings.TrimSpace(review) == "" {
		return s.summarizer.Summarize(ctx, review)
	}

	key := summaryCacheKey(review)
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
		return cached
	}

	summary := s.summarizer.Summarize(ctx, review)

	if err := s.cache.Set(ctx, key, summary, s.cacheTTL); err != nil {
		log.Printf("[RECOMMEND] WARNING: failed to cache summary: %v", err)
	}

	return summary
}

// summaryCacheKey derives a stable cache key from the review text
func summaryCacheKey(review string) string {
	digest := sha256.Sum256([]byte(review))
	return "summary:" + hex.EncodeToString(digest[:])
}
