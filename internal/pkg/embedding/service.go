// Package embedding wraps a remote text-embedding provider and layers cosine
// similarity, thresholded search, top-k semantic search and seed-based
// clustering on top of it.
package embedding

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultConcurrency      = 8
	DefaultFindThreshold    = 0.7
	DefaultTopK             = 5
	DefaultSearchThreshold  = 0.5
	DefaultClusterThreshold = 0.8
)

// Provider turns text into a fixed-length vector.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

type SimilarityResult struct {
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
	Index      int     `json:"index"`
}

type Document struct {
	ID       string         `json:"id"`
	Content  string         `json:"content"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type SearchResult struct {
	Document   Document `json:"document"`
	Similarity float64  `json:"similarity"`
}

// Cluster groups texts around the seed, the first text that opened it.
type Cluster struct {
	Seed    int      `json:"seed"`
	Indices []int    `json:"indices"`
	Texts   []string `json:"texts"`
}

type Option func(*Service)

// WithConcurrency bounds how many provider calls run at once. n <= 0 keeps the default.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func WithLogger(log *logrus.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

type Service struct {
	provider    Provider
	concurrency int
	log         *logrus.Logger
}

func NewService(provider Provider, opts ...Option) *Service {
	s := &Service{
		provider:    provider,
		concurrency: DefaultConcurrency,
		log:         logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return s.embed(ctx, "generate embedding", -1, text)
}

func (s *Service) embed(ctx context.Context, op string, index int, text string) ([]float32, error) {
	vec, err := s.provider.Embed(ctx, text)
	if err != nil {
		return nil, &ProviderError{Op: op, Index: index, Err: err}
	}
	if len(vec) == 0 {
		return nil, &ProviderError{Op: op, Index: index, Err: ErrEmptyVector}
	}
	return vec, nil
}

// GenerateEmbeddings embeds every text with at most the configured number of
// calls in flight. Results keep input order. The first failure cancels the
// remaining calls and fails the whole batch.
func (s *Service) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}

	start := time.Now()
	out := make([][]float32, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, text := range texts {
		g.Go(func() error {
			vec, err := s.embed(gctx, "generate embeddings", i, text)
			if err != nil {
				return err
			}
			out[i] = vec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.log.WithError(err).WithField("texts", len(texts)).Warn("embedding batch failed")
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"texts":    len(texts),
		"duration": time.Since(start).String(),
	}).Debug("embedding batch completed")
	return out, nil
}

func (s *Service) CalculateSimilarity(a, b []float32) (float64, error) {
	return Cosine(a, b)
}

// embedWithQuery embeds the query and the texts in one batch and returns the
// query vector separately.
func (s *Service) embedWithQuery(ctx context.Context, query string, texts []string) ([]float32, [][]float32, error) {
	all := make([]string, 0, len(texts)+1)
	all = append(all, query)
	all = append(all, texts...)

	vecs, err := s.GenerateEmbeddings(ctx, all)
	if err != nil {
		return nil, nil, err
	}
	return vecs[0], vecs[1:], nil
}

// FindSimilar returns every candidate whose similarity to query is at least
// threshold, most similar first. Index refers to the candidate's position in
// the input.
func (s *Service) FindSimilar(ctx context.Context, query string, candidates []string, threshold float64) ([]SimilarityResult, error) {
	if len(candidates) == 0 {
		return []SimilarityResult{}, nil
	}

	q, vecs, err := s.embedWithQuery(ctx, query, candidates)
	if err != nil {
		return nil, err
	}

	results := []SimilarityResult{}
	for i, v := range vecs {
		sim, err := Cosine(q, v)
		if err != nil {
			return nil, err
		}
		if sim >= threshold {
			results = append(results, SimilarityResult{Text: candidates[i], Similarity: sim, Index: i})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	return results, nil
}

// SemanticSearch ranks documents by similarity to query. The threshold is
// applied over all documents before the list is cut to topK.
func (s *Service) SemanticSearch(ctx context.Context, query string, documents []Document, topK int, threshold float64) ([]SearchResult, error) {
	if len(documents) == 0 || topK <= 0 {
		return []SearchResult{}, nil
	}

	contents := make([]string, len(documents))
	for i, d := range documents {
		contents[i] = d.Content
	}

	q, vecs, err := s.embedWithQuery(ctx, query, contents)
	if err != nil {
		return nil, err
	}

	results := []SearchResult{}
	for i, v := range vecs {
		sim, err := Cosine(q, v)
		if err != nil {
			return nil, err
		}
		if sim >= threshold {
			results = append(results, SearchResult{Document: documents[i], Similarity: sim})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// ClusterTexts groups texts greedily in input order. Each unassigned text
// seeds a new cluster and pulls in every later unassigned text whose
// similarity to the seed exceeds threshold. Members are compared with the seed
// only, so membership is not transitive and depends on input order.
func (s *Service) ClusterTexts(ctx context.Context, texts []string, threshold float64) ([]Cluster, error) {
	if len(texts) == 0 {
		return []Cluster{}, nil
	}

	vecs, err := s.GenerateEmbeddings(ctx, texts)
	if err != nil {
		return nil, err
	}

	assigned := make([]bool, len(texts))
	clusters := []Cluster{}

	for i := range texts {
		if assigned[i] {
			continue
		}
		assigned[i] = true
		c := Cluster{Seed: i, Indices: []int{i}, Texts: []string{texts[i]}}

		for j := i + 1; j < len(texts); j++ {
			if assigned[j] {
				continue
			}
			sim, err := Cosine(vecs[i], vecs[j])
			if err != nil {
				return nil, err
			}
			if sim > threshold {
				assigned[j] = true
				c.Indices = append(c.Indices, j)
				c.Texts = append(c.Texts, texts[j])
			}
		}
		clusters = append(clusters, c)
	}

	return clusters, nil
}
