package entity

import (
	"time"

	"github.com/evandrarf/microlearn-be/internal/pkg/embedding"
)

type EmbedRequest struct {
	Texts []string `json:"texts" validate:"required,min=1,max=256,dive,required"`
}

type EmbedResponse struct {
	Embeddings [][]float32 `json:"embeddings"`
	Dimensions int         `json:"dimensions"`
}

type CompareRequest struct {
	TextA string `json:"text_a" validate:"required"`
	TextB string `json:"text_b" validate:"required"`
}

type CompareResponse struct {
	Similarity float64 `json:"similarity"`
}

type FindSimilarRequest struct {
	Query      string   `json:"query" validate:"required"`
	Candidates []string `json:"candidates" validate:"required,min=1,max=256,dive,required"`
	Threshold  *float64 `json:"threshold"`
}

type DocumentRequest struct {
	ID       string         `json:"id" validate:"required,max=100"`
	Title    string         `json:"title" validate:"max=200"`
	Content  string         `json:"content" validate:"required"`
	Metadata map[string]any `json:"metadata"`
}

// Documents kosong berarti cari di library learning module
type SearchRequest struct {
	Query     string            `json:"query" validate:"required"`
	Documents []DocumentRequest `json:"documents" validate:"max=256,dive"`
	TopK      *int              `json:"top_k" validate:"omitempty,min=1,max=100"`
	Threshold *float64          `json:"threshold"`
}

type SearchResponse struct {
	Query   string                   `json:"query"`
	Results []embedding.SearchResult `json:"results"`
}

type ClusterRequest struct {
	Texts     []string `json:"texts" validate:"required,min=1,max=256,dive,required"`
	Threshold *float64 `json:"threshold"`
}

type ClusterResponse struct {
	Clusters []embedding.Cluster `json:"clusters"`
}

type DocumentResponse struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
