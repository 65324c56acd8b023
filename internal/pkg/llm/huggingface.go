package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultHuggingFaceURL = "https://api-inference.huggingface.co/pipeline/feature-extraction/sentence-transformers/all-MiniLM-L6-v2"

// HTTPError is a non-2xx answer from an embedding endpoint.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("embedding endpoint returned %d: %s", e.StatusCode, e.Body)
}

type HuggingFaceEmbedder struct {
	APIKey       string
	URL          string
	WaitForModel bool
	UseCache     bool
	client       *http.Client
}

func NewHuggingFaceEmbedder(apiKey, url string, timeout time.Duration) *HuggingFaceEmbedder {
	if url == "" {
		url = defaultHuggingFaceURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HuggingFaceEmbedder{
		APIKey:       apiKey,
		URL:          url,
		WaitForModel: true,
		UseCache:     true,
		client:       &http.Client{Timeout: timeout},
	}
}

type featureExtractionRequest struct {
	Inputs  string                   `json:"inputs"`
	Options featureExtractionOptions `json:"options"`
}

type featureExtractionOptions struct {
	WaitForModel bool `json:"wait_for_model"`
	UseCache     bool `json:"use_cache"`
}

func (h *HuggingFaceEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	body, err := json.Marshal(featureExtractionRequest{
		Inputs: text,
		Options: featureExtractionOptions{
			WaitForModel: h.WaitForModel,
			UseCache:     h.UseCache,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode huggingface request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build huggingface request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if h.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.APIKey)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("huggingface request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, fmt.Errorf("read huggingface response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	return decodeFeatureVector(raw)
}

// decodeFeatureVector accepts a flat vector, a one-row matrix, or a token
// matrix. Token matrices are mean-pooled into a single vector.
func decodeFeatureVector(raw []byte) ([]float32, error) {
	var flat []float32
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat, nil
	}

	var matrix [][]float32
	if err := json.Unmarshal(raw, &matrix); err == nil {
		return meanPool(matrix)
	}

	var batched [][][]float32
	if err := json.Unmarshal(raw, &batched); err == nil && len(batched) > 0 {
		return meanPool(batched[0])
	}

	return nil, fmt.Errorf("huggingface response is not a numeric vector: %.120s", string(raw))
}

func meanPool(rows [][]float32) ([]float32, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("huggingface returned no vectors")
	}
	if len(rows) == 1 {
		return rows[0], nil
	}

	dim := len(rows[0])
	sum := make([]float64, dim)
	for _, row := range rows {
		if len(row) != dim {
			return nil, fmt.Errorf("huggingface returned ragged token vectors")
		}
		for i, v := range row {
			sum[i] += float64(v)
		}
	}

	out := make([]float32, dim)
	for i := range sum {
		out[i] = float32(sum[i] / float64(len(rows)))
	}
	return out, nil
}

func (h *HuggingFaceEmbedder) ModelName() string {
	return "huggingface:" + h.URL
}
