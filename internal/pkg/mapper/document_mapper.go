package mapper

import (
	"encoding/json"
	"fmt"

	httpEntity "github.com/evandrarf/microlearn-be/internal/delivery/http/entity"
	dbEntity "github.com/evandrarf/microlearn-be/internal/entity"
	"github.com/evandrarf/microlearn-be/internal/pkg/embedding"
)

func ToDocumentEntity(req httpEntity.DocumentRequest) (*dbEntity.LearningDocument, error) {
	doc := &dbEntity.LearningDocument{
		DocumentID: req.ID,
		Title:      req.Title,
		Content:    req.Content,
	}
	if len(req.Metadata) > 0 {
		raw, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal metadata for %s: %w", req.ID, err)
		}
		doc.Metadata = string(raw)
	}
	return doc, nil
}

func decodeMetadata(doc *dbEntity.LearningDocument) (map[string]any, error) {
	if doc.Metadata == "" {
		return nil, nil
	}
	var meta map[string]any
	if err := json.Unmarshal([]byte(doc.Metadata), &meta); err != nil {
		return nil, fmt.Errorf("failed to unmarshal metadata for %s: %w", doc.DocumentID, err)
	}
	return meta, nil
}

// ToEmbeddingDocument - Stored document as a search candidate. Title is kept in metadata.
func ToEmbeddingDocument(doc *dbEntity.LearningDocument) (embedding.Document, error) {
	meta, err := decodeMetadata(doc)
	if err != nil {
		return embedding.Document{}, err
	}
	if doc.Title != "" {
		if meta == nil {
			meta = make(map[string]any, 1)
		}
		meta["title"] = doc.Title
	}
	return embedding.Document{
		ID:       doc.DocumentID,
		Content:  doc.Content,
		Metadata: meta,
	}, nil
}

func RequestToEmbeddingDocument(req httpEntity.DocumentRequest) embedding.Document {
	meta := req.Metadata
	if req.Title != "" {
		meta = make(map[string]any, len(req.Metadata)+1)
		for k, v := range req.Metadata {
			meta[k] = v
		}
		meta["title"] = req.Title
	}
	return embedding.Document{
		ID:       req.ID,
		Content:  req.Content,
		Metadata: meta,
	}
}

func ToDocumentResponse(doc *dbEntity.LearningDocument) (httpEntity.DocumentResponse, error) {
	meta, err := decodeMetadata(doc)
	if err != nil {
		return httpEntity.DocumentResponse{}, err
	}
	return httpEntity.DocumentResponse{
		ID:        doc.DocumentID,
		Title:     doc.Title,
		Content:   doc.Content,
		Metadata:  meta,
		CreatedAt: doc.CreatedAt,
	}, nil
}
