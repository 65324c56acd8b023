package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/evandrarf/microlearn-be/internal/delivery/http/entity"
	"github.com/evandrarf/microlearn-be/internal/delivery/http/repository"
	"github.com/evandrarf/microlearn-be/internal/pkg/embedding"
	"github.com/evandrarf/microlearn-be/internal/pkg/mapper"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type EmbeddingUsecase interface {
	Embed(ctx context.Context, req entity.EmbedRequest) (*entity.EmbedResponse, error)
	Compare(ctx context.Context, req entity.CompareRequest) (*entity.CompareResponse, error)
	FindSimilar(ctx context.Context, req entity.FindSimilarRequest) ([]embedding.SimilarityResult, error)
	Search(ctx context.Context, req entity.SearchRequest) (*entity.SearchResponse, error)
	Cluster(ctx context.Context, req entity.ClusterRequest) (*entity.ClusterResponse, error)
	CreateDocument(ctx context.Context, req entity.DocumentRequest) (*entity.DocumentResponse, error)
	ListDocuments(ctx context.Context) ([]entity.DocumentResponse, error)
}

type EmbeddingConfig struct {
	DB         *gorm.DB
	Service    *embedding.Service
	Repository repository.DocumentRepository
	Log        *logrus.Logger
}

type embeddingUsecase struct {
	cfg EmbeddingConfig
}

func NewEmbeddingUsecase(cfg EmbeddingConfig) EmbeddingUsecase {
	if cfg.Log == nil {
		cfg.Log = logrus.New()
	}
	return &embeddingUsecase{cfg: cfg}
}

func (u *embeddingUsecase) Embed(ctx context.Context, req entity.EmbedRequest) (*entity.EmbedResponse, error) {
	vectors, err := u.cfg.Service.GenerateEmbeddings(ctx, req.Texts)
	if err != nil {
		return nil, err
	}
	res := &entity.EmbedResponse{Embeddings: vectors}
	if len(vectors) > 0 {
		res.Dimensions = len(vectors[0])
	}
	return res, nil
}

func (u *embeddingUsecase) Compare(ctx context.Context, req entity.CompareRequest) (*entity.CompareResponse, error) {
	vectors, err := u.cfg.Service.GenerateEmbeddings(ctx, []string{req.TextA, req.TextB})
	if err != nil {
		return nil, err
	}
	sim, err := u.cfg.Service.CalculateSimilarity(vectors[0], vectors[1])
	if err != nil {
		return nil, err
	}
	return &entity.CompareResponse{Similarity: sim}, nil
}

func (u *embeddingUsecase) FindSimilar(ctx context.Context, req entity.FindSimilarRequest) ([]embedding.SimilarityResult, error) {
	threshold := embedding.DefaultFindThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	return u.cfg.Service.FindSimilar(ctx, req.Query, req.Candidates, threshold)
}

// Search ranks the request documents, or the stored learning modules when none are given
func (u *embeddingUsecase) Search(ctx context.Context, req entity.SearchRequest) (*entity.SearchResponse, error) {
	topK := embedding.DefaultTopK
	if req.TopK != nil {
		topK = *req.TopK
	}
	threshold := embedding.DefaultSearchThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	var docs []embedding.Document
	if len(req.Documents) > 0 {
		docs = make([]embedding.Document, 0, len(req.Documents))
		for _, d := range req.Documents {
			docs = append(docs, mapper.RequestToEmbeddingDocument(d))
		}
	} else {
		stored, err := u.cfg.Repository.FindAll(u.cfg.DB.WithContext(ctx))
		if err != nil {
			return nil, fmt.Errorf("failed to load documents: %w", err)
		}
		docs = make([]embedding.Document, 0, len(stored))
		for i := range stored {
			d, err := mapper.ToEmbeddingDocument(&stored[i])
			if err != nil {
				return nil, err
			}
			docs = append(docs, d)
		}
	}

	start := time.Now()
	results, err := u.cfg.Service.SemanticSearch(ctx, req.Query, docs, topK, threshold)
	if err != nil {
		return nil, err
	}
	u.cfg.Log.WithFields(logrus.Fields{
		"documents": len(docs),
		"results":   len(results),
		"took":      time.Since(start).String(),
	}).Debug("semantic search")

	return &entity.SearchResponse{Query: req.Query, Results: results}, nil
}

func (u *embeddingUsecase) Cluster(ctx context.Context, req entity.ClusterRequest) (*entity.ClusterResponse, error) {
	threshold := embedding.DefaultClusterThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}
	clusters, err := u.cfg.Service.ClusterTexts(ctx, req.Texts, threshold)
	if err != nil {
		return nil, err
	}
	return &entity.ClusterResponse{Clusters: clusters}, nil
}

func (u *embeddingUsecase) CreateDocument(ctx context.Context, req entity.DocumentRequest) (*entity.DocumentResponse, error) {
	doc, err := mapper.ToDocumentEntity(req)
	if err != nil {
		return nil, err
	}
	db := u.cfg.DB.WithContext(ctx)
	if err := u.cfg.Repository.Upsert(db, doc); err != nil {
		return nil, fmt.Errorf("failed to save document: %w", err)
	}

	saved, err := u.cfg.Repository.FindByDocumentID(db, req.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload document: %w", err)
	}
	res, err := mapper.ToDocumentResponse(saved)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (u *embeddingUsecase) ListDocuments(ctx context.Context) ([]entity.DocumentResponse, error) {
	stored, err := u.cfg.Repository.FindAll(u.cfg.DB.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get documents: %w", err)
	}
	out := make([]entity.DocumentResponse, 0, len(stored))
	for i := range stored {
		d, err := mapper.ToDocumentResponse(&stored[i])
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
