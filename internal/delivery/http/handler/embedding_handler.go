package handler

import (
	"github.com/evandrarf/microlearn-be/internal/delivery/http/domain"
	"github.com/evandrarf/microlearn-be/internal/delivery/http/entity"
	"github.com/evandrarf/microlearn-be/internal/delivery/http/usecase"
	"github.com/evandrarf/microlearn-be/internal/pkg/response"
	"github.com/evandrarf/microlearn-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	EmbeddingHandler interface {
		Embed(ctx *fiber.Ctx) error
		Compare(ctx *fiber.Ctx) error
		FindSimilar(ctx *fiber.Ctx) error
		Search(ctx *fiber.Ctx) error
		Cluster(ctx *fiber.Ctx) error
		CreateDocument(ctx *fiber.Ctx) error
		ListDocuments(ctx *fiber.Ctx) error
	}

	embeddingHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.EmbeddingUsecase
	}
)

func NewEmbeddingHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.EmbeddingUsecase) EmbeddingHandler {
	return &embeddingHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// POST /embeddings
func (h *embeddingHandler) Embed(ctx *fiber.Ctx) error {
	var req entity.EmbedRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.EMBEDDING_GENERATE_FAILED, err, h.logger).Send(ctx)
	}

	res, err := h.usecase.Embed(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.EMBEDDING_GENERATE_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.EMBEDDING_GENERATE_SUCCESS, res, nil).Send(ctx)
}

// POST /similarity
func (h *embeddingHandler) Compare(ctx *fiber.Ctx) error {
	var req entity.CompareRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.SIMILARITY_COMPARE_FAILED, err, h.logger).Send(ctx)
	}

	res, err := h.usecase.Compare(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.SIMILARITY_COMPARE_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.SIMILARITY_COMPARE_SUCCESS, res, nil).Send(ctx)
}

// POST /similarity/find
func (h *embeddingHandler) FindSimilar(ctx *fiber.Ctx) error {
	var req entity.FindSimilarRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.SIMILARITY_FIND_FAILED, err, h.logger).Send(ctx)
	}

	results, err := h.usecase.FindSimilar(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.SIMILARITY_FIND_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.SIMILARITY_FIND_SUCCESS, results, fiber.Map{"count": len(results)}).Send(ctx)
}

// POST /search
func (h *embeddingHandler) Search(ctx *fiber.Ctx) error {
	var req entity.SearchRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.SEARCH_FAILED, err, h.logger).Send(ctx)
	}

	res, err := h.usecase.Search(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.SEARCH_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.SEARCH_SUCCESS, res, fiber.Map{"count": len(res.Results)}).Send(ctx)
}

// POST /clusters
func (h *embeddingHandler) Cluster(ctx *fiber.Ctx) error {
	var req entity.ClusterRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.CLUSTER_FAILED, err, h.logger).Send(ctx)
	}

	res, err := h.usecase.Cluster(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.CLUSTER_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.CLUSTER_SUCCESS, res, fiber.Map{"count": len(res.Clusters)}).Send(ctx)
}

// POST /documents
func (h *embeddingHandler) CreateDocument(ctx *fiber.Ctx) error {
	var req entity.DocumentRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.DOCUMENT_CREATE_FAILED, err, h.logger).Send(ctx)
	}

	doc, err := h.usecase.CreateDocument(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.DOCUMENT_CREATE_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewCreated(domain.DOCUMENT_CREATE_SUCCESS, doc).Send(ctx)
}

// GET /documents
func (h *embeddingHandler) ListDocuments(ctx *fiber.Ctx) error {
	docs, err := h.usecase.ListDocuments(ctx.UserContext())
	if err != nil {
		return response.NewFailed(domain.DOCUMENT_LIST_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.DOCUMENT_LIST_SUCCESS, docs, fiber.Map{"count": len(docs)}).Send(ctx)
}
