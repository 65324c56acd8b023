package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/evandrarf/microlearn-be/internal/delivery/http/domain"
	"github.com/evandrarf/microlearn-be/internal/delivery/http/entity"
	"github.com/evandrarf/microlearn-be/internal/delivery/http/usecase"
	"github.com/evandrarf/microlearn-be/internal/pkg/response"
	"github.com/evandrarf/microlearn-be/internal/pkg/scoring"
	"github.com/evandrarf/microlearn-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type (
	ScoringHandler interface {
		Calculate(ctx *fiber.Ctx) error
		CreateSession(ctx *fiber.Ctx) error
		SubmitAnswer(ctx *fiber.Ctx) error
		GetSession(ctx *fiber.Ctx) error
		GetStudentResults(ctx *fiber.Ctx) error
		GetParameters(ctx *fiber.Ctx) error
		UpdateParameters(ctx *fiber.Ctx) error
	}

	scoringHandler struct {
		validator *validate.Validator
		logger    *logrus.Logger
		usecase   usecase.ScoringUsecase
	}
)

func NewScoringHandler(validator *validate.Validator, logger *logrus.Logger, usecase usecase.ScoringUsecase) ScoringHandler {
	return &scoringHandler{
		validator: validator,
		logger:    logger,
		usecase:   usecase,
	}
}

// usecaseError turns usecase sentinels into http errors, anything else passes through
func usecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, usecase.ErrSessionExists), errors.Is(err, usecase.ErrDuplicateAnswer):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, usecase.ErrStudentRequired):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}

// POST /scoring/calculate
func (h *scoringHandler) Calculate(ctx *fiber.Ctx) error {
	var req entity.ScoringSessionRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.SCORING_CALCULATE_FAILED, err, h.logger).Send(ctx)
	}

	result, err := h.usecase.Calculate(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.SCORING_CALCULATE_FAILED, usecaseError(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.SCORING_CALCULATE_SUCCESS, result, nil).Send(ctx)
}

// POST /scoring/sessions
func (h *scoringHandler) CreateSession(ctx *fiber.Ctx) error {
	var req entity.ScoringSessionRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.SCORING_SESSION_CREATE_FAILED, err, h.logger).Send(ctx)
	}

	result, err := h.usecase.ScoreSession(ctx.UserContext(), req)
	if err != nil {
		return response.NewFailed(domain.SCORING_SESSION_CREATE_FAILED, usecaseError(err), h.logger).Send(ctx)
	}

	return response.NewCreated(domain.SCORING_SESSION_CREATE_SUCCESS, result).Send(ctx)
}

// POST /scoring/sessions/:session_id/answers
func (h *scoringHandler) SubmitAnswer(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return response.NewFailed(domain.SCORING_SUBMIT_ANSWER_FAILED, fiber.NewError(fiber.StatusBadRequest, "session_id is required"), h.logger).Send(ctx)
	}

	var req entity.SubmitAnswerRequest
	if err := h.validator.ParseAndValidate(ctx, &req); err != nil {
		return response.NewFailed(domain.SCORING_SUBMIT_ANSWER_FAILED, err, h.logger).Send(ctx)
	}

	result, err := h.usecase.SubmitAnswer(ctx.UserContext(), sessionID, req)
	if err != nil {
		return response.NewFailed(domain.SCORING_SUBMIT_ANSWER_FAILED, usecaseError(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.SCORING_SUBMIT_ANSWER_SUCCESS, result, nil).Send(ctx)
}

// GET /scoring/sessions/:session_id
func (h *scoringHandler) GetSession(ctx *fiber.Ctx) error {
	sessionID := ctx.Params("session_id")
	if sessionID == "" {
		return response.NewFailed(domain.SCORING_GET_SESSION_FAILED, fiber.NewError(fiber.StatusBadRequest, "session_id is required"), h.logger).Send(ctx)
	}

	detail, err := h.usecase.GetSession(ctx.UserContext(), sessionID)
	if err != nil {
		return response.NewFailed(domain.SCORING_GET_SESSION_FAILED, usecaseError(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.SCORING_GET_SESSION_SUCCESS, detail, nil).Send(ctx)
}

// GET /scoring/students/:student_id/results?limit=20
func (h *scoringHandler) GetStudentResults(ctx *fiber.Ctx) error {
	studentID := ctx.Params("student_id")
	if studentID == "" {
		return response.NewFailed(domain.SCORING_GET_HISTORY_FAILED, fiber.NewError(fiber.StatusBadRequest, "student_id is required"), h.logger).Send(ctx)
	}

	limit := 0
	if v := strings.TrimSpace(ctx.Query("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return response.NewFailed(domain.SCORING_GET_HISTORY_FAILED, fiber.NewError(fiber.StatusBadRequest, "invalid limit"), h.logger).Send(ctx)
		}
		limit = n
	}

	items, err := h.usecase.GetStudentResults(ctx.UserContext(), studentID, limit)
	if err != nil {
		return response.NewFailed(domain.SCORING_GET_HISTORY_FAILED, usecaseError(err), h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.SCORING_GET_HISTORY_SUCCESS, items, fiber.Map{"count": len(items)}).Send(ctx)
}

// GET /scoring/parameters
func (h *scoringHandler) GetParameters(ctx *fiber.Ctx) error {
	return response.NewSuccess(domain.SCORING_GET_PARAMETERS_SUCCESS, h.usecase.GetParameters(ctx.UserContext()), nil).Send(ctx)
}

// PUT /scoring/parameters
func (h *scoringHandler) UpdateParameters(ctx *fiber.Ctx) error {
	var update scoring.ParamsUpdate
	if err := ctx.BodyParser(&update); err != nil {
		return response.NewFailed(domain.SCORING_UPDATE_PARAMETERS_FAILED, fiber.NewError(fiber.StatusBadRequest, "Request body is not valid"), h.logger).Send(ctx)
	}

	params, err := h.usecase.UpdateParameters(ctx.UserContext(), update)
	if err != nil {
		return response.NewFailed(domain.SCORING_UPDATE_PARAMETERS_FAILED, err, h.logger).Send(ctx)
	}

	return response.NewSuccess(domain.SCORING_UPDATE_PARAMETERS_SUCCESS, params, nil).Send(ctx)
}
