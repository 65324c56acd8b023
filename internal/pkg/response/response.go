package response

import (
	"errors"

	"github.com/evandrarf/microlearn-be/internal/pkg/embedding"
	"github.com/evandrarf/microlearn-be/internal/pkg/scoring"
	"github.com/evandrarf/microlearn-be/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"

	"github.com/sirupsen/logrus"
)

type Response struct {
	StatusCode int    `json:"-"`
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
	Error      any    `json:"error,omitempty"`
	Data       any    `json:"data,omitempty"`
	Meta       any    `json:"meta,omitempty"`
}

func NewInternalServerError() *Response {
	res := &Response{
		Success:    false,
		Message:    "Internal Server Error",
		StatusCode: fiber.StatusInternalServerError,
	}
	return res
}

// NewFailed maps err to a status code. Unknown errors become a 500 and are logged, their text is not sent.
func NewFailed(msg string, err error, logger *logrus.Logger) *Response {
	res := &Response{
		Success:    false,
		Message:    msg,
		StatusCode: fiber.StatusInternalServerError,
	}

	var (
		fiberErr    *fiber.Error
		fieldsErr   *validate.FieldsError
		paramsErr   *scoring.ParamsError
		degenerate  *embedding.DegenerateInputError
		providerErr *embedding.ProviderError
	)

	switch {
	case errors.As(err, &fiberErr):
		res.StatusCode = fiberErr.Code
		if fiberErr.Message != "" {
			res.Error = fiberErr.Message
		}
	case errors.As(err, &fieldsErr):
		res.StatusCode = fiber.StatusBadRequest
		res.Error = fieldsErr.Fields
	case errors.As(err, &paramsErr):
		res.StatusCode = fiber.StatusBadRequest
		res.Error = paramsErr.Fields
	case errors.As(err, &degenerate):
		res.StatusCode = fiber.StatusUnprocessableEntity
		res.Error = degenerate.Error()
	case errors.As(err, &providerErr):
		res.StatusCode = fiber.StatusBadGateway
		res.Error = providerErr.Error()
	}

	if logger != nil {
		switch {
		case res.StatusCode >= fiber.StatusInternalServerError:
			logger.WithError(err).WithField("status", res.StatusCode).Error(msg)
		case res.StatusCode == fiber.StatusUnprocessableEntity:
			logger.WithError(err).Warn(msg)
		}
	}

	return res
}

func NewSuccess(msg string, data any, meta any) *Response {
	res := &Response{
		Success:    true,
		Message:    msg,
		StatusCode: fiber.StatusOK,
		Data:       data,
		Meta:       meta,
	}

	return res
}

func NewCreated(msg string, data any) *Response {
	res := NewSuccess(msg, data, nil)
	res.StatusCode = fiber.StatusCreated
	return res
}

func (r *Response) Send(ctx *fiber.Ctx) error {
	return ctx.Status(r.StatusCode).JSON(r)
}
