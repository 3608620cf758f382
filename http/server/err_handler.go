package server

import (
	"errors"

	"github.com/code19m/errx"
	"github.com/gofiber/fiber/v2"
	"github.com/rise-and-shine/catalog/meta"
)

const (
	// CodeInternalError is reported for errors carrying no code of their own,
	// such as plain backend errors and recovered panics.
	CodeInternalError = "INTERNAL_ERROR"

	// codeRouterError is the code of errors raised by fiber itself, e.g. unknown routes.
	codeRouterError = "ROUTER_ERROR"
)

// statusByType maps error types to response statuses.
// Types missing from the table are answered with 500.
var statusByType = map[errx.Type]int{
	errx.T_Authentication: fiber.StatusUnauthorized,
	errx.T_Forbidden:      fiber.StatusForbidden,
	errx.T_NotFound:       fiber.StatusNotFound,
	errx.T_Validation:     fiber.StatusBadRequest,
	errx.T_Conflict:       fiber.StatusConflict,
	errx.T_Throttling:     fiber.StatusTooManyRequests,
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	TraceID string      `json:"trace_id"`
	Error   ErrorSchema `json:"error"`
}

// ErrorSchema describes a failed request. Trace and Details are omitted
// when the server hides error details.
type ErrorSchema struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Cause   string            `json:"cause"`
	Trace   string            `json:"trace,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Details map[string]any    `json:"details,omitempty"`
}

// WriteErrorResponse answers the request with the error body derived from err
// and returns err converted to errx.ErrorX.
// The message is translated to the language of the Accept-Language header.
func WriteErrorResponse(c *fiber.Ctx, err error, hideDetails bool) error {
	e := toErrorX(err)

	code := e.Code()
	if code == "" {
		code = CodeInternalError
	}

	body := ErrorSchema{
		Code:    code,
		Message: meta.Tr(code, c.Get(fiber.HeaderAcceptLanguage)),
		Cause:   e.Error(),
		Fields:  e.Fields(),
	}
	if !hideDetails {
		body.Trace = e.Trace()
		body.Details = e.Details()
	}

	c.Status(statusOf(e.Type()))
	_ = c.JSON(ErrorResponse{
		TraceID: meta.Find(c.UserContext(), meta.TraceID),
		Error:   body,
	})

	return e
}

// customErrorHandler is the fiber error handler of the server.
// Responses already carrying an error status are left untouched, so it only
// writes bodies for errors no middleware handled, like unmatched routes.
func customErrorHandler(hideDetails bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if c.Response().StatusCode() >= fiber.StatusBadRequest {
			return nil
		}
		_ = WriteErrorResponse(c, err, hideDetails)
		return nil
	}
}

func statusOf(t errx.Type) int {
	if status, ok := statusByType[t]; ok {
		return status
	}
	return fiber.StatusInternalServerError
}

// typeOfStatus is the inverse of statusOf for statuses produced by fiber.
func typeOfStatus(status int) errx.Type {
	for t, s := range statusByType {
		if s == status {
			return t
		}
	}
	if status >= fiber.StatusBadRequest && status < fiber.StatusInternalServerError {
		return errx.T_Validation
	}
	return errx.T_Internal
}

func toErrorX(err error) errx.ErrorX {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		err = errx.New(
			fiberErr.Message,
			errx.WithCode(codeRouterError),
			errx.WithType(typeOfStatus(fiberErr.Code)),
			errx.WithDetails(errx.D{"status": fiberErr.Code}),
		)
	}
	return errx.AsErrorX(err)
}
