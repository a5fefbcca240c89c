package handlerUtil

import (
	"ProjectDevanagari/pkg/log"
	"ProjectDevanagari/pkg/response"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const unexpectedErrorMessage = "An unexpected error occurred"

const TraceIDHeader = "X-Trace-ID"

type ErrorResponse struct {
	Error string `json:"error"`
}

type ErrorHandler struct {
	logger *logrus.Logger
}

func New(logger *logrus.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger,
	}
}

// Resolve returns the status and client-facing message for err. Only
// *response.Error messages are exposed; anything else is reported as an
// unexpected 500.
func Resolve(err error) (int, string) {
	if respErr, ok := response.From(err); ok {
		return respErr.Code, respErr.Error()
	}
	return fiber.StatusInternalServerError, unexpectedErrorMessage
}

func (h *ErrorHandler) Handle(c *fiber.Ctx, requestID string, err error, path string, operation string) error {
	code, message := Resolve(err)

	fields := log.Fields{
		log.RequestIDKey: requestID,
		"error":          err.Error(),
		"code":           code,
		"path":           path,
		"operation":      operation,
	}

	if _, ok := response.From(err); !ok {
		c.Set(TraceIDHeader, log.ErrorWithTraceID(fields, "Unexpected error"))
		return c.Status(code).JSON(ErrorResponse{Error: message})
	}

	entry := h.logger.WithFields(fields)
	if code >= fiber.StatusInternalServerError {
		entry.Error("Operation failed with error response")
	} else {
		entry.Warn("Operation failed with error response")
	}

	return c.Status(code).JSON(ErrorResponse{Error: message})
}

func (h *ErrorHandler) HandleSuccess(c *fiber.Ctx, statusCode int, data interface{}) error {
	if data == nil {
		return c.SendStatus(statusCode)
	}
	return c.Status(statusCode).JSON(data)
}
