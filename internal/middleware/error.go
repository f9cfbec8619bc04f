package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"threadnest/internal/domain"
	"threadnest/internal/service/auth"
	"threadnest/internal/service/vote"
)

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorHandler maps the service error taxonomy to HTTP deterministically.
// None of these conditions are retried here; they describe caller or
// data state, not transient faults.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	errorCode := "INTERNAL_ERROR"

	switch {
	case errors.Is(err, domain.ErrInvalidParent):
		code, errorCode, message = fiber.StatusNotFound, "INVALID_PARENT", err.Error()
	case errors.Is(err, domain.ErrCommentNotFound):
		code, errorCode, message = fiber.StatusNotFound, "COMMENT_NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrPostNotFound):
		code, errorCode, message = fiber.StatusNotFound, "POST_NOT_FOUND", err.Error()
	case errors.Is(err, domain.ErrCommentNotChild):
		code, errorCode, message = fiber.StatusBadRequest, "COMMENT_NOT_CHILD", err.Error()
	case errors.Is(err, domain.ErrNotAuthor):
		code, errorCode, message = fiber.StatusUnauthorized, "NOT_AUTHOR", err.Error()
	case errors.Is(err, domain.ErrCorruptTree):
		errorCode, message = "CORRUPT_TREE", err.Error()
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrVerificationTokenExpired):
		code, errorCode, message = fiber.StatusBadRequest, "AUTH_ERROR", err.Error()
	case errors.Is(err, auth.ErrUserExists):
		code, errorCode, message = fiber.StatusConflict, "USER_EXISTS", err.Error()
	case errors.Is(err, vote.ErrInvalidVote):
		code, errorCode, message = fiber.StatusBadRequest, "INVALID_VOTE", err.Error()
	case domain.IsStorageError(err):
		errorCode, message = "STORAGE_ERROR", "Storage failure"
	default:
		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
			message = e.Message
			switch code {
			case fiber.StatusBadRequest:
				errorCode = "BAD_REQUEST"
			case fiber.StatusUnauthorized:
				errorCode = "UNAUTHORIZED"
			case fiber.StatusForbidden:
				errorCode = "FORBIDDEN"
			case fiber.StatusNotFound:
				errorCode = "NOT_FOUND"
			case fiber.StatusConflict:
				errorCode = "CONFLICT"
			}
		}
	}

	traceID := uuid.New().String()[:8]

	if code == fiber.StatusInternalServerError {
		log.Printf("[%s] %s %s: %v", traceID, c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(ErrorResponse{
		Code:    errorCode,
		Message: message,
		TraceID: traceID,
	})
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}
