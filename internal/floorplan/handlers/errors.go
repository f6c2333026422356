package handlers

import (
	"net/http"

	apperrors "floorplan-service/internal/common/errors"

	"github.com/gofiber/fiber/v3"
)

func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeConflict, apperrors.ErrCodeInvalidState:
		return http.StatusConflict
	case apperrors.ErrCodeInsufficientSelection:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeCommitFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a coded error as {"error","code"}. Uncoded errors are
// reported as internal without leaking their text.
func respondError(c fiber.Ctx, err error) error {
	code := apperrors.GetCode(err)
	msg := apperrors.UserMessage(err)
	if code == "" {
		code, msg = apperrors.ErrCodeInternal, "internal error"
	}
	return c.Status(statusFor(code)).JSON(fiber.Map{
		"error": msg,
		"code":  code,
	})
}

func badRequest(c fiber.Ctx, msg string) error {
	return respondError(c, apperrors.New(apperrors.ErrCodeInvalidInput, "%s", msg))
}
