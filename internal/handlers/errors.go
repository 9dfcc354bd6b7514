package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"geodata-service/internal/logger"
	"geodata-service/internal/services"
)

const (
	NotFoundError     = "Not found."
	InvalidPageError  = "Invalid page."
	InternalError     = "Internal server error"
	LatLngRequired    = "Latitude (lat) and longitude (lng) are required"
	NotAuthenticated  = "Authentication credentials were not provided."
	InvalidTokenError = "Given token not valid for any token type"
	PermissionDenied  = "You do not have permission to perform this action."
)

func errorJSON(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": true, "message": message,
	})
}

func validationJSON(c *fiber.Ctx, ve *services.ValidationError) error {
	body := fiber.Map{"error": true, "message": ve.Error()}
	if ve.Field != "" {
		body["details"] = fiber.Map{ve.Field: []string{ve.Message}}
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}

// respondError maps a service error onto its HTTP status and JSON body.
func respondError(c *fiber.Ctx, err error) error {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return validationJSON(c, ve)
	case errors.Is(err, services.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, NotFoundError)
	case errors.Is(err, services.ErrInvalidPage):
		return errorJSON(c, fiber.StatusNotFound, InvalidPageError)
	case errors.Is(err, services.ErrInvalidCredentials):
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, services.ErrNotStaff):
		return errorJSON(c, fiber.StatusForbidden, "Access denied. Admin privileges required.")
	case errors.Is(err, services.ErrInvalidRefresh):
		return errorJSON(c, fiber.StatusUnauthorized, "Invalid or expired refresh token")
	}

	lg := logger.FromContext(c.UserContext())
	lg.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	return errorJSON(c, fiber.StatusInternalServerError, InternalError)
}

// ErrorHandler renders errors that escape the handlers, such as unknown routes
// or an oversized body.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return errorJSON(c, fe.Code, fe.Message)
	}
	return respondError(c, err)
}
