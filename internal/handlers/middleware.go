package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"geodata-service/internal/logger"
	"geodata-service/internal/metrics"
	"geodata-service/internal/models"
	"geodata-service/internal/services"
)

const (
	HeaderRequestID = "X-Request-ID"
	userLocalKey    = "user"
)

// RequestLogger tags the request context with a request id, writes one log
// line per response and records HTTP metrics.
func RequestLogger(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		ctx := logger.WithRequestID(c.UserContext(), c.Get(HeaderRequestID))
		c.SetUserContext(ctx)
		c.Set(HeaderRequestID, logger.RequestID(ctx))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		latency := float64(time.Since(start).Microseconds()) / 1000.0
		route := c.Route().Path
		m.RecordRequest(c.Method(), route, strconv.Itoa(status), latency)

		lg := logger.FromContext(ctx)
		ev := lg.Info()
		if status >= fiber.StatusInternalServerError {
			ev = lg.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency_ms", latency).
			Str("ip", c.IP()).
			Msg("request")
		return err
	}
}

// RequireAuth resolves the bearer access token to a user and stores it in the
// request locals.
func RequireAuth(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return errorJSON(c, fiber.StatusUnauthorized, NotAuthenticated)
		}
		user, err := auth.Authenticate(c.UserContext(), strings.TrimSpace(token))
		if err != nil {
			logger.FromContext(c.UserContext()).Debug().Err(err).Msg("rejected bearer token")
			return errorJSON(c, fiber.StatusUnauthorized, InvalidTokenError)
		}
		c.Locals(userLocalKey, user)
		return c.Next()
	}
}

// RequireStaff must run after RequireAuth.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil || !user.IsStaff {
			return errorJSON(c, fiber.StatusForbidden, PermissionDenied)
		}
		return c.Next()
	}
}

// CurrentUser returns the user stored by RequireAuth, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userLocalKey).(*models.User)
	return user
}
