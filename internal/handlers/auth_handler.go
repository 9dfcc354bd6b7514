package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"geodata-service/internal/conversion"
	"geodata-service/internal/logger"
	"geodata-service/internal/services"
)

var validate = validator.New()

type LoginRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" form:"refresh" validate:"required"`
}

type LogoutRequest struct {
	Refresh string `json:"refresh" form:"refresh"`
}

// AuthHandler serves the token endpoints for admin users.
type AuthHandler struct {
	Service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{Service: service}
}

// Login handles POST /auth/login.
// @Summary Log in an admin user
// @Description Exchanges staff credentials for an access and refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Username and password"
// @Success 200 {object} conversion.LoginResponse
// @Failure 400 {object} map[string]interface{} "Missing credentials"
// @Failure 401 {object} map[string]interface{} "Invalid credentials"
// @Failure 403 {object} map[string]interface{} "Not a staff user"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil || validate.Struct(&req) != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Please provide both username and password")
	}

	user, tokens, err := h.Service.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		logger.FromContext(c.UserContext()).Info().Str("username", req.Username).Err(err).Msg("login rejected")
		return respondError(c, err)
	}
	return c.JSON(conversion.LoginResponse{
		Message: "Login successful",
		User:    conversion.ToUserResponse(user),
		Tokens:  tokens,
	})
}

// Logout handles POST /auth/logout.
// @Summary Log out
// @Description Revokes the supplied refresh token. Always succeeds for an authenticated caller.
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body LogoutRequest false "Refresh token to revoke"
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{} "Not authenticated"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var req LogoutRequest
	_ = c.BodyParser(&req)
	h.Service.Logout(c.UserContext(), req.Refresh)
	return c.JSON(fiber.Map{"message": "Logout successful"})
}

// Me handles GET /auth/me.
// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} conversion.UserResponse
// @Failure 401 {object} map[string]interface{} "Not authenticated"
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(conversion.ToUserResponse(CurrentUser(c)))
}

// Refresh handles POST /auth/refresh.
// @Summary Refresh an access token
// @Tags auth
// @Accept json
// @Produce json
// @Param body body RefreshRequest true "Refresh token"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{} "Missing refresh token"
// @Failure 401 {object} map[string]interface{} "Invalid, expired or revoked token"
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil || validate.Struct(&req) != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Refresh token is required")
	}
	access, err := h.Service.Refresh(c.UserContext(), req.Refresh)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"access": access})
}
