package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"tableside/internal/common"
	"tableside/internal/services"
)

// AuthHandlers handles signup, login, and session endpoints
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// Signup handles POST /auth/signup
func (h *AuthHandlers) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req services.SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.authService.Signup(ctx, &req)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Account created successfully",
		"user":    user,
	})
}

// Login handles POST /auth/login
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	token, user, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		// Do not leak whether the username exists.
		if errors.Is(err, common.ErrNotFound) {
			return common.SendUnauthorizedError(c, "Invalid username or password")
		}
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /auth/logout, revoking the current session
func (h *AuthHandlers) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	sessionID, ok := common.GetSessionIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "No active session")
	}

	if err := h.authService.Logout(ctx, sessionID); err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Logged out successfully",
	})
}

// Me handles GET /auth/me
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c, "Not authenticated")
	}

	user, err := h.authService.GetUser(ctx, userID)
	if err != nil {
		return common.RespondDomainError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
