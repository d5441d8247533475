package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"ppf-order-backend/internal/auth"
	"ppf-order-backend/internal/middleware"
	"ppf-order-backend/internal/models"
)

type SessionGate interface {
	SignIn(email, password string) (*auth.Session, error)
	SignOut(accessToken string)
	CurrentSession() (*auth.Session, bool)
}

type AuthHandler struct {
	gate SessionGate
}

func NewAuthHandler(gate SessionGate) *AuthHandler {
	return &AuthHandler{gate: gate}
}

// SignIn godoc
// @Summary     Admin sign-in
// @Description Exchanges the admin email and password for a session. The identity provider's error message is returned as-is on failure.
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.SignInRequest true "Credentials"
// @Success     200 {object} models.SessionResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/sign-in [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req models.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "email and password are required"})
		return
	}

	session, err := h.gate.SignIn(req.Email, req.Password)
	if err != nil {
		var authErr *models.AuthError
		if errors.As(err, &authErr) {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: authErr.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal Server Error"})
		return
	}

	c.JSON(http.StatusOK, sessionResponse(session, true))
}

// SignOut godoc
// @Summary     Admin sign-out
// @Tags        auth
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.SuccessResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/sign-out [post]
func (h *AuthHandler) SignOut(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: models.ErrUnauthorized.Error()})
		return
	}

	h.gate.SignOut(session.AccessToken)
	c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
}

// Session godoc
// @Summary     Current admin session
// @Tags        auth
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.SessionResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/session [get]
func (h *AuthHandler) Session(c *gin.Context) {
	session, ok := h.gate.CurrentSession()
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: models.ErrUnauthorized.Error()})
		return
	}

	c.JSON(http.StatusOK, sessionResponse(session, false))
}

func sessionResponse(s *auth.Session, withTokens bool) models.SessionResponse {
	resp := models.SessionResponse{
		ExpiresAt: s.ExpiresAt,
		User: models.SessionUser{
			ID:    s.UserID,
			Email: s.Email,
		},
	}
	if withTokens {
		resp.AccessToken = s.AccessToken
		resp.RefreshToken = s.RefreshToken
		resp.TokenType = s.TokenType
	}
	return resp
}
