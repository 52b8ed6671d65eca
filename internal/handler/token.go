package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/workoutapp/backend/internal/model"
	"github.com/workoutapp/backend/internal/service"
)

type TokenHandler struct {
	tokens *service.TokenService
	users  *service.UserService
}

func NewTokenHandler(tokens *service.TokenService, users *service.UserService) *TokenHandler {
	return &TokenHandler{tokens: tokens, users: users}
}

// CreateToken godoc
// @Summary Exchange credentials for an authentication token
// @Description Issues an opaque bearer token with a 24-hour lifetime.
// @Tags tokens
// @Accept json
// @Produce json
// @Param request body model.CreateTokenRequest true "Username and password"
// @Success 201 {object} model.AuthTokenEnvelope
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /tokens/authentication [post]
func (h *TokenHandler) CreateToken(c *gin.Context) {
	var req model.CreateTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}
	if req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		log.Error().Err(err).Str("request_id", GetRequestID(c)).Msg("credential check failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	plaintext, expiry, err := h.tokens.Issue(c.Request.Context(), user.ID)
	if err != nil {
		log.Error().Err(err).Str("request_id", GetRequestID(c)).Msg("token issuance failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"auth_token": model.AuthTokenResponse{
		Token:  plaintext,
		Expiry: expiry,
	}})
}

// RevokeTokens godoc
// @Summary Revoke all authentication tokens for the current user
// @Tags tokens
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.PingResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /tokens/authentication [delete]
func (h *TokenHandler) RevokeTokens(c *gin.Context) {
	user := GetCurrentUser(c)
	if user.IsAnonymous() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "you must be logged in"})
		return
	}

	if err := h.tokens.RevokeAll(c.Request.Context(), user.ID, model.ScopeAuthentication); err != nil {
		log.Error().Err(err).Str("request_id", GetRequestID(c)).Msg("token revocation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "tokens revoked"})
}
