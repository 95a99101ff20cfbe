// Package handler provides the HTTP handlers of the auth feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shadowdark_backend/internal/feature/auth/transport/http/dto"
	"shadowdark_backend/internal/feature/auth/usecase"
)

// AuthUsecase defines the sign-in and session operations used by the HTTP layer.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type AuthUsecase interface {
	BeginSignIn(ctx context.Context) (string, error)
	CompleteSignIn(ctx context.Context, state, code string, client usecase.ClientInfo) (*usecase.Tokens, error)
	Refresh(ctx context.Context, refreshToken string, client usecase.ClientInfo) (*usecase.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
}

// AuthHandler serves the /auth endpoints.
type AuthHandler struct {
	auth AuthUsecase
	log  *zap.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(auth AuthUsecase, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, log: log}
}

func clientInfo(c *gin.Context) usecase.ClientInfo {
	return usecase.ClientInfo{UserAgent: c.Request.UserAgent(), IPAddress: c.ClientIP()}
}

// DiscordLogin handles GET /auth/discord/login by redirecting to Discord.
func (h *AuthHandler) DiscordLogin(c *gin.Context) {
	url, err := h.auth.BeginSignIn(c.Request.Context())
	if err != nil {
		h.log.Error("failed to begin sign-in", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Redirect(http.StatusFound, url)
}

// DiscordCallback handles GET /auth/discord/callback.
func (h *AuthHandler) DiscordCallback(c *gin.Context) {
	if reason := c.Query("error"); reason != "" {
		h.log.Info("sign-in cancelled at provider", zap.String("reason", reason))
		c.JSON(http.StatusBadRequest, gin.H{"error": "sign-in was cancelled"})
		return
	}
	state, code := c.Query("state"), c.Query("code")
	if state == "" || code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing state or code"})
		return
	}

	tokens, err := h.auth.CompleteSignIn(c.Request.Context(), state, code, clientInfo(c))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidState):
			h.log.Warn("oauth callback with invalid state", zap.String("remote_addr", c.ClientIP()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid or expired sign-in attempt"})
		case errors.Is(err, usecase.ErrProviderExchange):
			h.log.Warn("provider rejected authorization code", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "sign-in failed"})
		default:
			h.log.Error("failed to complete sign-in", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.FromTokens(tokens))
}

// Refresh handles POST /auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	tokens, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken, clientInfo(c))
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidRefreshToken) ||
			errors.Is(err, usecase.ErrSessionExpired) ||
			errors.Is(err, usecase.ErrSessionRevoked) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("failed to refresh session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.FromTokens(tokens))
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		h.log.Error("failed to revoke session", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Status(http.StatusNoContent)
}
