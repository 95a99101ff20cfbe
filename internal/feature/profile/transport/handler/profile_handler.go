// Package handler provides the HTTP handlers of the profile feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shadowdark_backend/internal/feature/profile/domain/entity"
	"shadowdark_backend/internal/feature/profile/transport/http/dto"
	"shadowdark_backend/internal/feature/profile/usecase"
	jwtmw "shadowdark_backend/internal/platform/jwt"
)

// ProfileUsecase defines the profile operations used by the HTTP layer.
type ProfileUsecase interface {
	GetCurrent(ctx context.Context, id *usecase.Identity) (*usecase.CurrentProfile, error)
	Upsert(ctx context.Context, id *usecase.Identity, displayName string, avatarURL *string) (uint, error)
	UpdatePreferences(ctx context.Context, id *usecase.Identity, prefs *entity.TablePreferences, theme *string) error
}

// ProfileHandler serves the /me endpoints.
type ProfileHandler struct {
	uc  ProfileUsecase
	log *zap.Logger
}

// NewProfileHandler creates a ProfileHandler.
func NewProfileHandler(uc ProfileUsecase, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{uc: uc, log: log}
}

// identity returns the caller established by the JWT middleware, or nil.
func identity(c *gin.Context) *usecase.Identity {
	id, ok := jwtmw.UserIDFrom(c)
	if !ok {
		return nil
	}
	return &usecase.Identity{UserID: id, Email: jwtmw.EmailFrom(c)}
}

// CurrentUserID handles GET /me/id. Anonymous callers get null.
func (h *ProfileHandler) CurrentUserID(c *gin.Context) {
	if id := identity(c); id != nil {
		c.JSON(http.StatusOK, gin.H{"user_id": id.UserID})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user_id": nil})
}

// GetProfile handles GET /me/profile. Anonymous callers and callers without a
// profile get null.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	cp, err := h.uc.GetCurrent(c.Request.Context(), identity(c))
	if err != nil {
		h.log.Error("failed to load profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	if cp == nil {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, dto.FromCurrent(*cp))
}

// UpsertProfile handles PUT /me/profile.
func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	var req dto.UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.uc.Upsert(c.Request.Context(), identity(c), req.DisplayName, req.AvatarURL)
	if err != nil {
		h.writeError(c, "failed to upsert profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// UpdatePreferences handles PUT /me/preferences.
func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	var req dto.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.uc.UpdatePreferences(c.Request.Context(), identity(c), req.FavoriteTablesPreferences, req.ThemePreference)
	if err != nil {
		h.writeError(c, "failed to update preferences", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) writeError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrUnsupportedPreferencesVersion):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		h.log.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
