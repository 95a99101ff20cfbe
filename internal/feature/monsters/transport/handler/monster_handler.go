// Package handler provides the HTTP handlers of the monsters feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shadowdark_backend/internal/feature/monsters/domain/entity"
	"shadowdark_backend/internal/feature/monsters/transport/http/dto"
	"shadowdark_backend/internal/feature/monsters/usecase"
)

// MonsterUsecase is the read side of the monster table used by the HTTP layer.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type MonsterUsecase interface {
	Browse(ctx context.Context, q usecase.Query) ([]entity.Monster, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Monster, error)
}

// MonsterHandler serves the monster list and detail endpoints.
type MonsterHandler struct {
	uc  MonsterUsecase
	log *zap.Logger
}

// NewMonsterHandler creates a MonsterHandler.
func NewMonsterHandler(uc MonsterUsecase, log *zap.Logger) *MonsterHandler {
	return &MonsterHandler{uc: uc, log: log}
}

// List handles GET /monsters.
// ?search= narrows by name, ?level= narrows to one level; both are optional.
func (h *MonsterHandler) List(c *gin.Context) {
	var q usecase.Query
	if term, ok := c.GetQuery("search"); ok {
		q.Term = &term
	}
	if raw, ok := c.GetQuery("level"); ok && raw != "" {
		level, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "level must be an integer"})
			return
		}
		q.Level = &level
	}

	ms, err := h.uc.Browse(c.Request.Context(), q)
	if err != nil {
		h.log.Error("failed to list monsters", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	out := make([]dto.MonsterItem, 0, len(ms))
	for _, m := range ms {
		out = append(out, dto.FromEntity(m))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /monsters/:slug.
func (h *MonsterHandler) Get(c *gin.Context) {
	m, err := h.uc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, usecase.ErrMonsterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "monster not found"})
			return
		}
		h.log.Error("failed to get monster", zap.String("slug", c.Param("slug")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*m))
}
