// Package handler provides the HTTP handlers of the spells feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shadowdark_backend/internal/feature/spells/domain/entity"
	"shadowdark_backend/internal/feature/spells/transport/http/dto"
	"shadowdark_backend/internal/feature/spells/usecase"
)

// SpellUsecase is the read side of the spell table used by the HTTP layer.
type SpellUsecase interface {
	Browse(ctx context.Context, q usecase.Query) ([]entity.Spell, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Spell, error)
}

// SpellHandler serves the spell list and detail endpoints.
type SpellHandler struct {
	uc  SpellUsecase
	log *zap.Logger
}

// NewSpellHandler creates a SpellHandler.
func NewSpellHandler(uc SpellUsecase, log *zap.Logger) *SpellHandler {
	return &SpellHandler{uc: uc, log: log}
}

// List handles GET /spells with optional ?search=, ?tier= and ?class=.
func (h *SpellHandler) List(c *gin.Context) {
	q := usecase.Query{
		Tier:  c.Query("tier"),
		Class: c.Query("class"),
	}
	if term, ok := c.GetQuery("search"); ok {
		q.Term = &term
	}

	ss, err := h.uc.Browse(c.Request.Context(), q)
	if err != nil {
		h.log.Error("failed to list spells", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	out := make([]dto.SpellItem, 0, len(ss))
	for _, s := range ss {
		out = append(out, dto.FromEntity(s))
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /spells/:slug.
func (h *SpellHandler) Get(c *gin.Context) {
	s, err := h.uc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, usecase.ErrSpellNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "spell not found"})
			return
		}
		h.log.Error("failed to get spell", zap.String("slug", c.Param("slug")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, dto.FromEntity(*s))
}
