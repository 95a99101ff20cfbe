// Package handler exposes the seed pipelines over HTTP for deploy tooling.
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shadowdark_backend/internal/feature/seed/usecase"
)

// maxSeedBody caps a seed upload. The full core data set is well below this.
const maxSeedBody = 16 << 20

// Seeder runs one seed pipeline over a JSON array payload.
type Seeder interface {
	Seed(ctx context.Context, data []byte) (usecase.Result, error)
}

// SeedHandler accepts seed collections for the monster and spell tables.
type SeedHandler struct {
	monsters Seeder
	spells   Seeder
	log      *zap.Logger
}

// NewSeedHandler creates a SeedHandler.
func NewSeedHandler(monsters, spells Seeder, log *zap.Logger) *SeedHandler {
	return &SeedHandler{monsters: monsters, spells: spells, log: log}
}

// SeedMonsters handles POST /admin/seed/monsters.
func (h *SeedHandler) SeedMonsters(c *gin.Context) {
	h.run(c, "monsters", h.monsters)
}

// SeedSpells handles POST /admin/seed/spells.
func (h *SeedHandler) SeedSpells(c *gin.Context) {
	h.run(c, "spells", h.spells)
}

func (h *SeedHandler) run(c *gin.Context, table string, s Seeder) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxSeedBody))
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "seed payload too large"})
		return
	}

	res, err := s.Seed(c.Request.Context(), body)
	if err != nil {
		if errors.Is(err, usecase.ErrMalformedCollection) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Error("seeding aborted", zap.String("table", table), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	h.log.Info("seeding finished",
		zap.String("table", table),
		zap.Int("total", res.Total),
		zap.Int("inserted", res.Inserted),
		zap.Int("skipped", res.Skipped),
		zap.Int("errors", len(res.Errors)),
	)
	c.JSON(http.StatusOK, res)
}
