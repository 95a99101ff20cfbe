// Package usecase implements the read and write operations of the spell table.
package usecase

import (
	"context"
	"errors"

	"shadowdark_backend/internal/feature/spells/domain/entity"
	"shadowdark_backend/internal/shared/catalog"
)

// SpellRepository abstracts the spell table.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SpellRepository interface {
	// ListSortedByName returns every spell in ascending name order.
	ListSortedByName(ctx context.Context) ([]entity.Spell, error)

	// ListByTier returns the spells of one tier in ascending name order.
	ListByTier(ctx context.Context, tier string) ([]entity.Spell, error)

	// FindBySlug returns ErrSpellNotFound when no row matches.
	FindBySlug(ctx context.Context, slug string) (*entity.Spell, error)

	// InsertIfAbsent writes s unless a spell with the same slug already exists.
	InsertIfAbsent(ctx context.Context, s *entity.Spell) (catalog.InsertStatus, error)
}

// Query narrows a spell listing. Empty fields are ignored.
type Query struct {
	Term  *string
	Tier  string
	Class string
}

type spellUsecase struct {
	repo SpellRepository
}

// NewSpellUsecase creates a spellUsecase backed by repo.
func NewSpellUsecase(repo SpellRepository) *spellUsecase {
	return &spellUsecase{repo: repo}
}

// List returns all spells sorted by name.
func (u *spellUsecase) List(ctx context.Context) ([]entity.Spell, error) {
	return u.repo.ListSortedByName(ctx)
}

// Search returns the spells whose name contains term, case-insensitively.
// A nil or blank term behaves exactly like List.
func (u *spellUsecase) Search(ctx context.Context, term *string) ([]entity.Spell, error) {
	all, err := u.repo.ListSortedByName(ctx)
	if err != nil {
		return nil, err
	}
	t, ok := catalog.SearchTerm(term)
	if !ok {
		return all, nil
	}
	return catalog.FilterByName(all, t, spellName), nil
}

// Browse applies the tier filter, then the class filter, then the name search.
func (u *spellUsecase) Browse(ctx context.Context, q Query) ([]entity.Spell, error) {
	if q.Tier == "" && q.Class == "" {
		return u.Search(ctx, q.Term)
	}

	var (
		ss  []entity.Spell
		err error
	)
	if q.Tier != "" {
		ss, err = u.repo.ListByTier(ctx, q.Tier)
	} else {
		ss, err = u.repo.ListSortedByName(ctx)
	}
	if err != nil {
		return nil, err
	}

	if q.Class != "" {
		kept := make([]entity.Spell, 0, len(ss))
		for _, s := range ss {
			if s.CastableBy(q.Class) {
				kept = append(kept, s)
			}
		}
		ss = kept
	}
	if t, ok := catalog.SearchTerm(q.Term); ok {
		return catalog.FilterByName(ss, t, spellName), nil
	}
	return ss, nil
}

// GetBySlug returns the spell with the given slug or ErrSpellNotFound.
func (u *spellUsecase) GetBySlug(ctx context.Context, slug string) (*entity.Spell, error) {
	s, err := u.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrSpellNotFound) {
			return nil, ErrSpellNotFound
		}
		return nil, err
	}
	return s, nil
}

// InsertIfAbsent stores s unless its slug is already taken.
func (u *spellUsecase) InsertIfAbsent(ctx context.Context, s entity.Spell) (catalog.InsertResult, error) {
	status, err := u.repo.InsertIfAbsent(ctx, &s)
	if err != nil {
		return catalog.InsertResult{}, err
	}
	return catalog.InsertResult{Status: status, Slug: s.Slug}, nil
}

func spellName(s entity.Spell) string { return s.Name }
