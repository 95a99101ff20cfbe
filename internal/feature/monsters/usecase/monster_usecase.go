// Package usecase implements the read and write operations of the monster table.
package usecase

import (
	"context"
	"errors"

	"shadowdark_backend/internal/feature/monsters/domain/entity"
	"shadowdark_backend/internal/shared/catalog"
)

// MonsterRepository abstracts the monster table.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type MonsterRepository interface {
	// ListSortedByName returns every monster in ascending name order.
	ListSortedByName(ctx context.Context) ([]entity.Monster, error)

	// ListByLevel returns the monsters of one level in ascending name order.
	ListByLevel(ctx context.Context, level int) ([]entity.Monster, error)

	// FindBySlug returns ErrMonsterNotFound when no row matches.
	FindBySlug(ctx context.Context, slug string) (*entity.Monster, error)

	// InsertIfAbsent writes m unless a monster with the same slug already exists.
	InsertIfAbsent(ctx context.Context, m *entity.Monster) (catalog.InsertStatus, error)
}

// Query narrows a monster listing. Zero value means "everything".
type Query struct {
	Term  *string
	Level *int
}

type monsterUsecase struct {
	repo MonsterRepository
}

// NewMonsterUsecase creates a monsterUsecase backed by repo.
func NewMonsterUsecase(repo MonsterRepository) *monsterUsecase {
	return &monsterUsecase{repo: repo}
}

// List returns all monsters sorted by name.
func (u *monsterUsecase) List(ctx context.Context) ([]entity.Monster, error) {
	return u.repo.ListSortedByName(ctx)
}

// Search returns the monsters whose name contains term, case-insensitively.
// A nil or blank term behaves exactly like List.
func (u *monsterUsecase) Search(ctx context.Context, term *string) ([]entity.Monster, error) {
	all, err := u.repo.ListSortedByName(ctx)
	if err != nil {
		return nil, err
	}
	t, ok := catalog.SearchTerm(term)
	if !ok {
		return all, nil
	}
	return catalog.FilterByName(all, t, monsterName), nil
}

// Browse applies the optional level filter and then the name search.
func (u *monsterUsecase) Browse(ctx context.Context, q Query) ([]entity.Monster, error) {
	if q.Level == nil {
		return u.Search(ctx, q.Term)
	}
	ms, err := u.repo.ListByLevel(ctx, *q.Level)
	if err != nil {
		return nil, err
	}
	if t, ok := catalog.SearchTerm(q.Term); ok {
		return catalog.FilterByName(ms, t, monsterName), nil
	}
	return ms, nil
}

// GetBySlug returns the monster with the given slug or ErrMonsterNotFound.
func (u *monsterUsecase) GetBySlug(ctx context.Context, slug string) (*entity.Monster, error) {
	m, err := u.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, ErrMonsterNotFound) {
			return nil, ErrMonsterNotFound
		}
		return nil, err
	}
	return m, nil
}

// InsertIfAbsent stores m unless its slug is already taken.
func (u *monsterUsecase) InsertIfAbsent(ctx context.Context, m entity.Monster) (catalog.InsertResult, error) {
	status, err := u.repo.InsertIfAbsent(ctx, &m)
	if err != nil {
		return catalog.InsertResult{}, err
	}
	return catalog.InsertResult{Status: status, Slug: m.Slug}, nil
}

func monsterName(m entity.Monster) string { return m.Name }
