package usecase_reference

import (
	"context"
	"fmt"

	"github.com/lpr1983/filmorate/internal/model"
)

type Repository interface {
	Genres(ctx context.Context) ([]model.Genre, error)
	GenreByID(ctx context.Context, id int) (model.Genre, error)
	GenresByIDs(ctx context.Context, ids []int) ([]model.Genre, error)
	MpaRatings(ctx context.Context) ([]model.MpaRating, error)
	MpaByID(ctx context.Context, id int) (model.MpaRating, error)
}

type Usecase struct {
	repository Repository
}

func New(repository Repository) *Usecase {
	return &Usecase{repository: repository}
}

func (u *Usecase) Genres(ctx context.Context) ([]model.Genre, error) {
	genres, err := u.repository.Genres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load genres: %w", err)
	}
	return genres, nil
}

func (u *Usecase) GenreByID(ctx context.Context, id int) (model.Genre, error) {
	genre, err := u.repository.GenreByID(ctx, id)
	if err != nil {
		return model.Genre{}, fmt.Errorf("failed to load genre %d: %w", id, err)
	}
	return genre, nil
}

func (u *Usecase) MpaRatings(ctx context.Context) ([]model.MpaRating, error) {
	ratings, err := u.repository.MpaRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load mpa ratings: %w", err)
	}
	return ratings, nil
}

func (u *Usecase) MpaByID(ctx context.Context, id int) (model.MpaRating, error) {
	rating, err := u.repository.MpaByID(ctx, id)
	if err != nil {
		return model.MpaRating{}, fmt.Errorf("failed to load mpa rating %d: %w", id, err)
	}
	return rating, nil
}

// CheckGenresExist reports which of the given genre ids are unknown.
// One batched lookup regardless of how many ids are passed.
func (u *Usecase) CheckGenresExist(ctx context.Context, ids []int) ([]int, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	found, err := u.repository.GenresByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load genres by ids: %w", err)
	}

	known := make(map[int]struct{}, len(found))
	for _, g := range found {
		known[g.ID] = struct{}{}
	}

	var missing []int
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// ResolveGenres maps a duplicate-free view of the given genre ids to
// full reference rows, failing when any id is unknown.
func (u *Usecase) ResolveGenres(ctx context.Context, ids []int) ([]model.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	missing, err := u.CheckGenresExist(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("genres with ids %v: %w", missing, model.ErrNotFound)
	}

	genres, err := u.repository.GenresByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load genres by ids: %w", err)
	}
	return genres, nil
}

func (u *Usecase) ResolveMpa(ctx context.Context, id int) (model.MpaRating, error) {
	return u.MpaByID(ctx, id)
}
