package infra_memory_reference

import (
	"context"
	"fmt"

	"github.com/lpr1983/filmorate/internal/model"
)

// Store serves reference data for the transient backend. The seed
// mirrors migrations/init.sql so both backends answer the same
// lookups.
type Store struct {
	genres []model.Genre
	mpa    []model.MpaRating
}

func New() *Store {
	return &Store{
		genres: []model.Genre{
			{ID: 1, Name: "Comedy"},
			{ID: 2, Name: "Drama"},
			{ID: 3, Name: "Cartoon"},
			{ID: 4, Name: "Thriller"},
			{ID: 5, Name: "Documentary"},
			{ID: 6, Name: "Action"},
		},
		mpa: []model.MpaRating{
			{ID: 1, Name: "G", Age: 0},
			{ID: 2, Name: "PG", Age: 6},
			{ID: 3, Name: "PG-13", Age: 13},
			{ID: 4, Name: "R", Age: 17},
			{ID: 5, Name: "NC-17", Age: 18},
		},
	}
}

func (s *Store) Genres(_ context.Context) ([]model.Genre, error) {
	genres := make([]model.Genre, len(s.genres))
	copy(genres, s.genres)
	return genres, nil
}

func (s *Store) GenreByID(_ context.Context, id int) (model.Genre, error) {
	for _, g := range s.genres {
		if g.ID == id {
			return g, nil
		}
	}
	return model.Genre{}, fmt.Errorf("genre with id %d: %w", id, model.ErrNotFound)
}

func (s *Store) GenresByIDs(_ context.Context, ids []int) ([]model.Genre, error) {
	wanted := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	var genres []model.Genre
	for _, g := range s.genres {
		if _, ok := wanted[g.ID]; ok {
			genres = append(genres, g)
		}
	}
	return genres, nil
}

func (s *Store) MpaRatings(_ context.Context) ([]model.MpaRating, error) {
	mpa := make([]model.MpaRating, len(s.mpa))
	copy(mpa, s.mpa)
	return mpa, nil
}

func (s *Store) MpaByID(_ context.Context, id int) (model.MpaRating, error) {
	for _, m := range s.mpa {
		if m.ID == id {
			return m, nil
		}
	}
	return model.MpaRating{}, fmt.Errorf("mpa rating with id %d: %w", id, model.ErrNotFound)
}
