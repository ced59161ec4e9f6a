package infra_postgres_reference

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lpr1983/filmorate/internal/model"
)

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

type genreDB struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
}

type mpaDB struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
	Age  int    `db:"age"`
}

func (r *Repository) Genres(ctx context.Context) ([]model.Genre, error) {
	var genresDB []genreDB
	err := r.db.SelectContext(ctx, &genresDB, `SELECT id, name FROM genres ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query genres: %w", err)
	}

	genres := make([]model.Genre, len(genresDB))
	for i, g := range genresDB {
		genres[i] = model.Genre{ID: g.ID, Name: g.Name}
	}
	return genres, nil
}

func (r *Repository) GenreByID(ctx context.Context, id int) (model.Genre, error) {
	var g genreDB
	err := r.db.GetContext(ctx, &g, `SELECT id, name FROM genres WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Genre{}, fmt.Errorf("genre with id %d: %w", id, model.ErrNotFound)
		}
		return model.Genre{}, fmt.Errorf("failed to query genre by id: %w", err)
	}
	return model.Genre{ID: g.ID, Name: g.Name}, nil
}

func (r *Repository) GenresByIDs(ctx context.Context, ids []int) ([]model.Genre, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`SELECT id, name FROM genres WHERE id IN (?) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build genres query: %w", err)
	}

	query = r.db.Rebind(query)
	var genresDB []genreDB
	if err := r.db.SelectContext(ctx, &genresDB, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query genres by ids: %w", err)
	}

	genres := make([]model.Genre, len(genresDB))
	for i, g := range genresDB {
		genres[i] = model.Genre{ID: g.ID, Name: g.Name}
	}
	return genres, nil
}

func (r *Repository) MpaRatings(ctx context.Context) ([]model.MpaRating, error) {
	var ratingsDB []mpaDB
	err := r.db.SelectContext(ctx, &ratingsDB, `SELECT id, name, age FROM mpa_ratings ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query mpa ratings: %w", err)
	}

	ratings := make([]model.MpaRating, len(ratingsDB))
	for i, m := range ratingsDB {
		ratings[i] = model.MpaRating{ID: m.ID, Name: m.Name, Age: m.Age}
	}
	return ratings, nil
}

func (r *Repository) MpaByID(ctx context.Context, id int) (model.MpaRating, error) {
	var m mpaDB
	err := r.db.GetContext(ctx, &m, `SELECT id, name, age FROM mpa_ratings WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.MpaRating{}, fmt.Errorf("mpa rating with id %d: %w", id, model.ErrNotFound)
		}
		return model.MpaRating{}, fmt.Errorf("failed to query mpa rating by id: %w", err)
	}
	return model.MpaRating{ID: m.ID, Name: m.Name, Age: m.Age}, nil
}
