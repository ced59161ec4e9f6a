package infra_postgres_film

import (
	"database/sql"

	"github.com/lpr1983/filmorate/internal/model"
)

type FilmDB struct {
	ID          int            `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	ReleaseDate sql.NullTime   `db:"release_date"`
	Duration    int            `db:"duration"`
	MpaID       sql.NullInt64  `db:"mpa_rating_id"`
	MpaName     sql.NullString `db:"mpa_name"`
	MpaAge      sql.NullInt64  `db:"mpa_age"`
}

func (f *FilmDB) ToDomain() model.Film {
	film := model.Film{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description.String,
		Duration:    f.Duration,
	}
	if f.ReleaseDate.Valid {
		date := f.ReleaseDate.Time
		film.ReleaseDate = &date
	}
	if f.MpaID.Valid {
		film.Mpa = &model.MpaRating{
			ID:   int(f.MpaID.Int64),
			Name: f.MpaName.String,
			Age:  int(f.MpaAge.Int64),
		}
	}
	return film
}

func FromDomain(film model.Film) FilmDB {
	f := FilmDB{
		ID:       film.ID,
		Name:     film.Name,
		Duration: film.Duration,
	}
	if film.Description != "" {
		f.Description = sql.NullString{String: film.Description, Valid: true}
	}
	if film.ReleaseDate != nil {
		f.ReleaseDate = sql.NullTime{Time: *film.ReleaseDate, Valid: true}
	}
	if film.Mpa != nil {
		f.MpaID = sql.NullInt64{Int64: int64(film.Mpa.ID), Valid: true}
	}
	return f
}

type genreOfFilmDB struct {
	FilmID int    `db:"film_id"`
	ID     int    `db:"id"`
	Name   string `db:"name"`
}
