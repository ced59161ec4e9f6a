package infra_postgres_film

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/lpr1983/filmorate/internal/model"
)

const baseSelectQuery = `
	SELECT f.id, f.name, f.description, f.release_date, f.duration,
	       f.mpa_rating_id,
	       m.name AS mpa_name,
	       m.age  AS mpa_age
	FROM films f
	LEFT JOIN mpa_ratings m ON m.id = f.mpa_rating_id
`

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) All(ctx context.Context) ([]model.Film, error) {
	query := baseSelectQuery + ` ORDER BY f.id`

	var filmsDB []FilmDB
	if err := r.db.SelectContext(ctx, &filmsDB, query); err != nil {
		return nil, fmt.Errorf("failed to query films: %w", err)
	}

	films := toDomainList(filmsDB)
	if err := r.joinGenres(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

func (r *Repository) ByID(ctx context.Context, id int) (model.Film, error) {
	query := baseSelectQuery + ` WHERE f.id = $1`

	var filmDB FilmDB
	err := r.db.GetContext(ctx, &filmDB, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Film{}, fmt.Errorf("film with id %d: %w", id, model.ErrNotFound)
		}
		return model.Film{}, fmt.Errorf("failed to query film by id: %w", err)
	}

	films := []model.Film{filmDB.ToDomain()}
	if err := r.joinGenres(ctx, films); err != nil {
		return model.Film{}, err
	}
	return films[0], nil
}

func (r *Repository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM films WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check film existence: %w", err)
	}
	return exists, nil
}

func (r *Repository) Create(ctx context.Context, film model.Film) (model.Film, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Film{}, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	filmDB := FromDomain(film)
	query := `
		INSERT INTO films (name, description, release_date, duration, mpa_rating_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int
	err = tx.GetContext(ctx, &id, query,
		filmDB.Name, filmDB.Description, filmDB.ReleaseDate, filmDB.Duration, filmDB.MpaID)
	if err != nil {
		return model.Film{}, fmt.Errorf("failed to create film: %w: %w", model.ErrStorage, err)
	}
	film.ID = id

	if err := insertFilmGenres(ctx, tx, film); err != nil {
		return model.Film{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Film{}, fmt.Errorf("failed to commit film creation: %w", err)
	}
	return film, nil
}

func (r *Repository) Update(ctx context.Context, film model.Film) (model.Film, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return model.Film{}, fmt.Errorf("failed to begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	filmDB := FromDomain(film)
	query := `
		UPDATE films SET
			name          = $1,
			description   = $2,
			release_date  = $3,
			duration      = $4,
			mpa_rating_id = $5
		WHERE id = $6
	`

	result, err := tx.ExecContext(ctx, query,
		filmDB.Name, filmDB.Description, filmDB.ReleaseDate, filmDB.Duration, filmDB.MpaID, filmDB.ID)
	if err != nil {
		return model.Film{}, fmt.Errorf("failed to update film: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return model.Film{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.Film{}, fmt.Errorf("film with id %d: %w", film.ID, model.ErrNotFound)
	}

	// Full genre-set replace, atomic relative to readers: both steps
	// commit together.
	_, err = tx.ExecContext(ctx, `DELETE FROM film_genres WHERE film_id = $1`, film.ID)
	if err != nil {
		return model.Film{}, fmt.Errorf("failed to clear film genres: %w", err)
	}
	if err := insertFilmGenres(ctx, tx, film); err != nil {
		return model.Film{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Film{}, fmt.Errorf("failed to commit film update: %w", err)
	}
	return film, nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	// Likes and genre rows go with the film via FK cascade. Deleting
	// a missing id is a no-op.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM films WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete film: %w", err)
	}
	return nil
}

func (r *Repository) AddLike(ctx context.Context, filmID, userID int) error {
	query := `
		INSERT INTO likes (film_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (film_id, user_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, filmID, userID); err != nil {
		return fmt.Errorf("failed to add like: %w", err)
	}
	return nil
}

func (r *Repository) RemoveLike(ctx context.Context, filmID, userID int) error {
	query := `DELETE FROM likes WHERE film_id = $1 AND user_id = $2`
	if _, err := r.db.ExecContext(ctx, query, filmID, userID); err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	return nil
}

func (r *Repository) LikeCount(ctx context.Context, filmID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM likes WHERE film_id = $1`, filmID)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return count, nil
}

func (r *Repository) Popular(ctx context.Context, count int) ([]model.Film, error) {
	query := baseSelectQuery + `
	LEFT JOIN (
		SELECT l.film_id, COUNT(l.user_id) AS like_count
		FROM likes l
		GROUP BY l.film_id
	) q ON q.film_id = f.id
	ORDER BY COALESCE(q.like_count, 0) DESC, f.id
	LIMIT $1`

	var filmsDB []FilmDB
	if err := r.db.SelectContext(ctx, &filmsDB, query, count); err != nil {
		return nil, fmt.Errorf("failed to query popular films: %w", err)
	}

	films := toDomainList(filmsDB)
	if err := r.joinGenres(ctx, films); err != nil {
		return nil, err
	}
	return films, nil
}

func (r *Repository) RemoveLikesByUser(ctx context.Context, userID int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM likes WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to remove likes of user: %w", err)
	}
	return nil
}

// joinGenres attaches genre sets to the given films in one batched
// lookup keyed by the whole id list, never one query per film.
func (r *Repository) joinGenres(ctx context.Context, films []model.Film) error {
	if len(films) == 0 {
		return nil
	}

	ids := make([]int, len(films))
	for i, f := range films {
		ids[i] = f.ID
	}

	query, args, err := sqlx.In(`
		SELECT fg.film_id AS film_id,
		       fg.genre_id AS id,
		       g.name AS name
		FROM film_genres fg
		JOIN genres g ON g.id = fg.genre_id
		WHERE fg.film_id IN (?)
		ORDER BY fg.film_id, g.id
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to build genres query: %w", err)
	}

	query = r.db.Rebind(query)
	var rows []genreOfFilmDB
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return fmt.Errorf("failed to query genres of films: %w", err)
	}

	genresByFilm := make(map[int][]model.Genre, len(films))
	for _, row := range rows {
		genresByFilm[row.FilmID] = append(genresByFilm[row.FilmID], model.Genre{
			ID:   row.ID,
			Name: row.Name,
		})
	}
	for i := range films {
		films[i].Genres = genresByFilm[films[i].ID]
	}
	return nil
}

func insertFilmGenres(ctx context.Context, tx *sqlx.Tx, film model.Film) error {
	query := `
		INSERT INTO film_genres (film_id, genre_id)
		VALUES ($1, $2)
		ON CONFLICT (film_id, genre_id) DO NOTHING
	`
	for _, genre := range film.Genres {
		if _, err := tx.ExecContext(ctx, query, film.ID, genre.ID); err != nil {
			return fmt.Errorf("failed to insert film genre: %w", err)
		}
	}
	return nil
}

func toDomainList(filmsDB []FilmDB) []model.Film {
	films := make([]model.Film, len(filmsDB))
	for i, f := range filmsDB {
		films[i] = f.ToDomain()
	}
	return films
}
