package usecase_film

import (
	"context"
	"fmt"
	"sort"

	"github.com/lpr1983/filmorate/internal/model"
)

type Repository interface {
	All(ctx context.Context) ([]model.Film, error)
	ByID(ctx context.Context, id int) (model.Film, error)
	Exists(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, film model.Film) (model.Film, error)
	Update(ctx context.Context, film model.Film) (model.Film, error)
	Delete(ctx context.Context, id int) error

	AddLike(ctx context.Context, filmID, userID int) error
	RemoveLike(ctx context.Context, filmID, userID int) error
	LikeCount(ctx context.Context, filmID int) (int, error)
	Popular(ctx context.Context, count int) ([]model.Film, error)
}

type UserRepository interface {
	Exists(ctx context.Context, id int) (bool, error)
}

// ReferenceResolver maps genre/mpa id references coming from the
// caller to full reference rows. Satisfied by the reference usecase.
type ReferenceResolver interface {
	ResolveGenres(ctx context.Context, ids []int) ([]model.Genre, error)
	ResolveMpa(ctx context.Context, id int) (model.MpaRating, error)
}

type Usecase struct {
	repository     Repository
	userRepository UserRepository
	reference      ReferenceResolver
}

func New(
	repository Repository,
	userRepository UserRepository,
	reference ReferenceResolver,
) *Usecase {
	return &Usecase{
		repository:     repository,
		userRepository: userRepository,
		reference:      reference,
	}
}

func (u *Usecase) All(ctx context.Context) ([]model.Film, error) {
	films, err := u.repository.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load films: %w", err)
	}
	return films, nil
}

func (u *Usecase) ByID(ctx context.Context, id int) (model.Film, error) {
	film, err := u.repository.ByID(ctx, id)
	if err != nil {
		return model.Film{}, fmt.Errorf("failed to load film %d: %w", id, err)
	}
	return film, nil
}

func (u *Usecase) Create(ctx context.Context, film model.Film) (model.Film, error) {
	if err := u.prepare(ctx, &film); err != nil {
		return model.Film{}, err
	}

	created, err := u.repository.Create(ctx, film)
	if err != nil {
		return model.Film{}, fmt.Errorf("failed to create film: %w", err)
	}
	return created, nil
}

func (u *Usecase) Update(ctx context.Context, film model.Film) (model.Film, error) {
	if err := u.prepare(ctx, &film); err != nil {
		return model.Film{}, err
	}

	updated, err := u.repository.Update(ctx, film)
	if err != nil {
		return model.Film{}, fmt.Errorf("failed to update film %d: %w", film.ID, err)
	}
	return updated, nil
}

func (u *Usecase) Delete(ctx context.Context, id int) error {
	if err := u.repository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete film %d: %w", id, err)
	}
	return nil
}

func (u *Usecase) AddLike(ctx context.Context, filmID, userID int) error {
	if err := u.checkPair(ctx, filmID, userID); err != nil {
		return err
	}
	if err := u.repository.AddLike(ctx, filmID, userID); err != nil {
		return fmt.Errorf("failed to add like: %w", err)
	}
	return nil
}

func (u *Usecase) RemoveLike(ctx context.Context, filmID, userID int) error {
	if err := u.checkPair(ctx, filmID, userID); err != nil {
		return err
	}
	if err := u.repository.RemoveLike(ctx, filmID, userID); err != nil {
		return fmt.Errorf("failed to remove like: %w", err)
	}
	return nil
}

// Popular returns at most count films ordered by like count
// descending with ascending ids breaking ties. Films nobody liked
// rank with a count of zero rather than disappearing.
func (u *Usecase) Popular(ctx context.Context, count int) ([]model.Film, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d: %w", count, model.ErrValidation)
	}

	films, err := u.repository.Popular(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("failed to load popular films: %w", err)
	}
	return films, nil
}

// prepare enforces the invariants the store cannot: the release-date
// floor and the validity of mpa/genre references. The referenced
// rows replace the bare ids so stored films always carry full
// reference data.
func (u *Usecase) prepare(ctx context.Context, film *model.Film) error {
	if film.ReleaseDate != nil && film.ReleaseDate.Before(model.EarliestReleaseDate) {
		return fmt.Errorf("release date must not be before %s: %w",
			model.EarliestReleaseDate.Format("2006-01-02"), model.ErrValidation)
	}

	if film.Mpa != nil {
		mpa, err := u.reference.ResolveMpa(ctx, film.Mpa.ID)
		if err != nil {
			return err
		}
		film.Mpa = &mpa
	}

	if len(film.Genres) > 0 {
		ids := make([]int, 0, len(film.Genres))
		seen := make(map[int]struct{}, len(film.Genres))
		for _, g := range film.Genres {
			if _, dup := seen[g.ID]; dup {
				continue
			}
			seen[g.ID] = struct{}{}
			ids = append(ids, g.ID)
		}

		genres, err := u.reference.ResolveGenres(ctx, ids)
		if err != nil {
			return err
		}
		sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
		film.Genres = genres
	}

	return nil
}

func (u *Usecase) checkPair(ctx context.Context, filmID, userID int) error {
	exists, err := u.repository.Exists(ctx, filmID)
	if err != nil {
		return fmt.Errorf("failed to check film %d: %w", filmID, err)
	}
	if !exists {
		return fmt.Errorf("film with id %d: %w", filmID, model.ErrNotFound)
	}

	exists, err = u.userRepository.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user %d: %w", userID, err)
	}
	if !exists {
		return fmt.Errorf("user with id %d: %w", userID, model.ErrNotFound)
	}
	return nil
}
