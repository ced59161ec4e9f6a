package usecase_film

import (
	"context"
	"testing"
	"time"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"

	infra_memory_film "github.com/lpr1983/filmorate/internal/infra/memory/film"
	infra_memory_reference "github.com/lpr1983/filmorate/internal/infra/memory/reference"
	infra_memory_user "github.com/lpr1983/filmorate/internal/infra/memory/user"
	"github.com/lpr1983/filmorate/internal/model"
	usecase_reference "github.com/lpr1983/filmorate/internal/usecase/reference"
)

type FilmUsecaseSuite struct {
	suite.Suite
}

type resources struct {
	usecase *Usecase
	films   *infra_memory_film.Store
	users   *infra_memory_user.Store
	ctx     context.Context
}

func initResources(_ provider.T) *resources {
	films := infra_memory_film.New()
	users := infra_memory_user.New()
	reference := usecase_reference.New(infra_memory_reference.New())

	return &resources{
		usecase: New(films, users, reference),
		films:   films,
		users:   users,
		ctx:     context.Background(),
	}
}

type FilmBuilder struct {
	film model.Film
}

func NewFilmBuilder() *FilmBuilder {
	release := time.Date(1999, time.March, 31, 0, 0, 0, 0, time.UTC)
	return &FilmBuilder{
		film: model.Film{
			Name:        "The Matrix",
			Description: "A hacker discovers reality is simulated",
			ReleaseDate: &release,
			Duration:    136,
		},
	}
}

func (b *FilmBuilder) WithReleaseDate(date time.Time) *FilmBuilder {
	b.film.ReleaseDate = &date
	return b
}

func (b *FilmBuilder) WithMpaID(id int) *FilmBuilder {
	b.film.Mpa = &model.MpaRating{ID: id}
	return b
}

func (b *FilmBuilder) WithGenreIDs(ids ...int) *FilmBuilder {
	genres := make([]model.Genre, len(ids))
	for i, id := range ids {
		genres[i] = model.Genre{ID: id}
	}
	b.film.Genres = genres
	return b
}

func (b *FilmBuilder) Build() model.Film {
	return b.film
}

func (r *resources) mustCreateUser(t provider.T, login string) model.User {
	user, err := r.users.Create(r.ctx, model.User{
		Email:    login + "@example.com",
		Login:    login,
		Name:     login,
		Birthday: time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC),
	})
	assert.NoError(t, err)
	return user
}

func (suite *FilmUsecaseSuite) TestCreateReleaseDateFloor(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		releaseDate   time.Time
		expectedError error
	}{
		{
			name:          "Should reject release date before the first film screening",
			releaseDate:   time.Date(1895, time.December, 27, 0, 0, 0, 0, time.UTC),
			expectedError: model.ErrValidation,
		},
		{
			name:        "Should accept release date equal to the floor",
			releaseDate: model.EarliestReleaseDate,
		},
		{
			name:        "Should accept release date after the floor",
			releaseDate: time.Date(1999, time.March, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)

			created, err := r.usecase.Create(r.ctx, NewFilmBuilder().WithReleaseDate(tc.releaseDate).Build())

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.NotZero(t, created.ID)
		})
	}
}

func (suite *FilmUsecaseSuite) TestCreateWithoutReleaseDate(t provider.T) {
	t.Parallel()
	r := initResources(t)

	film := NewFilmBuilder().Build()
	film.ReleaseDate = nil

	created, err := r.usecase.Create(r.ctx, film)
	assert.NoError(t, err)
	assert.Nil(t, created.ReleaseDate)
}

func (suite *FilmUsecaseSuite) TestCreateResolvesReferences(t provider.T) {
	t.Parallel()
	r := initResources(t)

	film := NewFilmBuilder().WithMpaID(4).WithGenreIDs(6, 1, 6).Build()

	created, err := r.usecase.Create(r.ctx, film)
	assert.NoError(t, err)
	assert.Equal(t, &model.MpaRating{ID: 4, Name: "R", Age: 17}, created.Mpa)
	assert.Equal(t, []model.Genre{{ID: 1, Name: "Comedy"}, {ID: 6, Name: "Action"}}, created.Genres)
}

func (suite *FilmUsecaseSuite) TestCreateUnknownReferences(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name string
		film model.Film
	}{
		{
			name: "Should reject unknown mpa rating",
			film: NewFilmBuilder().WithMpaID(42).Build(),
		},
		{
			name: "Should reject unknown genre",
			film: NewFilmBuilder().WithGenreIDs(1, 42).Build(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)

			_, err := r.usecase.Create(r.ctx, tc.film)
			assert.ErrorIs(t, err, model.ErrNotFound)
		})
	}
}

func (suite *FilmUsecaseSuite) TestUpdateUnknownFilm(t provider.T) {
	t.Parallel()
	r := initResources(t)

	film := NewFilmBuilder().Build()
	film.ID = 99

	_, err := r.usecase.Update(r.ctx, film)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func (suite *FilmUsecaseSuite) TestAddLike(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		prepare       func(r *resources) (filmID, userID int)
		expectedError error
	}{
		{
			name: "Should add like for existing film and user",
			prepare: func(r *resources) (int, int) {
				film, _ := r.usecase.Create(r.ctx, NewFilmBuilder().Build())
				user := r.mustCreateUser(t, "alice")
				return film.ID, user.ID
			},
		},
		{
			name: "Should return not found for unknown film",
			prepare: func(r *resources) (int, int) {
				user := r.mustCreateUser(t, "alice")
				return 99, user.ID
			},
			expectedError: model.ErrNotFound,
		},
		{
			name: "Should return not found for unknown user",
			prepare: func(r *resources) (int, int) {
				film, _ := r.usecase.Create(r.ctx, NewFilmBuilder().Build())
				return film.ID, 99
			},
			expectedError: model.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			filmID, userID := tc.prepare(r)

			err := r.usecase.AddLike(r.ctx, filmID, userID)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}
			assert.NoError(t, err)

			count, err := r.films.LikeCount(r.ctx, filmID)
			assert.NoError(t, err)
			assert.Equal(t, 1, count)
		})
	}
}

func (suite *FilmUsecaseSuite) TestRemoveLikeChecksPair(t provider.T) {
	t.Parallel()
	r := initResources(t)

	film, err := r.usecase.Create(r.ctx, NewFilmBuilder().Build())
	assert.NoError(t, err)

	err = r.usecase.RemoveLike(r.ctx, film.ID, 99)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func (suite *FilmUsecaseSuite) TestPopular(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		count         int
		expectedError error
	}{
		{
			name:          "Should reject zero count",
			count:         0,
			expectedError: model.ErrValidation,
		},
		{
			name:          "Should reject negative count",
			count:         -3,
			expectedError: model.ErrValidation,
		},
		{
			name:  "Should return ranked films",
			count: 10,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)

			first, err := r.usecase.Create(r.ctx, NewFilmBuilder().Build())
			assert.NoError(t, err)
			second, err := r.usecase.Create(r.ctx, NewFilmBuilder().Build())
			assert.NoError(t, err)

			user := r.mustCreateUser(t, "alice")
			assert.NoError(t, r.usecase.AddLike(r.ctx, second.ID, user.ID))

			films, err := r.usecase.Popular(r.ctx, tc.count)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, films, 2)
			assert.Equal(t, second.ID, films[0].ID)
			assert.Equal(t, first.ID, films[1].ID)
		})
	}
}

func (suite *FilmUsecaseSuite) TestDeleteIsIdempotent(t provider.T) {
	t.Parallel()
	r := initResources(t)

	film, err := r.usecase.Create(r.ctx, NewFilmBuilder().Build())
	assert.NoError(t, err)

	assert.NoError(t, r.usecase.Delete(r.ctx, film.ID))
	assert.NoError(t, r.usecase.Delete(r.ctx, film.ID))

	_, err = r.usecase.ByID(r.ctx, film.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestFilmUsecaseSuite(t *testing.T) {
	suite.RunSuite(t, new(FilmUsecaseSuite))
}
