package usecase_reference

import (
	"context"
	"testing"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"

	infra_memory_reference "github.com/lpr1983/filmorate/internal/infra/memory/reference"
	"github.com/lpr1983/filmorate/internal/model"
)

type ReferenceUsecaseSuite struct {
	suite.Suite
}

type resources struct {
	usecase *Usecase
	ctx     context.Context
}

func initResources(_ provider.T) *resources {
	return &resources{
		usecase: New(infra_memory_reference.New()),
		ctx:     context.Background(),
	}
}

func (suite *ReferenceUsecaseSuite) TestGenres(t provider.T) {
	t.Parallel()
	r := initResources(t)

	genres, err := r.usecase.Genres(r.ctx)
	assert.NoError(t, err)
	assert.Len(t, genres, 6)
	assert.Equal(t, model.Genre{ID: 1, Name: "Comedy"}, genres[0])
}

func (suite *ReferenceUsecaseSuite) TestGenreByID(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		id            int
		expected      model.Genre
		expectedError error
	}{
		{
			name:     "Should return known genre",
			id:       6,
			expected: model.Genre{ID: 6, Name: "Action"},
		},
		{
			name:          "Should return not found for unknown id",
			id:            42,
			expectedError: model.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)

			genre, err := r.usecase.GenreByID(r.ctx, tc.id)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, genre)
		})
	}
}

func (suite *ReferenceUsecaseSuite) TestMpaByID(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		id            int
		expected      model.MpaRating
		expectedError error
	}{
		{
			name:     "Should return known rating",
			id:       3,
			expected: model.MpaRating{ID: 3, Name: "PG-13", Age: 13},
		},
		{
			name:          "Should return not found for unknown id",
			id:            42,
			expectedError: model.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)

			rating, err := r.usecase.MpaByID(r.ctx, tc.id)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, rating)
		})
	}
}

func (suite *ReferenceUsecaseSuite) TestCheckGenresExist(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name            string
		ids             []int
		expectedMissing []int
	}{
		{
			name: "Should report nothing for empty input",
		},
		{
			name: "Should report nothing when all ids known",
			ids:  []int{1, 2, 6},
		},
		{
			name:            "Should report unknown ids once",
			ids:             []int{1, 42, 42, 77},
			expectedMissing: []int{42, 77},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)

			missing, err := r.usecase.CheckGenresExist(r.ctx, tc.ids)
			assert.NoError(t, err)
			assert.Equal(t, tc.expectedMissing, missing)
		})
	}
}

func (suite *ReferenceUsecaseSuite) TestResolveGenres(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		ids           []int
		expected      []model.Genre
		expectedError error
	}{
		{
			name: "Should resolve nothing for empty input",
		},
		{
			name:     "Should resolve known ids to full rows",
			ids:      []int{2, 5},
			expected: []model.Genre{{ID: 2, Name: "Drama"}, {ID: 5, Name: "Documentary"}},
		},
		{
			name:          "Should fail when any id is unknown",
			ids:           []int{2, 42},
			expectedError: model.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)

			genres, err := r.usecase.ResolveGenres(r.ctx, tc.ids)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, genres)
		})
	}
}

func TestReferenceUsecaseSuite(t *testing.T) {
	suite.RunSuite(t, new(ReferenceUsecaseSuite))
}
