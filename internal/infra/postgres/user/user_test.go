package infra_postgres_user

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"

	"github.com/lpr1983/filmorate/internal/model"
)

type UserInfraUnitSuite struct {
	suite.Suite
}

type resources struct {
	db         *sqlx.DB
	mock       sqlmock.Sqlmock
	repository *Repository
	ctx        context.Context
}

func initResources(t provider.T) *resources {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return &resources{
		db:         sqlxDB,
		mock:       mock,
		repository: New(sqlxDB),
		ctx:        context.Background(),
	}
}

func userColumns() []string {
	return []string{"id", "email", "login", "name", "birthday"}
}

func validUser() model.User {
	return model.User{
		Email:    "alice@example.com",
		Login:    "alice",
		Name:     "Alice",
		Birthday: time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *UserInfraUnitSuite) TestByID(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *resources)
		expectedError error
	}{
		{
			name: "Should load user",
			setupMocks: func(r *resources) {
				rows := sqlmock.NewRows(userColumns()).
					AddRow(1, "alice@example.com", "alice", "Alice",
						time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC))
				r.mock.ExpectQuery("SELECT").WithArgs(1).WillReturnRows(rows)
			},
		},
		{
			name: "Should map missing row to not found",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery("SELECT").WithArgs(1).WillReturnError(sql.ErrNoRows)
			},
			expectedError: model.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			user, err := r.repository.ByID(r.ctx, 1)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, user.ID)
				assert.Equal(t, "alice", user.Login)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (suite *UserInfraUnitSuite) TestCreate(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *resources)
		expectedError error
	}{
		{
			name: "Should insert user and return new id",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery("INSERT INTO users").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
			},
		},
		{
			name: "Should wrap insert failure as storage error",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery("INSERT INTO users").
					WillReturnError(errors.New("connection reset"))
			},
			expectedError: model.ErrStorage,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			created, err := r.repository.Create(r.ctx, validUser())

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 1, created.ID)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (suite *UserInfraUnitSuite) TestUpdate(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		setupMocks    func(r *resources)
		expectedError error
	}{
		{
			name: "Should update user row",
			setupMocks: func(r *resources) {
				r.mock.ExpectExec("UPDATE users").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "Should map zero affected rows to not found",
			setupMocks: func(r *resources) {
				r.mock.ExpectExec("UPDATE users").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: model.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			user := validUser()
			user.ID = 1

			_, err := r.repository.Update(r.ctx, user)

			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (suite *UserInfraUnitSuite) TestAddFriend(t provider.T) {
	t.Parallel()
	r := initResources(t)

	r.mock.ExpectExec("INSERT INTO friends").
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(1, 1))

	assert.NoError(t, r.repository.AddFriend(r.ctx, 1, 2))
	assert.NoError(t, r.mock.ExpectationsWereMet())
}

func (suite *UserInfraUnitSuite) TestRemoveFriend(t provider.T) {
	t.Parallel()
	r := initResources(t)

	r.mock.ExpectExec("DELETE FROM friends").
		WithArgs(1, 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, r.repository.RemoveFriend(r.ctx, 1, 2))
	assert.NoError(t, r.mock.ExpectationsWereMet())
}

func (suite *UserInfraUnitSuite) TestFriends(t provider.T) {
	t.Parallel()
	r := initResources(t)

	rows := sqlmock.NewRows(userColumns()).
		AddRow(2, "bob@example.com", "bob", "Bob",
			time.Date(1991, time.July, 1, 0, 0, 0, 0, time.UTC))
	r.mock.ExpectQuery("SELECT").WithArgs(1).WillReturnRows(rows)

	friends, err := r.repository.Friends(r.ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, friends, 1)
	assert.Equal(t, "bob", friends[0].Login)
	assert.NoError(t, r.mock.ExpectationsWereMet())
}

func (suite *UserInfraUnitSuite) TestCommonFriends(t provider.T) {
	t.Parallel()
	r := initResources(t)

	rows := sqlmock.NewRows(userColumns()).
		AddRow(3, "carol@example.com", "carol", "Carol",
			time.Date(1992, time.August, 2, 0, 0, 0, 0, time.UTC))
	r.mock.ExpectQuery("SELECT").WithArgs(1, 2).WillReturnRows(rows)

	common, err := r.repository.CommonFriends(r.ctx, 1, 2)
	assert.NoError(t, err)
	assert.Len(t, common, 1)
	assert.Equal(t, 3, common[0].ID)
	assert.NoError(t, r.mock.ExpectationsWereMet())
}

func TestUserInfraUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UserInfraUnitSuite))
}
