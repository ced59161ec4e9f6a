package infra_postgres_user

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

func (r *Repository) All(ctx context.Context) ([]model.User, error) {
	query := `SELECT id, email, login, name, birthday FROM users ORDER BY id`

	var usersDB []UserDB
	if err := r.db.SelectContext(ctx, &usersDB, query); err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	return toDomainList(usersDB), nil
}

func (r *Repository) ByID(ctx context.Context, id int) (model.User, error) {
	query := `SELECT id, email, login, name, birthday FROM users WHERE id = $1`

	var userDB UserDB
	err := r.db.GetContext(ctx, &userDB, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, fmt.Errorf("user with id %d: %w", id, model.ErrNotFound)
		}
		return model.User{}, fmt.Errorf("failed to query user by id: %w", err)
	}
	return userDB.ToDomain(), nil
}

func (r *Repository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, id)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

func (r *Repository) Create(ctx context.Context, user model.User) (model.User, error) {
	userDB := FromDomain(user)
	query := `
		INSERT INTO users (email, login, name, birthday)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int
	err := r.db.GetContext(ctx, &id, query, userDB.Email, userDB.Login, userDB.Name, userDB.Birthday)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w: %w", model.ErrStorage, err)
	}

	user.ID = id
	return user, nil
}

func (r *Repository) Update(ctx context.Context, user model.User) (model.User, error) {
	userDB := FromDomain(user)
	query := `
		UPDATE users SET
			email    = $1,
			login    = $2,
			name     = $3,
			birthday = $4
		WHERE id = $5
	`

	result, err := r.db.ExecContext(ctx, query,
		userDB.Email, userDB.Login, userDB.Name, userDB.Birthday, userDB.ID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return model.User{}, fmt.Errorf("user with id %d: %w", user.ID, model.ErrNotFound)
	}
	return user, nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	// Friendship edges in both directions and the user's likes go via
	// FK cascade. Deleting a missing id is a no-op.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

func (r *Repository) AddFriend(ctx context.Context, userID, friendID int) error {
	query := `
		INSERT INTO friends (user_id, friend_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, friend_id) DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, userID, friendID); err != nil {
		return fmt.Errorf("failed to add friend: %w", err)
	}
	return nil
}

func (r *Repository) RemoveFriend(ctx context.Context, userID, friendID int) error {
	query := `DELETE FROM friends WHERE user_id = $1 AND friend_id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, friendID); err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	return nil
}

func (r *Repository) Friends(ctx context.Context, userID int) ([]model.User, error) {
	query := `
		SELECT u.id, u.email, u.login, u.name, u.birthday
		FROM friends f
		JOIN users u ON u.id = f.friend_id
		WHERE f.user_id = $1
		ORDER BY u.id
	`

	var usersDB []UserDB
	if err := r.db.SelectContext(ctx, &usersDB, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query friends: %w", err)
	}
	return toDomainList(usersDB), nil
}

func (r *Repository) CommonFriends(ctx context.Context, userID, otherID int) ([]model.User, error) {
	query := `
		SELECT u.id, u.email, u.login, u.name, u.birthday
		FROM friends f1
		JOIN friends f2 ON f1.friend_id = f2.friend_id
		JOIN users u ON u.id = f1.friend_id
		WHERE f1.user_id = $1 AND f2.user_id = $2
		ORDER BY u.id
	`

	var usersDB []UserDB
	if err := r.db.SelectContext(ctx, &usersDB, query, userID, otherID); err != nil {
		return nil, fmt.Errorf("failed to query common friends: %w", err)
	}
	return toDomainList(usersDB), nil
}

func toDomainList(usersDB []UserDB) []model.User {
	users := make([]model.User, len(usersDB))
	for i, u := range usersDB {
		users[i] = u.ToDomain()
	}
	return users
}
