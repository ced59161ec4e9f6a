package usecase_user

import (
	"context"
	"fmt"

	"github.com/lpr1983/filmorate/internal/model"
)

type Repository interface {
	All(ctx context.Context) ([]model.User, error)
	ByID(ctx context.Context, id int) (model.User, error)
	Exists(ctx context.Context, id int) (bool, error)
	Create(ctx context.Context, user model.User) (model.User, error)
	Update(ctx context.Context, user model.User) (model.User, error)
	Delete(ctx context.Context, id int) error

	AddFriend(ctx context.Context, userID, friendID int) error
	RemoveFriend(ctx context.Context, userID, friendID int) error
	Friends(ctx context.Context, userID int) ([]model.User, error)
	CommonFriends(ctx context.Context, userID, otherID int) ([]model.User, error)
}

// LikeEraser drops every like a user ever placed. Satisfied by the
// film store so user deletion cascades identically on both backends.
type LikeEraser interface {
	RemoveLikesByUser(ctx context.Context, userID int) error
}

type Usecase struct {
	repository Repository
	likeEraser LikeEraser
}

func New(repository Repository, likeEraser LikeEraser) *Usecase {
	return &Usecase{
		repository: repository,
		likeEraser: likeEraser,
	}
}

func (u *Usecase) All(ctx context.Context) ([]model.User, error) {
	users, err := u.repository.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}

func (u *Usecase) ByID(ctx context.Context, id int) (model.User, error) {
	user, err := u.repository.ByID(ctx, id)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	return user, nil
}

func (u *Usecase) Create(ctx context.Context, user model.User) (model.User, error) {
	processNameField(&user)

	created, err := u.repository.Create(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return created, nil
}

func (u *Usecase) Update(ctx context.Context, user model.User) (model.User, error) {
	processNameField(&user)

	updated, err := u.repository.Update(ctx, user)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user %d: %w", user.ID, err)
	}
	return updated, nil
}

// Delete is idempotent: a missing id is a no-op, not an error.
func (u *Usecase) Delete(ctx context.Context, id int) error {
	if err := u.repository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	if err := u.likeEraser.RemoveLikesByUser(ctx, id); err != nil {
		return fmt.Errorf("failed to drop likes of user %d: %w", id, err)
	}
	return nil
}

func (u *Usecase) AddFriend(ctx context.Context, userID, friendID int) error {
	if err := u.checkUsers(ctx, userID, friendID); err != nil {
		return err
	}
	if err := u.repository.AddFriend(ctx, userID, friendID); err != nil {
		return fmt.Errorf("failed to add friend: %w", err)
	}
	return nil
}

func (u *Usecase) RemoveFriend(ctx context.Context, userID, friendID int) error {
	if err := u.checkUsers(ctx, userID, friendID); err != nil {
		return err
	}
	if err := u.repository.RemoveFriend(ctx, userID, friendID); err != nil {
		return fmt.Errorf("failed to remove friend: %w", err)
	}
	return nil
}

func (u *Usecase) Friends(ctx context.Context, userID int) ([]model.User, error) {
	if err := u.checkUserExists(ctx, userID); err != nil {
		return nil, err
	}

	friends, err := u.repository.Friends(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load friends of user %d: %w", userID, err)
	}
	return friends, nil
}

func (u *Usecase) CommonFriends(ctx context.Context, userID, otherID int) ([]model.User, error) {
	if err := u.checkUsers(ctx, userID, otherID); err != nil {
		return nil, err
	}

	common, err := u.repository.CommonFriends(ctx, userID, otherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load common friends of %d and %d: %w", userID, otherID, err)
	}
	return common, nil
}

func (u *Usecase) checkUsers(ctx context.Context, userID, friendID int) error {
	if userID == friendID {
		return fmt.Errorf("user %d cannot befriend themselves: %w", userID, model.ErrValidation)
	}
	if err := u.checkUserExists(ctx, userID); err != nil {
		return err
	}
	return u.checkUserExists(ctx, friendID)
}

func (u *Usecase) checkUserExists(ctx context.Context, userID int) error {
	exists, err := u.repository.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to check user %d: %w", userID, err)
	}
	if !exists {
		return fmt.Errorf("user with id %d: %w", userID, model.ErrNotFound)
	}
	return nil
}

// A blank name falls back to the login. Applied once, on the way in.
func processNameField(user *model.User) {
	if user.Name == "" {
		user.Name = user.Login
	}
}
