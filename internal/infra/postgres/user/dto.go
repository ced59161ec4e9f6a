package infra_postgres_user

import (
	"time"

	"github.com/lpr1983/filmorate/internal/model"
)

type UserDB struct {
	ID       int       `db:"id"`
	Email    string    `db:"email"`
	Login    string    `db:"login"`
	Name     string    `db:"name"`
	Birthday time.Time `db:"birthday"`
}

func (u *UserDB) ToDomain() model.User {
	return model.User{
		ID:       u.ID,
		Email:    u.Email,
		Login:    u.Login,
		Name:     u.Name,
		Birthday: u.Birthday,
	}
}

func FromDomain(user model.User) UserDB {
	return UserDB{
		ID:       user.ID,
		Email:    user.Email,
		Login:    user.Login,
		Name:     user.Name,
		Birthday: user.Birthday,
	}
}
