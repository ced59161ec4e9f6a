package model

import "time"

type User struct {
	ID       int
	Email    string
	Login    string
	Name     string
	Birthday time.Time
}
