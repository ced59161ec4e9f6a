package model

import "time"

// EarliestReleaseDate is the first public film screening. Release
// dates before it are rejected.
var EarliestReleaseDate = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

const MaxDescriptionLen = 200

type Film struct {
	ID          int
	Name        string
	Description string
	ReleaseDate *time.Time
	Duration    int
	Mpa         *MpaRating
	Genres      []Genre
}
