package model

// Genre and MpaRating are reference data: seeded once, read-only at
// runtime.

type Genre struct {
	ID   int
	Name string
}

type MpaRating struct {
	ID   int
	Name string
	Age  int
}
