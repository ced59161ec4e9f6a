package infra_memory_film

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/lpr1983/filmorate/internal/model"
)

// Store is the transient film backend: films and the like index live
// in maps owned by the instance, ids come from a counter that only
// moves forward. All state is guarded by one RWMutex so id
// allocation, writes and genre-set swaps are atomic to readers.
type Store struct {
	mu     sync.RWMutex
	films  map[int]model.Film
	likes  map[int]map[int]struct{}
	nextID int
}

func New() *Store {
	return &Store{
		films: make(map[int]model.Film),
		likes: make(map[int]map[int]struct{}),
	}
}

func (s *Store) All(_ context.Context) ([]model.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	films := make([]model.Film, 0, len(s.films))
	for _, f := range s.films {
		films = append(films, cloneFilm(f))
	}
	sort.Slice(films, func(i, j int) bool { return films[i].ID < films[j].ID })

	return films, nil
}

func (s *Store) ByID(_ context.Context, id int) (model.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	film, ok := s.films[id]
	if !ok {
		return model.Film{}, fmt.Errorf("film with id %d: %w", id, model.ErrNotFound)
	}
	return cloneFilm(film), nil
}

func (s *Store) Exists(_ context.Context, id int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.films[id]
	return ok, nil
}

func (s *Store) Create(_ context.Context, film model.Film) (model.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	film.ID = s.nextID
	s.films[film.ID] = cloneFilm(film)

	return film, nil
}

func (s *Store) Update(_ context.Context, film model.Film) (model.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[film.ID]; !ok {
		return model.Film{}, fmt.Errorf("film with id %d: %w", film.ID, model.ErrNotFound)
	}
	s.films[film.ID] = cloneFilm(film)

	return film, nil
}

func (s *Store) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.films, id)
	delete(s.likes, id)

	return nil
}

func (s *Store) AddLike(_ context.Context, filmID, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	likes, ok := s.likes[filmID]
	if !ok {
		likes = make(map[int]struct{})
		s.likes[filmID] = likes
	}
	likes[userID] = struct{}{}

	return nil
}

func (s *Store) RemoveLike(_ context.Context, filmID, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if likes, ok := s.likes[filmID]; ok {
		delete(likes, userID)
	}

	return nil
}

func (s *Store) LikeCount(_ context.Context, filmID int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.likes[filmID]), nil
}

func (s *Store) Popular(_ context.Context, count int) ([]model.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	films := make([]model.Film, 0, len(s.films))
	for _, f := range s.films {
		films = append(films, cloneFilm(f))
	}
	sort.Slice(films, func(i, j int) bool {
		li, lj := len(s.likes[films[i].ID]), len(s.likes[films[j].ID])
		if li != lj {
			return li > lj
		}
		return films[i].ID < films[j].ID
	})

	if count < len(films) {
		films = films[:count]
	}
	return films, nil
}

func (s *Store) RemoveLikesByUser(_ context.Context, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, likes := range s.likes {
		delete(likes, userID)
	}

	return nil
}

// cloneFilm copies the film deeply enough that callers never alias
// map-held state through the genre slice or the mpa pointer.
func cloneFilm(f model.Film) model.Film {
	if f.Genres != nil {
		genres := make([]model.Genre, len(f.Genres))
		copy(genres, f.Genres)
		f.Genres = genres
	}
	if f.Mpa != nil {
		mpa := *f.Mpa
		f.Mpa = &mpa
	}
	if f.ReleaseDate != nil {
		date := *f.ReleaseDate
		f.ReleaseDate = &date
	}
	return f
}
