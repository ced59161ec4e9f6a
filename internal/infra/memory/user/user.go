package infra_memory_user

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/lpr1983/filmorate/internal/model"
)

// Store is the transient user backend. The friend index holds
// directional edges: friends[a] is the set of users a points to,
// nothing is ever mirrored.
type Store struct {
	mu      sync.RWMutex
	users   map[int]model.User
	friends map[int]map[int]struct{}
	nextID  int
}

func New() *Store {
	return &Store{
		users:   make(map[int]model.User),
		friends: make(map[int]map[int]struct{}),
	}
}

func (s *Store) All(_ context.Context) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, nil
}

func (s *Store) ByID(_ context.Context, id int) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return model.User{}, fmt.Errorf("user with id %d: %w", id, model.ErrNotFound)
	}
	return user, nil
}

func (s *Store) Exists(_ context.Context, id int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.users[id]
	return ok, nil
}

func (s *Store) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = user

	return user, nil
}

func (s *Store) Update(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return model.User{}, fmt.Errorf("user with id %d: %w", user.ID, model.ErrNotFound)
	}
	s.users[user.ID] = user

	return user, nil
}

func (s *Store) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, id)
	delete(s.friends, id)
	for _, friendsOfOther := range s.friends {
		delete(friendsOfOther, id)
	}

	return nil
}

func (s *Store) AddFriend(_ context.Context, userID, friendID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	friends, ok := s.friends[userID]
	if !ok {
		friends = make(map[int]struct{})
		s.friends[userID] = friends
	}
	friends[friendID] = struct{}{}

	return nil
}

func (s *Store) RemoveFriend(_ context.Context, userID, friendID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if friends, ok := s.friends[userID]; ok {
		delete(friends, friendID)
	}

	return nil
}

func (s *Store) Friends(_ context.Context, userID int) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.resolveSorted(s.friends[userID]), nil
}

func (s *Store) CommonFriends(_ context.Context, userID, otherID int) ([]model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	otherFriends := s.friends[otherID]
	common := make(map[int]struct{})
	for id := range s.friends[userID] {
		if _, ok := otherFriends[id]; ok {
			common[id] = struct{}{}
		}
	}

	return s.resolveSorted(common), nil
}

func (s *Store) resolveSorted(ids map[int]struct{}) []model.User {
	users := make([]model.User, 0, len(ids))
	for id := range ids {
		if user, ok := s.users[id]; ok {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users
}
