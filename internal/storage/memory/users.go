package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/models"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/storage"
)

// Ensure UserStore satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*UserStore)(nil)

// UserStore keeps users for the lifetime of the process.
type UserStore struct {
	mu     sync.Mutex
	users  []models.User
	nextID int64
}

// NewUserStore returns a store pre-populated with seed users.
// Seed users keep their IDs; later users are numbered after the highest one.
func NewUserStore(seed ...models.User) *UserStore {
	s := &UserStore{nextID: 1}
	for _, u := range seed {
		s.users = append(s.users, clone(u))
		if u.ID >= s.nextID {
			s.nextID = u.ID + 1
		}
	}
	return s
}

// CreateUser stores user with a fresh ID. Usernames are unique and case-sensitive.
func (s *UserStore) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.indexByUsername(user.Username) >= 0 {
		return models.User{}, storage.ErrAlreadyExists
	}
	user.ID = s.nextID
	s.nextID++
	if user.Favorites == nil {
		user.Favorites = []int64{}
	}
	s.users = append(s.users, clone(user))
	return clone(user), nil
}

// FindByUsername fetches a user by exact username.
func (s *UserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByUsername(username)
	if i < 0 {
		return models.User{}, storage.ErrNotFound
	}
	return clone(s.users[i]), nil
}

// FindByID fetches a user by ID.
func (s *UserStore) FindByID(_ context.Context, id int64) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(id)
	if i < 0 {
		return models.User{}, storage.ErrNotFound
	}
	return clone(s.users[i]), nil
}

func (s *UserStore) AddFavorite(_ context.Context, userID, pokemonID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(userID)
	if i < 0 {
		return nil, storage.ErrNotFound
	}
	if !s.users[i].HasFavorite(pokemonID) {
		s.users[i].Favorites = append(s.users[i].Favorites, pokemonID)
	}
	return slices.Clone(s.users[i].Favorites), nil
}

func (s *UserStore) RemoveFavorite(_ context.Context, userID, pokemonID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexByID(userID)
	if i < 0 {
		return nil, storage.ErrNotFound
	}
	s.users[i].Favorites = slices.DeleteFunc(s.users[i].Favorites, func(id int64) bool {
		return id == pokemonID
	})
	return slices.Clone(s.users[i].Favorites), nil
}

func (s *UserStore) indexByUsername(username string) int {
	return slices.IndexFunc(s.users, func(u models.User) bool { return u.Username == username })
}

func (s *UserStore) indexByID(id int64) int {
	return slices.IndexFunc(s.users, func(u models.User) bool { return u.ID == id })
}

func clone(u models.User) models.User {
	u.Favorites = slices.Clone(u.Favorites)
	if u.Favorites == nil {
		u.Favorites = []int64{}
	}
	return u
}
