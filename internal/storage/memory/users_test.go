package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/models"
	"github.com/zkerkeb-class/pokedex-api-Antany17/internal/storage"
)

func seeded() *UserStore {
	return NewUserStore(
		models.User{ID: 1, Username: "admin", PasswordHash: "x", Role: models.RoleAdmin},
		models.User{ID: 2, Username: "admin2", PasswordHash: "x", Role: models.RoleAdmin},
	)
}

func TestUserStore_CreateAssignsNextID(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	u, err := s.CreateUser(ctx, models.User{Username: "ash", Role: models.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.ID)
	assert.Equal(t, []int64{}, u.Favorites)

	_, err = s.CreateUser(ctx, models.User{Username: "ash"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	// usernames are case-sensitive
	_, err = s.CreateUser(ctx, models.User{Username: "Ash"})
	assert.NoError(t, err)
}

func TestUserStore_Find(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	u, err := s.FindByUsername(ctx, "admin2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), u.ID)

	_, err = s.FindByUsername(ctx, "ADMIN")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = s.FindByID(ctx, 42)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUserStore_FavoritesHaveSetSemantics(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	favs, err := s.AddFavorite(ctx, 1, 25)
	require.NoError(t, err)
	assert.Equal(t, []int64{25}, favs)

	favs, err = s.AddFavorite(ctx, 1, 25)
	require.NoError(t, err)
	assert.Equal(t, []int64{25}, favs)

	favs, err = s.AddFavorite(ctx, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, []int64{25, 4}, favs)

	favs, err = s.RemoveFavorite(ctx, 1, 99)
	require.NoError(t, err)
	assert.Equal(t, []int64{25, 4}, favs)

	favs, err = s.RemoveFavorite(ctx, 1, 25)
	require.NoError(t, err)
	assert.Equal(t, []int64{4}, favs)

	_, err = s.AddFavorite(ctx, 77, 1)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.RemoveFavorite(ctx, 77, 1)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUserStore_ReturnedSlicesAreCopies(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	favs, err := s.AddFavorite(ctx, 1, 1)
	require.NoError(t, err)
	favs[0] = 999

	u, err := s.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, u.Favorites)
}

func TestUserStore_ConcurrentRegistrations(t *testing.T) {
	s := seeded()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.CreateUser(ctx, models.User{Username: fmt.Sprintf("trainer-%d", i)})
		}(i)
	}
	wg.Wait()

	seen := map[int64]bool{}
	for i := 0; i < 50; i++ {
		u, err := s.FindByUsername(ctx, fmt.Sprintf("trainer-%d", i))
		require.NoError(t, err)
		assert.False(t, seen[u.ID], "duplicate id %d", u.ID)
		seen[u.ID] = true
	}
}
