package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedProfile struct {
	UserID uint     `json:"user_id"`
	Status string   `json:"status"`
	Skills []string `json:"skills"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	InitRedis(mr.Addr())
	t.Cleanup(func() { client = nil })
	return mr
}

func TestAside_FetchesOnMissAndServesFromCache(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	fetchCalls := 0
	fetch := func(dest *cachedProfile) func() error {
		return func() error {
			fetchCalls++
			*dest = cachedProfile{UserID: 7, Status: "Developer", Skills: []string{"go", "rust"}}
			return nil
		}
	}

	var first cachedProfile
	err := Aside(ctx, ProfileKey(7), &first, ProfileTTL, fetch(&first))
	require.NoError(t, err)
	assert.Equal(t, 1, fetchCalls)
	assert.Equal(t, []string{"go", "rust"}, first.Skills)

	// Second read must come from the cache without another fetch.
	var second cachedProfile
	err = Aside(ctx, ProfileKey(7), &second, ProfileTTL, fetch(&second))
	require.NoError(t, err)
	assert.Equal(t, 1, fetchCalls)
	assert.Equal(t, first, second)

	// After the TTL elapses the fetch runs again.
	mr.FastForward(ProfileTTL + time.Second)
	var third cachedProfile
	err = Aside(ctx, ProfileKey(7), &third, ProfileTTL, fetch(&third))
	require.NoError(t, err)
	assert.Equal(t, 2, fetchCalls)
}

func TestAside_PropagatesFetchError(t *testing.T) {
	setupMiniredis(t)

	var dest cachedProfile
	wantErr := errors.New("db down")
	err := Aside(context.Background(), ProfileKey(1), &dest, ProfileTTL, func() error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
}

func TestAside_NilClientFallsThrough(t *testing.T) {
	client = nil

	fetchCalls := 0
	var dest cachedProfile
	err := Aside(context.Background(), ProfileKey(1), &dest, ProfileTTL, func() error {
		fetchCalls++
		dest.Status = "Student"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetchCalls)
	assert.Equal(t, "Student", dest.Status)
}

func TestInvalidate(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PostsListKey(), []uint{1, 2, 3}, PostsListTTL))
	assert.True(t, mr.Exists(PostsListKey()))

	InvalidatePostsList(ctx)
	assert.False(t, mr.Exists(PostsListKey()))
}
