package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func withMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

func TestSetAndGetJSON(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	in := cachedThing{ID: 7, Name: "pitch"}
	require.NoError(t, SetJSON(ctx, "thing:7", in, time.Minute))

	var out cachedThing
	found, err := GetJSON(ctx, "thing:7", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestGetJSON_Miss(t *testing.T) {
	withMiniredis(t)

	var out cachedThing
	found, err := GetJSON(context.Background(), "missing", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestAside_PopulatesCacheOnMiss(t *testing.T) {
	withMiniredis(t)
	ctx := context.Background()

	fetchCalls := 0
	fetch := func(dest *cachedThing) func() error {
		return func() error {
			fetchCalls++
			*dest = cachedThing{ID: 1, Name: "from-db"}
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, "aside:1", &first, time.Minute, fetch(&first)))
	assert.Equal(t, "from-db", first.Name)
	assert.Equal(t, 1, fetchCalls)

	// Second read is served from the cache; fetch is not called again.
	var second cachedThing
	require.NoError(t, Aside(ctx, "aside:1", &second, time.Minute, fetch(&second)))
	assert.Equal(t, "from-db", second.Name)
	assert.Equal(t, 1, fetchCalls)
}

func TestAside_FetchErrorPropagates(t *testing.T) {
	withMiniredis(t)

	var out cachedThing
	err := Aside(context.Background(), "aside:err", &out, time.Minute, func() error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestHelpers_NoClientFallback(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	// Without Redis, reads miss and writes are silent no-ops.
	var out cachedThing
	found, err := GetJSON(ctx, "anything", &out)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, "anything", cachedThing{ID: 1}, time.Minute))

	calls := 0
	require.NoError(t, Aside(ctx, "anything", &out, time.Minute, func() error {
		calls++
		out = cachedThing{ID: 9, Name: "direct"}
		return nil
	}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "direct", out.Name)
}

func TestInvalidate(t *testing.T) {
	mr := withMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, PitchKey(3), cachedThing{ID: 3}, time.Minute))
	require.NoError(t, SetJSON(ctx, PitchListKey, []cachedThing{{ID: 3}}, time.Minute))

	InvalidatePitch(ctx, 3)
	assert.False(t, mr.Exists(PitchKey(3)))
	assert.True(t, mr.Exists(PitchListKey))

	InvalidatePitchLists(ctx)
	assert.False(t, mr.Exists(PitchListKey))
}
