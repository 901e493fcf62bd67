package relgen_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/relgen"
)

func TestFetchAllOrder(t *testing.T) {
	ids := []int{0, 1, 2, 3, 4, 5, 6, 7}
	// Each fetch waits for the one after it, so fetches complete in
	// reverse order.
	done := make([]chan struct{}, len(ids))
	for i := range done {
		done[i] = make(chan struct{})
	}
	var mu sync.Mutex
	var completed []int
	fetch := func(_ context.Context, id int) (string, bool, error) {
		if id+1 < len(ids) {
			<-done[id+1]
		}
		mu.Lock()
		completed = append(completed, id)
		mu.Unlock()
		close(done[id])
		return string(rune('a' + id)), true, nil
	}

	got, err := relgen.FetchAll(context.Background(), ids, fetch)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h"}, got)
	assert.Equal(t, []int{7, 6, 5, 4, 3, 2, 1, 0}, completed)
}

func TestFetchAllDropsAbsent(t *testing.T) {
	got, err := relgen.FetchAll(context.Background(), []int{1, 2, 3, 4}, func(_ context.Context, id int) (int, bool, error) {
		return id * 10, id%2 == 0, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{20, 40}, got)
}

func TestFetchAllEmpty(t *testing.T) {
	got, err := relgen.FetchAll(context.Background(), nil, func(context.Context, int) (int, bool, error) {
		t.Fatal("fetch called")
		return 0, false, nil
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFetchAllError(t *testing.T) {
	boom := errors.New("boom")
	got, err := relgen.FetchAll(context.Background(), []int{1, 2, 3}, func(ctx context.Context, id int) (int, bool, error) {
		if id == 2 {
			return 0, false, boom
		}
		<-ctx.Done()
		return 0, false, ctx.Err()
	})
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, got)
}
