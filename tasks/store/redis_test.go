//go:build integration

package store

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"task-list/errors"
	"task-list/tasks"

	"github.com/stretchr/testify/require"
	"gotest.tools/v3/assert"
)

func TestRedisTaskStore_ConnectionErrors(t *testing.T) {
	_, err := NewRedisTaskStore("invalid://url", "test")
	assert.ErrorContains(t, err, "invalid Redis URL")

	_, err = NewRedisTaskStore("redis://localhost:1/1", "test")
	assert.ErrorContains(t, err, "failed to connect to Redis")
}

func TestRedisTaskStore_Scenario(t *testing.T) {
	s, cleanup := setupRedisTestcontainer(t)
	defer cleanup()
	ctx := context.Background()

	milk, err := s.Insert(ctx, "Buy milk", "2%")
	require.NoError(t, err)
	assert.DeepEqual(t, tasks.Task{ID: 0, Title: "Buy milk", Details: "2%"}, milk)

	dog, err := s.Insert(ctx, "Walk dog", "")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), dog.ID)

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.DeepEqual(t, []tasks.Task{milk, dog}, all)

	updated, err := s.Update(ctx, 0, "Buy oat milk", "2%")
	require.NoError(t, err)
	assert.DeepEqual(t, tasks.Task{ID: 0, Title: "Buy oat milk", Details: "2%"}, updated)

	deleted, err := s.Delete(ctx, 1)
	require.NoError(t, err)
	assert.DeepEqual(t, dog, deleted)

	all, err = s.FindAll(ctx)
	require.NoError(t, err)
	assert.DeepEqual(t, []tasks.Task{updated}, all)

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRedisTaskStore_Errors(t *testing.T) {
	s, cleanup := setupRedisTestcontainer(t)
	defer cleanup()
	ctx := context.Background()

	_, err := s.Insert(ctx, "   ", "")
	assert.Assert(t, errors.IsEmptyTitle(err))

	_, err = s.FindByID(ctx, 5)
	assert.Assert(t, errors.IsNotFound(err))

	_, err = s.Update(ctx, 5, "title", "")
	assert.Assert(t, errors.IsNotFound(err))

	_, err = s.Delete(ctx, 5)
	assert.Assert(t, errors.IsNotFound(err))

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRedisTaskStore_InvalidData(t *testing.T) {
	s, cleanup := setupRedisTestcontainer(t)
	defer cleanup()
	ctx := context.Background()

	err := s.client.HSet(ctx, s.tasksKey, "3", "invalid-json").Err()
	require.NoError(t, err)

	_, err = s.FindByID(ctx, 3)
	assert.Assert(t, errors.IsInternal(err))
}

func TestRedisTaskStore_ConcurrentInsert(t *testing.T) {
	s, cleanup := setupRedisTestcontainer(t)
	defer cleanup()
	ctx := context.Background()
	const n = 100

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.Insert(ctx, fmt.Sprintf("task %d", i), "")
			assert.NilError(t, err)
		}(i)
	}
	wg.Wait()

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, n, len(all))
	for i, task := range all {
		assert.Equal(t, uint64(i), task.ID)
	}
}

func TestRedisTaskStore_FindByPattern(t *testing.T) {
	s, cleanup := setupRedisTestcontainer(t)
	defer cleanup()
	ctx := context.Background()

	for _, title := range []string{"Buy milk", "Walk dog", "Milk the cow"} {
		_, err := s.Insert(ctx, title, "")
		require.NoError(t, err)
	}

	found, err := s.FindByPattern(ctx, "milk")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, uint64(0), found[0].ID)
	assert.Equal(t, uint64(2), found[1].ID)
}
