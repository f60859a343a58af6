package store

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"task-list/errors"
	"task-list/tasks"

	"github.com/redis/go-redis/v9"
)

var _ TaskStore = (*RedisTaskStore)(nil)

// updateScript rewrites a task only if its field already exists.
var updateScript = redis.NewScript(`
if redis.call('HEXISTS', KEYS[1], ARGV[1]) == 0 then
	return false
end
redis.call('HSET', KEYS[1], ARGV[1], ARGV[2])
return ARGV[2]
`)

// deleteScript removes a task and returns its last stored value.
var deleteScript = redis.NewScript(`
local value = redis.call('HGET', KEYS[1], ARGV[1])
if not value then
	return false
end
redis.call('HDEL', KEYS[1], ARGV[1])
return value
`)

// RedisTaskStore keeps tasks as JSON values in a Redis hash so several
// processes can share one task list. Ids come from INCR on a counter key,
// which keeps allocation atomic across clients.
type RedisTaskStore struct {
	client     *redis.Client
	tasksKey   string
	counterKey string
}

func NewRedisTaskStore(url, keyPrefix string) (*RedisTaskStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return newRedisTaskStore(client, keyPrefix), nil
}

func newRedisTaskStore(client *redis.Client, keyPrefix string) *RedisTaskStore {
	return &RedisTaskStore{
		client:     client,
		tasksKey:   keyPrefix + ":tasks",
		counterKey: keyPrefix + ":next_id",
	}
}

func field(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func redisFailure(op string, err error) *errors.TaskError {
	return errors.NewInternalError(fmt.Sprintf("redis %s: %v", op, err))
}

func decodeTask(raw string) (tasks.Task, error) {
	var t tasks.Task
	if err := json.Unmarshal([]byte(raw), &t); err != nil {
		return tasks.Task{}, errors.NewInternalError(fmt.Sprintf("failed to unmarshal task: %v", err))
	}
	return t, nil
}

func (s *RedisTaskStore) Insert(ctx context.Context, title, details string) (tasks.Task, error) {
	if err := tasks.ValidateTitle(title); err != nil {
		return tasks.Task{}, err
	}

	next, err := s.client.Incr(ctx, s.counterKey).Result()
	if err != nil {
		return tasks.Task{}, redisFailure("incr", err)
	}

	task := tasks.Task{
		ID:      uint64(next - 1),
		Title:   title,
		Details: details,
	}

	data, err := json.Marshal(task)
	if err != nil {
		return tasks.Task{}, errors.NewInternalError(fmt.Sprintf("failed to marshal task: %v", err))
	}

	created, err := s.client.HSetNX(ctx, s.tasksKey, field(task.ID), data).Result()
	if err != nil {
		return tasks.Task{}, redisFailure("hsetnx", err)
	}
	if !created {
		return tasks.Task{}, errors.NewInternalError(fmt.Sprintf("id %d already allocated", task.ID))
	}

	return task, nil
}

func (s *RedisTaskStore) FindAll(ctx context.Context) ([]tasks.Task, error) {
	return s.FindByPattern(ctx, "")
}

// FindByPattern loads the whole hash in one command and orders by id,
// which matches insertion order because ids are allocated by INCR.
func (s *RedisTaskStore) FindByPattern(ctx context.Context, pattern string) ([]tasks.Task, error) {
	values, err := s.client.HGetAll(ctx, s.tasksKey).Result()
	if err != nil {
		return nil, redisFailure("hgetall", err)
	}

	found := make([]tasks.Task, 0, len(values))
	for _, raw := range values {
		t, err := decodeTask(raw)
		if err != nil {
			return nil, err
		}
		if t.Matches(pattern) {
			found = append(found, t)
		}
	}

	slices.SortFunc(found, func(a, b tasks.Task) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		default:
			return 0
		}
	})

	return found, nil
}

func (s *RedisTaskStore) FindByID(ctx context.Context, id uint64) (tasks.Task, error) {
	raw, err := s.client.HGet(ctx, s.tasksKey, field(id)).Result()
	if stderrors.Is(err, redis.Nil) {
		return tasks.Task{}, errors.NewIDNotFoundError(id)
	}
	if err != nil {
		return tasks.Task{}, redisFailure("hget", err)
	}
	return decodeTask(raw)
}

func (s *RedisTaskStore) Update(ctx context.Context, id uint64, newTitle, details string) (tasks.Task, error) {
	if err := tasks.ValidateTitle(newTitle); err != nil {
		return tasks.Task{}, err
	}

	task := tasks.Task{ID: id, Title: newTitle, Details: details}
	data, err := json.Marshal(task)
	if err != nil {
		return tasks.Task{}, errors.NewInternalError(fmt.Sprintf("failed to marshal task: %v", err))
	}

	err = updateScript.Run(ctx, s.client, []string{s.tasksKey}, field(id), data).Err()
	if stderrors.Is(err, redis.Nil) {
		return tasks.Task{}, errors.NewIDNotFoundError(id)
	}
	if err != nil {
		return tasks.Task{}, redisFailure("update", err)
	}

	return task, nil
}

func (s *RedisTaskStore) Delete(ctx context.Context, id uint64) (tasks.Task, error) {
	raw, err := deleteScript.Run(ctx, s.client, []string{s.tasksKey}, field(id)).Text()
	if stderrors.Is(err, redis.Nil) {
		return tasks.Task{}, errors.NewIDNotFoundError(id)
	}
	if err != nil {
		return tasks.Task{}, redisFailure("delete", err)
	}
	return decodeTask(raw)
}

func (s *RedisTaskStore) Len(ctx context.Context) (int, error) {
	n, err := s.client.HLen(ctx, s.tasksKey).Result()
	if err != nil {
		return 0, redisFailure("hlen", err)
	}
	return int(n), nil
}

// Close cleanly shuts down the Redis connection
func (s *RedisTaskStore) Close() error {
	return s.client.Close()
}
