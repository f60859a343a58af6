package store

import (
	"context"

	"task-list/tasks"
)

// TaskStore defines the contract for task persistence.
//
// Every method is a single atomic step: a failed call never leaves a partial
// mutation behind. Failures are *errors.TaskError values of kind EmptyTitle,
// IdNotFound or Internal.
type TaskStore interface {
	Insert(ctx context.Context, title, details string) (tasks.Task, error)
	FindAll(ctx context.Context) ([]tasks.Task, error)
	FindByPattern(ctx context.Context, pattern string) ([]tasks.Task, error)
	FindByID(ctx context.Context, id uint64) (tasks.Task, error)
	Update(ctx context.Context, id uint64, newTitle, details string) (tasks.Task, error)
	Delete(ctx context.Context, id uint64) (tasks.Task, error)
	Len(ctx context.Context) (int, error)
}
