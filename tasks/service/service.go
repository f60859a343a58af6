package service

import (
	"context"

	"task-list/errors"
	"task-list/logger"
	"task-list/tasks"
	"task-list/tasks/store"
)

// Service defines the task operations offered to the HTTP layer.
type Service interface {
	// Insert validates the request and stores a new task.
	Insert(ctx context.Context, req tasks.InsertTask) (tasks.Task, error)

	// FindAll lists every task in insertion order.
	FindAll(ctx context.Context) ([]tasks.Task, error)

	// FindByPattern lists tasks whose title or details contain pattern.
	FindByPattern(ctx context.Context, pattern string) ([]tasks.Task, error)

	FindByID(ctx context.Context, id uint64) (tasks.Task, error)

	// Update validates the request and rewrites title and details.
	Update(ctx context.Context, req tasks.UpdateTask) (tasks.Task, error)

	Delete(ctx context.Context, id uint64) (tasks.Task, error)

	// Count returns the number of stored tasks.
	Count(ctx context.Context) (int, error)
}

type service struct {
	store  store.TaskStore
	logger *logger.Logger
}

var _ Service = (*service)(nil)

func New(s store.TaskStore, lg *logger.Logger) Service {
	return &service{
		store:  s,
		logger: lg.With(map[string]any{"component": "service"}),
	}
}

// classify keeps TaskErrors as they are and turns anything else into Internal.
func classify(err error) error {
	if _, ok := errors.IsTaskError(err); ok {
		return err
	}
	return errors.NewInternalError(err.Error())
}

func (s *service) Insert(ctx context.Context, req tasks.InsertTask) (tasks.Task, error) {
	if err := req.Validate(); err != nil {
		s.logger.Warn("insert rejected", map[string]any{"reason": err.Error()})
		return tasks.Task{}, err
	}

	task, err := s.store.Insert(ctx, req.NonEmptyTitle, req.Details)
	if err != nil {
		s.logger.Error("insert failed", map[string]any{"error": err.Error()})
		return tasks.Task{}, classify(err)
	}

	s.logger.Task(task.ID, "task inserted", map[string]any{
		"title_len":   len(task.Title),
		"details_len": len(task.Details),
	})
	return task, nil
}

func (s *service) FindAll(ctx context.Context) ([]tasks.Task, error) {
	all, err := s.store.FindAll(ctx)
	if err != nil {
		s.logger.Error("find all failed", map[string]any{"error": err.Error()})
		return nil, classify(err)
	}

	s.logger.Debug("tasks listed", map[string]any{"count": len(all)})
	return all, nil
}

func (s *service) FindByPattern(ctx context.Context, pattern string) ([]tasks.Task, error) {
	found, err := s.store.FindByPattern(ctx, pattern)
	if err != nil {
		s.logger.Error("find by pattern failed", map[string]any{
			"pattern": pattern,
			"error":   err.Error(),
		})
		return nil, classify(err)
	}

	s.logger.Debug("tasks matched", map[string]any{
		"pattern": pattern,
		"count":   len(found),
	})
	return found, nil
}

func (s *service) FindByID(ctx context.Context, id uint64) (tasks.Task, error) {
	task, err := s.store.FindByID(ctx, id)
	if err != nil {
		s.logger.Debug("find by id failed", map[string]any{
			"task_id": id,
			"error":   err.Error(),
		})
		return tasks.Task{}, classify(err)
	}
	return task, nil
}

func (s *service) Update(ctx context.Context, req tasks.UpdateTask) (tasks.Task, error) {
	if err := req.Validate(); err != nil {
		s.logger.Warn("update rejected", map[string]any{
			"task_id": req.ID,
			"reason":  err.Error(),
		})
		return tasks.Task{}, err
	}

	task, err := s.store.Update(ctx, req.ID, req.NewTitle, req.Details)
	if err != nil {
		s.logger.Task(req.ID, "update failed", map[string]any{"error": err.Error()})
		return tasks.Task{}, classify(err)
	}

	s.logger.Task(task.ID, "task updated")
	return task, nil
}

func (s *service) Delete(ctx context.Context, id uint64) (tasks.Task, error) {
	task, err := s.store.Delete(ctx, id)
	if err != nil {
		s.logger.Task(id, "delete failed", map[string]any{"error": err.Error()})
		return tasks.Task{}, classify(err)
	}

	s.logger.Task(task.ID, "task deleted")
	return task, nil
}

func (s *service) Count(ctx context.Context) (int, error) {
	n, err := s.store.Len(ctx)
	if err != nil {
		return 0, classify(err)
	}
	return n, nil
}
