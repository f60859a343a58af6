package api

import (
	"net/http"
	"strconv"

	"task-list/errors"
	"task-list/logger"
	"task-list/tasks"
	"task-list/tasks/service"
)

const tasksLocation = "/tasks"

func parseID(r *http.Request) (uint64, *errors.TaskError) {
	raw := r.PathValue("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, errors.NewValidationError("invalid task id", map[string]any{
			"id": raw,
		})
	}
	return id, nil
}

// NewInsertHandler handles POST /tasks.
//
// The body is size-limited and decoded before the title is validated; only a
// well-formed request reaches the store.
func NewInsertHandler(svc service.Service, maxBodyBytes int64, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tasks.InsertTask
		if taskErr := decodeBody(w, r, maxBodyBytes, &req); taskErr != nil {
			respondWithError(w, taskErr, lg)
			return
		}

		task, err := svc.Insert(r.Context(), req)
		if err != nil {
			respondWithServiceError(w, err, lg)
			return
		}

		w.Header().Set("Location", tasksLocation)
		respondWithJSON(w, http.StatusCreated, task, lg)
	}
}

// NewFindAllHandler handles GET /tasks, optionally filtered by ?pattern=.
func NewFindAllHandler(svc service.Service, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			list []tasks.Task
			err  error
		)

		query := r.URL.Query()
		if query.Has("pattern") {
			list, err = svc.FindByPattern(r.Context(), query.Get("pattern"))
		} else {
			list, err = svc.FindAll(r.Context())
		}
		if err != nil {
			respondWithServiceError(w, err, lg)
			return
		}

		if list == nil {
			list = []tasks.Task{}
		}
		respondWithJSON(w, http.StatusOK, list, lg)
	}
}

// NewFindByIDHandler handles GET /tasks/{id}.
func NewFindByIDHandler(svc service.Service, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, taskErr := parseID(r)
		if taskErr != nil {
			respondWithError(w, taskErr, lg)
			return
		}

		task, err := svc.FindByID(r.Context(), id)
		if err != nil {
			respondWithServiceError(w, err, lg)
			return
		}

		respondWithJSON(w, http.StatusOK, task, lg)
	}
}

// NewUpdateHandler handles PUT /tasks. Success answers 201 with the updated task.
func NewUpdateHandler(svc service.Service, maxBodyBytes int64, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req tasks.UpdateTask
		if taskErr := decodeBody(w, r, maxBodyBytes, &req); taskErr != nil {
			respondWithError(w, taskErr, lg)
			return
		}

		task, err := svc.Update(r.Context(), req)
		if err != nil {
			respondWithServiceError(w, err, lg)
			return
		}

		w.Header().Set("Location", tasksLocation)
		respondWithJSON(w, http.StatusCreated, task, lg)
	}
}

// NewDeleteHandler handles DELETE /tasks/{id} and returns the removed task.
func NewDeleteHandler(svc service.Service, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, taskErr := parseID(r)
		if taskErr != nil {
			respondWithError(w, taskErr, lg)
			return
		}

		task, err := svc.Delete(r.Context(), id)
		if err != nil {
			respondWithServiceError(w, err, lg)
			return
		}

		respondWithJSON(w, http.StatusOK, task, lg)
	}
}
