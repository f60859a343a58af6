package api

import (
	"fmt"
	"net/http"
)

const welcome = `task-list

    POST   /tasks        {"non_empty_title": "...", "details": "..."}
    GET    /tasks        list every task (?pattern=text to filter)
    GET    /tasks/{id}   one task
    PUT    /tasks        {"id": 0, "new_title": "...", "details": "..."}
    DELETE /tasks/{id}   remove a task
    GET    /health       service status
`

// NewIndexHandler serves a plain-text usage summary on the exact path /.
func NewIndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, welcome)
	}
}
