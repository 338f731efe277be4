// Package api holds the JSON shapes and routes shared by the task service and
// its HTTP client.
package api

import "github.com/riordanpawley/laneboard/internal/domain"

// Routes
const (
	PathTasks  = "/api/tasks"
	PathHealth = "/healthz"
)

// Query parameters accepted by GET /api/tasks. lane may repeat or hold a
// comma-separated list.
const (
	ParamQuery    = "q"
	ParamLane     = "lane"
	ParamAssignee = "assignee"
)

// HeaderRequestID carries a per-request id from client to server logs.
const HeaderRequestID = "X-Request-ID"

// TaskPath is the route of one task
func TaskPath(id string) string {
	return PathTasks + "/" + id
}

// StatusPath is the route that changes a task's lane
func StatusPath(id string) string {
	return TaskPath(id) + "/status"
}

// TasksResponse is the body of GET /api/tasks
type TasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
}

// StatusRequest is the body of PATCH /api/tasks/:id/status
type StatusRequest struct {
	Status domain.Lane `json:"status"`
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error string `json:"error"`
}
