package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/orgtarefas/planner/pkg/claims"
	"github.com/orgtarefas/planner/pkg/task"
)

const (
	typeError    string = "error"
	typeMessage  string = "message"
	muxVarTaskID string = "task_id"
)

type TaskHandler struct {
	Service task.ServiceTask
	Logger  *slog.Logger
}

func NewTaskHandler(service task.ServiceTask, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		Service: service,
		Logger:  logger,
	}
}

// GetTasks lists tasks, optionally filtered by the query parameters
// q, status, priority and assignee.
func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := task.Filter{
		Query:    query.Get("q"),
		Status:   query.Get("status"),
		Priority: query.Get("priority"),
		Assignee: query.Get("assignee"),
	}

	if filter == (task.Filter{}) {
		writeJSON(w, h.Logger, h.Service.GetAll())
		return
	}
	writeJSON(w, h.Logger, h.Service.Filter(filter))
}

func (h *TaskHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.Logger, h.Service.Stats())
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var newTask task.Task
	if err := json.NewDecoder(r.Body).Decode(&newTask); err != nil {
		h.Logger.Error("invalid json", "error", err)
		writeError(w, http.StatusBadRequest, typeError, "invalid JSON payload")
		return
	}

	var c claims.Claims
	if ok := getClaimsFromContext(w, r, &c); !ok {
		return
	}

	if err := h.Service.CreateTask(&newTask, c.User.Username); err != nil {
		writeError(w, http.StatusBadRequest, typeError, err.Error())
		return
	}

	if ok := writeJSON(w, h.Logger, newTask); ok {
		h.Logger.Info("task created", "task", newTask.ID, "user", c.User.ID)
	}
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)[muxVarTaskID]
	if taskID == "" {
		writeError(w, http.StatusBadRequest, typeMessage, "invalid task id")
		return
	}

	found, err := h.Service.GetByID(taskID)
	if err != nil {
		writeError(w, http.StatusNotFound, typeMessage, err.Error())
		return
	}

	writeJSON(w, h.Logger, found)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	taskID := mux.Vars(r)[muxVarTaskID]
	if taskID == "" {
		writeError(w, http.StatusBadRequest, typeMessage, "invalid task id")
		return
	}

	var changed task.Task
	if err := json.NewDecoder(r.Body).Decode(&changed); err != nil {
		h.Logger.Error("invalid json", "error", err)
		writeError(w, http.StatusBadRequest, typeError, "invalid JSON payload")
		return
	}

	updated, err := h.Service.UpdateTask(taskID, &changed)
	if err != nil {
		writeError(w, http.StatusBadRequest, typeError, err.Error())
		return
	}

	if ok := writeJSON(w, h.Logger, updated); ok {
		h.Logger.Info("task updated", "task", taskID)
	}
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID := mux.Vars(r)[muxVarTaskID]
	if taskID == "" {
		writeError(w, http.StatusBadRequest, typeMessage, "invalid task id")
		return
	}

	if err := h.Service.Delete(taskID); err != nil {
		writeError(w, http.StatusNotFound, typeError, err.Error())
		return
	}

	if ok := writeJSON(w, h.Logger, map[string]string{typeMessage: "success"}); ok {
		h.Logger.Info("task deleted", "task", taskID)
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, data any) bool {
	resp, err := json.Marshal(data)
	if err != nil {
		logger.Error("Failed to serialize JSON response", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "failed json marshal")
		return false
	}

	w.Header().Set("Content-Type", "application/json")

	if _, err := w.Write(resp); err != nil {
		logger.Error("Failed to write response to client", "error", err)
		return false
	}
	return true
}

func getClaimsFromContext(w http.ResponseWriter, r *http.Request, c *claims.Claims) bool {
	val, ok := r.Context().Value(claims.SessionContextKey).(*claims.Claims)
	if !ok || val == nil || val.User.ID == "" {
		writeError(w, http.StatusUnauthorized, typeMessage, "unauthorized")
		return false
	}
	*c = *val
	return true
}

func writeError(w http.ResponseWriter, status int, field, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{field: msg}); err != nil {
		return
	}
}
