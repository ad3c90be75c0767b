package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aleksivanovs/taskvault/internal/common"
	"github.com/aleksivanovs/taskvault/internal/server/models"
)

type taskRequest struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

func (s *Server) handleGetTasks(w http.ResponseWriter, r *http.Request) {
	user, ok := sessionUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not found")
		return
	}

	tasks, err := s.tasks.GetAll(r.Context(), user.ID, r.PathValue("listId"))
	if err != nil {
		s.writeTaskError(w, r, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	user, ok := sessionUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not found")
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := s.tasks.Create(r.Context(), user.ID, r.PathValue("listId"), req.Title)
	if err != nil {
		s.writeTaskError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	user, ok := sessionUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not found")
		return
	}

	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, err := s.tasks.Update(r.Context(), user.ID, r.PathValue("taskId"), req.Title, req.Completed)
	if err != nil {
		s.writeTaskError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	user, ok := sessionUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not found")
		return
	}

	if err := s.tasks.Delete(r.Context(), user.ID, r.PathValue("taskId")); err != nil {
		s.writeTaskError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) writeTaskError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "task not found")
	default:
		s.logger.Error(r.Context(), "task operation failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
