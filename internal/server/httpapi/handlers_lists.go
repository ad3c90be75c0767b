package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aleksivanovs/taskvault/internal/common"
	"github.com/aleksivanovs/taskvault/internal/server/models"
)

type listRequest struct {
	Title string `json:"title"`
}

func (s *Server) handleGetLists(w http.ResponseWriter, r *http.Request) {
	user, ok := sessionUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not found")
		return
	}

	lists, err := s.lists.GetAll(r.Context(), user.ID)
	if err != nil {
		s.logger.Error(r.Context(), "list fetch failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if lists == nil {
		lists = []models.List{}
	}
	writeJSON(w, http.StatusOK, lists)
}

func (s *Server) handleCreateList(w http.ResponseWriter, r *http.Request) {
	user, ok := sessionUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not found")
		return
	}

	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	list, err := s.lists.Create(r.Context(), user.ID, req.Title)
	if err != nil {
		s.writeListError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetList(w http.ResponseWriter, r *http.Request) {
	user, ok := sessionUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not found")
		return
	}

	list, err := s.lists.Get(r.Context(), user.ID, r.PathValue("listId"))
	if err != nil {
		s.writeListError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleUpdateList(w http.ResponseWriter, r *http.Request) {
	user, ok := sessionUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not found")
		return
	}

	var req listRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	list, err := s.lists.Update(r.Context(), user.ID, r.PathValue("listId"), req.Title)
	if err != nil {
		s.writeListError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleDeleteList(w http.ResponseWriter, r *http.Request) {
	user, ok := sessionUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "user not found")
		return
	}

	if err := s.lists.Delete(r.Context(), user.ID, r.PathValue("listId")); err != nil {
		s.writeListError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) writeListError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "list not found")
	default:
		s.logger.Error(r.Context(), "list operation failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
