// Package httpapi exposes the task-manager API over HTTP. Authentication
// state travels in custom headers: the client presents its identity and
// refresh token on every protected call, and receives fresh token headers
// from signup/login.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aleksivanovs/taskvault/internal/logging"
	"github.com/aleksivanovs/taskvault/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address    string
	logger     logging.Logger
	users      *services.UserService
	lists      *services.ListService
	tasks      *services.TaskService
	corsOrigin string
}

func NewServer(a string, l logging.Logger, us *services.UserService, ls *services.ListService, ts *services.TaskService, corsOrigin string) *Server {
	return &Server{
		address:    a,
		logger:     l.With("module", "http_server"),
		users:      us,
		lists:      ls,
		tasks:      ts,
		corsOrigin: corsOrigin,
	}
}

// Handler builds the full route table wrapped in the CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users", s.handleSignUp)
	mux.HandleFunc("POST /users/login", s.handleLogin)
	mux.Handle("GET /users/me/access-token", s.authenticate(http.HandlerFunc(s.handleNewAccessToken)))
	mux.Handle("POST /users/me/logout", s.authenticate(http.HandlerFunc(s.handleLogout)))

	mux.Handle("GET /lists", s.authenticate(http.HandlerFunc(s.handleGetLists)))
	mux.Handle("POST /lists", s.authenticate(http.HandlerFunc(s.handleCreateList)))
	mux.Handle("GET /lists/{listId}", s.authenticate(http.HandlerFunc(s.handleGetList)))
	mux.Handle("PATCH /lists/{listId}", s.authenticate(http.HandlerFunc(s.handleUpdateList)))
	mux.Handle("DELETE /lists/{listId}", s.authenticate(http.HandlerFunc(s.handleDeleteList)))

	mux.Handle("GET /lists/{listId}/tasks", s.authenticate(http.HandlerFunc(s.handleGetTasks)))
	mux.Handle("POST /lists/{listId}/tasks", s.authenticate(http.HandlerFunc(s.handleCreateTask)))
	mux.Handle("PATCH /lists/{listId}/tasks/{taskId}", s.authenticate(http.HandlerFunc(s.handleUpdateTask)))
	mux.Handle("DELETE /lists/{listId}/tasks/{taskId}", s.authenticate(http.HandlerFunc(s.handleDeleteTask)))

	return s.cors(mux)
}

// Run serves the API until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
