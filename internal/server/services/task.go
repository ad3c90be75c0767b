package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/aleksivanovs/taskvault/internal/common"
	"github.com/aleksivanovs/taskvault/internal/server/models"
	"github.com/aleksivanovs/taskvault/internal/server/repositories/repomanager"
)

// TaskService manages tasks. Authorization goes through the owning list: a
// task is reachable only by the owner of its list.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

func (s *TaskService) Create(ctx context.Context, userID, listID, title string) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}

	if _, err := s.ownedList(ctx, userID, listID); err != nil {
		return nil, err
	}

	task := &models.Task{ListID: listID, Title: title}
	task, err := s.repomanager.Tasks(s.db).Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return task, nil
}

func (s *TaskService) GetAll(ctx context.Context, userID, listID string) ([]models.Task, error) {
	if _, err := s.ownedList(ctx, userID, listID); err != nil {
		return nil, err
	}
	return s.repomanager.Tasks(s.db).GetAllByList(ctx, listID)
}

func (s *TaskService) Update(ctx context.Context, userID, taskID, title string, completed bool) (*models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}

	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.repomanager.Tasks(s.db).Update(ctx, task.ID, title, completed); err != nil {
		return nil, fmt.Errorf("error updating task: %w", err)
	}
	task.Title = title
	task.Completed = completed
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	task, err := s.ownedTask(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if err := s.repomanager.Tasks(s.db).Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("error deleting task: %w", err)
	}
	return nil
}

func (s *TaskService) ownedList(ctx context.Context, userID, listID string) (*models.List, error) {
	list, err := s.repomanager.Lists(s.db).GetByID(ctx, listID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	if list.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return list, nil
}

func (s *TaskService) ownedTask(ctx context.Context, userID, taskID string) (*models.Task, error) {
	task, err := s.repomanager.Tasks(s.db).GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}
	if _, err := s.ownedList(ctx, userID, task.ListID); err != nil {
		return nil, err
	}
	return task, nil
}
