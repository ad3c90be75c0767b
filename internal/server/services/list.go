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

// ListService manages task lists. Every operation takes the calling user's ID
// and refuses to touch lists owned by anyone else; a foreign list is reported
// as not found rather than forbidden, so list IDs are not probeable.
type ListService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewListService(db *sql.DB, m repomanager.RepositoryManager) *ListService {
	return &ListService{db: db, repomanager: m}
}

func (s *ListService) Create(ctx context.Context, userID, title string) (*models.List, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}

	list := &models.List{UserID: userID, Title: title}
	list, err := s.repomanager.Lists(s.db).Create(ctx, list)
	if err != nil {
		return nil, fmt.Errorf("error creating list: %w", err)
	}
	return list, nil
}

func (s *ListService) GetAll(ctx context.Context, userID string) ([]models.List, error) {
	return s.repomanager.Lists(s.db).GetAllByUser(ctx, userID)
}

func (s *ListService) Get(ctx context.Context, userID, listID string) (*models.List, error) {
	return s.getOwned(ctx, userID, listID)
}

func (s *ListService) Update(ctx context.Context, userID, listID, title string) (*models.List, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", common.ErrorValidation)
	}

	list, err := s.getOwned(ctx, userID, listID)
	if err != nil {
		return nil, err
	}

	if err := s.repomanager.Lists(s.db).Update(ctx, list.ID, title); err != nil {
		return nil, fmt.Errorf("error updating list: %w", err)
	}
	list.Title = title
	return list, nil
}

// Delete removes the list; its tasks go with it (cascade at the storage layer).
func (s *ListService) Delete(ctx context.Context, userID, listID string) error {
	list, err := s.getOwned(ctx, userID, listID)
	if err != nil {
		return err
	}
	if err := s.repomanager.Lists(s.db).Delete(ctx, list.ID); err != nil {
		return fmt.Errorf("error deleting list: %w", err)
	}
	return nil
}

func (s *ListService) getOwned(ctx context.Context, userID, listID string) (*models.List, error) {
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
