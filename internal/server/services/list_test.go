package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aleksivanovs/taskvault/internal/common"
	"github.com/aleksivanovs/taskvault/internal/server/models"
)

type fakeListsRepo struct {
	lists     map[string]*models.List
	createErr error
}

func newFakeListsRepo() *fakeListsRepo {
	return &fakeListsRepo{lists: map[string]*models.List{}}
}

func (f *fakeListsRepo) Create(ctx context.Context, l *models.List) (*models.List, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	l.ID = "l" + l.Title
	l.CreatedAt = time.Now()
	f.lists[l.ID] = l
	return l, nil
}

func (f *fakeListsRepo) GetAllByUser(ctx context.Context, userID string) ([]models.List, error) {
	var out []models.List
	for _, l := range f.lists {
		if l.UserID == userID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeListsRepo) GetByID(ctx context.Context, id string) (*models.List, error) {
	l, ok := f.lists[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeListsRepo) Update(ctx context.Context, id, title string) error {
	l, ok := f.lists[id]
	if !ok {
		return common.ErrorNotFound
	}
	l.Title = title
	return nil
}

func (f *fakeListsRepo) Delete(ctx context.Context, id string) error {
	delete(f.lists, id)
	return nil
}

func newListService(t *testing.T) (*ListService, *fakeListsRepo) {
	t.Helper()
	db, _ := newSQLMockDB(t)
	t.Cleanup(func() { _ = db.Close() })
	repo := newFakeListsRepo()
	rm := newFakeRM()
	rm.l = repo
	return NewListService(db, rm), repo
}

func TestListCreate_RequiresTitle(t *testing.T) {
	s, _ := newListService(t)

	_, err := s.Create(context.Background(), "u1", "   ")
	if !errors.Is(err, common.ErrorValidation) {
		t.Fatalf("expected ErrorValidation, got %v", err)
	}
}

func TestListCreate_AndGet(t *testing.T) {
	s, _ := newListService(t)

	list, err := s.Create(context.Background(), "u1", " groceries ")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if list.Title != "groceries" || list.UserID != "u1" {
		t.Fatalf("unexpected list: %+v", list)
	}

	got, err := s.Get(context.Background(), "u1", list.ID)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if got.ID != list.ID {
		t.Fatalf("unexpected list: %+v", got)
	}
}

func TestListGet_ForeignListIsNotFound(t *testing.T) {
	s, repo := newListService(t)

	repo.lists["lx"] = &models.List{ID: "lx", UserID: "owner", Title: "private"}

	_, err := s.Get(context.Background(), "intruder", "lx")
	if !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound for foreign list, got %v", err)
	}
}

func TestListUpdate_OwnershipEnforced(t *testing.T) {
	s, repo := newListService(t)

	repo.lists["lx"] = &models.List{ID: "lx", UserID: "owner", Title: "old"}

	if _, err := s.Update(context.Background(), "intruder", "lx", "new"); !errors.Is(err, common.ErrorNotFound) {
		t.Fatalf("expected ErrorNotFound, got %v", err)
	}

	list, err := s.Update(context.Background(), "owner", "lx", "new")
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if list.Title != "new" || repo.lists["lx"].Title != "new" {
		t.Fatalf("title not updated")
	}
}

func TestListDelete(t *testing.T) {
	s, repo := newListService(t)

	repo.lists["lx"] = &models.List{ID: "lx", UserID: "owner", Title: "old"}

	if err := s.Delete(context.Background(), "owner", "lx"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, ok := repo.lists["lx"]; ok {
		t.Fatalf("list not deleted")
	}
}
