package task_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/faresbyte/tawseel-task-system/internal/task"
	taskerrors "github.com/faresbyte/tawseel-task-system/internal/task/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fakeTaskRepository struct {
	withTxFn   func(tx *sql.Tx) task.Repository
	createFn   func(ctx context.Context, t *task.Task) error
	findAllFn  func(ctx context.Context) ([]task.Task, error)
	findByIDFn func(ctx context.Context, id string) (*task.Task, error)
	updateFn   func(ctx context.Context, t *task.Task) error
	deleteFn   func(ctx context.Context, id string) error
}

func (f *fakeTaskRepository) WithTx(tx *sql.Tx) task.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeTaskRepository) Create(ctx context.Context, t *task.Task) error {
	if f.createFn != nil {
		return f.createFn(ctx, t)
	}
	return nil
}

func (f *fakeTaskRepository) FindAll(ctx context.Context) ([]task.Task, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeTaskRepository) FindByID(ctx context.Context, id string) (*task.Task, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeTaskRepository) Update(ctx context.Context, t *task.Task) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, t)
	}
	return nil
}

func (f *fakeTaskRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type taskServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service task.Service
	repo    *fakeTaskRepository
}

func setupTaskServiceTest(t *testing.T) *taskServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeTaskRepository{}
	svc := task.NewService(db, repo)

	return &taskServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success with subtasks", func(t *testing.T) {
		deps := setupTaskServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		var created *task.Task
		deps.repo.createFn = func(ctx context.Context, t *task.Task) error {
			created = t
			return nil
		}

		adminID := uuid.New().String()
		resp, err := deps.service.Create(ctx, adminID, task.CreateTaskRequest{
			Title:       "  Daily depot check ",
			Description: "Walk every bay",
			Subtasks:    []string{"Check doors", " Check lights "},
		})
		assert.NoError(t, err)
		assert.Equal(t, "Daily depot check", resp.Title)
		assert.Equal(t, adminID, resp.CreatedBy)
		assert.Len(t, resp.Subtasks, 2)
		assert.Equal(t, "Check lights", resp.Subtasks[1].Title)
		assert.NotEmpty(t, resp.Subtasks[0].ID)

		assert.Len(t, created.Subtasks, 2)
	})

	t.Run("negative blank title", func(t *testing.T) {
		deps := setupTaskServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, uuid.New().String(), task.CreateTaskRequest{Title: "   "})
		assert.ErrorIs(t, err, taskerrors.ErrEmptyTitle)
	})

	t.Run("negative blank subtask title", func(t *testing.T) {
		deps := setupTaskServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, uuid.New().String(), task.CreateTaskRequest{
			Title:    "Daily depot check",
			Subtasks: []string{"ok", "  "},
		})
		assert.ErrorIs(t, err, taskerrors.ErrEmptySubtaskTitle)
	})
}

func TestTaskService_Subtasks(t *testing.T) {
	ctx := context.Background()

	existing := func() *task.Task {
		return &task.Task{
			ID:    uuid.New(),
			Title: "Daily depot check",
			Subtasks: datatypes.NewJSONSlice([]task.SubTask{
				{ID: "st-1", Title: "Check doors"},
				{ID: "st-2", Title: "Check lights"},
			}),
		}
	}

	t.Run("add appends a new subtask", func(t *testing.T) {
		deps := setupTaskServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		tk := existing()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*task.Task, error) {
			return tk, nil
		}

		resp, err := deps.service.AddSubtask(ctx, tk.ID.String(), task.AddSubtaskRequest{Title: "Check ramps"})
		assert.NoError(t, err)
		assert.Len(t, resp.Subtasks, 3)
		assert.Equal(t, "Check ramps", resp.Subtasks[2].Title)
	})

	t.Run("remove drops the matching subtask", func(t *testing.T) {
		deps := setupTaskServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		tk := existing()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*task.Task, error) {
			return tk, nil
		}

		var updated *task.Task
		deps.repo.updateFn = func(ctx context.Context, t *task.Task) error {
			updated = t
			return nil
		}

		resp, err := deps.service.RemoveSubtask(ctx, tk.ID.String(), "st-1")
		assert.NoError(t, err)
		assert.Len(t, resp.Subtasks, 1)
		assert.Equal(t, "st-2", resp.Subtasks[0].ID)
		assert.Len(t, updated.Subtasks, 1)
	})

	t.Run("negative remove unknown subtask", func(t *testing.T) {
		deps := setupTaskServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		tk := existing()
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*task.Task, error) {
			return tk, nil
		}

		_, err := deps.service.RemoveSubtask(ctx, tk.ID.String(), "st-99")
		assert.ErrorIs(t, err, taskerrors.ErrSubtaskNotFound)
	})

	t.Run("negative add to unknown task", func(t *testing.T) {
		deps := setupTaskServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.AddSubtask(ctx, uuid.New().String(), task.AddSubtaskRequest{Title: "Check ramps"})
		assert.ErrorIs(t, err, taskerrors.ErrTaskNotFound)
	})
}
