package routine_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/faresbyte/tawseel-task-system/internal/routine"
	routineerrors "github.com/faresbyte/tawseel-task-system/internal/routine/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeRoutineRepository struct {
	withTxFn           func(tx *sql.Tx) routine.Repository
	createBatchFn      func(ctx context.Context, routines []routine.Routine) error
	findAllFn          func(ctx context.Context) ([]routine.Routine, error)
	findActiveByUserFn func(ctx context.Context, userID string) ([]routine.Routine, error)
	findByIDFn         func(ctx context.Context, id string) (*routine.Routine, error)
	existsFn           func(ctx context.Context, taskID, userID string) (bool, error)
	taskExistsFn       func(ctx context.Context, taskID string) (bool, error)
	userExistsFn       func(ctx context.Context, userID string) (bool, error)
	updateFn           func(ctx context.Context, r *routine.Routine) error
	deleteFn           func(ctx context.Context, id string) error
}

func (f *fakeRoutineRepository) WithTx(tx *sql.Tx) routine.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeRoutineRepository) CreateBatch(ctx context.Context, routines []routine.Routine) error {
	if f.createBatchFn != nil {
		return f.createBatchFn(ctx, routines)
	}
	return nil
}

func (f *fakeRoutineRepository) FindAll(ctx context.Context) ([]routine.Routine, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeRoutineRepository) FindActiveByUser(ctx context.Context, userID string) ([]routine.Routine, error) {
	if f.findActiveByUserFn != nil {
		return f.findActiveByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeRoutineRepository) FindByID(ctx context.Context, id string) (*routine.Routine, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (f *fakeRoutineRepository) Exists(ctx context.Context, taskID, userID string) (bool, error) {
	if f.existsFn != nil {
		return f.existsFn(ctx, taskID, userID)
	}
	return false, nil
}

func (f *fakeRoutineRepository) TaskExists(ctx context.Context, taskID string) (bool, error) {
	if f.taskExistsFn != nil {
		return f.taskExistsFn(ctx, taskID)
	}
	return true, nil
}

func (f *fakeRoutineRepository) UserExists(ctx context.Context, userID string) (bool, error) {
	if f.userExistsFn != nil {
		return f.userExistsFn(ctx, userID)
	}
	return true, nil
}

func (f *fakeRoutineRepository) Update(ctx context.Context, r *routine.Routine) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, r)
	}
	return nil
}

func (f *fakeRoutineRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type routineServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service routine.Service
	repo    *fakeRoutineRepository
}

func setupRoutineServiceTest(t *testing.T) *routineServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeRoutineRepository{}
	svc := routine.NewService(db, repo)

	return &routineServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
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

func TestRoutineService_CreateBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("success skips pairs that already have a routine", func(t *testing.T) {
		deps := setupRoutineServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		taskA := uuid.New().String()
		taskB := uuid.New().String()
		userID := uuid.New().String()

		deps.repo.existsFn = func(ctx context.Context, taskID, uid string) (bool, error) {
			return taskID == taskA, nil
		}

		var created []routine.Routine
		deps.repo.createBatchFn = func(ctx context.Context, routines []routine.Routine) error {
			created = routines
			return nil
		}

		adminID := uuid.New().String()
		resp, err := deps.service.CreateBatch(ctx, adminID, routine.CreateRoutinesRequest{
			TaskIDs: []string{taskA, taskB},
			UserIDs: []string{userID},
			Cadence: routine.CadenceWeekly,
		})
		assert.NoError(t, err)
		assert.Len(t, resp, 1)
		assert.Len(t, created, 1)
		assert.Equal(t, taskB, created[0].TaskID.String())
		assert.Equal(t, adminID, created[0].CreatedBy.String())
		assert.Equal(t, routine.CadenceWeekly, created[0].Cadence)
		assert.True(t, created[0].Active)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown cadence", func(t *testing.T) {
		deps := setupRoutineServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.CreateBatch(ctx, uuid.New().String(), routine.CreateRoutinesRequest{
			TaskIDs: []string{uuid.New().String()},
			UserIDs: []string{uuid.New().String()},
			Cadence: "fortnightly",
		})
		assert.ErrorIs(t, err, routineerrors.ErrInvalidCadence)
	})

	t.Run("negative missing task", func(t *testing.T) {
		deps := setupRoutineServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.taskExistsFn = func(ctx context.Context, taskID string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.CreateBatch(ctx, uuid.New().String(), routine.CreateRoutinesRequest{
			TaskIDs: []string{uuid.New().String()},
			UserIDs: []string{uuid.New().String()},
			Cadence: routine.CadenceDaily,
		})
		assert.ErrorIs(t, err, routineerrors.ErrTaskNotFound)
	})

	t.Run("negative malformed user id", func(t *testing.T) {
		deps := setupRoutineServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.CreateBatch(ctx, uuid.New().String(), routine.CreateRoutinesRequest{
			TaskIDs: []string{uuid.New().String()},
			UserIDs: []string{"42"},
			Cadence: routine.CadenceDaily,
		})
		assert.ErrorIs(t, err, routineerrors.ErrInvalidUserID)
	})
}

func TestRoutineService_SetActive(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupRoutineServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		r := &routine.Routine{ID: uuid.New(), TaskID: uuid.New(), UserID: uuid.New(), Active: true}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*routine.Routine, error) {
			return r, nil
		}

		var updated *routine.Routine
		deps.repo.updateFn = func(ctx context.Context, r *routine.Routine) error {
			updated = r
			return nil
		}

		resp, err := deps.service.SetActive(ctx, r.ID.String(), false)
		assert.NoError(t, err)
		assert.False(t, resp.Active)
		assert.False(t, updated.Active)
	})
}

func TestRoutineDueOn(t *testing.T) {
	// 2026-02-28 is a Saturday.
	feb28 := time.Date(2026, 2, 28, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		cadence   string
		createdAt time.Time
		now       time.Time
		want      bool
	}{
		{
			name:      "daily is always due",
			cadence:   routine.CadenceDaily,
			createdAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			now:       feb28,
			want:      true,
		},
		{
			name:      "weekly due on the creation weekday",
			cadence:   routine.CadenceWeekly,
			createdAt: time.Date(2026, 2, 7, 0, 0, 0, 0, time.UTC), // Saturday
			now:       feb28,
			want:      true,
		},
		{
			name:      "weekly not due on other weekdays",
			cadence:   routine.CadenceWeekly,
			createdAt: time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC), // Monday
			now:       feb28,
			want:      false,
		},
		{
			name:      "monthly due on the creation day",
			cadence:   routine.CadenceMonthly,
			createdAt: time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
			now:       time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
			want:      true,
		},
		{
			name:      "monthly created on the 31st clamps to the last day of February",
			cadence:   routine.CadenceMonthly,
			createdAt: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
			now:       feb28,
			want:      true,
		},
		{
			name:      "monthly clamped day does not fire mid-month",
			cadence:   routine.CadenceMonthly,
			createdAt: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
			now:       time.Date(2026, 2, 15, 9, 0, 0, 0, time.UTC),
			want:      false,
		},
		{
			name:      "unknown cadence never fires",
			cadence:   "hourly",
			createdAt: feb28,
			now:       feb28,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := routine.Routine{Cadence: tt.cadence, CreatedAt: tt.createdAt}
			assert.Equal(t, tt.want, r.DueOn(tt.now))
		})
	}
}
