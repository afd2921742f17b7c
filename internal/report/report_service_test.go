package report_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/faresbyte/tawseel-task-system/internal/assignment"
	"github.com/faresbyte/tawseel-task-system/internal/report"
	"github.com/faresbyte/tawseel-task-system/internal/task"
	"github.com/faresbyte/tawseel-task-system/internal/user"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAssignmentRepository struct {
	assignment.Repository

	findAllFn func(ctx context.Context, filter assignment.Filter) ([]assignment.Assignment, error)
}

func (f *fakeAssignmentRepository) FindAll(ctx context.Context, filter assignment.Filter) ([]assignment.Assignment, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, nil
}

type fakeUserRepository struct {
	user.Repository

	findAllFn func(ctx context.Context) ([]user.User, error)
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func TestReportService_Overview(t *testing.T) {
	ctx := context.Background()

	alice := user.User{ID: uuid.New(), Name: "Alice", UserType: user.TypeUser}
	bob := user.User{ID: uuid.New(), Name: "Bob", UserType: user.TypeUser}
	admin := user.User{ID: uuid.New(), Name: "Ops", UserType: user.TypeAdmin}

	t.Run("success aggregates per user and globally", func(t *testing.T) {
		assignments := &fakeAssignmentRepository{
			findAllFn: func(ctx context.Context, filter assignment.Filter) ([]assignment.Assignment, error) {
				rows := []assignment.Assignment{
					{ID: uuid.New(), UserID: alice.ID, Status: assignment.StatusDone},
					{ID: uuid.New(), UserID: alice.ID, Status: assignment.StatusDone},
					{ID: uuid.New(), UserID: alice.ID, Status: assignment.StatusDone},
					{ID: uuid.New(), UserID: alice.ID, Status: assignment.StatusPending},
					{
						ID:         uuid.New(),
						UserID:     bob.ID,
						User:       &bob,
						Task:       &task.Task{Title: "Wash bay inspection"},
						Status:     assignment.StatusDeficient,
						AdminNotes: "floor drain clogged",
						UpdatedAt:  time.Now().UTC(),
					},
					{ID: uuid.New(), UserID: bob.ID, Status: assignment.StatusRejected},
				}
				return rows, nil
			},
		}
		users := &fakeUserRepository{
			findAllFn: func(ctx context.Context) ([]user.User, error) {
				return []user.User{alice, bob, admin}, nil
			},
		}

		svc := report.NewService(assignments, users, nil, time.Minute)

		overview, err := svc.Overview(ctx)
		assert.NoError(t, err)

		assert.Equal(t, 6, overview.Global.Total)
		assert.Equal(t, 3, overview.Global.Completed)
		assert.Equal(t, 1, overview.Global.Deficient)
		assert.Equal(t, 1, overview.Global.Pending)
		assert.Equal(t, 1, overview.Global.Rejected)
		assert.Equal(t, 50, overview.Global.CompletionRate)

		// Sorted by name, admins excluded from the employee breakdown.
		assert.Len(t, overview.PerUser, 2)
		assert.Equal(t, "Alice", overview.PerUser[0].UserName)
		assert.Equal(t, 4, overview.PerUser[0].Total)
		assert.Equal(t, 75, overview.PerUser[0].CompletionRate)
		assert.Equal(t, "Bob", overview.PerUser[1].UserName)
		assert.Equal(t, 0, overview.PerUser[1].CompletionRate)

		assert.Len(t, overview.Deficiencies, 1)
		assert.Equal(t, "Wash bay inspection", overview.Deficiencies[0].TaskTitle)
		assert.Equal(t, "Bob", overview.Deficiencies[0].UserName)
		assert.Equal(t, "floor drain clogged", overview.Deficiencies[0].Reason)
	})

	t.Run("employee with no assignments reports zero rate", func(t *testing.T) {
		assignments := &fakeAssignmentRepository{}
		users := &fakeUserRepository{
			findAllFn: func(ctx context.Context) ([]user.User, error) {
				return []user.User{alice}, nil
			},
		}

		svc := report.NewService(assignments, users, nil, time.Minute)

		overview, err := svc.Overview(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 0, overview.Global.CompletionRate)
		assert.Len(t, overview.PerUser, 1)
		assert.Equal(t, 0, overview.PerUser[0].Total)
		assert.Equal(t, 0, overview.PerUser[0].CompletionRate)
	})

	t.Run("assignments of removed users still count globally", func(t *testing.T) {
		ghost := uuid.New()
		assignments := &fakeAssignmentRepository{
			findAllFn: func(ctx context.Context, filter assignment.Filter) ([]assignment.Assignment, error) {
				return []assignment.Assignment{
					{ID: uuid.New(), UserID: ghost, Status: assignment.StatusDone},
				}, nil
			},
		}
		users := &fakeUserRepository{}

		svc := report.NewService(assignments, users, nil, time.Minute)

		overview, err := svc.Overview(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 1, overview.Global.Total)
		assert.Equal(t, 1, overview.Global.Completed)
		assert.Len(t, overview.PerUser, 1)
		assert.Equal(t, ghost.String(), overview.PerUser[0].UserID)
	})

	t.Run("cache hit skips the repositories", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()

		cached := report.Overview{
			GeneratedAt: time.Now().UTC().Truncate(time.Second),
			Global:      report.GlobalStats{Total: 9, Completed: 9, CompletionRate: 100},
		}
		payload, err := json.Marshal(cached)
		assert.NoError(t, err)
		mock.ExpectGet(report.CacheKey).SetVal(string(payload))

		assignments := &fakeAssignmentRepository{
			findAllFn: func(ctx context.Context, filter assignment.Filter) ([]assignment.Assignment, error) {
				t.Fatal("repository must not be hit on a cache hit")
				return nil, nil
			},
		}
		users := &fakeUserRepository{}

		svc := report.NewService(assignments, users, rdb, time.Minute)

		overview, err := svc.Overview(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 9, overview.Global.Total)
		assert.Equal(t, 100, overview.Global.CompletionRate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cache miss recomputes and stores the result", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		mock.ExpectGet(report.CacheKey).RedisNil()
		mock.Regexp().ExpectSet(report.CacheKey, `.*"total":1.*`, time.Minute).SetVal("OK")

		assignments := &fakeAssignmentRepository{
			findAllFn: func(ctx context.Context, filter assignment.Filter) ([]assignment.Assignment, error) {
				return []assignment.Assignment{
					{ID: uuid.New(), UserID: alice.ID, Status: assignment.StatusDone},
				}, nil
			},
		}
		users := &fakeUserRepository{
			findAllFn: func(ctx context.Context) ([]user.User, error) {
				return []user.User{alice}, nil
			},
		}

		svc := report.NewService(assignments, users, rdb, time.Minute)

		overview, err := svc.Overview(ctx)
		assert.NoError(t, err)
		assert.Equal(t, 1, overview.Global.Total)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReportService_ExportExcel(t *testing.T) {
	alice := user.User{ID: uuid.New(), Name: "Alice", UserType: user.TypeUser}

	assignments := &fakeAssignmentRepository{
		findAllFn: func(ctx context.Context, filter assignment.Filter) ([]assignment.Assignment, error) {
			return []assignment.Assignment{
				{ID: uuid.New(), UserID: alice.ID, Status: assignment.StatusDone},
				{
					ID:         uuid.New(),
					UserID:     alice.ID,
					User:       &alice,
					Status:     assignment.StatusDeficient,
					AdminNotes: "redo shelf labels",
					UpdatedAt:  time.Now().UTC(),
				},
			}, nil
		},
	}
	users := &fakeUserRepository{
		findAllFn: func(ctx context.Context) ([]user.User, error) {
			return []user.User{alice}, nil
		},
	}

	svc := report.NewService(assignments, users, nil, time.Minute)

	buf, filename, err := svc.ExportExcel(context.Background())
	assert.NoError(t, err)
	assert.NotNil(t, buf)
	assert.Greater(t, buf.Len(), 0)
	assert.Contains(t, filename, "task-report-")
	assert.Contains(t, filename, ".xlsx")
}
