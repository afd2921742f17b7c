package assignment_test

import (
	"context"
	"testing"
	"time"

	"github.com/faresbyte/tawseel-task-system/internal/assignment"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// The services wrap repository writes and outbox inserts in a single
// *sql.Tx. These tests pin the repository to that transaction: with
// the pool capped at one connection, held by the open tx, a statement
// only succeeds if it actually runs on the tx rather than the pool.
func TestAssignmentRepository_WithTx(t *testing.T) {
	t.Run("update joins the caller's transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		db.SetMaxOpenConns(1)

		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
			SkipDefaultTransaction: true,
		})
		assert.NoError(t, err)

		repo := assignment.NewRepository(gormDB)

		mock.ExpectBegin()
		tx, err := db.Begin()
		assert.NoError(t, err)

		mock.ExpectExec(`UPDATE "assignments"`).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectRollback()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		a := &assignment.Assignment{
			ID:         uuid.New(),
			TaskID:     uuid.New(),
			UserID:     uuid.New(),
			AssignedBy: uuid.New(),
			Status:     assignment.StatusDone,
			Submitted:  true,
			AssignedAt: time.Now().UTC(),
		}
		assert.NoError(t, repo.WithTx(tx).Update(ctx, a))

		// Rolling back must discard the update together with the rest
		// of the transaction.
		assert.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("delete joins the caller's transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()
		db.SetMaxOpenConns(1)

		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
			SkipDefaultTransaction: true,
		})
		assert.NoError(t, err)

		repo := assignment.NewRepository(gormDB)

		mock.ExpectBegin()
		tx, err := db.Begin()
		assert.NoError(t, err)

		mock.ExpectExec(`UPDATE "assignments" SET "deleted_at"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		assert.NoError(t, repo.WithTx(tx).Delete(ctx, uuid.New().String()))
		assert.NoError(t, tx.Commit())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
