package user_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/faresbyte/tawseel-task-system/internal/user"
	usererrors "github.com/faresbyte/tawseel-task-system/internal/user/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepository struct {
	withTxFn      func(tx *sql.Tx) user.Repository
	createFn      func(ctx context.Context, u *user.User) error
	findAllFn     func(ctx context.Context) ([]user.User, error)
	findByIDFn    func(ctx context.Context, id string) (*user.User, error)
	findByEmailFn func(ctx context.Context, email string) (*user.User, error)
	roleExistsFn  func(ctx context.Context, roleID string) (bool, error)
	updateFn      func(ctx context.Context, u *user.User) error
	deleteFn      func(ctx context.Context, id string) error
}

func (f *fakeUserRepository) WithTx(tx *sql.Tx) user.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) FindAll(ctx context.Context) ([]user.User, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx)
	}
	return nil, nil
}

func (f *fakeUserRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.findByEmailFn != nil {
		return f.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeUserRepository) RoleExists(ctx context.Context, roleID string) (bool, error) {
	if f.roleExistsFn != nil {
		return f.roleExistsFn(ctx, roleID)
	}
	return true, nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

type userServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service user.Service
	repo    *fakeUserRepository
}

func setupUserServiceTest(t *testing.T) *userServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeUserRepository{}
	svc := user.NewService(db, repo)

	return &userServiceDeps{db: db, sqlMock: sqlMock, service: svc, repo: repo}
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

func strPtr(s string) *string { return &s }

func TestUserService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success hashes the password and lowercases the email", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		var created *user.User
		deps.repo.createFn = func(ctx context.Context, u *user.User) error {
			created = u
			return nil
		}

		roleID := uuid.New().String()
		resp, err := deps.service.Create(ctx, user.CreateUserRequest{
			Name:     "Fares",
			Email:    "  Fares@Example.COM ",
			Password: "correct horse",
			UserType: user.TypeUser,
			RoleID:   &roleID,
		})
		assert.NoError(t, err)
		assert.Equal(t, "fares@example.com", resp.Email)
		assert.Equal(t, user.TypeUser, resp.UserType)
		assert.NotNil(t, resp.RoleID)
		assert.Equal(t, roleID, *resp.RoleID)

		assert.NotEqual(t, "correct horse", created.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("correct horse")))
	})

	t.Run("admin ignores role id", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Create(ctx, user.CreateUserRequest{
			Name:     "Boss",
			Email:    "boss@example.com",
			Password: "longenough",
			UserType: user.TypeAdmin,
			RoleID:   strPtr(uuid.New().String()),
		})
		assert.NoError(t, err)
		assert.Nil(t, resp.RoleID)
	})

	t.Run("negative short password", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, user.CreateUserRequest{
			Name:     "Fares",
			Email:    "fares@example.com",
			Password: "short",
			UserType: user.TypeUser,
			RoleID:   strPtr(uuid.New().String()),
		})
		assert.ErrorIs(t, err, usererrors.ErrWeakPassword)
	})

	t.Run("negative regular user without role", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, user.CreateUserRequest{
			Name:     "Fares",
			Email:    "fares@example.com",
			Password: "longenough",
			UserType: user.TypeUser,
		})
		assert.ErrorIs(t, err, usererrors.ErrRoleRequired)
	})

	t.Run("negative email already registered", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.findByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return &user.User{ID: uuid.New(), Email: email}, nil
		}

		_, err := deps.service.Create(ctx, user.CreateUserRequest{
			Name:     "Fares",
			Email:    "fares@example.com",
			Password: "longenough",
			UserType: user.TypeUser,
			RoleID:   strPtr(uuid.New().String()),
		})
		assert.ErrorIs(t, err, usererrors.ErrEmailTaken)
	})

	t.Run("negative unknown role", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		deps.repo.roleExistsFn = func(ctx context.Context, roleID string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, user.CreateUserRequest{
			Name:     "Fares",
			Email:    "fares@example.com",
			Password: "longenough",
			UserType: user.TypeUser,
			RoleID:   strPtr(uuid.New().String()),
		})
		assert.ErrorIs(t, err, usererrors.ErrRoleNotFound)
	})

	t.Run("negative unknown user type", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, user.CreateUserRequest{
			Name:     "Fares",
			Email:    "fares@example.com",
			Password: "longenough",
			UserType: "superadmin",
		})
		assert.ErrorIs(t, err, usererrors.ErrInvalidUserType)
	})
}

func TestUserService_SetDisabled(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		u := &user.User{ID: uuid.New(), Name: "Fares", Email: "fares@example.com", UserType: user.TypeUser}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			return u, nil
		}

		var updated *user.User
		deps.repo.updateFn = func(ctx context.Context, u *user.User) error {
			updated = u
			return nil
		}

		resp, err := deps.service.SetDisabled(ctx, u.ID.String(), true)
		assert.NoError(t, err)
		assert.True(t, resp.Disabled)
		assert.True(t, updated.Disabled)
	})

	t.Run("negative unknown user", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.SetDisabled(ctx, uuid.New().String(), true)
		assert.ErrorIs(t, err, usererrors.ErrUserNotFound)
	})
}

func TestUserService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("negative new email taken by someone else", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)

		u := &user.User{ID: uuid.New(), Email: "old@example.com", UserType: user.TypeAdmin}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			return u, nil
		}
		deps.repo.findByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			return &user.User{ID: uuid.New(), Email: email}, nil
		}

		_, err := deps.service.Update(ctx, u.ID.String(), user.UpdateUserRequest{
			Name:     "Fares",
			Email:    "new@example.com",
			UserType: user.TypeAdmin,
		})
		assert.ErrorIs(t, err, usererrors.ErrEmailTaken)
	})

	t.Run("success keeping the same email skips the uniqueness check", func(t *testing.T) {
		deps := setupUserServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)

		u := &user.User{ID: uuid.New(), Name: "Old Name", Email: "same@example.com", UserType: user.TypeAdmin}
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*user.User, error) {
			return u, nil
		}
		deps.repo.findByEmailFn = func(ctx context.Context, email string) (*user.User, error) {
			t.Fatal("uniqueness check must be skipped for an unchanged email")
			return nil, nil
		}

		resp, err := deps.service.Update(ctx, u.ID.String(), user.UpdateUserRequest{
			Name:     "New Name",
			Email:    "Same@Example.com",
			UserType: user.TypeAdmin,
		})
		assert.NoError(t, err)
		assert.Equal(t, "New Name", resp.Name)
		assert.Equal(t, "same@example.com", resp.Email)
	})
}
