package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	usererrors "github.com/faresbyte/tawseel-task-system/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateUserRequest) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error)
	SetDisabled(ctx context.Context, id string, disabled bool) (UserResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateUserRequest) (UserResponse, error) {
	s.logger.Debug("create user requested",
		zap.String("email", req.Email),
		zap.String("user_type", req.UserType),
	)

	if len(req.Password) < 8 {
		return UserResponse{}, usererrors.ErrWeakPassword
	}

	roleID, err := resolveRoleID(req.UserType, req.RoleID)
	if err != nil {
		return UserResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create user begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := qtx.FindByEmail(ctx, email); err == nil {
		return UserResponse{}, usererrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return UserResponse{}, err
	}

	if roleID != nil {
		exists, err := qtx.RoleExists(ctx, roleID.String())
		if err != nil {
			return UserResponse{}, err
		}
		if !exists {
			return UserResponse{}, usererrors.ErrRoleNotFound
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("create user hash password failed", zap.Error(err))
		return UserResponse{}, err
	}

	u := &User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hash),
		UserType:     req.UserType,
		RoleID:       roleID,
	}

	if err := qtx.Create(ctx, u); err != nil {
		s.logger.Error("create user persist failed", zap.Error(err))
		return UserResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create user commit failed", zap.Error(err))
		return UserResponse{}, err
	}
	s.logger.Info("create user success",
		zap.String("user_id", u.ID.String()),
		zap.String("user_type", u.UserType),
	)

	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(users), nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateUserRequest) (UserResponse, error) {
	roleID, err := resolveRoleID(req.UserType, req.RoleID)
	if err != nil {
		return UserResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update user begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != u.Email {
		if _, err := qtx.FindByEmail(ctx, email); err == nil {
			return UserResponse{}, usererrors.ErrEmailTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, err
		}
	}

	if roleID != nil {
		exists, err := qtx.RoleExists(ctx, roleID.String())
		if err != nil {
			return UserResponse{}, err
		}
		if !exists {
			return UserResponse{}, usererrors.ErrRoleNotFound
		}
	}

	u.Name = req.Name
	u.Email = email
	u.UserType = req.UserType
	u.RoleID = roleID
	u.Role = nil

	if err := qtx.Update(ctx, u); err != nil {
		s.logger.Error("update user persist failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update user commit failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}
	s.logger.Info("update user success", zap.String("user_id", id))

	return mapToResponse(*u), nil
}

func (s *service) SetDisabled(ctx context.Context, id string, disabled bool) (UserResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("set user disabled begin tx failed", zap.Error(err))
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, usererrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}

	u.Disabled = disabled

	if err := qtx.Update(ctx, u); err != nil {
		s.logger.Error("set user disabled persist failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("set user disabled commit failed", zap.String("user_id", id), zap.Error(err))
		return UserResponse{}, err
	}
	s.logger.Info("set user disabled success",
		zap.String("user_id", id),
		zap.Bool("disabled", disabled),
	)

	return mapToResponse(*u), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usererrors.ErrUserNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

// resolveRoleID enforces that regular users always carry a role while
// admins never do.
func resolveRoleID(userType string, roleID *string) (*uuid.UUID, error) {
	switch userType {
	case TypeAdmin:
		return nil, nil
	case TypeUser:
		if roleID == nil || *roleID == "" {
			return nil, usererrors.ErrRoleRequired
		}
		parsed, err := uuid.Parse(*roleID)
		if err != nil {
			return nil, usererrors.ErrInvalidRoleID
		}
		return &parsed, nil
	default:
		return nil, usererrors.ErrInvalidUserType
	}
}

func mapToResponse(u User) UserResponse {
	resp := UserResponse{
		ID:       u.ID.String(),
		Name:     u.Name,
		Email:    u.Email,
		UserType: u.UserType,
		Disabled: u.Disabled,
	}
	if u.RoleID != nil {
		v := u.RoleID.String()
		resp.RoleID = &v
	}
	if u.Role != nil {
		resp.RoleName = &u.Role.Name
	}
	return resp
}

func mapToListResponse(users []User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = mapToResponse(u)
	}
	return resp
}
