package role

import (
	"context"
	"database/sql"
	"errors"

	roleerrors "github.com/faresbyte/tawseel-task-system/internal/role/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=role_service.go -destination=mock/role_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateRoleRequest) (RoleResponse, error)
	GetAll(ctx context.Context) ([]RoleResponse, error)
	GetByID(ctx context.Context, id string) (RoleResponse, error)
	Update(ctx context.Context, id string, req UpdateRoleRequest) (RoleResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("role.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("role.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// Create stores a new label. Names are not checked for uniqueness; two
// roles with the same name are allowed.
func (s *service) Create(ctx context.Context, req CreateRoleRequest) (RoleResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create role begin tx failed", zap.Error(err))
		return RoleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r := &Role{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}

	if err := qtx.Create(ctx, r); err != nil {
		s.logger.Error("create role persist failed", zap.Error(err))
		return RoleResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create role commit failed", zap.Error(err))
		return RoleResponse{}, err
	}
	s.logger.Info("create role success", zap.String("role_id", r.ID.String()), zap.String("name", r.Name))

	return mapToResponse(*r), nil
}

func (s *service) GetAll(ctx context.Context) ([]RoleResponse, error) {
	roles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(roles), nil
}

func (s *service) GetByID(ctx context.Context, id string) (RoleResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleResponse{}, roleerrors.ErrRoleNotFound
		}
		return RoleResponse{}, err
	}
	return mapToResponse(*r), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateRoleRequest) (RoleResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update role begin tx failed", zap.Error(err))
		return RoleResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleResponse{}, roleerrors.ErrRoleNotFound
		}
		return RoleResponse{}, err
	}

	r.Name = req.Name
	r.Description = req.Description

	if err := qtx.Update(ctx, r); err != nil {
		s.logger.Error("update role persist failed", zap.String("role_id", id), zap.Error(err))
		return RoleResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update role commit failed", zap.String("role_id", id), zap.Error(err))
		return RoleResponse{}, err
	}
	s.logger.Info("update role success", zap.String("role_id", id))

	return mapToResponse(*r), nil
}

// Delete removes the label only. Users pointing at it keep their
// role_id; the dangling reference is tolerated rather than cascaded.
func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return roleerrors.ErrRoleNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func mapToResponse(r Role) RoleResponse {
	return RoleResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Description: r.Description,
	}
}

func mapToListResponse(roles []Role) []RoleResponse {
	resp := make([]RoleResponse, len(roles))
	for i, r := range roles {
		resp[i] = mapToResponse(r)
	}
	return resp
}
