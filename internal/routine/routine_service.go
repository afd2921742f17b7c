package routine

import (
	"context"
	"database/sql"
	"errors"

	routineerrors "github.com/faresbyte/tawseel-task-system/internal/routine/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=routine_service.go -destination=mock/routine_service_mock.go -package=mock
type Service interface {
	CreateBatch(ctx context.Context, actorID string, req CreateRoutinesRequest) ([]RoutineResponse, error)
	GetAll(ctx context.Context) ([]RoutineResponse, error)
	GetByID(ctx context.Context, id string) (RoutineResponse, error)
	SetActive(ctx context.Context, id string, active bool) (RoutineResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("routine.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("routine.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

// CreateBatch creates one routine per task and user pair. Pairs that
// already have a routine are skipped rather than duplicated, so the call
// is safe to repeat with an overlapping selection.
func (s *service) CreateBatch(ctx context.Context, actorID string, req CreateRoutinesRequest) ([]RoutineResponse, error) {
	s.logger.Debug("create routines requested",
		zap.Int("tasks", len(req.TaskIDs)),
		zap.Int("users", len(req.UserIDs)),
		zap.String("cadence", req.Cadence),
	)

	actor, err := uuid.Parse(actorID)
	if err != nil {
		return nil, routineerrors.ErrInvalidUserID
	}

	switch req.Cadence {
	case CadenceDaily, CadenceWeekly, CadenceMonthly:
	default:
		return nil, routineerrors.ErrInvalidCadence
	}
	if len(req.TaskIDs) == 0 {
		return nil, routineerrors.ErrNoTasksSelected
	}
	if len(req.UserIDs) == 0 {
		return nil, routineerrors.ErrNoUsersSelected
	}

	taskIDs := make([]uuid.UUID, len(req.TaskIDs))
	for i, id := range req.TaskIDs {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, routineerrors.ErrInvalidTaskID
		}
		taskIDs[i] = parsed
	}
	userIDs := make([]uuid.UUID, len(req.UserIDs))
	for i, id := range req.UserIDs {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, routineerrors.ErrInvalidUserID
		}
		userIDs[i] = parsed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create routines begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	for _, taskID := range taskIDs {
		exists, err := qtx.TaskExists(ctx, taskID.String())
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, routineerrors.ErrTaskNotFound
		}
	}
	for _, userID := range userIDs {
		exists, err := qtx.UserExists(ctx, userID.String())
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, routineerrors.ErrUserNotFound
		}
	}

	var routines []Routine
	for _, taskID := range taskIDs {
		for _, userID := range userIDs {
			exists, err := qtx.Exists(ctx, taskID.String(), userID.String())
			if err != nil {
				return nil, err
			}
			if exists {
				continue
			}
			routines = append(routines, Routine{
				ID:        uuid.New(),
				TaskID:    taskID,
				UserID:    userID,
				CreatedBy: actor,
				Cadence:   req.Cadence,
				Active:    true,
			})
		}
	}

	if err := qtx.CreateBatch(ctx, routines); err != nil {
		s.logger.Error("create routines persist failed", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create routines commit failed", zap.Error(err))
		return nil, err
	}
	s.logger.Info("create routines success",
		zap.Int("created", len(routines)),
		zap.Int("skipped", len(taskIDs)*len(userIDs)-len(routines)),
	)

	return mapToListResponse(routines), nil
}

func (s *service) GetAll(ctx context.Context) ([]RoutineResponse, error) {
	routines, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(routines), nil
}

func (s *service) GetByID(ctx context.Context, id string) (RoutineResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoutineResponse{}, routineerrors.ErrRoutineNotFound
		}
		return RoutineResponse{}, err
	}
	return mapToResponse(*r), nil
}

func (s *service) SetActive(ctx context.Context, id string, active bool) (RoutineResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("set routine active begin tx failed", zap.Error(err))
		return RoutineResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	r, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoutineResponse{}, routineerrors.ErrRoutineNotFound
		}
		return RoutineResponse{}, err
	}

	r.Active = active

	if err := qtx.Update(ctx, r); err != nil {
		s.logger.Error("set routine active persist failed", zap.String("routine_id", id), zap.Error(err))
		return RoutineResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("set routine active commit failed", zap.String("routine_id", id), zap.Error(err))
		return RoutineResponse{}, err
	}
	s.logger.Info("set routine active success",
		zap.String("routine_id", id),
		zap.Bool("active", active),
	)

	return mapToResponse(*r), nil
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
			return routineerrors.ErrRoutineNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func mapToResponse(r Routine) RoutineResponse {
	resp := RoutineResponse{
		ID:        r.ID.String(),
		TaskID:    r.TaskID.String(),
		UserID:    r.UserID.String(),
		CreatedBy: r.CreatedBy.String(),
		Cadence:   r.Cadence,
		Active:    r.Active,
	}
	if r.Task != nil {
		resp.TaskTitle = &r.Task.Title
	}
	if r.User != nil {
		resp.UserName = &r.User.Name
	}
	return resp
}

func mapToListResponse(routines []Routine) []RoutineResponse {
	resp := make([]RoutineResponse, len(routines))
	for i, r := range routines {
		resp[i] = mapToResponse(r)
	}
	return resp
}
