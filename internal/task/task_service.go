package task

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/faresbyte/tawseel-task-system/internal/shared/apperror"
	taskerrors "github.com/faresbyte/tawseel-task-system/internal/task/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

//go:generate mockgen -source=task_service.go -destination=mock/task_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateTaskRequest) (TaskResponse, error)
	GetAll(ctx context.Context) ([]TaskResponse, error)
	GetByID(ctx context.Context, id string) (TaskResponse, error)
	Update(ctx context.Context, id string, req UpdateTaskRequest) (TaskResponse, error)
	AddSubtask(ctx context.Context, id string, req AddSubtaskRequest) (TaskResponse, error)
	RemoveSubtask(ctx context.Context, id, subtaskID string) (TaskResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateTaskRequest) (TaskResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return TaskResponse{}, apperror.ErrUnauthorized
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return TaskResponse{}, taskerrors.ErrEmptyTitle
	}

	subtasks := make([]SubTask, 0, len(req.Subtasks))
	for _, st := range req.Subtasks {
		stTitle := strings.TrimSpace(st)
		if stTitle == "" {
			return TaskResponse{}, taskerrors.ErrEmptySubtaskTitle
		}
		subtasks = append(subtasks, SubTask{ID: uuid.New().String(), Title: stTitle})
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create task begin tx failed", zap.Error(err))
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t := &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: req.Description,
		CreatedBy:   actor,
		Subtasks:    datatypes.NewJSONSlice(subtasks),
	}

	if err := qtx.Create(ctx, t); err != nil {
		s.logger.Error("create task persist failed", zap.Error(err))
		return TaskResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create task commit failed", zap.Error(err))
		return TaskResponse{}, err
	}
	s.logger.Info("create task success",
		zap.String("task_id", t.ID.String()),
		zap.Int("subtasks", len(subtasks)),
	)

	return mapToResponse(*t), nil
}

func (s *service) GetAll(ctx context.Context) ([]TaskResponse, error) {
	tasks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(tasks), nil
}

func (s *service) GetByID(ctx context.Context, id string) (TaskResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskResponse{}, taskerrors.ErrTaskNotFound
		}
		return TaskResponse{}, err
	}
	return mapToResponse(*t), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateTaskRequest) (TaskResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return TaskResponse{}, taskerrors.ErrEmptyTitle
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update task begin tx failed", zap.Error(err))
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskResponse{}, taskerrors.ErrTaskNotFound
		}
		return TaskResponse{}, err
	}

	t.Title = title
	t.Description = req.Description

	if err := qtx.Update(ctx, t); err != nil {
		s.logger.Error("update task persist failed", zap.String("task_id", id), zap.Error(err))
		return TaskResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update task commit failed", zap.String("task_id", id), zap.Error(err))
		return TaskResponse{}, err
	}
	s.logger.Info("update task success", zap.String("task_id", id))

	return mapToResponse(*t), nil
}

func (s *service) AddSubtask(ctx context.Context, id string, req AddSubtaskRequest) (TaskResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return TaskResponse{}, taskerrors.ErrEmptySubtaskTitle
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("add subtask begin tx failed", zap.Error(err))
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskResponse{}, taskerrors.ErrTaskNotFound
		}
		return TaskResponse{}, err
	}

	t.Subtasks = append(t.Subtasks, SubTask{
		ID:          uuid.New().String(),
		Title:       title,
		Description: strings.TrimSpace(req.Description),
	})

	if err := qtx.Update(ctx, t); err != nil {
		s.logger.Error("add subtask persist failed", zap.String("task_id", id), zap.Error(err))
		return TaskResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("add subtask commit failed", zap.String("task_id", id), zap.Error(err))
		return TaskResponse{}, err
	}
	s.logger.Info("add subtask success", zap.String("task_id", id))

	return mapToResponse(*t), nil
}

func (s *service) RemoveSubtask(ctx context.Context, id, subtaskID string) (TaskResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("remove subtask begin tx failed", zap.Error(err))
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TaskResponse{}, taskerrors.ErrTaskNotFound
		}
		return TaskResponse{}, err
	}

	kept := make([]SubTask, 0, len(t.Subtasks))
	found := false
	for _, st := range t.Subtasks {
		if st.ID == subtaskID {
			found = true
			continue
		}
		kept = append(kept, st)
	}
	if !found {
		return TaskResponse{}, taskerrors.ErrSubtaskNotFound
	}

	t.Subtasks = datatypes.NewJSONSlice(kept)

	if err := qtx.Update(ctx, t); err != nil {
		s.logger.Error("remove subtask persist failed", zap.String("task_id", id), zap.Error(err))
		return TaskResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("remove subtask commit failed", zap.String("task_id", id), zap.Error(err))
		return TaskResponse{}, err
	}
	s.logger.Info("remove subtask success",
		zap.String("task_id", id),
		zap.String("subtask_id", subtaskID),
	)

	return mapToResponse(*t), nil
}

// Delete removes the definition only. Existing assignments keep their
// task_id and show up in audits even after the task is gone.
func (s *service) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return taskerrors.ErrTaskNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func mapToResponse(t Task) TaskResponse {
	subtasks := make([]SubTaskResponse, len(t.Subtasks))
	for i, st := range t.Subtasks {
		subtasks[i] = SubTaskResponse{ID: st.ID, Title: st.Title, Description: st.Description}
	}
	return TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		CreatedBy:   t.CreatedBy.String(),
		Subtasks:    subtasks,
	}
}

func mapToListResponse(tasks []Task) []TaskResponse {
	resp := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = mapToResponse(t)
	}
	return resp
}
