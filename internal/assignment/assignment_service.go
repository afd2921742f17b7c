package assignment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	assignmenterrors "github.com/faresbyte/tawseel-task-system/internal/assignment/errors"
	"github.com/faresbyte/tawseel-task-system/internal/events"
	"github.com/faresbyte/tawseel-task-system/internal/messaging/kafka"
	"github.com/faresbyte/tawseel-task-system/internal/routine"
	"github.com/faresbyte/tawseel-task-system/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

//go:generate mockgen -source=assignment_service.go -destination=mock/assignment_service_mock.go -package=mock
type Service interface {
	AssignBatch(ctx context.Context, actorID string, req AssignBatchRequest) ([]AssignmentResponse, error)
	ListTodayForUser(ctx context.Context, userID string) ([]AssignmentResponse, error)
	List(ctx context.Context, filter Filter) ([]AssignmentResponse, error)
	MarkDone(ctx context.Context, userID, id, notes string) (AssignmentResponse, error)
	Reject(ctx context.Context, userID, id, reason string) (AssignmentResponse, error)
	MarkDeficient(ctx context.Context, id, note string) (AssignmentResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	routines routine.Repository
	outbox   kafka.OutboxRepository
	loc      *time.Location
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	routines routine.Repository,
	outbox kafka.OutboxRepository,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("assignment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("assignment.service")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		db:       db,
		repo:     repo,
		routines: routines,
		outbox:   outbox,
		loc:      loc,
		logger:   l,
	}
}

// AssignBatch hands out a one-off assignment for every task and user
// pair, dated today, with an optional shared due date.
func (s *service) AssignBatch(ctx context.Context, actorID string, req AssignBatchRequest) ([]AssignmentResponse, error) {
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return nil, assignmenterrors.ErrInvalidUserID
	}
	if len(req.TaskIDs) == 0 {
		return nil, assignmenterrors.ErrNoTasksSelected
	}
	if len(req.UserIDs) == 0 {
		return nil, assignmenterrors.ErrNoUsersSelected
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		parsed, err := time.ParseInLocation("2006-01-02", *req.DueDate, s.loc)
		if err != nil {
			return nil, assignmenterrors.ErrInvalidDueDate
		}
		dueDate = &parsed
	}

	taskIDs := make([]uuid.UUID, len(req.TaskIDs))
	for i, id := range req.TaskIDs {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, assignmenterrors.ErrInvalidTaskID
		}
		taskIDs[i] = parsed
	}
	userIDs := make([]uuid.UUID, len(req.UserIDs))
	for i, id := range req.UserIDs {
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, assignmenterrors.ErrInvalidUserID
		}
		userIDs[i] = parsed
	}

	now := time.Now().In(s.loc)
	assignments := make([]Assignment, 0, len(taskIDs)*len(userIDs))
	for _, taskID := range taskIDs {
		for _, userID := range userIDs {
			assignments = append(assignments, Assignment{
				ID:         uuid.New(),
				TaskID:     taskID,
				UserID:     userID,
				AssignedBy: actor,
				Status:     StatusPending,
				AssignedAt: now,
				DueDate:    dueDate,
			})
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("assign batch begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	obtx := s.outbox.WithTx(tx)

	if err := qtx.CreateBatch(ctx, assignments); err != nil {
		s.logger.Error("assign batch persist failed", zap.Error(err))
		return nil, err
	}

	for _, a := range assignments {
		if err := s.enqueueEvent(ctx, obtx, events.TypeAssignmentCreated, a, ""); err != nil {
			s.logger.Error("assign batch enqueue event failed", zap.Error(err))
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("assign batch commit failed", zap.Error(err))
		return nil, err
	}
	s.logger.Info("assign batch success", zap.Int("created", len(assignments)))

	return mapToListResponse(assignments), nil
}

// ListTodayForUser returns the employee's work list for the current day.
// Routines that are due today but not yet materialized are returned as
// pending placeholders immediately; the rows are persisted in the
// background so repeated calls converge without blocking the reader.
func (s *service) ListTodayForUser(ctx context.Context, userID string) ([]AssignmentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	now := time.Now().In(s.loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)

	var (
		existing []Assignment
		due      []routine.Routine
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		existing, err = s.repo.FindByUserSince(gctx, userID, dayStart)
		return err
	})
	g.Go(func() error {
		routines, err := s.routines.FindActiveByUser(gctx, userID)
		if err != nil {
			// Routine fetch failing should not blank the whole day
			// view. Serve what we have and let the next call retry.
			log.Warn("fetch routines for materialization failed",
				zap.String("user_id", userID),
				zap.Error(err),
			)
			return nil
		}
		for _, r := range routines {
			if r.DueOn(now) {
				due = append(due, r)
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(existing))
	for _, a := range existing {
		seen[a.TaskID] = true
	}

	var placeholders []Assignment
	for _, r := range due {
		if seen[r.TaskID] {
			continue
		}
		seen[r.TaskID] = true
		placeholders = append(placeholders, Assignment{
			ID:         uuid.New(),
			TaskID:     r.TaskID,
			Task:       r.Task,
			UserID:     r.UserID,
			AssignedBy: r.CreatedBy,
			Status:     StatusPending,
			AssignedAt: now,
			AssignedOn: &dayStart,
		})
	}

	if len(placeholders) > 0 {
		log.Info("materializing routine assignments",
			zap.String("user_id", userID),
			zap.Int("count", len(placeholders)),
		)
		go s.materialize(placeholders)
	}

	return mapToListResponse(append(placeholders, existing...)), nil
}

// materialize persists placeholder rows outside the request path. The
// request context is gone by the time this runs, so it gets its own
// deadline. Duplicate inserts from concurrent dashboards are expected
// and dropped at ux_assignments_task_user_day on the assigned_on day
// column.
func (s *service) materialize(assignments []Assignment) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("materialize begin tx failed", zap.Error(err))
		return
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	obtx := s.outbox.WithTx(tx)

	if err := qtx.CreateBatch(ctx, assignments); err != nil {
		if isUniqueViolation(err) {
			s.logger.Debug("materialize skipped, rows already exist")
			return
		}
		s.logger.Error("materialize persist failed", zap.Error(err))
		return
	}

	for _, a := range assignments {
		if err := s.enqueueEvent(ctx, obtx, events.TypeAssignmentCreated, a, ""); err != nil {
			s.logger.Error("materialize enqueue event failed", zap.Error(err))
			return
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("materialize commit failed", zap.Error(err))
		return
	}

	s.logger.Info("materialize success", zap.Int("created", len(assignments)))
}

func (s *service) List(ctx context.Context, filter Filter) ([]AssignmentResponse, error) {
	assignments, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(assignments), nil
}

// MarkDone completes the assignment on behalf of the employee. When the
// notes are empty the previously written notes survive, which matters on
// the deficient rework path.
func (s *service) MarkDone(ctx context.Context, userID, id, notes string) (AssignmentResponse, error) {
	return s.submit(ctx, userID, id, StatusDone, notes)
}

// Reject declines the assignment. A non-blank reason is mandatory.
func (s *service) Reject(ctx context.Context, userID, id, reason string) (AssignmentResponse, error) {
	if strings.TrimSpace(reason) == "" {
		return AssignmentResponse{}, assignmenterrors.ErrRejectReasonRequired
	}
	return s.submit(ctx, userID, id, StatusRejected, reason)
}

func (s *service) submit(ctx context.Context, userID, id, targetStatus, notes string) (AssignmentResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("submit assignment requested",
		zap.String("assignment_id", id),
		zap.String("user_id", userID),
		zap.String("target_status", targetStatus),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("submit assignment begin tx failed", zap.Error(err))
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	obtx := s.outbox.WithTx(tx)

	a, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, assignmenterrors.ErrAssignmentNotFound
		}
		return AssignmentResponse{}, err
	}

	if a.UserID.String() != userID {
		return AssignmentResponse{}, assignmenterrors.ErrAssignmentNotOwned
	}
	if a.Submitted && a.Status != StatusDeficient {
		return AssignmentResponse{}, assignmenterrors.ErrAssignmentLocked
	}
	if !isAllowedStatusTransition(a.Status, targetStatus) {
		log.Warn("submit assignment transition invalid",
			zap.String("assignment_id", id),
			zap.String("from_status", a.Status),
			zap.String("to_status", targetStatus),
		)
		return AssignmentResponse{}, assignmenterrors.ErrInvalidStatusTransition
	}

	oldStatus := a.Status
	a.Status = targetStatus
	a.Submitted = true
	if trimmed := strings.TrimSpace(notes); trimmed != "" {
		a.EmployeeNotes = trimmed
	}
	switch targetStatus {
	case StatusDone:
		now := time.Now().In(s.loc)
		a.CompletedAt = &now
	case StatusRejected:
		a.CompletedAt = nil
	}

	if err := qtx.Update(ctx, a); err != nil {
		log.Error("submit assignment persist failed", zap.String("assignment_id", id), zap.Error(err))
		return AssignmentResponse{}, err
	}

	if err := s.enqueueEvent(ctx, obtx, events.TypeAssignmentStatusChanged, *a, oldStatus); err != nil {
		log.Error("submit assignment enqueue event failed", zap.String("assignment_id", id), zap.Error(err))
		return AssignmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("submit assignment commit failed", zap.String("assignment_id", id), zap.Error(err))
		return AssignmentResponse{}, err
	}
	log.Info("submit assignment success",
		zap.String("assignment_id", id),
		zap.String("status", targetStatus),
	)

	return mapToResponse(*a), nil
}

// MarkDeficient reopens a completed assignment during audit. The admin
// note replaces any previous one and the row becomes editable for the
// employee again.
func (s *service) MarkDeficient(ctx context.Context, id, note string) (AssignmentResponse, error) {
	trimmed := strings.TrimSpace(note)
	if trimmed == "" {
		return AssignmentResponse{}, assignmenterrors.ErrDeficiencyNoteRequired
	}

	log := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("mark deficient begin tx failed", zap.Error(err))
		return AssignmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	obtx := s.outbox.WithTx(tx)

	a, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AssignmentResponse{}, assignmenterrors.ErrAssignmentNotFound
		}
		return AssignmentResponse{}, err
	}

	if a.Status != StatusDone {
		return AssignmentResponse{}, assignmenterrors.ErrDeficiencyOnlyFromDone
	}

	oldStatus := a.Status
	a.Status = StatusDeficient
	a.AdminNotes = trimmed
	a.Submitted = false

	if err := qtx.Update(ctx, a); err != nil {
		log.Error("mark deficient persist failed", zap.String("assignment_id", id), zap.Error(err))
		return AssignmentResponse{}, err
	}

	if err := s.enqueueEvent(ctx, obtx, events.TypeAssignmentStatusChanged, *a, oldStatus); err != nil {
		log.Error("mark deficient enqueue event failed", zap.String("assignment_id", id), zap.Error(err))
		return AssignmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("mark deficient commit failed", zap.String("assignment_id", id), zap.Error(err))
		return AssignmentResponse{}, err
	}
	log.Info("mark deficient success", zap.String("assignment_id", id))

	return mapToResponse(*a), nil
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
			return assignmenterrors.ErrAssignmentNotFound
		}
		return err
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *service) enqueueEvent(
	ctx context.Context,
	outbox kafka.OutboxRepository,
	eventType string,
	a Assignment,
	oldStatus string,
) error {
	payload, err := json.Marshal(events.AssignmentLifecycleEvent{
		EventType:    eventType,
		AssignmentID: a.ID.String(),
		UserID:       a.UserID.String(),
		OldStatus:    oldStatus,
		NewStatus:    a.Status,
		OccurredAt:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	return outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "assignment",
		AggregateID:   a.ID.String(),
		EventType:     eventType,
		Topic:         events.AssignmentLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(strings.ToLower(err.Error()), "duplicate key value")
}

func mapToResponse(a Assignment) AssignmentResponse {
	resp := AssignmentResponse{
		ID:            a.ID.String(),
		TaskID:        a.TaskID.String(),
		UserID:        a.UserID.String(),
		AssignedBy:    a.AssignedBy.String(),
		Status:        a.Status,
		Submitted:     a.Submitted,
		EmployeeNotes: a.EmployeeNotes,
		AdminNotes:    a.AdminNotes,
		AssignedAt:    a.AssignedAt.Format(time.RFC3339),
	}
	if a.DueDate != nil {
		v := a.DueDate.Format("2006-01-02")
		resp.DueDate = &v
	}
	if a.Task != nil {
		resp.TaskTitle = &a.Task.Title
	}
	if a.User != nil {
		resp.UserName = &a.User.Name
	}
	if a.CompletedAt != nil {
		v := a.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &v
	}
	return resp
}

func mapToListResponse(assignments []Assignment) []AssignmentResponse {
	resp := make([]AssignmentResponse, len(assignments))
	for i, a := range assignments {
		resp[i] = mapToResponse(a)
	}
	return resp
}
