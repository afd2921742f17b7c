package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/faresbyte/tawseel-task-system/internal/assignment"
	"github.com/faresbyte/tawseel-task-system/internal/user"

	"github.com/redis/go-redis/v9"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// CacheKey is where the computed overview lives in redis. The lifecycle
// consumer deletes it on every assignment change.
const CacheKey = "report:overview"

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	Overview(ctx context.Context) (Overview, error)
	ExportExcel(ctx context.Context) (*bytes.Buffer, string, error)
}

type service struct {
	assignments assignment.Repository
	users       user.Repository
	rdb         *redis.Client
	cacheTTL    time.Duration
	group       singleflight.Group
	logger      *zap.Logger
}

func NewService(
	assignments assignment.Repository,
	users user.Repository,
	rdb *redis.Client,
	cacheTTL time.Duration,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("report.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.service")
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &service{
		assignments: assignments,
		users:       users,
		rdb:         rdb,
		cacheTTL:    cacheTTL,
		logger:      l,
	}
}

func (s *service) Overview(ctx context.Context) (Overview, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, CacheKey).Result(); err == nil {
			var overview Overview
			if err := json.Unmarshal([]byte(cached), &overview); err == nil {
				return overview, nil
			}
			s.logger.Warn("decode cached overview failed, recomputing")
		}
	}

	// Collapse concurrent recomputes into one database pass.
	v, err, _ := s.group.Do(CacheKey, func() (any, error) {
		return s.compute(ctx)
	})
	if err != nil {
		return Overview{}, err
	}
	overview := v.(Overview)

	if s.rdb != nil {
		payload, err := json.Marshal(overview)
		if err == nil {
			if err := s.rdb.Set(ctx, CacheKey, string(payload), s.cacheTTL).Err(); err != nil {
				s.logger.Warn("cache overview failed", zap.Error(err))
			}
		}
	}

	return overview, nil
}

func (s *service) compute(ctx context.Context) (Overview, error) {
	var (
		assignments []assignment.Assignment
		users       []user.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		assignments, err = s.assignments.FindAll(gctx, assignment.Filter{})
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.users.FindAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return Overview{}, err
	}

	perUser := make(map[string]*EmployeeStats, len(users))
	for _, u := range users {
		if u.UserType != user.TypeUser {
			continue
		}
		perUser[u.ID.String()] = &EmployeeStats{
			UserID:   u.ID.String(),
			UserName: u.Name,
		}
	}

	var global GlobalStats
	var deficiencies []DeficiencyRecord

	for _, a := range assignments {
		global.Total++
		stats := perUser[a.UserID.String()]
		if stats == nil {
			// Assignments of deleted users still count globally.
			stats = &EmployeeStats{UserID: a.UserID.String()}
			perUser[a.UserID.String()] = stats
		}
		stats.Total++

		switch a.Status {
		case assignment.StatusDone:
			global.Completed++
			stats.Completed++
		case assignment.StatusDeficient:
			global.Deficient++
			stats.Deficient++
			rec := DeficiencyRecord{
				AssignmentID: a.ID.String(),
				UserID:       a.UserID.String(),
				Reason:       a.AdminNotes,
				FlaggedAt:    a.UpdatedAt,
			}
			if a.Task != nil {
				rec.TaskTitle = a.Task.Title
			}
			if a.User != nil {
				rec.UserName = a.User.Name
			}
			deficiencies = append(deficiencies, rec)
		case assignment.StatusRejected:
			global.Rejected++
			stats.Rejected++
		default:
			global.Pending++
			stats.Pending++
		}
	}

	global.CompletionRate = completionRate(global.Completed, global.Total)

	list := make([]EmployeeStats, 0, len(perUser))
	for _, stats := range perUser {
		stats.CompletionRate = completionRate(stats.Completed, stats.Total)
		list = append(list, *stats)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].UserName < list[j].UserName })

	sort.Slice(deficiencies, func(i, j int) bool {
		return deficiencies[i].FlaggedAt.After(deficiencies[j].FlaggedAt)
	})

	return Overview{
		GeneratedAt:  time.Now().UTC(),
		Global:       global,
		PerUser:      list,
		Deficiencies: deficiencies,
	}, nil
}

func completionRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

func (s *service) ExportExcel(ctx context.Context) (*bytes.Buffer, string, error) {
	overview, err := s.Overview(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const statsSheet = "Completion"
	f.SetSheetName("Sheet1", statsSheet)

	headers := []string{"Employee", "Total", "Completed", "Deficient", "Pending", "Rejected", "Completion %"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(statsSheet, cell, h)
	}
	for row, stats := range overview.PerUser {
		values := []any{
			stats.UserName, stats.Total, stats.Completed,
			stats.Deficient, stats.Pending, stats.Rejected, stats.CompletionRate,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(statsSheet, cell, v)
		}
	}

	const defSheet = "Deficiencies"
	if _, err := f.NewSheet(defSheet); err != nil {
		return nil, "", err
	}
	defHeaders := []string{"Task", "Employee", "Reason", "Flagged At"}
	for i, h := range defHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(defSheet, cell, h)
	}
	for row, rec := range overview.Deficiencies {
		values := []any{rec.TaskTitle, rec.UserName, rec.Reason, rec.FlaggedAt.Format("2006-01-02 15:04")}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(defSheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("task-report-%s.xlsx", time.Now().Format("2006-01-02"))
	return buf, filename, nil
}
