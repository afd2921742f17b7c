package routine

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=routine_repo.go -destination=mock/routine_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	CreateBatch(ctx context.Context, routines []Routine) error
	FindAll(ctx context.Context) ([]Routine, error)
	FindActiveByUser(ctx context.Context, userID string) ([]Routine, error)
	FindByID(ctx context.Context, id string) (*Routine, error)
	Exists(ctx context.Context, taskID, userID string) (bool, error)
	TaskExists(ctx context.Context, taskID string) (bool, error)
	UserExists(ctx context.Context, userID string) (bool, error)
	Update(ctx context.Context, r *Routine) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository to the caller's transaction so its
// statements join it instead of autocommitting on the pool.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) CreateBatch(ctx context.Context, routines []Routine) error {
	if len(routines) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(&routines).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Routine, error) {
	var routines []Routine
	err := r.db.WithContext(ctx).
		Preload("Task").
		Preload("User").
		Order("created_at DESC").
		Find(&routines).Error
	return routines, err
}

func (r *repository) FindActiveByUser(ctx context.Context, userID string) ([]Routine, error) {
	var routines []Routine
	err := r.db.WithContext(ctx).
		Preload("Task").
		Where("user_id = ?", userID).
		Where("active = ?", true).
		Find(&routines).Error
	return routines, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Routine, error) {
	var routine Routine
	err := r.db.WithContext(ctx).
		Preload("Task").
		Preload("User").
		First(&routine, "id = ?", id).Error
	return &routine, err
}

func (r *repository) Exists(ctx context.Context, taskID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Routine{}).
		Where("task_id = ?", taskID).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) TaskExists(ctx context.Context, taskID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("tasks").
		Where("id = ?", taskID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) UserExists(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("users").
		Where("id = ?", userID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) Update(ctx context.Context, routine *Routine) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(routine).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Routine{}, "id = ?", id).Error
}
