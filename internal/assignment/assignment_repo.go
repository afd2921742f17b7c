package assignment

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filter narrows audit listings. A nil field means "any".
type Filter struct {
	Date   *time.Time
	UserID *string
}

//go:generate mockgen -source=assignment_repo.go -destination=mock/assignment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Assignment) error
	CreateBatch(ctx context.Context, assignments []Assignment) error
	FindByID(ctx context.Context, id string) (*Assignment, error)
	FindAll(ctx context.Context, filter Filter) ([]Assignment, error)
	FindByUserSince(ctx context.Context, userID string, since time.Time) ([]Assignment, error)
	Update(ctx context.Context, a *Assignment) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx rebinds the repository to the caller's transaction, so its
// statements commit and roll back together with the outbox rows written
// on the same tx instead of autocommitting on the pool.
func (r *repository) WithTx(tx *sql.Tx) Repository {
	session := r.db.Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = tx
	return &repository{db: session}
}

func (r *repository) Create(ctx context.Context, a *Assignment) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(a).Error
}

func (r *repository) CreateBatch(ctx context.Context, assignments []Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(&assignments).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Assignment, error) {
	var a Assignment
	err := r.db.WithContext(ctx).
		Preload("Task").
		Preload("User").
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) FindAll(ctx context.Context, filter Filter) ([]Assignment, error) {
	db := r.db.WithContext(ctx).
		Preload("Task").
		Preload("User")

	if filter.Date != nil {
		db = db.Where("assigned_at >= ? AND assigned_at < ?", *filter.Date, filter.Date.AddDate(0, 0, 1))
	}
	if filter.UserID != nil && *filter.UserID != "" {
		db = db.Where("user_id = ?", *filter.UserID)
	}

	var assignments []Assignment
	err := db.Order("assigned_at DESC").Find(&assignments).Error
	return assignments, err
}

func (r *repository) FindByUserSince(ctx context.Context, userID string, since time.Time) ([]Assignment, error) {
	var assignments []Assignment
	err := r.db.WithContext(ctx).
		Preload("Task").
		Where("user_id = ?", userID).
		Where("assigned_at >= ?", since).
		Order("assigned_at DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *repository) Update(ctx context.Context, a *Assignment) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(a).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Assignment{}, "id = ?", id).Error
}
