package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

type DailySetRepo interface {
	CountPublished(ctx context.Context, tx *gorm.DB, grade, semester int) (int64, error)
	GetPublished(ctx context.Context, tx *gorm.DB, grade, semester, setNumber int) (*types.DailySet, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.DailySet, error)
	MaxSetNumber(ctx context.Context, tx *gorm.DB, grade, semester int) (int, error)
	Create(ctx context.Context, tx *gorm.DB, set *types.DailySet) error
}

type dailySetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailySetRepo(db *gorm.DB, baseLog *logger.Logger) DailySetRepo {
	return &dailySetRepo{db: db, log: baseLog.With("repo", "DailySetRepo")}
}

func (r *dailySetRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *dailySetRepo) CountPublished(ctx context.Context, tx *gorm.DB, grade, semester int) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.DailySet{}).
		Where("grade = ? AND semester = ? AND is_published = ?", grade, semester, true).
		Count(&count).Error
	return count, err
}

func (r *dailySetRepo) GetPublished(ctx context.Context, tx *gorm.DB, grade, semester, setNumber int) (*types.DailySet, error) {
	var set types.DailySet
	err := r.conn(tx).WithContext(ctx).
		Where("grade = ? AND semester = ? AND set_number = ? AND is_published = ?", grade, semester, setNumber, true).
		First(&set).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *dailySetRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.DailySet, error) {
	var set types.DailySet
	err := r.conn(tx).WithContext(ctx).Where("id = ?", id).First(&set).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &set, nil
}

func (r *dailySetRepo) MaxSetNumber(ctx context.Context, tx *gorm.DB, grade, semester int) (int, error) {
	var max *int
	err := r.conn(tx).WithContext(ctx).
		Model(&types.DailySet{}).
		Select("MAX(set_number)").
		Where("grade = ? AND semester = ?", grade, semester).
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max, nil
}

func (r *dailySetRepo) Create(ctx context.Context, tx *gorm.DB, set *types.DailySet) error {
	return r.conn(tx).WithContext(ctx).Create(set).Error
}
