package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

type ProfileRepo interface {
	Create(ctx context.Context, tx *gorm.DB, profile *types.Profile) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Profile, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Profile, error)
	UpdateProgress(ctx context.Context, tx *gorm.DB, id uuid.UUID, streak, totalPoints int) error
	IsChildOf(ctx context.Context, tx *gorm.DB, studentID, parentID uuid.UUID) (bool, error)
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return &profileRepo{db: db, log: baseLog.With("repo", "ProfileRepo")}
}

func (r *profileRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *profileRepo) Create(ctx context.Context, tx *gorm.DB, profile *types.Profile) error {
	return r.conn(tx).WithContext(ctx).Create(profile).Error
}

func (r *profileRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Profile, error) {
	var profile types.Profile
	err := r.conn(tx).WithContext(ctx).Where("id = ?", id).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.Profile, error) {
	var profile types.Profile
	err := r.conn(tx).WithContext(ctx).Where("email = ?", email).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) UpdateProgress(ctx context.Context, tx *gorm.DB, id uuid.UUID, streak, totalPoints int) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.Profile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"streak_count": streak,
			"total_points": totalPoints,
		}).Error
}

func (r *profileRepo) IsChildOf(ctx context.Context, tx *gorm.DB, studentID, parentID uuid.UUID) (bool, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.Profile{}).
		Where("id = ? AND parent_id = ?", studentID, parentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
