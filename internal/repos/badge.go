package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

// EarnedBadge joins a catalog badge with when the student earned it.
type EarnedBadge struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Icon        string            `json:"icon"`
	Rarity      types.BadgeRarity `json:"rarity"`
	EarnedAt    time.Time         `json:"earned_at"`
}

type BadgeRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, rows []*types.Badge) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
	ListUnearned(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.Badge, error)
	ListEarned(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]EarnedBadge, error)
	AwardIgnoreDuplicate(ctx context.Context, tx *gorm.DB, award *types.StudentBadge) error
}

type badgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewBadgeRepo(db *gorm.DB, baseLog *logger.Logger) BadgeRepo {
	return &badgeRepo{db: db, log: baseLog.With("repo", "BadgeRepo")}
}

func (r *badgeRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *badgeRepo) CreateBatch(ctx context.Context, tx *gorm.DB, rows []*types.Badge) error {
	if len(rows) == 0 {
		return nil
	}
	return r.conn(tx).WithContext(ctx).Create(&rows).Error
}

func (r *badgeRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).Model(&types.Badge{}).Count(&count).Error
	return count, err
}

func (r *badgeRepo) ListUnearned(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]*types.Badge, error) {
	var rows []*types.Badge
	err := r.conn(tx).WithContext(ctx).
		Where("id NOT IN (?)",
			r.conn(tx).Model(&types.StudentBadge{}).Select("badge_id").Where("student_id = ?", studentID)).
		Find(&rows).Error
	return rows, err
}

func (r *badgeRepo) ListEarned(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) ([]EarnedBadge, error) {
	var rows []EarnedBadge
	err := r.conn(tx).WithContext(ctx).
		Model(&types.StudentBadge{}).
		Select("badges.id, badges.name, badges.description, badges.icon, badges.rarity, student_badges.earned_at").
		Joins("JOIN badges ON badges.id = student_badges.badge_id").
		Where("student_badges.student_id = ?", studentID).
		Order("student_badges.earned_at DESC").
		Scan(&rows).Error
	return rows, err
}

// AwardIgnoreDuplicate inserts a StudentBadge and swallows the conflict on
// (student_id, badge_id), so concurrent evaluations cannot double-award.
func (r *badgeRepo) AwardIgnoreDuplicate(ctx context.Context, tx *gorm.DB, award *types.StudentBadge) error {
	return r.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "badge_id"}},
			DoNothing: true,
		}).
		Create(award).Error
}
