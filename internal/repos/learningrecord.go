package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

// OverviewStats is the per-period rollup the report endpoint returns.
type OverviewStats struct {
	TotalSessions     int64    `json:"total_sessions"`
	CompletedSessions int64    `json:"completed_sessions"`
	TotalScore        int64    `json:"total_score"`
	TotalMaxScore     int64    `json:"total_max_score"`
	TotalTimeSeconds  int64    `json:"total_time_seconds"`
	AvgScorePercent   *float64 `json:"avg_score_percent"`
}

type LearningRecordRepo interface {
	GetByStudentAndSet(ctx context.Context, tx *gorm.DB, studentID, setID uuid.UUID) (*types.LearningRecord, error)
	Create(ctx context.Context, tx *gorm.DB, record *types.LearningRecord) error
	Update(ctx context.Context, tx *gorm.DB, record *types.LearningRecord) error
	CountCompleted(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) (int64, error)
	CountCompletedBetween(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, from, to time.Time) (int64, error)
	ListCompletedBetween(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, from, to time.Time) ([]*types.LearningRecord, error)
	Overview(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, from, to time.Time) (*OverviewStats, error)
}

type learningRecordRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearningRecordRepo(db *gorm.DB, baseLog *logger.Logger) LearningRecordRepo {
	return &learningRecordRepo{db: db, log: baseLog.With("repo", "LearningRecordRepo")}
}

func (r *learningRecordRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *learningRecordRepo) GetByStudentAndSet(ctx context.Context, tx *gorm.DB, studentID, setID uuid.UUID) (*types.LearningRecord, error) {
	var record types.LearningRecord
	err := r.conn(tx).WithContext(ctx).
		Where("student_id = ? AND daily_set_id = ?", studentID, setID).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *learningRecordRepo) Create(ctx context.Context, tx *gorm.DB, record *types.LearningRecord) error {
	return r.conn(tx).WithContext(ctx).Create(record).Error
}

func (r *learningRecordRepo) Update(ctx context.Context, tx *gorm.DB, record *types.LearningRecord) error {
	return r.conn(tx).WithContext(ctx).Save(record).Error
}

func (r *learningRecordRepo) CountCompleted(ctx context.Context, tx *gorm.DB, studentID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.LearningRecord{}).
		Where("student_id = ? AND is_completed = ?", studentID, true).
		Count(&count).Error
	return count, err
}

// CountCompletedBetween counts completed records whose completion time
// falls in [from, to). Callers derive the bounds from the injected clock
// so "today" follows the configured timezone.
func (r *learningRecordRepo) CountCompletedBetween(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, from, to time.Time) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.LearningRecord{}).
		Where("student_id = ? AND is_completed = ? AND completed_at >= ? AND completed_at < ?", studentID, true, from, to).
		Count(&count).Error
	return count, err
}

func (r *learningRecordRepo) ListCompletedBetween(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, from, to time.Time) ([]*types.LearningRecord, error) {
	var rows []*types.LearningRecord
	err := r.conn(tx).WithContext(ctx).
		Where("student_id = ? AND is_completed = ? AND completed_at >= ? AND completed_at < ?", studentID, true, from, to).
		Order("completed_at ASC").
		Find(&rows).Error
	return rows, err
}

func (r *learningRecordRepo) Overview(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, from, to time.Time) (*OverviewStats, error) {
	var stats OverviewStats
	err := r.conn(tx).WithContext(ctx).
		Model(&types.LearningRecord{}).
		Select(`COUNT(*) AS total_sessions,
			SUM(CASE WHEN is_completed THEN 1 ELSE 0 END) AS completed_sessions,
			COALESCE(SUM(total_score), 0) AS total_score,
			COALESCE(SUM(max_score), 0) AS total_max_score,
			COALESCE(SUM(time_spent_seconds), 0) AS total_time_seconds,
			AVG(CASE WHEN is_completed THEN 100.0 * total_score / NULLIF(max_score, 0) END) AS avg_score_percent`).
		Where("student_id = ? AND created_at >= ? AND created_at < ?", studentID, from, to).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
