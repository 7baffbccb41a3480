package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

type DailyAssignmentRepo interface {
	ClassAssignmentExists(ctx context.Context, tx *gorm.DB, classID, setID uuid.UUID, assignedDate string) (bool, error)
	CreateBatchIgnoreDuplicates(ctx context.Context, tx *gorm.DB, rows []*types.DailyAssignment) error
}

type dailyAssignmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDailyAssignmentRepo(db *gorm.DB, baseLog *logger.Logger) DailyAssignmentRepo {
	return &dailyAssignmentRepo{db: db, log: baseLog.With("repo", "DailyAssignmentRepo")}
}

func (r *dailyAssignmentRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *dailyAssignmentRepo) ClassAssignmentExists(ctx context.Context, tx *gorm.DB, classID, setID uuid.UUID, assignedDate string) (bool, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.DailyAssignment{}).
		Where("class_id = ? AND student_id IS NULL AND daily_set_id = ? AND assigned_date = ?", classID, setID, assignedDate).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateBatchIgnoreDuplicates inserts the class row plus all member rows
// in one statement; conflicts on the natural key are dropped so the daily
// job can be re-run for the same date.
func (r *dailyAssignmentRepo) CreateBatchIgnoreDuplicates(ctx context.Context, tx *gorm.DB, rows []*types.DailyAssignment) error {
	if len(rows) == 0 {
		return nil
	}
	return r.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}
