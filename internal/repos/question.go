package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

type QuestionRepo interface {
	GetBySetID(ctx context.Context, tx *gorm.DB, setID uuid.UUID) ([]*types.Question, error)
	CreateBatch(ctx context.Context, tx *gorm.DB, rows []*types.Question) error
}

type questionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionRepo(db *gorm.DB, baseLog *logger.Logger) QuestionRepo {
	return &questionRepo{db: db, log: baseLog.With("repo", "QuestionRepo")}
}

func (r *questionRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *questionRepo) GetBySetID(ctx context.Context, tx *gorm.DB, setID uuid.UUID) ([]*types.Question, error) {
	var rows []*types.Question
	err := r.conn(tx).WithContext(ctx).
		Where("daily_set_id = ?", setID).
		Order("order_index ASC").
		Find(&rows).Error
	return rows, err
}

func (r *questionRepo) CreateBatch(ctx context.Context, tx *gorm.DB, rows []*types.Question) error {
	if len(rows) == 0 {
		return nil
	}
	return r.conn(tx).WithContext(ctx).Create(&rows).Error
}
