package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

// SubjectStatRow is one per-subject accuracy row (graded subjects only).
type SubjectStatRow struct {
	Subject types.SubjectType `json:"subject"`
	Correct int64             `json:"correct"`
	Total   int64             `json:"total"`
	AvgTime float64           `json:"avg_time"`
}

type QuestionResponseRepo interface {
	CreateBatch(ctx context.Context, tx *gorm.DB, rows []*types.QuestionResponse) error
	DeleteByRecordID(ctx context.Context, tx *gorm.DB, recordID uuid.UUID) error
	RecentBySubject(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, subject types.SubjectType, limit int) ([]*types.QuestionResponse, error)
	CountCorrectBySubject(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, subject types.SubjectType) (int64, error)
	SubjectStats(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, from, to *time.Time) ([]SubjectStatRow, error)
}

type questionResponseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQuestionResponseRepo(db *gorm.DB, baseLog *logger.Logger) QuestionResponseRepo {
	return &questionResponseRepo{db: db, log: baseLog.With("repo", "QuestionResponseRepo")}
}

func (r *questionResponseRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *questionResponseRepo) CreateBatch(ctx context.Context, tx *gorm.DB, rows []*types.QuestionResponse) error {
	if len(rows) == 0 {
		return nil
	}
	return r.conn(tx).WithContext(ctx).Create(&rows).Error
}

func (r *questionResponseRepo) DeleteByRecordID(ctx context.Context, tx *gorm.DB, recordID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("learning_record_id = ?", recordID).
		Delete(&types.QuestionResponse{}).Error
}

// RecentBySubject returns the student's most recent responses to questions
// of one subject, newest first. Used by the subject streak badges, which
// require the full window to be correct.
func (r *questionResponseRepo) RecentBySubject(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, subject types.SubjectType, limit int) ([]*types.QuestionResponse, error) {
	var rows []*types.QuestionResponse
	err := r.conn(tx).WithContext(ctx).
		Model(&types.QuestionResponse{}).
		Joins("JOIN questions ON questions.id = question_responses.question_id").
		Joins("JOIN learning_records ON learning_records.id = question_responses.learning_record_id").
		Where("learning_records.student_id = ? AND questions.subject = ?", studentID, subject).
		Order("question_responses.created_at DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *questionResponseRepo) CountCorrectBySubject(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, subject types.SubjectType) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.QuestionResponse{}).
		Joins("JOIN questions ON questions.id = question_responses.question_id").
		Joins("JOIN learning_records ON learning_records.id = question_responses.learning_record_id").
		Where("learning_records.student_id = ? AND questions.subject = ? AND question_responses.is_correct = ?", studentID, subject, true).
		Count(&count).Error
	return count, err
}

// SubjectStats aggregates correctness per graded subject. A nil from/to
// leaves that bound open (the badge evaluator wants all-time numbers, the
// report endpoint passes its period).
func (r *questionResponseRepo) SubjectStats(ctx context.Context, tx *gorm.DB, studentID uuid.UUID, from, to *time.Time) ([]SubjectStatRow, error) {
	q := r.conn(tx).WithContext(ctx).
		Model(&types.QuestionResponse{}).
		Select(`questions.subject AS subject,
			SUM(CASE WHEN question_responses.is_correct THEN 1 ELSE 0 END) AS correct,
			COUNT(*) AS total,
			COALESCE(AVG(question_responses.time_spent_seconds), 0) AS avg_time`).
		Joins("JOIN questions ON questions.id = question_responses.question_id").
		Joins("JOIN learning_records ON learning_records.id = question_responses.learning_record_id").
		Where("learning_records.student_id = ?", studentID).
		Where("questions.subject NOT IN ?", []types.SubjectType{types.SubjectEmotionCheck, types.SubjectReadinessCheck}).
		Group("questions.subject")
	if from != nil {
		q = q.Where("learning_records.created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("learning_records.created_at < ?", *to)
	}
	var rows []SubjectStatRow
	err := q.Scan(&rows).Error
	return rows, err
}
