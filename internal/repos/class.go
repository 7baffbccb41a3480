package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

type ClassRepo interface {
	ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Class, error)
	ListMemberIDs(ctx context.Context, tx *gorm.DB, classID uuid.UUID) ([]uuid.UUID, error)
	TeacherHasStudent(ctx context.Context, tx *gorm.DB, teacherID, studentID uuid.UUID) (bool, error)
}

type classRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewClassRepo(db *gorm.DB, baseLog *logger.Logger) ClassRepo {
	return &classRepo{db: db, log: baseLog.With("repo", "ClassRepo")}
}

func (r *classRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *classRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Class, error) {
	var rows []*types.Class
	err := r.conn(tx).WithContext(ctx).
		Where("is_active = ?", true).
		Find(&rows).Error
	return rows, err
}

func (r *classRepo) ListMemberIDs(ctx context.Context, tx *gorm.DB, classID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.conn(tx).WithContext(ctx).
		Model(&types.ClassMember{}).
		Where("class_id = ?", classID).
		Pluck("student_id", &ids).Error
	return ids, err
}

// TeacherHasStudent reports whether the student is enrolled in any class
// owned by the teacher. Gates teacher access to student reports.
func (r *classRepo) TeacherHasStudent(ctx context.Context, tx *gorm.DB, teacherID, studentID uuid.UUID) (bool, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.ClassMember{}).
		Joins("JOIN classes ON classes.id = class_members.class_id").
		Where("classes.teacher_id = ? AND class_members.student_id = ?", teacherID, studentID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
