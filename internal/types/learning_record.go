package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LearningRecord is one student's attempt for one daily set. The unique
// index on (student_id, daily_set_id) makes resubmission an update, never
// a second row, even under concurrent submits.
type LearningRecord struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID        uuid.UUID      `gorm:"type:uuid;column:student_id;not null;index:idx_student_set,unique" json:"student_id"`
	Student          *Profile       `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	DailySetID       uuid.UUID      `gorm:"type:uuid;column:daily_set_id;not null;index:idx_student_set,unique" json:"daily_set_id"`
	DailySet         *DailySet      `gorm:"constraint:OnDelete:CASCADE;foreignKey:DailySetID;references:ID" json:"daily_set,omitempty"`
	ClassID          *uuid.UUID     `gorm:"type:uuid;column:class_id" json:"class_id,omitempty"`
	StartedAt        time.Time      `gorm:"column:started_at;not null" json:"started_at"`
	CompletedAt      *time.Time     `gorm:"column:completed_at;index" json:"completed_at,omitempty"`
	TotalScore       int            `gorm:"column:total_score;not null;default:0" json:"total_score"`
	MaxScore         int            `gorm:"column:max_score;not null;default:0" json:"max_score"`
	TimeSpentSeconds int            `gorm:"column:time_spent_seconds;not null;default:0" json:"time_spent_seconds"`
	IsCompleted      bool           `gorm:"column:is_completed;not null;default:false" json:"is_completed"`
	EmotionBefore    datatypes.JSON `gorm:"column:emotion_before" json:"emotion_before,omitempty"`
	EmotionAfter     datatypes.JSON `gorm:"column:emotion_after" json:"emotion_after,omitempty"`
	Readiness        datatypes.JSON `gorm:"column:readiness" json:"readiness,omitempty"`
	CreatedAt        time.Time      `gorm:"not null" json:"created_at"`
}

func (LearningRecord) TableName() string { return "learning_records" }

// QuestionResponse stores one answered question within a LearningRecord.
// The full response set is replaced when the record is resubmitted.
type QuestionResponse struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	LearningRecordID uuid.UUID       `gorm:"type:uuid;column:learning_record_id;not null;index" json:"learning_record_id"`
	LearningRecord   *LearningRecord `gorm:"constraint:OnDelete:CASCADE;foreignKey:LearningRecordID;references:ID" json:"learning_record,omitempty"`
	QuestionID       uuid.UUID       `gorm:"type:uuid;column:question_id;not null;index" json:"question_id"`
	Question         *Question       `gorm:"constraint:OnDelete:CASCADE;foreignKey:QuestionID;references:ID" json:"question,omitempty"`
	StudentAnswer    datatypes.JSON  `gorm:"column:student_answer" json:"student_answer,omitempty"`
	IsCorrect        *bool           `gorm:"column:is_correct" json:"is_correct"`
	Score            int             `gorm:"column:score;not null;default:0" json:"score"`
	TimeSpentSeconds int             `gorm:"column:time_spent_seconds;not null;default:0" json:"time_spent_seconds"`
	Attempts         int             `gorm:"column:attempts;not null;default:1" json:"attempts"`
	CreatedAt        time.Time       `gorm:"not null;index" json:"created_at"`
}

func (QuestionResponse) TableName() string { return "question_responses" }
