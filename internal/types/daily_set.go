package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DailySet is a themed bundle of questions addressed by
// (grade, semester, set_number). At most one set may exist per key.
type DailySet struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Grade            int       `gorm:"column:grade;not null;index:idx_grade_semester_set,unique" json:"grade"`
	Semester         int       `gorm:"column:semester;not null;index:idx_grade_semester_set,unique" json:"semester"`
	SetNumber        int       `gorm:"column:set_number;not null;index:idx_grade_semester_set,unique" json:"set_number"`
	Title            string    `gorm:"column:title;not null" json:"title"`
	Description      *string   `gorm:"column:description" json:"description,omitempty"`
	EstimatedMinutes int       `gorm:"column:estimated_minutes;not null;default:30" json:"estimated_minutes"`
	TotalQuestions   int       `gorm:"column:total_questions;not null;default:0" json:"total_questions"`
	TotalPoints      int       `gorm:"column:total_points;not null;default:0" json:"total_points"`
	IsPublished      bool      `gorm:"column:is_published;not null;default:false;index" json:"is_published"`
	CreatedAt        time.Time `gorm:"not null" json:"created_at"`
}

func (DailySet) TableName() string { return "daily_sets" }

// Question belongs to exactly one DailySet. Content, answer and metadata
// are opaque JSON payloads whose shape depends on subject and type.
type Question struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	DailySetID           uuid.UUID      `gorm:"type:uuid;column:daily_set_id;not null;index" json:"daily_set_id"`
	DailySet             *DailySet      `gorm:"constraint:OnDelete:CASCADE;foreignKey:DailySetID;references:ID" json:"daily_set,omitempty"`
	CurriculumStandardID *uuid.UUID     `gorm:"type:uuid;column:curriculum_standard_id" json:"curriculum_standard_id,omitempty"`
	Subject              SubjectType    `gorm:"column:subject;not null;index" json:"subject"`
	QuestionType         QuestionType   `gorm:"column:question_type;not null" json:"question_type"`
	OrderIndex           int            `gorm:"column:order_index;not null" json:"order_index"`
	Title                *string        `gorm:"column:title" json:"title,omitempty"`
	Content              datatypes.JSON `gorm:"column:content" json:"content"`
	Answer               datatypes.JSON `gorm:"column:answer" json:"answer"`
	Explanation          *string        `gorm:"column:explanation" json:"explanation,omitempty"`
	Points               int            `gorm:"column:points;not null;default:10" json:"points"`
	Hint                 *string        `gorm:"column:hint" json:"hint,omitempty"`
	Metadata             datatypes.JSON `gorm:"column:metadata" json:"metadata,omitempty"`
	CreatedAt            time.Time      `gorm:"not null" json:"created_at"`
}

func (Question) TableName() string { return "questions" }
