package types

import (
	"time"

	"github.com/google/uuid"
)

// DailyAssignment addresses a mandatory set either to a whole class
// (StudentID nil) or to one member. AssignedDate is a calendar date
// (YYYY-MM-DD); the unique index is the natural key the daily job relies
// on to stay idempotent when re-run for the same day.
type DailyAssignment struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ClassID      *uuid.UUID `gorm:"type:uuid;column:class_id;index:idx_assignment_key,unique" json:"class_id,omitempty"`
	StudentID    *uuid.UUID `gorm:"type:uuid;column:student_id;index:idx_assignment_key,unique" json:"student_id,omitempty"`
	DailySetID   uuid.UUID  `gorm:"type:uuid;column:daily_set_id;not null;index:idx_assignment_key,unique" json:"daily_set_id"`
	DailySet     *DailySet  `gorm:"constraint:OnDelete:CASCADE;foreignKey:DailySetID;references:ID" json:"daily_set,omitempty"`
	AssignedDate string     `gorm:"column:assigned_date;not null;index:idx_assignment_key,unique" json:"assigned_date"`
	DueDate      *string    `gorm:"column:due_date" json:"due_date,omitempty"`
	IsMandatory  bool       `gorm:"column:is_mandatory;not null;default:true" json:"is_mandatory"`
	CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
}

func (DailyAssignment) TableName() string { return "daily_assignments" }
