package types

import (
	"time"

	"github.com/google/uuid"
)

type Class struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TeacherID  uuid.UUID `gorm:"type:uuid;column:teacher_id;not null;index" json:"teacher_id"`
	Teacher    *Profile  `gorm:"constraint:OnDelete:CASCADE;foreignKey:TeacherID;references:ID" json:"teacher,omitempty"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	Grade      int       `gorm:"column:grade;not null" json:"grade"`
	Semester   int       `gorm:"column:semester;not null" json:"semester"`
	SchoolName *string   `gorm:"column:school_name" json:"school_name,omitempty"`
	Year       int       `gorm:"column:year;not null" json:"year"`
	InviteCode string    `gorm:"column:invite_code;not null;uniqueIndex" json:"invite_code"`
	IsActive   bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (Class) TableName() string { return "classes" }

type ClassMember struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClassID   uuid.UUID `gorm:"type:uuid;column:class_id;not null;index:idx_class_student,unique" json:"class_id"`
	Class     *Class    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ClassID;references:ID" json:"class,omitempty"`
	StudentID uuid.UUID `gorm:"type:uuid;column:student_id;not null;index:idx_class_student,unique" json:"student_id"`
	Student   *Profile  `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	JoinedAt  time.Time `gorm:"column:joined_at;not null" json:"joined_at"`
}

func (ClassMember) TableName() string { return "class_members" }
