package types

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the account row for every role. StreakCount and TotalPoints
// are mutated only by the progression tracker.
type Profile struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Role                  UserRole       `gorm:"column:role;not null;default:'student'" json:"role"`
	Email                 string         `gorm:"column:email;not null;uniqueIndex" json:"email"`
	Name                  string         `gorm:"column:name;not null" json:"name"`
	AvatarURL             *string        `gorm:"column:avatar_url" json:"avatar_url,omitempty"`
	Grade                 *int           `gorm:"column:grade" json:"grade,omitempty"`
	Semester              *int           `gorm:"column:semester" json:"semester,omitempty"`
	SchoolName            *string        `gorm:"column:school_name" json:"school_name,omitempty"`
	ClassName             *string        `gorm:"column:class_name" json:"class_name,omitempty"`
	StudentNumber         *int           `gorm:"column:student_number" json:"student_number,omitempty"`
	ParentID              *uuid.UUID     `gorm:"type:uuid;column:parent_id;index" json:"parent_id,omitempty"`
	TeacherID             *uuid.UUID     `gorm:"type:uuid;column:teacher_id;index" json:"teacher_id,omitempty"`
	SubscriptionPlan      string         `gorm:"column:subscription_plan;not null;default:'free'" json:"subscription_plan"`
	SubscriptionExpiresAt *time.Time     `gorm:"column:subscription_expires_at" json:"subscription_expires_at,omitempty"`
	StreakCount           int            `gorm:"column:streak_count;not null;default:0" json:"streak_count"`
	TotalPoints           int            `gorm:"column:total_points;not null;default:0" json:"total_points"`
	ApprovalStatus        ApprovalStatus `gorm:"column:approval_status;not null;default:'pending'" json:"approval_status"`
	PasswordHash          string         `gorm:"column:password_hash;not null" json:"-"`
	CreatedAt             time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt             time.Time      `gorm:"not null" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }
