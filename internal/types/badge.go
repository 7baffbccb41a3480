package types

import (
	"time"

	"github.com/google/uuid"
)

// Badge is a static catalog entry. ConditionType names the predicate the
// badge evaluator runs; ConditionValue is its threshold where one applies.
type Badge struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string      `gorm:"column:name;not null" json:"name"`
	Description    string      `gorm:"column:description;not null" json:"description"`
	Icon           string      `gorm:"column:icon;not null" json:"icon"`
	ConditionType  string      `gorm:"column:condition_type;not null;uniqueIndex" json:"condition_type"`
	ConditionValue *int        `gorm:"column:condition_value" json:"condition_value,omitempty"`
	Rarity         BadgeRarity `gorm:"column:rarity;not null;default:'common'" json:"rarity"`
	CreatedAt      time.Time   `gorm:"not null" json:"created_at"`
}

func (Badge) TableName() string { return "badges" }

// StudentBadge records a one-way unearned→earned transition. The unique
// index makes duplicate evaluation a no-op rather than a double award.
type StudentBadge struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;column:student_id;not null;index:idx_student_badge,unique" json:"student_id"`
	Student   *Profile  `gorm:"constraint:OnDelete:CASCADE;foreignKey:StudentID;references:ID" json:"student,omitempty"`
	BadgeID   uuid.UUID `gorm:"type:uuid;column:badge_id;not null;index:idx_student_badge,unique" json:"badge_id"`
	Badge     *Badge    `gorm:"constraint:OnDelete:CASCADE;foreignKey:BadgeID;references:ID" json:"badge,omitempty"`
	EarnedAt  time.Time `gorm:"column:earned_at;not null" json:"earned_at"`
}

func (StudentBadge) TableName() string { return "student_badges" }
