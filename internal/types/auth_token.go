package types

import (
	"time"

	"github.com/google/uuid"
)

// AuthToken pairs an issued access token with its opaque refresh token.
type AuthToken struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProfileID    uuid.UUID `gorm:"type:uuid;column:profile_id;not null;index" json:"profile_id"`
	Profile      *Profile  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProfileID;references:ID" json:"profile,omitempty"`
	AccessToken  string    `gorm:"column:access_token;not null" json:"-"`
	RefreshToken string    `gorm:"column:refresh_token;not null;uniqueIndex" json:"-"`
	ExpiresAt    time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}

func (AuthToken) TableName() string { return "auth_tokens" }
