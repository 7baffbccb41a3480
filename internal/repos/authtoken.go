package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

type AuthTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, token *types.AuthToken) error
	GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*types.AuthToken, error)
	DeleteByProfileID(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) error
	DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type authTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAuthTokenRepo(db *gorm.DB, baseLog *logger.Logger) AuthTokenRepo {
	return &authTokenRepo{db: db, log: baseLog.With("repo", "AuthTokenRepo")}
}

func (r *authTokenRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *authTokenRepo) Create(ctx context.Context, tx *gorm.DB, token *types.AuthToken) error {
	return r.conn(tx).WithContext(ctx).Create(token).Error
}

func (r *authTokenRepo) GetByRefreshToken(ctx context.Context, tx *gorm.DB, refreshToken string) (*types.AuthToken, error) {
	var token types.AuthToken
	err := r.conn(tx).WithContext(ctx).Where("refresh_token = ?", refreshToken).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *authTokenRepo) DeleteByProfileID(ctx context.Context, tx *gorm.DB, profileID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("profile_id = ?", profileID).
		Delete(&types.AuthToken{}).Error
}

func (r *authTokenRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.AuthToken{}).Error
}
