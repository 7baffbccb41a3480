package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/haneulkids/daily-learning-backend/internal/apperr"
	"github.com/haneulkids/daily-learning-backend/internal/pkg/logger"
	"github.com/haneulkids/daily-learning-backend/internal/repos"
	"github.com/haneulkids/daily-learning-backend/internal/requestdata"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

type SignupInput struct {
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Name     string         `json:"name"`
	Role     types.UserRole `json:"role"`
	Grade    *int           `json:"grade,omitempty"`
	Semester *int           `json:"semester,omitempty"`
	ParentID *uuid.UUID     `json:"parent_id,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

type AuthResult struct {
	Profile *types.Profile `json:"profile"`
	Tokens  TokenPair      `json:"tokens"`
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthResult, error)
	Logout(ctx context.Context, profileID uuid.UUID) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db          *gorm.DB
	log         *logger.Logger
	clock       Clock
	profileRepo repos.ProfileRepo
	tokenRepo   repos.AuthTokenRepo
	secret      []byte
	accessTTL   time.Duration
	refreshTTL  time.Duration
}

func NewAuthService(db *gorm.DB, log *logger.Logger, clock Clock, profileRepo repos.ProfileRepo, tokenRepo repos.AuthTokenRepo, secret string, accessTTL, refreshTTL time.Duration) AuthService {
	return &authService{
		db:          db,
		log:         log.With("service", "AuthService"),
		clock:       clock,
		profileRepo: profileRepo,
		tokenRepo:   tokenRepo,
		secret:      []byte(secret),
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
	}
}

func (s *authService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return nil, apperr.Validation("a valid email is required")
	}
	if len(input.Password) < 8 {
		return nil, apperr.Validation("password must be at least 8 characters")
	}
	if input.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	role := input.Role
	if role == "" {
		role = types.RoleStudent
	}
	switch role {
	case types.RoleStudent, types.RoleTeacher, types.RoleParent:
	default:
		return nil, apperr.Validation("role must be student, teacher or parent")
	}

	existing, err := s.profileRepo.GetByEmail(ctx, nil, input.Email)
	if err != nil {
		return nil, apperr.Storage("check existing email", err)
	}
	if existing != nil {
		return nil, apperr.Validation("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Storage("hash password", err)
	}

	approval := types.ApprovalApproved
	if role == types.RoleTeacher {
		approval = types.ApprovalPending
	}
	profile := &types.Profile{
		ID:             uuid.New(),
		Role:           role,
		Email:          input.Email,
		Name:           input.Name,
		Grade:          input.Grade,
		Semester:       input.Semester,
		ParentID:       input.ParentID,
		ApprovalStatus: approval,
		PasswordHash:   string(hash),
	}

	var tokens TokenPair
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.profileRepo.Create(ctx, tx, profile); err != nil {
			return err
		}
		pair, err := s.issueTokens(ctx, tx, profile)
		if err != nil {
			return err
		}
		tokens = pair
		return nil
	})
	if err != nil {
		return nil, apperr.Storage("create account", err)
	}

	s.log.Info("account created", "profile_id", profile.ID, "role", profile.Role)
	return &AuthResult{Profile: profile, Tokens: tokens}, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	profile, err := s.profileRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, apperr.Storage("load profile", err)
	}
	if profile == nil {
		return nil, apperr.Auth("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(input.Password)); err != nil {
		return nil, apperr.Auth("invalid email or password")
	}

	tokens, err := s.issueTokens(ctx, nil, profile)
	if err != nil {
		return nil, apperr.Storage("issue tokens", err)
	}
	return &AuthResult{Profile: profile, Tokens: tokens}, nil
}

// Refresh rotates the refresh token: the presented token is deleted and a
// new pair is issued, so a stolen refresh token can be used at most once.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if refreshToken == "" {
		return nil, apperr.Validation("refresh_token is required")
	}
	stored, err := s.tokenRepo.GetByRefreshToken(ctx, nil, refreshToken)
	if err != nil {
		return nil, apperr.Storage("load refresh token", err)
	}
	if stored == nil || s.clock.Now().After(stored.ExpiresAt) {
		return nil, apperr.Auth("refresh token is invalid or expired")
	}

	profile, err := s.profileRepo.GetByID(ctx, nil, stored.ProfileID)
	if err != nil {
		return nil, apperr.Storage("load profile", err)
	}
	if profile == nil {
		return nil, apperr.Auth("account no longer exists")
	}

	var tokens TokenPair
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.tokenRepo.DeleteByID(ctx, tx, stored.ID); err != nil {
			return err
		}
		pair, err := s.issueTokens(ctx, tx, profile)
		if err != nil {
			return err
		}
		tokens = pair
		return nil
	})
	if err != nil {
		return nil, apperr.Storage("rotate tokens", err)
	}
	return &AuthResult{Profile: profile, Tokens: tokens}, nil
}

func (s *authService) Logout(ctx context.Context, profileID uuid.UUID) error {
	if err := s.tokenRepo.DeleteByProfileID(ctx, nil, profileID); err != nil {
		return apperr.Storage("delete tokens", err)
	}
	return nil
}

// SetContextFromToken verifies the bearer token and attaches the resolved
// identity to the context for downstream handlers.
func (s *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return ctx, apperr.Auth("invalid or expired token")
	}

	sub, err := claims.GetSubject()
	if err != nil {
		return ctx, apperr.Auth("token has no subject")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, apperr.Auth("token subject is not a user id")
	}

	role, _ := claims["role"].(string)
	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		Role:        types.UserRole(role),
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (s *authService) issueTokens(ctx context.Context, tx *gorm.DB, profile *types.Profile) (TokenPair, error) {
	now := s.clock.Now()
	expiresAt := now.Add(s.accessTTL)

	claims := jwt.MapClaims{
		"sub":  profile.ID.String(),
		"role": string(profile.Role),
		"iat":  now.Unix(),
		"exp":  expiresAt.Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken := uuid.NewString() + uuid.NewString()
	record := &types.AuthToken{
		ID:           uuid.New(),
		ProfileID:    profile.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(s.refreshTTL),
	}
	if err := s.tokenRepo.Create(ctx, tx, record); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}
