package services

import (
	"context"
	"testing"
	"time"

	"github.com/haneulkids/daily-learning-backend/internal/apperr"
	"github.com/haneulkids/daily-learning-backend/internal/requestdata"
	"github.com/haneulkids/daily-learning-backend/internal/types"
)

func newAuth(env *testEnv, clock Clock) AuthService {
	return NewAuthService(env.db, env.log, clock, env.profiles, env.tokens, "test-secret", time.Hour, 24*time.Hour)
}

func TestSignupLoginRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuth(env, NewClock("UTC"))
	ctx := context.Background()

	signedUp, err := svc.Signup(ctx, SignupInput{
		Email:    "Mina@Test.Local",
		Password: "supersecret",
		Name:     "mina",
		Role:     types.RoleStudent,
	})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if signedUp.Profile.Email != "mina@test.local" {
		t.Errorf("email not normalized: %s", signedUp.Profile.Email)
	}
	if signedUp.Profile.PasswordHash == "supersecret" {
		t.Fatal("password stored in plain text")
	}
	if signedUp.Tokens.AccessToken == "" || signedUp.Tokens.RefreshToken == "" {
		t.Fatal("signup must issue a token pair")
	}

	_, err = svc.Signup(ctx, SignupInput{Email: "mina@test.local", Password: "supersecret", Name: "dup"})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("duplicate email: expected validation error, got %v", err)
	}

	loggedIn, err := svc.Login(ctx, LoginInput{Email: "mina@test.local", Password: "supersecret"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	_, err = svc.Login(ctx, LoginInput{Email: "mina@test.local", Password: "wrong"})
	if apperr.KindOf(err) != apperr.KindAuth {
		t.Fatalf("wrong password: expected auth error, got %v", err)
	}

	ctxWithUser, err := svc.SetContextFromToken(ctx, loggedIn.Tokens.AccessToken)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(ctxWithUser)
	if rd == nil || rd.UserID != loggedIn.Profile.ID || rd.Role != types.RoleStudent {
		t.Fatalf("request data = %+v, want user %v", rd, loggedIn.Profile.ID)
	}

	if _, err := svc.SetContextFromToken(ctx, "not-a-token"); apperr.KindOf(err) != apperr.KindAuth {
		t.Fatalf("garbage token: expected auth error, got %v", err)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuth(env, NewClock("UTC"))
	ctx := context.Background()

	signedUp, err := svc.Signup(ctx, SignupInput{Email: "mina@test.local", Password: "supersecret", Name: "mina"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	oldRefresh := signedUp.Tokens.RefreshToken

	refreshed, err := svc.Refresh(ctx, oldRefresh)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.Tokens.RefreshToken == oldRefresh {
		t.Fatal("refresh must rotate the refresh token")
	}

	// The presented token is single use.
	if _, err := svc.Refresh(ctx, oldRefresh); apperr.KindOf(err) != apperr.KindAuth {
		t.Fatalf("reused refresh token: expected auth error, got %v", err)
	}
}

func TestRefreshRejectsExpired(t *testing.T) {
	env := newTestEnv(t)
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := newAuth(env, NewFixedClock(issuedAt))
	ctx := context.Background()

	signedUp, err := issuer.Signup(ctx, SignupInput{Email: "mina@test.local", Password: "supersecret", Name: "mina"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	later := newAuth(env, NewFixedClock(issuedAt.Add(48*time.Hour)))
	if _, err := later.Refresh(ctx, signedUp.Tokens.RefreshToken); apperr.KindOf(err) != apperr.KindAuth {
		t.Fatalf("expired refresh token: expected auth error, got %v", err)
	}
}

func TestLogoutRevokesTokens(t *testing.T) {
	env := newTestEnv(t)
	svc := newAuth(env, NewClock("UTC"))
	ctx := context.Background()

	signedUp, err := svc.Signup(ctx, SignupInput{Email: "mina@test.local", Password: "supersecret", Name: "mina"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if err := svc.Logout(ctx, signedUp.Profile.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Refresh(ctx, signedUp.Tokens.RefreshToken); apperr.KindOf(err) != apperr.KindAuth {
		t.Fatalf("refresh after logout: expected auth error, got %v", err)
	}
}
