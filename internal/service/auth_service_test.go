package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/smart-learners/orca-api/internal/dto"
	"github.com/smart-learners/orca-api/internal/models"
	"github.com/smart-learners/orca-api/internal/repository"
)

const testJWTSecret = "test-secret"

func newAuthService(t *testing.T, name string) AuthService {
	t.Helper()

	db := openTestDB(t, name, &models.User{})
	validate := validator.New(validator.WithRequiredStructEnabled())

	return NewAuthService(repository.NewUserRepository(db), validate, testJWTSecret, time.Hour, zerolog.Nop())
}

func signupPayload() dto.SignupRequest {
	return dto.SignupRequest{
		Username:        "ada",
		Email:           "ada@example.com",
		Password:        "correct-horse",
		ConfirmPassword: "correct-horse",
		FirstName:       "Ada",
	}
}

func TestAuthServiceSignupAndLogin(t *testing.T) {
	svc := newAuthService(t, "auth_signup")

	created, err := svc.Signup(context.Background(), signupPayload())
	require.NoError(t, err)
	require.NotEmpty(t, created.Token)
	require.Equal(t, "ada", created.User.Username)

	token, err := jwt.Parse(created.Token, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	claims := token.Claims.(jwt.MapClaims)
	require.EqualValues(t, created.User.ID, claims["sub"])

	logged, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ada", Password: "correct-horse"})
	require.NoError(t, err)
	require.Equal(t, created.User.ID, logged.User.ID)

	// Email works as the login identifier too.
	logged, err = svc.Login(context.Background(), dto.LoginRequest{Username: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	require.Equal(t, created.User.ID, logged.User.ID)
}

func TestAuthServiceSignupDuplicate(t *testing.T) {
	svc := newAuthService(t, "auth_duplicate")

	_, err := svc.Signup(context.Background(), signupPayload())
	require.NoError(t, err)

	payload := signupPayload()
	payload.Email = "other@example.com"
	_, err = svc.Signup(context.Background(), payload)
	require.ErrorIs(t, err, ErrUserAlreadyExists)

	payload = signupPayload()
	payload.Username = "grace"
	_, err = svc.Signup(context.Background(), payload)
	require.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestAuthServiceSignupValidation(t *testing.T) {
	svc := newAuthService(t, "auth_validation")

	payload := signupPayload()
	payload.ConfirmPassword = "different"
	_, err := svc.Signup(context.Background(), payload)
	require.Error(t, err)

	payload = signupPayload()
	payload.Password = "short"
	payload.ConfirmPassword = "short"
	_, err = svc.Signup(context.Background(), payload)
	require.Error(t, err)
}

func TestAuthServiceLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t, "auth_badlogin")

	_, err := svc.Signup(context.Background(), signupPayload())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "ada", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "whatever"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthServicePasswordNeverStoredPlain(t *testing.T) {
	db := openTestDB(t, "auth_hash", &models.User{})
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAuthService(repository.NewUserRepository(db), validate, testJWTSecret, time.Hour, zerolog.Nop())

	_, err := svc.Signup(context.Background(), signupPayload())
	require.NoError(t, err)

	var user models.User
	require.NoError(t, db.First(&user).Error)
	require.NotEmpty(t, user.PasswordHash)
	require.NotEqual(t, "correct-horse", user.PasswordHash)
}

func TestAuthServiceProfileNotFound(t *testing.T) {
	svc := newAuthService(t, "auth_profile")

	_, err := svc.Profile(context.Background(), 99)
	require.ErrorIs(t, err, ErrUserNotFound)
}
