package services

import (
	"context"
	"testing"
	"time"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/models"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*models.User), nextID: 1}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return repositories.ErrUserEmailConflict
	}
	user.ID = f.nextID
	f.nextID++
	stored := *user
	f.byEmail[user.Email] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

type fakeRevokedRepo struct {
	revoked map[string]time.Time
}

func newFakeRevokedRepo() *fakeRevokedRepo {
	return &fakeRevokedRepo{revoked: make(map[string]time.Time)}
}

func (f *fakeRevokedRepo) Add(ctx context.Context, jti string, expiresAt time.Time) error {
	f.revoked[jti] = expiresAt
	return nil
}

func (f *fakeRevokedRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	_, ok := f.revoked[jti]
	return ok, nil
}

func (f *fakeRevokedRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func newTestAuthService() (AuthService, *fakeUserRepo, *fakeRevokedRepo) {
	users := newFakeUserRepo()
	revoked := newFakeRevokedRepo()
	return NewAuthService(users, revoked, "test-secret"), users, revoked
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Email: "a@b.com", Password: "longenough"})
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Register(ctx, RegisterInput{Name: "Ana", Email: "not-an-email", Password: "longenough"})
	assert.ErrorIs(t, err, ErrEmailRequired)

	_, err = svc.Register(ctx, RegisterInput{Name: "Ana", Email: "a@b.com", Password: "short"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, users, _ := newTestAuthService()

	user, err := svc.Register(context.Background(), RegisterInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.Empty(t, user.PasswordHash, "hash must not leak in the response")

	stored := users.byEmail["ana@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct horse", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct horse")))
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "correct horse"})
	require.NoError(t, err)

	user, token, err := svc.Login(ctx, models.Credentials{Email: "ana@example.com", Password: "correct horse"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)
	assert.Empty(t, user.PasswordHash)

	claims, err := svc.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, float64(registered.ID), claims["user_id"])
	assert.NotEmpty(t, claims["jti"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, models.Credentials{Email: "ana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, models.Credentials{Email: "nobody@example.com", Password: "correct horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _, revoked := newTestAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Name: "Ana", Email: "ana@example.com", Password: "correct horse"})
	require.NoError(t, err)
	_, token, err := svc.Login(ctx, models.Credentials{Email: "ana@example.com", Password: "correct horse"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))
	assert.Len(t, revoked.revoked, 1)

	_, err = svc.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.VerifyToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = svc.VerifyToken(context.Background(), "")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
