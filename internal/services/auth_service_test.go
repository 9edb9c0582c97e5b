package services

import (
	"context"
	"testing"

	"laddercall_backend/internal/config"
	"laddercall_backend/internal/oauth"
	"laddercall_backend/internal/services/dto"
	"laddercall_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	info *oauth.UserInfo
	err  error
}

func (p *stubProvider) FetchUserInfo(ctx context.Context, accessToken string) (*oauth.UserInfo, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.info, nil
}

func setAuthTestConfig() {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
}

func TestLoginWithProvider_CreatesUserOnFirstLogin(t *testing.T) {
	setAuthTestConfig()
	db := newFakeDB()
	provider := &stubProvider{info: &oauth.UserInfo{
		Subject:  "kakao-123",
		Nickname: strPtr("crane-op"),
	}}
	svc := NewAuthService(&fakeUserRepo{db: db}, provider, "kakao")

	res, err := svc.LoginWithProvider(context.Background(), &dto.LoginRequest{AccessToken: "tok"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.NotZero(t, res.User.ID)
	assert.Equal(t, "kakao", res.User.Provider)
	assert.Equal(t, "kakao-123", res.User.OAuthSubject)
	require.NotNil(t, res.User.Nickname)
	assert.Equal(t, "crane-op", *res.User.Nickname)
}

func TestLoginWithProvider_ReusesExistingUser(t *testing.T) {
	setAuthTestConfig()
	db := newFakeDB()
	provider := &stubProvider{info: &oauth.UserInfo{Subject: "kakao-123"}}
	svc := NewAuthService(&fakeUserRepo{db: db}, provider, "kakao")

	first, err := svc.LoginWithProvider(context.Background(), &dto.LoginRequest{AccessToken: "tok"})
	require.NoError(t, err)

	second, err := svc.LoginWithProvider(context.Background(), &dto.LoginRequest{AccessToken: "tok"})
	require.NoError(t, err)

	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Len(t, db.users, 1)
}

func TestLoginWithProvider_PropagatesProviderErrors(t *testing.T) {
	setAuthTestConfig()
	db := newFakeDB()

	provider := &stubProvider{err: apperrors.ErrProviderTokenRejected}
	svc := NewAuthService(&fakeUserRepo{db: db}, provider, "kakao")

	_, err := svc.LoginWithProvider(context.Background(), &dto.LoginRequest{AccessToken: "bad"})
	assert.ErrorIs(t, err, apperrors.ErrProviderTokenRejected)

	// Non-AppError provider failures collapse into the unavailable error.
	provider.err = errBoom
	_, err = svc.LoginWithProvider(context.Background(), &dto.LoginRequest{AccessToken: "tok"})
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)

	assert.Empty(t, db.users)
}
