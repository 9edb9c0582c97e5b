// Package oauth resolves third-party access tokens to identities. Only the
// userinfo lookup lives here; session tokens are first-party JWTs issued by
// internal/auth.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"laddercall_backend/pkg/apperrors"
)

// UserInfo is the provider-resolved identity of a logged-in user.
type UserInfo struct {
	Subject  string
	Email    *string
	Name     *string
	Nickname *string
}

// Provider resolves a provider access token to a UserInfo.
type Provider interface {
	FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error)
}

// HTTPProvider calls the provider's userinfo endpoint with a bearer token.
type HTTPProvider struct {
	UserInfoURL string
	Client      *http.Client
}

func NewHTTPProvider(userInfoURL string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		UserInfoURL: userInfoURL,
		Client:      &http.Client{Timeout: timeout},
	}
}

// userInfoPayload covers the common response shapes: a flat OIDC userinfo
// object and the kakao-style nested account object.
type userInfoPayload struct {
	Sub      string  `json:"sub"`
	ID       int64   `json:"id"`
	Email    *string `json:"email"`
	Name     *string `json:"name"`
	Nickname *string `json:"nickname"`

	KakaoAccount *struct {
		Email   *string `json:"email"`
		Profile *struct {
			Nickname *string `json:"nickname"`
		} `json:"profile"`
	} `json:"kakao_account"`
}

func (p *HTTPProvider) FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, apperrors.ErrProviderUnavailable
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return nil, apperrors.ErrProviderTokenRejected
	case res.StatusCode != http.StatusOK:
		return nil, apperrors.ErrProviderUnavailable
	}

	var payload userInfoPayload
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, apperrors.ErrProviderUnavailable
	}

	info := &UserInfo{
		Subject:  payload.Sub,
		Email:    payload.Email,
		Name:     payload.Name,
		Nickname: payload.Nickname,
	}
	if info.Subject == "" && payload.ID != 0 {
		info.Subject = strconv.FormatInt(payload.ID, 10)
	}
	if payload.KakaoAccount != nil {
		if info.Email == nil {
			info.Email = payload.KakaoAccount.Email
		}
		if info.Nickname == nil && payload.KakaoAccount.Profile != nil {
			info.Nickname = payload.KakaoAccount.Profile.Nickname
		}
	}

	if info.Subject == "" {
		return nil, fmt.Errorf("userinfo response missing subject: %w", apperrors.ErrProviderUnavailable)
	}

	return info, nil
}
