package services

import (
	"context"
	"errors"

	"laddercall_backend/internal/auth"
	"laddercall_backend/internal/models"
	"laddercall_backend/internal/oauth"
	"laddercall_backend/internal/services/dto"
	"laddercall_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService struct {
	userRepo     UserRepository
	provider     oauth.Provider
	providerName string
}

func NewAuthService(userRepo UserRepository, provider oauth.Provider, providerName string) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		provider:     provider,
		providerName: providerName,
	}
}

// LoginWithProvider resolves the third-party access token, creating the
// account lazily on first login, and issues a first-party session token.
func (s *AuthService) LoginWithProvider(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	info, err := s.provider.FetchUserInfo(ctx, req.AccessToken)
	if err != nil {
		if _, ok := apperrors.AsAppError(err); ok {
			return nil, err
		}
		return nil, apperrors.ErrProviderUnavailable
	}

	user, err := s.userRepo.FindByProviderSubject(s.providerName, info.Subject)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = &models.User{
			Provider:     s.providerName,
			OAuthSubject: info.Subject,
			Email:        info.Email,
			Name:         info.Name,
			Nickname:     info.Nickname,
			Role:         models.UserRoleUser,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, apperrors.InternalError(err)
		}
	} else if err != nil {
		return nil, apperrors.InternalError(err)
	}

	token, err := auth.IssueToken(user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{Token: token, User: user}, nil
}
