package services

import (
	"laddercall_backend/internal/models"
	"laddercall_backend/internal/repositories"
)

// Repository interfaces consumed by the services. The gorm implementations
// live in internal/repositories; tests inject in-memory fakes.

type UserRepository interface {
	FindByID(id uint) (*models.User, error)
	FindByProviderSubject(provider, subject string) (*models.User, error)
	Create(user *models.User) error
}

type CommunityRepository interface {
	CreateWithOwner(community *models.Community, ownerID uint) error
	FindByID(id uint) (*models.Community, error)
	FindBySlug(slug string) (*models.Community, error)
	List(offset, limit int) ([]models.Community, error)
	Update(community *models.Community) error
	Delete(id uint) error
}

type MemberRepository interface {
	FindMember(communityID, userID uint) (*models.CommunityMember, error)
	IsActiveMember(communityID, userID uint) (bool, error)
	ActiveCommunityIDs(userID uint) ([]uint, error)
	SharesActiveCommunity(userA, userB uint) (bool, error)
	CountActive(communityID uint) (int64, error)
	Create(member *models.CommunityMember) error
	Save(member *models.CommunityMember) error
	Join(communityID, userID uint, memberCap *int, invitedByID *uint) (*models.CommunityMember, error)
	ListActive(communityID uint) ([]models.CommunityMember, error)
}

type JobPostRepository interface {
	CreateWithOptions(post *models.JobPost) error
	FindByID(id uint) (*models.JobPost, error)
	FindVisibleByID(id uint, viewerID uint, communityIDs []uint) (*models.JobPost, error)
	ListVisible(viewerID uint, communityIDs []uint, filters repositories.ListFilters) ([]models.JobPost, error)
	UpdateWithOptions(post *models.JobPost) error
	Delete(id uint) error
}
