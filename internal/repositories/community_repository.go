package repositories

import (
	"time"

	"laddercall_backend/internal/models"

	"gorm.io/gorm"
)

type CommunityRepository struct {
	db *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{db: db}
}

// CreateWithOwner creates the community and its OWNER membership in one
// transaction so a community never exists without an owner.
func (r *CommunityRepository) CreateWithOwner(community *models.Community, ownerID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(community).Error; err != nil {
			return err
		}
		now := time.Now()
		owner := &models.CommunityMember{
			CommunityID: community.ID,
			UserID:      ownerID,
			Role:        models.MemberRoleOwner,
			Active:      true,
			JoinedAt:    &now,
		}
		return tx.Create(owner).Error
	})
}

func (r *CommunityRepository) FindByID(id uint) (*models.Community, error) {
	var community models.Community
	if err := r.db.First(&community, id).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *CommunityRepository) FindBySlug(slug string) (*models.Community, error) {
	var community models.Community
	if err := r.db.Where("slug = ?", slug).First(&community).Error; err != nil {
		return nil, err
	}
	return &community, nil
}

func (r *CommunityRepository) List(offset, limit int) ([]models.Community, error) {
	var communities []models.Community
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&communities).Error
	return communities, err
}

func (r *CommunityRepository) Update(community *models.Community) error {
	return r.db.Save(community).Error
}

// Delete removes the community and all of its membership rows.
func (r *CommunityRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("community_id = ?", id).Delete(&models.CommunityMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Community{}, id).Error
	})
}
