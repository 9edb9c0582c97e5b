package repositories

import (
	"errors"
	"time"

	"laddercall_backend/internal/models"

	"gorm.io/gorm"
)

type MemberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// FindMember returns the membership row, active or not.
func (r *MemberRepository) FindMember(communityID, userID uint) (*models.CommunityMember, error) {
	var member models.CommunityMember
	err := r.db.Where("community_id = ? AND user_id = ?", communityID, userID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) IsActiveMember(communityID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.CommunityMember{}).
		Where("community_id = ? AND user_id = ? AND active", communityID, userID).
		Count(&count).Error
	return count > 0, err
}

// ActiveCommunityIDs returns the ids of every community the user is an
// active member of. Computed once per list request to build the combined
// visibility filter.
func (r *MemberRepository) ActiveCommunityIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.CommunityMember{}).
		Where("user_id = ? AND active", userID).
		Pluck("community_id", &ids).Error
	return ids, err
}

// SharesActiveCommunity reports whether the two users have at least one
// active community membership in common ("reachability").
func (r *MemberRepository) SharesActiveCommunity(userA, userB uint) (bool, error) {
	var count int64
	err := r.db.Raw(`
		SELECT COUNT(*) FROM community_members m1
		JOIN community_members m2 ON m1.community_id = m2.community_id
		WHERE m1.user_id = ? AND m1.active
		  AND m2.user_id = ? AND m2.active
	`, userA, userB).Scan(&count).Error
	return count > 0, err
}

func (r *MemberRepository) CountActive(communityID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.CommunityMember{}).
		Where("community_id = ? AND active", communityID).
		Count(&count).Error
	return count, err
}

func (r *MemberRepository) Create(member *models.CommunityMember) error {
	return r.db.Create(member).Error
}

func (r *MemberRepository) Save(member *models.CommunityMember) error {
	return r.db.Save(member).Error
}

// Join activates a membership for the user inside one transaction:
// an existing active row is a conflict, an inactive row is reactivated
// (same id), and the member cap is re-checked against the current active
// count before any insert so a concurrent join cannot overshoot it.
func (r *MemberRepository) Join(communityID, userID uint, memberCap *int, invitedByID *uint) (*models.CommunityMember, error) {
	var member *models.CommunityMember

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.CommunityMember
		err := tx.Where("community_id = ? AND user_id = ?", communityID, userID).First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err == nil && existing.Active {
			return ErrMembershipAlreadyActive
		}

		if memberCap != nil {
			var count int64
			if err := tx.Model(&models.CommunityMember{}).
				Where("community_id = ? AND active", communityID).
				Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(*memberCap) {
				return ErrMemberCapReached
			}
		}

		now := time.Now()
		if err == nil {
			// Reactivate the soft-deleted row, keeping its id.
			existing.Active = true
			existing.JoinedAt = &now
			if existing.InvitedByID == nil {
				existing.InvitedByID = invitedByID
			}
			if e := tx.Save(&existing).Error; e != nil {
				return e
			}
			member = &existing
			return nil
		}

		created := models.CommunityMember{
			CommunityID: communityID,
			UserID:      userID,
			Role:        models.MemberRoleMember,
			Active:      true,
			JoinedAt:    &now,
			InvitedByID: invitedByID,
		}
		if e := tx.Create(&created).Error; e != nil {
			return e
		}
		member = &created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

func (r *MemberRepository) ListActive(communityID uint) ([]models.CommunityMember, error) {
	var members []models.CommunityMember
	err := r.db.Preload("User").
		Where("community_id = ? AND active", communityID).
		Order("joined_at ASC").
		Find(&members).Error
	return members, err
}
