package services

import (
	"context"
	"errors"

	"laddercall_backend/internal/logger"
	"laddercall_backend/internal/models"
	"laddercall_backend/internal/repositories"
	"laddercall_backend/internal/services/dto"
	"laddercall_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type CommunityService struct {
	communityRepo CommunityRepository
	memberRepo    MemberRepository
	userRepo      UserRepository
}

func NewCommunityService(
	communityRepo CommunityRepository,
	memberRepo MemberRepository,
	userRepo UserRepository,
) *CommunityService {
	return &CommunityService{
		communityRepo: communityRepo,
		memberRepo:    memberRepo,
		userRepo:      userRepo,
	}
}

// Create makes the caller the OWNER member of the new community.
func (s *CommunityService) Create(ctx context.Context, req *dto.CreateCommunityRequest) (*models.Community, error) {
	community := &models.Community{
		Name:              req.Name,
		Slug:              req.Slug,
		Descriptor:        req.Description,
		IsPrivate:         req.IsPrivate,
		MemberCap:         req.MemberCap,
		WorkFeePercent:    req.WorkFeePercent,
		SupportFeePercent: req.SupportFeePercent,
	}

	if err := s.communityRepo.CreateWithOwner(community, req.CreatorID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrConflict(err, "community", "Slug already in use").
				WithDetails([]apperrors.FieldError{{Field: "slug", Message: "Already in use"}})
		}
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "community created", "community_id", community.ID, "slug", community.Slug)
	return community, nil
}

func (s *CommunityService) Get(id uint) (*models.Community, error) {
	community, err := s.communityRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound(err)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return community, nil
}

func (s *CommunityService) List(page, pageSize int) ([]models.Community, error) {
	communities, err := s.communityRepo.List((page-1)*pageSize, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return communities, nil
}

// Update requires OWNER or ADMIN role.
func (s *CommunityService) Update(ctx context.Context, actorID, communityID uint, req *dto.UpdateCommunityRequest) (*models.Community, error) {
	community, err := s.Get(communityID)
	if err != nil {
		return nil, err
	}

	if err := s.requireRole(communityID, actorID, models.MemberRoleOwner, models.MemberRoleAdmin); err != nil {
		return nil, err
	}

	if req.Name != nil {
		community.Name = *req.Name
	}
	if req.Description != nil {
		community.Descriptor = *req.Description
	}
	if req.IsPrivate != nil {
		community.IsPrivate = *req.IsPrivate
	}
	if req.MemberCap != nil {
		community.MemberCap = req.MemberCap
	}
	if req.WorkFeePercent != nil {
		community.WorkFeePercent = req.WorkFeePercent
	}
	if req.SupportFeePercent != nil {
		community.SupportFeePercent = req.SupportFeePercent
	}

	if err := s.communityRepo.Update(community); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "community updated", "community_id", community.ID)
	return community, nil
}

// Delete requires OWNER specifically.
func (s *CommunityService) Delete(ctx context.Context, actorID, communityID uint) error {
	if _, err := s.Get(communityID); err != nil {
		return err
	}

	if err := s.requireRole(communityID, actorID, models.MemberRoleOwner); err != nil {
		return err
	}

	if err := s.communityRepo.Delete(communityID); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "community deleted", "community_id", communityID)
	return nil
}

// Join activates membership. Re-joining reactivates the earlier soft-deleted
// row; joining while already active conflicts; a full community conflicts.
// Private communities require a standing invitation.
func (s *CommunityService) Join(ctx context.Context, userID, communityID uint) (*models.CommunityMember, error) {
	community, err := s.Get(communityID)
	if err != nil {
		return nil, err
	}

	if community.IsPrivate {
		existing, err := s.memberRepo.FindMember(communityID, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInviteRequired
		}
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if !existing.Active && existing.InvitedByID == nil && existing.JoinedAt == nil {
			return nil, apperrors.ErrInviteRequired
		}
	}

	member, err := s.memberRepo.Join(communityID, userID, community.MemberCap, nil)
	switch {
	case errors.Is(err, repositories.ErrMembershipAlreadyActive):
		return nil, apperrors.ErrAlreadyMember
	case errors.Is(err, repositories.ErrMemberCapReached):
		return nil, apperrors.ErrMemberCapReached
	case err != nil:
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "member joined", "community_id", communityID, "member_id", member.ID)
	return member, nil
}

// Leave soft-deletes the membership; the row is kept for history and
// reactivation. The OWNER cannot leave their own community.
func (s *CommunityService) Leave(ctx context.Context, userID, communityID uint) error {
	member, err := s.memberRepo.FindMember(communityID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound(err)
	}
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !member.Active {
		return apperrors.ErrNotFound(gorm.ErrRecordNotFound)
	}
	if member.Role == models.MemberRoleOwner {
		return apperrors.ErrOwnerCannotLeave
	}

	member.Active = false
	if err := s.memberRepo.Save(member); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "member left", "community_id", communityID, "member_id", member.ID)
	return nil
}

// Invite records an invitation as an inactive membership row carrying the
// inviter. Requires OWNER, ADMIN or MODERATOR role.
func (s *CommunityService) Invite(ctx context.Context, actorID, communityID uint, req *dto.InviteMemberRequest) (*models.CommunityMember, error) {
	if _, err := s.Get(communityID); err != nil {
		return nil, err
	}

	if err := s.requireRole(communityID, actorID,
		models.MemberRoleOwner, models.MemberRoleAdmin, models.MemberRoleModerator); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	existing, err := s.memberRepo.FindMember(communityID, req.UserID)
	if err == nil {
		if existing.Active {
			return nil, apperrors.ErrAlreadyMember
		}
		if existing.InvitedByID == nil {
			existing.InvitedByID = &actorID
			if err := s.memberRepo.Save(existing); err != nil {
				return nil, apperrors.InternalError(err)
			}
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.InternalError(err)
	}

	member := &models.CommunityMember{
		CommunityID: communityID,
		UserID:      req.UserID,
		Role:        models.MemberRoleMember,
		Active:      false,
		InvitedByID: &actorID,
	}
	if err := s.memberRepo.Create(member); err != nil {
		return nil, translateStoreError(err)
	}

	logger.CtxInfo(ctx, "member invited", "community_id", communityID, "user_id", req.UserID)
	return member, nil
}

// UpdateMemberRole changes a member's role. OWNER is immutable in both
// directions; promotion to ADMIN is OWNER-only; an ADMIN actor cannot touch
// ADMIN or OWNER members.
func (s *CommunityService) UpdateMemberRole(ctx context.Context, actorID, communityID, targetUserID uint, req *dto.UpdateMemberRoleRequest) (*models.CommunityMember, error) {
	actor, err := s.activeMemberWithRole(communityID, actorID, models.MemberRoleOwner, models.MemberRoleAdmin)
	if err != nil {
		return nil, err
	}

	target, err := s.activeMember(communityID, targetUserID)
	if err != nil {
		return nil, err
	}

	if target.Role == models.MemberRoleOwner || req.Role == models.MemberRoleOwner {
		return nil, apperrors.ErrOwnerImmutable
	}
	if actor.Role == models.MemberRoleAdmin {
		if target.Role == models.MemberRoleAdmin {
			return nil, apperrors.ErrInsufficientPermissions
		}
		if req.Role == models.MemberRoleAdmin {
			// Promotion to ADMIN is reserved for the OWNER.
			return nil, apperrors.ErrInsufficientPermissions
		}
	}

	target.Role = req.Role
	if err := s.memberRepo.Save(target); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "member role updated",
		"community_id", communityID, "user_id", targetUserID, "role", req.Role)
	return target, nil
}

// RemoveMember soft-deactivates the target, with the same asymmetry as role
// changes: ADMIN cannot remove ADMIN or OWNER, and OWNER cannot be removed.
func (s *CommunityService) RemoveMember(ctx context.Context, actorID, communityID, targetUserID uint) error {
	actor, err := s.activeMemberWithRole(communityID, actorID, models.MemberRoleOwner, models.MemberRoleAdmin)
	if err != nil {
		return err
	}

	target, err := s.activeMember(communityID, targetUserID)
	if err != nil {
		return err
	}

	if target.Role == models.MemberRoleOwner {
		return apperrors.ErrOwnerImmutable
	}
	if actor.Role == models.MemberRoleAdmin && target.Role == models.MemberRoleAdmin {
		return apperrors.ErrInsufficientPermissions
	}

	target.Active = false
	if err := s.memberRepo.Save(target); err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "member removed", "community_id", communityID, "user_id", targetUserID)
	return nil
}

// ListMembers returns the active members; visible to active members only.
func (s *CommunityService) ListMembers(actorID, communityID uint) ([]dto.MemberResponse, error) {
	active, err := s.memberRepo.IsActiveMember(communityID, actorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !active {
		return nil, apperrors.ErrNotCommunityMember
	}

	members, err := s.memberRepo.ListActive(communityID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.MemberResponse, 0, len(members))
	for _, m := range members {
		res := dto.MemberResponse{
			ID:          m.ID,
			UserID:      m.UserID,
			Role:        m.Role,
			JoinedAt:    m.JoinedAt,
			InvitedByID: m.InvitedByID,
		}
		if m.User != nil {
			res.Nickname = m.User.Nickname
		}
		responses = append(responses, res)
	}
	return responses, nil
}

// --- Helpers ---

func (s *CommunityService) activeMember(communityID, userID uint) (*models.CommunityMember, error) {
	member, err := s.memberRepo.FindMember(communityID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound(err)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !member.Active {
		return nil, apperrors.ErrNotFound(gorm.ErrRecordNotFound)
	}
	return member, nil
}

func (s *CommunityService) activeMemberWithRole(communityID, userID uint, roles ...models.MemberRole) (*models.CommunityMember, error) {
	member, err := s.memberRepo.FindMember(communityID, userID)
	if err != nil {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if !member.Active {
		return nil, apperrors.ErrInsufficientPermissions
	}
	for _, role := range roles {
		if member.Role == role {
			return member, nil
		}
	}
	return nil, apperrors.ErrInsufficientPermissions
}

func (s *CommunityService) requireRole(communityID, userID uint, roles ...models.MemberRole) error {
	_, err := s.activeMemberWithRole(communityID, userID, roles...)
	return err
}
