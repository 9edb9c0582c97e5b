package dto

import (
	"time"

	"laddercall_backend/internal/models"
)

// --- Community requests ---

type CreateCommunityRequest struct {
	CreatorID         uint     `json:"creatorId" validate:"-"` // set by the server
	Name              string   `json:"name" validate:"required,min=2,max=100"`
	Slug              string   `json:"slug" validate:"required,slug,max=100"`
	Description       string   `json:"description" validate:"omitempty,max=500"`
	IsPrivate         bool     `json:"isPrivate"`
	MemberCap         *int     `json:"memberCap" validate:"omitempty,min=1"`
	WorkFeePercent    *float64 `json:"workFeePercent" validate:"omitempty,gte=0,lte=100"`
	SupportFeePercent *float64 `json:"supportFeePercent" validate:"omitempty,gte=0,lte=100"`
}

type UpdateCommunityRequest struct {
	Name              *string  `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description       *string  `json:"description,omitempty" validate:"omitempty,max=500"`
	IsPrivate         *bool    `json:"isPrivate,omitempty"`
	MemberCap         *int     `json:"memberCap,omitempty" validate:"omitempty,min=1"`
	WorkFeePercent    *float64 `json:"workFeePercent,omitempty" validate:"omitempty,gte=0,lte=100"`
	SupportFeePercent *float64 `json:"supportFeePercent,omitempty" validate:"omitempty,gte=0,lte=100"`
}

type InviteMemberRequest struct {
	UserID uint `json:"userId" validate:"required,min=1"`
}

type UpdateMemberRoleRequest struct {
	Role models.MemberRole `json:"role" validate:"required,oneof=ADMIN MODERATOR MEMBER"`
}

// --- Community responses ---

type MemberResponse struct {
	ID          uint              `json:"id"`
	UserID      uint              `json:"userId"`
	Role        models.MemberRole `json:"role"`
	Nickname    *string           `json:"nickname,omitempty"`
	JoinedAt    *time.Time        `json:"joinedAt,omitempty"`
	InvitedByID *uint             `json:"invitedById,omitempty"`
}
