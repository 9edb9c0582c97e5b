package models

import "time"

type Community struct {
	BaseModel
	Name       string `gorm:"size:100;not null" json:"name"`
	Slug       string `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	IsPrivate  bool   `gorm:"not null;default:false" json:"isPrivate"`
	MemberCap  *int   `json:"memberCap,omitempty"`
	Descriptor string `gorm:"size:500;column:description" json:"description"`

	// Defaults applied to COMMUNITY job posts that omit explicit fees.
	WorkFeePercent    *float64 `json:"workFeePercent,omitempty"`
	SupportFeePercent *float64 `json:"supportFeePercent,omitempty"`

	Members []CommunityMember `gorm:"foreignKey:CommunityID" json:"-"`
}

// CommunityMember joins a User to a Community. Leaving or removal flips
// Active off instead of deleting the row, so re-joining reactivates the same
// membership and history survives.
type CommunityMember struct {
	BaseModel
	CommunityID uint       `gorm:"not null;uniqueIndex:idx_community_user" json:"communityId"`
	UserID      uint       `gorm:"not null;uniqueIndex:idx_community_user" json:"userId"`
	Role        MemberRole `gorm:"type:varchar(20);not null;default:'MEMBER'" json:"role"`
	Active      bool       `gorm:"not null;default:true" json:"active"`
	JoinedAt    *time.Time `json:"joinedAt,omitempty"`
	InvitedByID *uint      `json:"invitedById,omitempty"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
