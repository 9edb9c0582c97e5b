package models

type UserRole string
type PostType string
type Category string
type LadderType string
type PaymentMethod string
type MemberRole string

const (
	UserRoleUser  UserRole = "USER"
	UserRoleAdmin UserRole = "ADMIN"

	PostTypeGlobal     PostType = "GLOBAL"
	PostTypeCommunity  PostType = "COMMUNITY"
	PostTypeDesignated PostType = "DESIGNATED"

	CategorySky    Category = "SKY"
	CategoryLadder Category = "LADDER"

	LadderTypeOnSite      LadderType = "ON_SITE"
	LadderTypeMovingGoods LadderType = "MOVING_GOODS"

	PaymentMethodSignature     PaymentMethod = "SIGNATURE"
	PaymentMethodDirectPayment PaymentMethod = "DIRECT_PAYMENT"
	PaymentMethodCash          PaymentMethod = "CASH"

	MemberRoleOwner     MemberRole = "OWNER"
	MemberRoleAdmin     MemberRole = "ADMIN"
	MemberRoleModerator MemberRole = "MODERATOR"
	MemberRoleMember    MemberRole = "MEMBER"
)
