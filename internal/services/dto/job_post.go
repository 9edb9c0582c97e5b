package dto

import (
	"time"

	"laddercall_backend/internal/models"
)

// --- Job post requests ---

type CreateJobPostRequest struct {
	AuthorID uint            `json:"authorId" validate:"-"` // set by the server
	PostType models.PostType `json:"postType" validate:"required,oneof=GLOBAL COMMUNITY DESIGNATED"`
	Category models.Category `json:"category" validate:"required,oneof=SKY LADDER"`

	CommunityID      *uint `json:"communityId" validate:"omitempty,min=1"`
	DesignatedUserID *uint `json:"designatedUserId" validate:"omitempty,min=1"`

	// SKY payload
	EquipmentType    *string `json:"equipmentType"`
	EquipmentLengths []int   `json:"equipmentLengths" validate:"omitempty,dive,min=1"`

	// LADDER payload
	LadderType    *models.LadderType `json:"ladderType" validate:"omitempty,oneof=ON_SITE MOVING_GOODS"`
	LuggageVolume *string            `json:"luggageVolume" validate:"omitempty,max=100"`
	WorkFloor     *int               `json:"workFloor" validate:"omitempty,min=0"`
	OverallHeight *float64           `json:"overallHeight" validate:"omitempty,min=0"`

	// Scheduling
	WorkDate           *string `json:"workDate" validate:"omitempty,max=100"`
	ArrivalTime        *string `json:"arrivalTime" validate:"omitempty,hhmm"`
	WorkSchedule       *string `json:"workSchedule" validate:"omitempty,max=100"`
	LadderWorkDuration *string `json:"ladderWorkDuration" validate:"omitempty,max=100"`
	CustomWorkHours    *string `json:"customWorkHours" validate:"omitempty,max=100"`

	// Pricing
	WorkCost            *int     `json:"workCost" validate:"omitempty,min=0"`
	FeeTotal            *int     `json:"feeTotal" validate:"omitempty,min=0"`
	FeeUnit             *int     `json:"feeUnit" validate:"omitempty,min=0"`
	WithFee             *bool    `json:"withFee"`
	CommunityWorkFee    *float64 `json:"communityWorkFee" validate:"omitempty,gte=0,lte=100"`
	CommunitySupportFee *float64 `json:"communitySupportFee" validate:"omitempty,gte=0,lte=100"`
	NightWork           bool     `json:"nightWork"`
	PriceAdjustment     *int     `json:"priceAdjustment"`

	// Payment
	PaymentMethod       *models.PaymentMethod `json:"paymentMethod" validate:"omitempty,oneof=SIGNATURE DIRECT_PAYMENT CASH"`
	ExpectedPaymentDate *string               `json:"expectedPaymentDate" validate:"omitempty,max=100"`

	// Contact
	SiteAddress   *string `json:"siteAddress" validate:"omitempty,max=255"`
	ContactNumber *string `json:"contactNumber" validate:"omitempty,max=30"`
	WorkContents  *string `json:"workContents" validate:"omitempty,max=1000"`
	DeliveryInfo  *string `json:"deliveryInfo" validate:"omitempty,max=1000"`

	Options *JobPostOptionsPayload `json:"options"`
}

// UpdateJobPostRequest mirrors the create shape minus the immutable fields
// (postType, category, author, scope targets).
type UpdateJobPostRequest struct {
	// SKY payload
	EquipmentType    *string `json:"equipmentType"`
	EquipmentLengths []int   `json:"equipmentLengths" validate:"omitempty,dive,min=1"`

	// LADDER payload
	LadderType    *models.LadderType `json:"ladderType" validate:"omitempty,oneof=ON_SITE MOVING_GOODS"`
	LuggageVolume *string            `json:"luggageVolume" validate:"omitempty,max=100"`
	WorkFloor     *int               `json:"workFloor" validate:"omitempty,min=0"`
	OverallHeight *float64           `json:"overallHeight" validate:"omitempty,min=0"`

	// Scheduling
	WorkDate           *string `json:"workDate" validate:"omitempty,max=100"`
	ArrivalTime        *string `json:"arrivalTime" validate:"omitempty,hhmm"`
	WorkSchedule       *string `json:"workSchedule" validate:"omitempty,max=100"`
	LadderWorkDuration *string `json:"ladderWorkDuration" validate:"omitempty,max=100"`
	CustomWorkHours    *string `json:"customWorkHours" validate:"omitempty,max=100"`

	// Pricing
	WorkCost            *int     `json:"workCost" validate:"omitempty,min=0"`
	FeeTotal            *int     `json:"feeTotal" validate:"omitempty,min=0"`
	FeeUnit             *int     `json:"feeUnit" validate:"omitempty,min=0"`
	WithFee             *bool    `json:"withFee"`
	CommunityWorkFee    *float64 `json:"communityWorkFee" validate:"omitempty,gte=0,lte=100"`
	CommunitySupportFee *float64 `json:"communitySupportFee" validate:"omitempty,gte=0,lte=100"`
	NightWork           *bool    `json:"nightWork"`
	PriceAdjustment     *int     `json:"priceAdjustment"`

	// Payment
	PaymentMethod       *models.PaymentMethod `json:"paymentMethod" validate:"omitempty,oneof=SIGNATURE DIRECT_PAYMENT CASH"`
	ExpectedPaymentDate *string               `json:"expectedPaymentDate" validate:"omitempty,max=100"`

	// Contact
	SiteAddress   *string `json:"siteAddress" validate:"omitempty,max=255"`
	ContactNumber *string `json:"contactNumber" validate:"omitempty,max=30"`
	WorkContents  *string `json:"workContents" validate:"omitempty,max=1000"`
	DeliveryInfo  *string `json:"deliveryInfo" validate:"omitempty,max=1000"`

	Options *JobPostOptionsPayload `json:"options"`
}

type JobPostOptionsPayload struct {
	LoadingService *string `json:"loadingService" validate:"omitempty,max=50"`
	TravelDistance *string `json:"travelDistance" validate:"omitempty,max=50"`
	DumpService    *bool   `json:"dumpService"`
}

type ListJobPostsRequest struct {
	PostType    *models.PostType `form:"postType" json:"postType" validate:"omitempty,oneof=GLOBAL COMMUNITY DESIGNATED"`
	Category    *models.Category `form:"category" json:"category" validate:"omitempty,oneof=SKY LADDER"`
	AuthorID    *uint            `form:"authorId" json:"authorId" validate:"omitempty,min=1"`
	CommunityID *uint            `form:"communityId" json:"communityId" validate:"omitempty,min=1"`
	Page        int              `form:"page" json:"page" validate:"-"`
	PageSize    int              `form:"page_size" json:"pageSize" validate:"-"`
}

// --- Job post responses ---

// SkyPayload is the category-specific slice of a SKY post.
type SkyPayload struct {
	EquipmentType    string `json:"equipmentType"`
	EquipmentLengths []int  `json:"equipmentLengths"`
}

// LadderPayload is the category-specific slice of a LADDER post.
type LadderPayload struct {
	LadderType         models.LadderType      `json:"ladderType"`
	LuggageVolume      *string                `json:"luggageVolume,omitempty"`
	WorkFloor          *int                   `json:"workFloor,omitempty"`
	OverallHeight      *float64               `json:"overallHeight,omitempty"`
	LadderWorkDuration *string                `json:"ladderWorkDuration,omitempty"`
	Options            *JobPostOptionsPayload `json:"options,omitempty"`
}

// JobPostResponse is the shaped entity: common fields plus exactly one of
// Sky/Ladder, keyed by Category. The flat column layout stays behind the
// repository.
type JobPostResponse struct {
	ID               uint            `json:"id"`
	PostType         models.PostType `json:"postType"`
	Category         models.Category `json:"category"`
	AuthorID         uint            `json:"authorId"`
	CommunityID      *uint           `json:"communityId,omitempty"`
	DesignatedUserID *uint           `json:"designatedUserId,omitempty"`

	Sky    *SkyPayload    `json:"sky,omitempty"`
	Ladder *LadderPayload `json:"ladder,omitempty"`

	WorkDate        *string `json:"workDate,omitempty"`
	ArrivalTime     *string `json:"arrivalTime,omitempty"`
	WorkSchedule    *string `json:"workSchedule,omitempty"`
	CustomWorkHours *string `json:"customWorkHours,omitempty"`

	WorkCost            *int     `json:"workCost,omitempty"`
	FeeTotal            *int     `json:"feeTotal,omitempty"`
	FeeUnit             *int     `json:"feeUnit,omitempty"`
	WithFee             *bool    `json:"withFee,omitempty"`
	CommunityWorkFee    *float64 `json:"communityWorkFee,omitempty"`
	CommunitySupportFee *float64 `json:"communitySupportFee,omitempty"`
	NightWork           bool     `json:"nightWork"`
	PriceAdjustment     *int     `json:"priceAdjustment,omitempty"`

	PaymentMethod       *models.PaymentMethod `json:"paymentMethod,omitempty"`
	ExpectedPaymentDate *string               `json:"expectedPaymentDate,omitempty"`

	SiteAddress   *string `json:"siteAddress,omitempty"`
	ContactNumber *string `json:"contactNumber,omitempty"`
	WorkContents  *string `json:"workContents,omitempty"`
	DeliveryInfo  *string `json:"deliveryInfo,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
