package models

import (
	"gorm.io/datatypes"
)

// JobPost is the flat storage row for a posting. The SKY and LADDER payloads
// are mutually exclusive by category; the service layer shapes this row into
// a tagged response so invalid combinations never leave the storage boundary.
type JobPost struct {
	BaseModel
	PostType PostType `gorm:"type:varchar(20);not null;index" json:"postType"`
	Category Category `gorm:"type:varchar(20);not null;index" json:"category"`
	AuthorID uint     `gorm:"not null;index" json:"authorId"`

	// Exactly one of these is set, and only when PostType requires it.
	CommunityID      *uint `gorm:"index" json:"communityId,omitempty"`
	DesignatedUserID *uint `gorm:"index" json:"designatedUserId,omitempty"`

	// SKY payload
	EquipmentType    *string        `gorm:"size:50" json:"equipmentType,omitempty"`
	EquipmentLengths datatypes.JSON `gorm:"type:jsonb" json:"equipmentLengths,omitempty"`

	// LADDER payload
	LadderType     *LadderType `gorm:"type:varchar(20)" json:"ladderType,omitempty"`
	LuggageVolume  *string     `gorm:"size:100" json:"luggageVolume,omitempty"`
	WorkFloor      *int        `json:"workFloor,omitempty"`
	OverallHeight  *float64    `json:"overallHeight,omitempty"`

	// Scheduling
	WorkDate           *string `gorm:"size:100" json:"workDate,omitempty"`
	ArrivalTime        *string `gorm:"size:5" json:"arrivalTime,omitempty"`
	WorkSchedule       *string `gorm:"size:100" json:"workSchedule,omitempty"`
	LadderWorkDuration *string `gorm:"size:100" json:"ladderWorkDuration,omitempty"`
	CustomWorkHours    *string `gorm:"size:100" json:"customWorkHours,omitempty"`

	// Pricing
	WorkCost            *int     `json:"workCost,omitempty"`
	FeeTotal            *int     `json:"feeTotal,omitempty"`
	FeeUnit             *int     `json:"feeUnit,omitempty"`
	WithFee             *bool    `json:"withFee,omitempty"`
	CommunityWorkFee    *float64 `json:"communityWorkFee,omitempty"`
	CommunitySupportFee *float64 `json:"communitySupportFee,omitempty"`
	NightWork           bool     `gorm:"not null;default:false" json:"nightWork"`
	PriceAdjustment     *int     `json:"priceAdjustment,omitempty"`

	// Payment
	PaymentMethod       *PaymentMethod `gorm:"type:varchar(20)" json:"paymentMethod,omitempty"`
	ExpectedPaymentDate *string        `gorm:"size:100" json:"expectedPaymentDate,omitempty"`

	// Contact
	SiteAddress   *string `gorm:"size:255" json:"siteAddress,omitempty"`
	ContactNumber *string `gorm:"size:30" json:"contactNumber,omitempty"`
	WorkContents  *string `gorm:"size:1000" json:"workContents,omitempty"`
	DeliveryInfo  *string `gorm:"size:1000" json:"deliveryInfo,omitempty"`

	Options *JobPostOptions `gorm:"foreignKey:JobPostID;constraint:OnDelete:CASCADE" json:"options,omitempty"`
}

// JobPostOptions is the one-to-one extension row for LADDER posts carrying
// the optional service flags. Lifecycle is tied to its JobPost.
type JobPostOptions struct {
	BaseModel
	JobPostID      uint    `gorm:"not null;uniqueIndex" json:"jobPostId"`
	LoadingService *string `gorm:"size:50" json:"loadingService,omitempty"`
	TravelDistance *string `gorm:"size:50" json:"travelDistance,omitempty"`
	DumpService    *bool   `json:"dumpService,omitempty"`
}
