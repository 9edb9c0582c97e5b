package models

// User is created lazily on the first successful third-party login.
type User struct {
	BaseModel
	Provider     string   `gorm:"size:32;not null;uniqueIndex:idx_provider_subject" json:"provider"`
	OAuthSubject string   `gorm:"column:oauth_subject;size:191;not null;uniqueIndex:idx_provider_subject" json:"-"`
	Email        *string  `gorm:"size:255" json:"email,omitempty"`
	Name         *string  `gorm:"size:100" json:"name,omitempty"`
	Nickname     *string  `gorm:"size:100" json:"nickname,omitempty"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
}
