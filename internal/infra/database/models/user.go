package models

import (
	"time"
)

type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	Name      string    `json:"name" gorm:"type:text"`
	AvatarURL string    `json:"avatarUrl" gorm:"type:text"`
	Email     string    `json:"email" gorm:"type:text;not null;uniqueIndex"`
	Role      string    `json:"role" gorm:"type:text;not null"`
	AgencyID  *string   `json:"agencyId" gorm:"type:text;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"type:timestamp with time zone;not null"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"type:timestamp with time zone;not null"`

	Notifications []Notification `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE;"`
}

type Invitation struct {
	ID       string `json:"id" gorm:"primaryKey;type:text"`
	Email    string `json:"email" gorm:"type:text;not null;uniqueIndex"`
	AgencyID string `json:"agencyId" gorm:"type:text;not null;index"`
	Status   string `json:"status" gorm:"type:text;not null"`
	Role     string `json:"role" gorm:"type:text;not null"`
}

type Notification struct {
	ID           string      `json:"id" gorm:"primaryKey;type:text"`
	Notification string      `json:"notification" gorm:"type:text;not null"`
	AgencyID     string      `json:"agencyId" gorm:"type:text;not null;index"`
	SubAccountID *string     `json:"subAccountId" gorm:"type:text;index"`
	SubAccount   *SubAccount `json:"-" gorm:"foreignKey:SubAccountID;references:ID;constraint:OnDelete:CASCADE;"`
	UserID       string      `json:"userId" gorm:"type:text;not null;index"`
	CreatedAt    time.Time   `json:"createdAt" gorm:"type:timestamp with time zone;not null"`
}
