package models

import (
	"time"
)

type Agency struct {
	ID               string    `json:"id" gorm:"primaryKey;type:text"`
	ConnectAccountID string    `json:"connectAccountId" gorm:"type:text"`
	CustomerID       string    `json:"customerId" gorm:"type:text"`
	Name             string    `json:"name" gorm:"type:text;not null"`
	AgencyLogo       string    `json:"agencyLogo" gorm:"type:text"`
	CompanyEmail     string    `json:"companyEmail" gorm:"type:text;not null;uniqueIndex"`
	CompanyPhone     string    `json:"companyPhone" gorm:"type:text"`
	WhiteLabel       bool      `json:"whiteLabel" gorm:"type:boolean;not null"`
	Address          string    `json:"address" gorm:"type:text"`
	City             string    `json:"city" gorm:"type:text"`
	ZipCode          string    `json:"zipCode" gorm:"type:text"`
	State            string    `json:"state" gorm:"type:text"`
	Country          string    `json:"country" gorm:"type:text"`
	Goal             int       `json:"goal" gorm:"type:integer;not null"`
	CreatedAt        time.Time `json:"createdAt" gorm:"type:timestamp with time zone;not null"`
	UpdatedAt        time.Time `json:"updatedAt" gorm:"type:timestamp with time zone;not null"`

	Users          []User          `json:"-" gorm:"foreignKey:AgencyID;references:ID;constraint:OnDelete:SET NULL;"`
	SidebarOptions []SidebarOption `json:"-" gorm:"foreignKey:AgencyID;references:ID;constraint:OnDelete:CASCADE;"`
	SubAccounts    []SubAccount    `json:"-" gorm:"foreignKey:AgencyID;references:ID;constraint:OnDelete:CASCADE;"`
	Invitations    []Invitation    `json:"-" gorm:"foreignKey:AgencyID;references:ID;constraint:OnDelete:CASCADE;"`
	Notifications  []Notification  `json:"-" gorm:"foreignKey:AgencyID;references:ID;constraint:OnDelete:CASCADE;"`
}

type SubAccount struct {
	ID           string    `json:"id" gorm:"primaryKey;type:text"`
	AgencyID     string    `json:"agencyId" gorm:"type:text;not null;index"`
	Name         string    `json:"name" gorm:"type:text;not null"`
	CompanyEmail string    `json:"companyEmail" gorm:"type:text"`
	CreatedAt    time.Time `json:"createdAt" gorm:"type:timestamp with time zone;not null"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"type:timestamp with time zone;not null"`
}

type SidebarOption struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	Link      string    `json:"link" gorm:"type:text;not null"`
	Icon      string    `json:"icon" gorm:"type:text;not null"`
	Position  int       `json:"position" gorm:"type:integer;not null"`
	AgencyID  string    `json:"agencyId" gorm:"type:text;not null;index"`
	CreatedAt time.Time `json:"createdAt" gorm:"type:timestamp with time zone;not null"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"type:timestamp with time zone;not null"`
}
