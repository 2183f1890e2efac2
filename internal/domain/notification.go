package domain

import "time"

// Notification is an append-only activity record.
type Notification struct {
	ID           string    `json:"id"`
	Notification string    `json:"notification"`
	AgencyID     string    `json:"agencyId"`
	SubAccountID *string   `json:"subAccountId,omitempty"`
	UserID       string    `json:"userId"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ActivityInput describes an activity to be logged.
type ActivityInput struct {
	AgencyID     string
	SubAccountID string
	Description  string
}
