package domain

import "time"

// Agency is a tenant organization.
type Agency struct {
	ID               string    `json:"id"`
	ConnectAccountID string    `json:"connectAccountId"`
	CustomerID       string    `json:"customerId"`
	Name             string    `json:"name"`
	AgencyLogo       string    `json:"agencyLogo"`
	CompanyEmail     string    `json:"companyEmail"`
	CompanyPhone     string    `json:"companyPhone"`
	WhiteLabel       bool      `json:"whiteLabel"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	ZipCode          string    `json:"zipCode"`
	State            string    `json:"state"`
	Country          string    `json:"country"`
	Goal             int       `json:"goal"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`

	SidebarOptions []SidebarOption `json:"sidebarOptions,omitempty"`
	SubAccounts    []SubAccount    `json:"subAccounts,omitempty"`
}

// DefaultAgencyGoal is the sub-account goal assigned to new agencies.
const DefaultAgencyGoal = 5

// AgencyUpdate carries a partial agency update. Nil fields are left untouched.
type AgencyUpdate struct {
	Name         *string `json:"name,omitempty"`
	AgencyLogo   *string `json:"agencyLogo,omitempty"`
	CompanyEmail *string `json:"companyEmail,omitempty"`
	CompanyPhone *string `json:"companyPhone,omitempty"`
	WhiteLabel   *bool   `json:"whiteLabel,omitempty"`
	Address      *string `json:"address,omitempty"`
	City         *string `json:"city,omitempty"`
	ZipCode      *string `json:"zipCode,omitempty"`
	State        *string `json:"state,omitempty"`
	Country      *string `json:"country,omitempty"`
	Goal         *int    `json:"goal,omitempty"`
}

// Empty reports whether no field is set.
func (u AgencyUpdate) Empty() bool {
	return u.Name == nil && u.AgencyLogo == nil && u.CompanyEmail == nil &&
		u.CompanyPhone == nil && u.WhiteLabel == nil && u.Address == nil &&
		u.City == nil && u.ZipCode == nil && u.State == nil && u.Country == nil &&
		u.Goal == nil
}

// SubAccount is a child account of an agency.
type SubAccount struct {
	ID           string    `json:"id"`
	AgencyID     string    `json:"agencyId"`
	Name         string    `json:"name"`
	CompanyEmail string    `json:"companyEmail"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
