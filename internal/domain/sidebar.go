package domain

import (
	"strings"
	"time"
)

// SidebarOption is a navigation entry shown in an agency's menu.
type SidebarOption struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	Icon      string    `json:"icon"`
	AgencyID  string    `json:"agencyId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SidebarTemplate is one row of the default navigation table.
// Link may contain the {agencyId} placeholder.
type SidebarTemplate struct {
	Name string
	Icon string
	Link string
}

const agencyIDPlaceholder = "{agencyId}"

var DefaultAgencySidebarTemplates = []SidebarTemplate{
	{Name: "Dashboard", Icon: "category", Link: "/agency/{agencyId}"},
	{Name: "Launchpad", Icon: "clipboard", Link: "/agency/{agencyId}/launchpad"},
	{Name: "Billing", Icon: "payment", Link: "/agency/{agencyId}/billing"},
	{Name: "Settings", Icon: "settings", Link: "/agency/{agencyId}/settings"},
	{Name: "Sub Accounts", Icon: "person", Link: "/agency/{agencyId}/all-subaccounts"},
	{Name: "Team", Icon: "shield", Link: "/agency/{agencyId}/team"},
}

// Expand renders the template for an agency.
func (t SidebarTemplate) Expand(agencyID string) SidebarOption {
	return SidebarOption{
		Name:     t.Name,
		Icon:     t.Icon,
		Link:     strings.ReplaceAll(t.Link, agencyIDPlaceholder, agencyID),
		AgencyID: agencyID,
	}
}

// DefaultAgencySidebar returns the navigation entries seeded on agency creation.
func DefaultAgencySidebar(agencyID string) []SidebarOption {
	options := make([]SidebarOption, 0, len(DefaultAgencySidebarTemplates))
	for _, t := range DefaultAgencySidebarTemplates {
		options = append(options, t.Expand(agencyID))
	}
	return options
}
