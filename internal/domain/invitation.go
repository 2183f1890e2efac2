package domain

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "PENDING"
	InvitationAccepted InvitationStatus = "ACCEPTED"
	InvitationRevoked  InvitationStatus = "REVOKED"
)

// Invitation is a pending offer for an email address to join an agency.
type Invitation struct {
	ID       string           `json:"id"`
	Email    string           `json:"email"`
	AgencyID string           `json:"agencyId"`
	Status   InvitationStatus `json:"status"`
	Role     Role             `json:"role"`
}
