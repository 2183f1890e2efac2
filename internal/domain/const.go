package domain

type ctxKey string

const (
	CallerCtxKey ctxKey = "plura-caller"
)

const (
	AuthorizationHeader = "authorization"
)

// RoleClaim is the identity-provider metadata key carrying the resolved role.
const RoleClaim = "role"

// Upload targets accepted by the file storage service.
const (
	UploadTargetAgencyLogo     = "agencyLogo"
	UploadTargetSubAccountLogo = "subaccountLogo"
	UploadTargetAvatar         = "avatar"
	UploadTargetMedia          = "media"
)

// MaxUploadSize is the per-file limit for every upload target.
const MaxUploadSize = 4 << 20

func IsUploadTarget(target string) bool {
	switch target {
	case UploadTargetAgencyLogo, UploadTargetSubAccountLogo, UploadTargetAvatar, UploadTargetMedia:
		return true
	default:
		return false
	}
}

// Sign-in and landing paths used by the tenant router.
const (
	SignInPath      = "/agency/sign-in"
	DefaultSitePath = "/site"
)
