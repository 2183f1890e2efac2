package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/totegamma/plura/internal/domain"
)

type RouteAction int

const (
	PassThrough RouteAction = iota
	Rewrite
	Redirect
)

// RouteRequest is the part of an inbound request the tenant router looks at.
type RouteRequest struct {
	Host     string
	Path     string
	RawQuery string
}

// RouteDecision is the outcome of Route. Path holds the rewritten path or the
// redirect location; RawQuery is the query to keep on a rewrite.
type RouteDecision struct {
	Action   RouteAction
	Path     string
	RawQuery string
}

// Subdomain extracts the tenant candidate from host. Hosts outside baseDomain
// yield an empty candidate.
func Subdomain(host, baseDomain string) string {
	host = normalizeHost(host)
	baseDomain = strings.ToLower(baseDomain)

	prefix, ok := strings.CutSuffix(host, "."+baseDomain)
	if !ok {
		return ""
	}
	label, _, _ := strings.Cut(prefix, ".")
	return strings.TrimSpace(label)
}

func normalizeHost(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return strings.ToLower(strings.TrimSpace(host))
}

// Route decides how a request is dispatched. A tenant subdomain wins over every
// other rule; after that sign-in aliases redirect and the root serves the site.
func Route(req RouteRequest, baseDomain string) RouteDecision {
	candidate := Subdomain(req.Host, baseDomain)
	if candidate != "" && candidate != "www" && candidate != strings.ToLower(baseDomain) {
		return RouteDecision{Action: Rewrite, Path: "/" + candidate + req.Path, RawQuery: req.RawQuery}
	}

	if req.Path == "/sign-in" || req.Path == "/sign-up" {
		return RouteDecision{Action: Redirect, Path: domain.SignInPath}
	}

	if req.Path == "/" || (req.Path == domain.DefaultSitePath && normalizeHost(req.Host) == strings.ToLower(baseDomain)) {
		return RouteDecision{Action: Rewrite, Path: domain.DefaultSitePath, RawQuery: req.RawQuery}
	}

	return RouteDecision{Action: PassThrough}
}

type TenantRouterConfig struct {
	Skipper    echomw.Skipper
	BaseDomain string
}

// DefaultTenantSkipper leaves the JSON API alone so tenant hosts can call it.
func DefaultTenantSkipper(c echo.Context) bool {
	return strings.HasPrefix(c.Request().URL.Path, "/api/")
}

// TenantRouter applies Route to every request. Register it with e.Pre so the
// rewritten path is used for routing.
func TenantRouter(config TenantRouterConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = DefaultTenantSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if config.Skipper(c) {
				return next(c)
			}

			req := c.Request()
			decision := Route(RouteRequest{
				Host:     req.Host,
				Path:     req.URL.Path,
				RawQuery: req.URL.RawQuery,
			}, config.BaseDomain)

			switch decision.Action {
			case Redirect:
				return c.Redirect(http.StatusTemporaryRedirect, decision.Path)
			case Rewrite:
				req.URL.Path = decision.Path
				req.URL.RawPath = ""
				req.URL.RawQuery = decision.RawQuery
			}
			return next(c)
		}
	}
}
