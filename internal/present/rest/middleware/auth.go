package middleware

import (
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/totegamma/plura/internal/domain"
	"github.com/totegamma/plura/internal/usecase"
)

var tracer = otel.Tracer("auth")

type AuthMiddleware struct {
	identity usecase.IdentityProvider
}

func NewAuthMiddleware(identity usecase.IdentityProvider) *AuthMiddleware {
	return &AuthMiddleware{
		identity: identity,
	}
}

// IdentifyCaller attaches the verified caller to the request context. A
// missing or invalid token leaves the request anonymous.
func (s *AuthMiddleware) IdentifyCaller(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifyCaller")
		defer span.End()

		authHeader := c.Request().Header.Get(domain.AuthorizationHeader)

		if authHeader != "" {
			split := strings.Split(authHeader, " ")
			if len(split) != 2 {
				span.RecordError(fmt.Errorf("invalid authentication header"))
				goto skipCheckAuthorization
			}

			authType, token := split[0], split[1]
			if authType != "Bearer" {
				span.RecordError(fmt.Errorf("only Bearer is acceptable"))
				goto skipCheckAuthorization
			}

			profile, err := s.identity.Verify(ctx, token)
			if err != nil {
				span.RecordError(errors.Wrap(err, "AuthMiddleware.IdentifyCaller: s.identity.Verify failed"))
				goto skipCheckAuthorization
			}

			ctx = domain.WithCaller(ctx, profile)
			span.SetAttributes(attribute.String("CallerId", profile.ID))
		}

	skipCheckAuthorization:
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}
