package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/totegamma/plura/internal/domain"
)

type stubIdentity struct{}

func (stubIdentity) Verify(ctx context.Context, token string) (domain.Profile, error) {
	if token != "good" {
		return domain.Profile{}, errors.New("bad token")
	}
	return domain.Profile{ID: "u1", Email: "jane@x.com"}, nil
}

func (stubIdentity) PublishRole(ctx context.Context, userID string, role domain.Role) error {
	return nil
}

func TestIdentifyCaller(t *testing.T) {
	m := NewAuthMiddleware(stubIdentity{})

	tests := []struct {
		header string
		want   bool
	}{
		{"", false},
		{"Bearer good", true},
		{"Bearer bad", false},
		{"Basic good", false},
		{"Bearer", false},
	}

	for _, tt := range tests {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tt.header != "" {
			req.Header.Set("Authorization", tt.header)
		}
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		var present bool
		var caller domain.Profile
		err := m.IdentifyCaller(func(c echo.Context) error {
			caller, present = domain.CallerFromContext(c.Request().Context())
			return nil
		})(c)

		assert.NoError(t, err)
		assert.Equal(t, tt.want, present, tt.header)
		if tt.want {
			assert.Equal(t, "u1", caller.ID)
		}
	}
}
