package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/plura/internal/domain"
	"github.com/totegamma/plura/internal/present/rest/middleware"
	"github.com/totegamma/plura/internal/usecase"
)

// fakeDB implements only what the handler flows touch; the embedded nil
// interfaces panic on anything else.
type fakeDB struct {
	users       *fakeUsers
	invitations *fakeInvitations
}

func (d *fakeDB) Agencies() usecase.AgencyRepository            { return nil }
func (d *fakeDB) Users() usecase.UserRepository                 { return d.users }
func (d *fakeDB) Sidebar() usecase.SidebarRepository            { return nil }
func (d *fakeDB) Invitations() usecase.InvitationRepository     { return d.invitations }
func (d *fakeDB) Notifications() usecase.NotificationRepository { return fakeNotifications{} }
func (d *fakeDB) SubAccounts() usecase.SubAccountRepository     { return nil }

func (d *fakeDB) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx usecase.Store) error) error {
	return fn(ctx, d)
}

type fakeUsers struct {
	usecase.UserRepository
	rows map[string]domain.User
}

func (r *fakeUsers) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	u, ok := r.rows[email]
	if !ok {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, nil
}

func (r *fakeUsers) Create(ctx context.Context, user domain.User) error {
	r.rows[user.Email] = user
	return nil
}

type fakeInvitations struct {
	usecase.InvitationRepository
	rows map[string]domain.Invitation
}

func (r *fakeInvitations) GetPendingByEmail(ctx context.Context, email string) (domain.Invitation, error) {
	inv, ok := r.rows[email]
	if !ok {
		return domain.Invitation{}, domain.NotFoundError{Resource: "invitation"}
	}
	return inv, nil
}

type fakeNotifications struct {
	usecase.NotificationRepository
}

func (fakeNotifications) ListByAgency(ctx context.Context, agencyID string, limit int) ([]domain.Notification, error) {
	return []domain.Notification{{ID: "n1", AgencyID: agencyID, Notification: "Jane Doe | Joined"}}, nil
}

// tokens are the caller's email
type fakeIdentity struct {
	published map[string]domain.Role
}

func (f *fakeIdentity) Verify(ctx context.Context, token string) (domain.Profile, error) {
	if !strings.Contains(token, "@") {
		return domain.Profile{}, errors.New("invalid token")
	}
	return domain.Profile{ID: "idp-" + token, Email: token, Name: "Jane Doe"}, nil
}

func (f *fakeIdentity) PublishRole(ctx context.Context, userID string, role domain.Role) error {
	f.published[userID] = role
	return nil
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, id string) (domain.Agency, bool) {
	return domain.Agency{}, false
}
func (noopCache) Set(ctx context.Context, agency domain.Agency) {}
func (noopCache) Invalidate(ctx context.Context, id string)     {}

type fakeStorage struct{}

func (fakeStorage) Put(ctx context.Context, object, contentType string, body io.Reader) (string, error) {
	return "https://storage.googleapis.com/bkt/" + object, nil
}

type fixture struct {
	e        *echo.Echo
	db       *fakeDB
	identity *fakeIdentity
}

func setup() *fixture {
	db := &fakeDB{
		users:       &fakeUsers{rows: map[string]domain.User{}},
		invitations: &fakeInvitations{rows: map[string]domain.Invitation{}},
	}
	identity := &fakeIdentity{published: map[string]domain.Role{}}
	config := domain.Config{BaseDomain: "example.com", Bucket: "bkt"}

	notification := usecase.NewNotificationUsecase(db, nil)
	handler := NewHandler(
		config,
		usecase.NewAgencyUsecase(db, noopCache{}, notification),
		usecase.NewUserUsecase(db, identity),
		usecase.NewInvitationUsecase(db, identity, nil),
		notification,
		usecase.NewUploadUsecase(fakeStorage{}),
		nil,
	)

	e := echo.New()
	e.Pre(middleware.TenantRouter(middleware.TenantRouterConfig{BaseDomain: config.BaseDomain}))
	e.Use(middleware.NewAuthMiddleware(identity).IdentifyCaller)
	handler.RegisterRoutes(e)

	return &fixture{e: e, db: db, identity: identity}
}

func (f *fixture) do(method, target, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	req.Host = "example.com"
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func TestPublicCatalogs(t *testing.T) {
	f := setup()

	rec := f.do(http.MethodGet, "/api/v1/icons", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var icons []domain.Icon
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &icons))
	assert.Len(t, icons, len(domain.Icons))

	rec = f.do(http.MethodGet, "/api/v1/plans", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Unlimited Saas")

	rec = f.do(http.MethodGet, "/", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"page":"site"`)
}

func TestTenantPageOnSubdomain(t *testing.T) {
	f := setup()

	req := httptest.NewRequest(http.MethodGet, "/funnels/launch", nil)
	req.Host = "acme.example.com"
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"page":"tenant","domain":"acme","path":"/funnels/launch"}`, rec.Body.String())
}

func TestProtectedRoutesRequireCaller(t *testing.T) {
	f := setup()

	for _, tt := range []struct{ method, target string }{
		{http.MethodGet, "/api/v1/me"},
		{http.MethodPost, "/api/v1/users/init"},
		{http.MethodPost, "/api/v1/agencies"},
		{http.MethodGet, "/api/v1/agencies/A1"},
		{http.MethodPatch, "/api/v1/agencies/A1"},
		{http.MethodDelete, "/api/v1/agencies/A1"},
		{http.MethodGet, "/api/v1/agencies/A1/notifications"},
		{http.MethodGet, "/api/v1/agencies/A1/realtime"},
		{http.MethodPost, "/api/v1/invitations/accept"},
		{http.MethodPost, "/api/v1/uploads/avatar"},
	} {
		rec := f.do(tt.method, tt.target, "not-a-token", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tt.method+" "+tt.target)
	}
}

func TestInitUserThenMe(t *testing.T) {
	f := setup()

	rec := f.do(http.MethodGet, "/api/v1/me", "jane@x.com", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = f.do(http.MethodPost, "/api/v1/users/init", "jane@x.com", strings.NewReader(`{}`), echo.MIMEApplicationJSON)
	require.Equal(t, http.StatusOK, rec.Code)

	var result usecase.InitUserResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, domain.RoleSubAccountUser, result.User.Role)
	assert.Empty(t, result.Warning)
	assert.Equal(t, domain.RoleSubAccountUser, f.identity.published["idp-jane@x.com"])

	rec = f.do(http.MethodGet, "/api/v1/me", "jane@x.com", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"email":"jane@x.com"`)
}

func TestInitUserRejectsUnknownRole(t *testing.T) {
	f := setup()

	rec := f.do(http.MethodPost, "/api/v1/users/init", "jane@x.com", strings.NewReader(`{"role":"ROOT"}`), echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.db.users.rows)
}

func TestAcceptInvitation(t *testing.T) {
	f := setup()

	rec := f.do(http.MethodPost, "/api/v1/invitations/accept", "bob@x.com", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	f.db.invitations.rows["bob@x.com"] = domain.Invitation{
		ID: "i1", Email: "bob@x.com", AgencyID: "A1", Status: domain.InvitationPending, Role: domain.RoleAgencyOwner,
	}
	rec = f.do(http.MethodPost, "/api/v1/invitations/accept", "bob@x.com", nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, f.db.users.rows)
}

func TestUpsertAgencyRequiresEmail(t *testing.T) {
	f := setup()

	rec := f.do(http.MethodPost, "/api/v1/agencies", "jane@x.com", strings.NewReader(`{"name":"Acme"}`), echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "companyEmail")
}

func TestInitUserCannotClaimOwnership(t *testing.T) {
	f := setup()

	rec := f.do(http.MethodPost, "/api/v1/users/init", "evil@x.com", strings.NewReader(`{"role":"AGENCY_OWNER","agencyId":"A1"}`), echo.MIMEApplicationJSON)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, f.db.users.rows)
	assert.Empty(t, f.identity.published)
}

func TestAgencyReadsStayInTenant(t *testing.T) {
	f := setup()
	f.db.users.rows["jane@x.com"] = domain.User{ID: "idp-jane@x.com", Email: "jane@x.com", Role: domain.RoleAgencyOwner, AgencyID: ptr("A1")}

	for _, target := range []string{
		"/api/v1/agencies/A2",
		"/api/v1/agencies/A2/notifications",
		"/api/v1/agencies/A2/realtime",
	} {
		rec := f.do(http.MethodGet, target, "jane@x.com", nil, "")
		assert.Equal(t, http.StatusForbidden, rec.Code, target)
	}

	rec := f.do(http.MethodGet, "/api/v1/agencies/A1/realtime", "nobody@x.com", nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestNotifications(t *testing.T) {
	f := setup()
	f.db.users.rows["jane@x.com"] = domain.User{ID: "idp-jane@x.com", Email: "jane@x.com", Role: domain.RoleSubAccountUser, AgencyID: ptr("A1")}

	rec := f.do(http.MethodGet, "/api/v1/agencies/A1/notifications?limit=abc", "jane@x.com", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodGet, "/api/v1/agencies/A1/notifications", "jane@x.com", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Jane Doe | Joined")

	rec = f.do(http.MethodGet, "/api/v1/agencies/A1/notifications", "rival@x.com", nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func ptr[T any](v T) *T { return &v }

func multipartBody(t *testing.T, field, filename, contentType string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	if field != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func TestUpload(t *testing.T) {
	f := setup()

	body, ct := multipartBody(t, "file", "Logo.PNG", "image/png", []byte("png-bytes"))
	rec := f.do(http.MethodPost, "/api/v1/uploads/agencyLogo", "jane@x.com", body, ct)
	require.Equal(t, http.StatusOK, rec.Code)

	var result usecase.UploadResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, strings.HasPrefix(result.URL, "https://storage.googleapis.com/bkt/agencyLogo/"))
	assert.True(t, strings.HasSuffix(result.URL, ".png"))
	assert.Equal(t, "idp-jane@x.com", result.UploadedBy)

	body, ct = multipartBody(t, "file", "notes.txt", "text/plain", []byte("hello"))
	rec = f.do(http.MethodPost, "/api/v1/uploads/media", "jane@x.com", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, ct = multipartBody(t, "", "", "", nil)
	rec = f.do(http.MethodPost, "/api/v1/uploads/media", "jane@x.com", body, ct)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	body, ct = multipartBody(t, "file", "a.png", "image/png", []byte("x"))
	rec = f.do(http.MethodPost, "/api/v1/uploads/banner", "jane@x.com", body, ct)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
