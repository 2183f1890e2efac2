package usecase

import (
	"context"
	"io"
	"sort"
	"sync"

	"github.com/totegamma/plura/internal/domain"
)

// --- in-memory store with transactional snapshots ---

type memData struct {
	agencies      map[string]domain.Agency
	users         map[string]domain.User
	sidebar       []domain.SidebarOption
	invitations   map[string]domain.Invitation
	notifications []domain.Notification
	subAccounts   map[string]domain.SubAccount
}

func newMemData() *memData {
	return &memData{
		agencies:    map[string]domain.Agency{},
		users:       map[string]domain.User{},
		invitations: map[string]domain.Invitation{},
		subAccounts: map[string]domain.SubAccount{},
	}
}

func (d *memData) clone() *memData {
	c := newMemData()
	for k, v := range d.agencies {
		c.agencies[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.invitations {
		c.invitations[k] = v
	}
	for k, v := range d.subAccounts {
		c.subAccounts[k] = v
	}
	c.sidebar = append(c.sidebar, d.sidebar...)
	c.notifications = append(c.notifications, d.notifications...)
	return c
}

type memDB struct {
	mu            sync.Mutex
	data          *memData
	userUpdateErr error
	commits       int
	rollbacks     int
}

func newMemDB() *memDB {
	return &memDB{data: newMemData()}
}

func (db *memDB) store() *memStore { return &memStore{db: db} }

type memStore struct {
	db *memDB
	tx *memData
}

func (s *memStore) d() *memData {
	if s.tx != nil {
		return s.tx
	}
	return s.db.data
}

func (s *memStore) WithTransaction(ctx context.Context, fn func(ctx context.Context, tx Store) error) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	snapshot := s.db.data.clone()
	if err := fn(ctx, &memStore{db: s.db, tx: snapshot}); err != nil {
		s.db.rollbacks++
		return err
	}
	s.db.data = snapshot
	s.db.commits++
	return nil
}

func (s *memStore) Agencies() AgencyRepository            { return memAgencies{s} }
func (s *memStore) Users() UserRepository                 { return memUsers{s} }
func (s *memStore) Sidebar() SidebarRepository            { return memSidebar{s} }
func (s *memStore) Invitations() InvitationRepository     { return memInvitations{s} }
func (s *memStore) Notifications() NotificationRepository { return memNotifications{s} }
func (s *memStore) SubAccounts() SubAccountRepository     { return memSubAccounts{s} }

type memAgencies struct{ s *memStore }

func (r memAgencies) Get(ctx context.Context, id string) (domain.Agency, error) {
	a, ok := r.s.d().agencies[id]
	if !ok {
		return domain.Agency{}, domain.NotFoundError{Resource: "agency"}
	}
	return a, nil
}

func (r memAgencies) GetForUpdate(ctx context.Context, id string) (domain.Agency, error) {
	return r.Get(ctx, id)
}

func (r memAgencies) Create(ctx context.Context, agency domain.Agency) error {
	r.s.d().agencies[agency.ID] = agency
	return nil
}

func (r memAgencies) Update(ctx context.Context, agency domain.Agency) error {
	current, ok := r.s.d().agencies[agency.ID]
	if !ok {
		return domain.NotFoundError{Resource: "agency"}
	}
	current.Name = agency.Name
	current.CompanyEmail = agency.CompanyEmail
	current.CompanyPhone = agency.CompanyPhone
	current.Address = agency.Address
	current.City = agency.City
	current.ZipCode = agency.ZipCode
	current.State = agency.State
	current.Country = agency.Country
	current.WhiteLabel = agency.WhiteLabel
	current.AgencyLogo = agency.AgencyLogo
	current.Goal = agency.Goal
	r.s.d().agencies[agency.ID] = current
	return nil
}

func (r memAgencies) ApplyUpdate(ctx context.Context, id string, update domain.AgencyUpdate) error {
	current, ok := r.s.d().agencies[id]
	if !ok {
		return domain.NotFoundError{Resource: "agency"}
	}
	if update.Name != nil {
		current.Name = *update.Name
	}
	if update.Goal != nil {
		current.Goal = *update.Goal
	}
	if update.WhiteLabel != nil {
		current.WhiteLabel = *update.WhiteLabel
	}
	r.s.d().agencies[id] = current
	return nil
}

func (r memAgencies) Delete(ctx context.Context, id string) error {
	d := r.s.d()
	if _, ok := d.agencies[id]; !ok {
		return domain.NotFoundError{Resource: "agency"}
	}
	delete(d.agencies, id)
	kept := d.sidebar[:0]
	for _, o := range d.sidebar {
		if o.AgencyID != id {
			kept = append(kept, o)
		}
	}
	d.sidebar = kept
	return nil
}

type memUsers struct{ s *memStore }

func (r memUsers) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	u, ok := r.s.d().users[email]
	if !ok {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, nil
}

func (r memUsers) Create(ctx context.Context, user domain.User) error {
	r.s.d().users[user.Email] = user
	return nil
}

func (r memUsers) Update(ctx context.Context, email string, fields UserFields) error {
	if r.s.db.userUpdateErr != nil {
		return r.s.db.userUpdateErr
	}
	u, ok := r.s.d().users[email]
	if !ok {
		return domain.NotFoundError{Resource: "user"}
	}
	if fields.Role != nil {
		u.Role = *fields.Role
	}
	if fields.AgencyID != nil {
		id := *fields.AgencyID
		u.AgencyID = &id
	}
	r.s.d().users[email] = u
	return nil
}

func (r memUsers) DetachAgency(ctx context.Context, agencyID string) error {
	for email, u := range r.s.d().users {
		if u.AgencyID != nil && *u.AgencyID == agencyID {
			u.AgencyID = nil
			r.s.d().users[email] = u
		}
	}
	return nil
}

func (r memUsers) FirstBySubAccount(ctx context.Context, subAccountID string) (domain.User, error) {
	sub, ok := r.s.d().subAccounts[subAccountID]
	if !ok {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	emails := make([]string, 0, len(r.s.d().users))
	for email := range r.s.d().users {
		emails = append(emails, email)
	}
	sort.Strings(emails)
	for _, email := range emails {
		u := r.s.d().users[email]
		if u.AgencyID != nil && *u.AgencyID == sub.AgencyID {
			return u, nil
		}
	}
	return domain.User{}, domain.NotFoundError{Resource: "user"}
}

type memSidebar struct{ s *memStore }

func (r memSidebar) CreateMany(ctx context.Context, options []domain.SidebarOption) error {
	r.s.d().sidebar = append(r.s.d().sidebar, options...)
	return nil
}

func (r memSidebar) ListByAgency(ctx context.Context, agencyID string) ([]domain.SidebarOption, error) {
	var out []domain.SidebarOption
	for _, o := range r.s.d().sidebar {
		if o.AgencyID == agencyID {
			out = append(out, o)
		}
	}
	return out, nil
}

type memInvitations struct{ s *memStore }

func (r memInvitations) GetPendingByEmail(ctx context.Context, email string) (domain.Invitation, error) {
	for _, inv := range r.s.d().invitations {
		if inv.Email == email && inv.Status == domain.InvitationPending {
			return inv, nil
		}
	}
	return domain.Invitation{}, domain.NotFoundError{Resource: "invitation"}
}

func (r memInvitations) Delete(ctx context.Context, id string) error {
	if _, ok := r.s.d().invitations[id]; !ok {
		return domain.NotFoundError{Resource: "invitation"}
	}
	delete(r.s.d().invitations, id)
	return nil
}

type memNotifications struct{ s *memStore }

func (r memNotifications) Create(ctx context.Context, n domain.Notification) error {
	r.s.d().notifications = append(r.s.d().notifications, n)
	return nil
}

func (r memNotifications) ListByAgency(ctx context.Context, agencyID string, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	for i := len(r.s.d().notifications) - 1; i >= 0 && len(out) < limit; i-- {
		if n := r.s.d().notifications[i]; n.AgencyID == agencyID {
			out = append(out, n)
		}
	}
	return out, nil
}

type memSubAccounts struct{ s *memStore }

func (r memSubAccounts) Get(ctx context.Context, id string) (domain.SubAccount, error) {
	sub, ok := r.s.d().subAccounts[id]
	if !ok {
		return domain.SubAccount{}, domain.NotFoundError{Resource: "sub account"}
	}
	return sub, nil
}

func (r memSubAccounts) ListByAgency(ctx context.Context, agencyID string) ([]domain.SubAccount, error) {
	var out []domain.SubAccount
	for _, sub := range r.s.d().subAccounts {
		if sub.AgencyID == agencyID {
			out = append(out, sub)
		}
	}
	return out, nil
}

// --- collaborators ---

type mockIdentity struct {
	published map[string]domain.Role
	err       error
}

func newMockIdentity() *mockIdentity {
	return &mockIdentity{published: map[string]domain.Role{}}
}

func (m *mockIdentity) Verify(ctx context.Context, token string) (domain.Profile, error) {
	return domain.Profile{}, nil
}

func (m *mockIdentity) PublishRole(ctx context.Context, userID string, role domain.Role) error {
	if m.err != nil {
		return m.err
	}
	m.published[userID] = role
	return nil
}

type mapCache struct {
	items       map[string]domain.Agency
	invalidated []string
}

func newMapCache() *mapCache {
	return &mapCache{items: map[string]domain.Agency{}}
}

func (c *mapCache) Get(ctx context.Context, id string) (domain.Agency, bool) {
	a, ok := c.items[id]
	return a, ok
}

func (c *mapCache) Set(ctx context.Context, agency domain.Agency) {
	c.items[agency.ID] = agency
}

func (c *mapCache) Invalidate(ctx context.Context, id string) {
	delete(c.items, id)
	c.invalidated = append(c.invalidated, id)
}

type recordPublisher struct {
	published []domain.Notification
}

func (p *recordPublisher) Publish(ctx context.Context, n domain.Notification) error {
	p.published = append(p.published, n)
	return nil
}

type mockStorage struct {
	object      string
	contentType string
	body        []byte
	err         error
}

func (m *mockStorage) Put(ctx context.Context, object, contentType string, body io.Reader) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.object, m.contentType, m.body = object, contentType, b
	return "https://storage.example.com/" + object, nil
}

func callerCtx(email, id string) context.Context {
	return domain.WithCaller(context.Background(), domain.Profile{ID: id, Email: email, Name: "Jane Doe"})
}

func ptr[T any](v T) *T { return &v }
