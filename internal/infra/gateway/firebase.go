package gateway

import (
	"context"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"

	"github.com/totegamma/plura/internal/domain"
)

// AuthClient is the part of the Firebase Auth client used by FirebaseIdentity.
type AuthClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
	GetUser(ctx context.Context, uid string) (*firebaseauth.UserRecord, error)
	SetCustomUserClaims(ctx context.Context, uid string, customClaims map[string]interface{}) error
}

// FirebaseIdentity resolves callers from Firebase ID tokens and stores the
// console role in the user's custom claims.
type FirebaseIdentity struct {
	client AuthClient
	cache  *cache.Cache
}

func NewFirebaseIdentity(client AuthClient) *FirebaseIdentity {
	return &FirebaseIdentity{
		client: client,
		cache:  cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (g *FirebaseIdentity) Verify(ctx context.Context, token string) (domain.Profile, error) {
	verified, err := g.client.VerifyIDToken(ctx, token)
	if err != nil {
		return domain.Profile{}, errors.Wrap(err, "failed to verify id token")
	}

	record, err := g.lookup(ctx, verified.UID)
	if err != nil {
		return domain.Profile{}, err
	}

	return domain.Profile{
		ID:       verified.UID,
		Email:    record.Email,
		Name:     record.DisplayName,
		ImageURL: record.PhotoURL,
	}, nil
}

func (g *FirebaseIdentity) lookup(ctx context.Context, uid string) (*firebaseauth.UserRecord, error) {
	if cached, found := g.cache.Get(uid); found {
		return cached.(*firebaseauth.UserRecord), nil
	}

	record, err := g.client.GetUser(ctx, uid)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}
	if record.UserInfo == nil {
		return nil, errors.New("user record has no profile")
	}

	g.cache.Set(uid, record, cache.DefaultExpiration)
	return record, nil
}

func (g *FirebaseIdentity) PublishRole(ctx context.Context, userID string, role domain.Role) error {
	claims := map[string]interface{}{}

	record, err := g.lookup(ctx, userID)
	if err != nil {
		return err
	}
	for k, v := range record.CustomClaims {
		claims[k] = v
	}
	claims[domain.RoleClaim] = string(role)

	err = g.client.SetCustomUserClaims(ctx, userID, claims)
	if err != nil {
		return errors.Wrap(err, "failed to set custom claims")
	}

	g.cache.Delete(userID)
	return nil
}
