package session

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/tiopelotte/storefront-api/pkg/cms"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
	"github.com/tiopelotte/storefront-api/pkg/logger"
)

// Session is the cached user profile plus the CMS token that backs it.
type Session struct {
	User        cms.User  `json:"user"`
	JWT         string    `json:"jwt"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

// authenticator is the slice of the CMS client that handles credentials.
type authenticator interface {
	Login(ctx context.Context, identifier, password string) (*cms.AuthResponse, error)
	Me(ctx context.Context, bearer string) (*cms.User, error)
}

type keyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SessionKey(userID string) string
}

// Service proxies authentication to the CMS and caches the profile so most
// requests skip the round trip.
type Service interface {
	Login(ctx context.Context, identifier, password string) (*Session, error)
	Me(ctx context.Context, userID int, bearer string) (*Session, error)
	Logout(ctx context.Context, userID int) error
}

type service struct {
	cms  authenticator
	kv   keyValue
	ttl  time.Duration
	logg *logger.Logger
}

// NewService wires the session service.
func NewService(cmsClient authenticator, kv keyValue, ttl time.Duration, logg *logger.Logger) Service {
	return &service{cms: cmsClient, kv: kv, ttl: ttl, logg: logg}
}

func (s *service) Login(ctx context.Context, identifier, password string) (*Session, error) {
	if identifier == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "identifier and password are required")
	}

	auth, err := s.cms.Login(ctx, identifier, password)
	if err != nil {
		typed := pkgerrors.As(err)
		if typed != nil && typed.Code() == pkgerrors.CodeValidation {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, err
	}

	session := &Session{User: auth.User, JWT: auth.JWT, RefreshedAt: time.Now().UTC()}
	if err := s.save(ctx, session); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithUserID(ctx, strconv.Itoa(auth.User.ID)), "caching session after login")
	}
	return session, nil
}

// Me returns the cached session, rehydrating from the CMS when the cache
// expired or a restart wiped it.
func (s *service) Me(ctx context.Context, userID int, bearer string) (*Session, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	raw, err := s.kv.Get(ctx, s.kv.SessionKey(strconv.Itoa(userID)))
	if err == nil {
		var session Session
		if err := json.Unmarshal([]byte(raw), &session); err == nil {
			return &session, nil
		}
	} else if !errors.Is(err, goredis.Nil) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetching session")
	}

	user, err := s.cms.Me(ctx, bearer)
	if err != nil {
		return nil, err
	}
	session := &Session{User: *user, JWT: bearer, RefreshedAt: time.Now().UTC()}
	if err := s.save(ctx, session); err != nil && s.logg != nil {
		s.logg.Warn(s.logg.WithUserID(ctx, strconv.Itoa(user.ID)), "caching rehydrated session")
	}
	return session, nil
}

func (s *service) Logout(ctx context.Context, userID int) error {
	if userID <= 0 {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if err := s.kv.Del(ctx, s.kv.SessionKey(strconv.Itoa(userID))); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting session")
	}
	return nil
}

func (s *service) save(ctx context.Context, session *Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, s.kv.SessionKey(strconv.Itoa(session.User.ID)), string(raw), s.ttl)
}
