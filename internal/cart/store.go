package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
)

// keyValue is the slice of the redis client the cart store uses.
type keyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(token string) string
}

// Store persists cart documents keyed by client token.
type Store interface {
	Fetch(ctx context.Context, token string) (*Cart, error)
	Save(ctx context.Context, cart *Cart) error
	Delete(ctx context.Context, token string) error
}

type redisStore struct {
	kv  keyValue
	ttl time.Duration
}

// NewStore builds the redis-backed cart store. Every save refreshes the
// TTL so active carts never expire mid-session.
func NewStore(kv keyValue, ttl time.Duration) Store {
	return &redisStore{kv: kv, ttl: ttl}
}

func (s *redisStore) Fetch(ctx context.Context, token string) (*Cart, error) {
	raw, err := s.kv.Get(ctx, s.kv.CartKey(token))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return NewCart(token), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetching cart")
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding stored cart")
	}
	cart.Token = token
	return &cart, nil
}

func (s *redisStore) Save(ctx context.Context, cart *Cart) error {
	cart.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart")
	}
	if err := s.kv.Set(ctx, s.kv.CartKey(cart.Token), string(raw), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, token string) error {
	if err := s.kv.Del(ctx, s.kv.CartKey(token)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting cart")
	}
	return nil
}
