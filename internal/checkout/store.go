package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/tiopelotte/storefront-api/pkg/cms"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
)

// Record is the per-checkout state document kept in Redis for the lifetime
// of one payment attempt.
type Record struct {
	PedidoToken  string           `json:"pedido_token"`
	CartToken    string           `json:"cart_token"`
	State        State            `json:"state"`
	Payload      cms.OrderPayload `json:"payload"`
	TempOrderID  int              `json:"temp_order_id,omitempty"`
	PreferenceID string           `json:"preference_id,omitempty"`
	InitPoint    string           `json:"init_point,omitempty"`
	OrderID      int              `json:"order_id,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type keyValue interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CheckoutKey(pedidoToken string) string
}

// StateStore persists checkout records keyed by pedido token.
type StateStore interface {
	Fetch(ctx context.Context, pedidoToken string) (*Record, error)
	Save(ctx context.Context, record *Record) error
}

type redisStore struct {
	kv  keyValue
	ttl time.Duration
}

// NewStateStore builds the redis-backed checkout state store.
func NewStateStore(kv keyValue, ttl time.Duration) StateStore {
	return &redisStore{kv: kv, ttl: ttl}
}

func (s *redisStore) Fetch(ctx context.Context, pedidoToken string) (*Record, error) {
	raw, err := s.kv.Get(ctx, s.kv.CheckoutKey(pedidoToken))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "checkout not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetching checkout state")
	}

	var record Record
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding checkout state")
	}
	return &record, nil
}

func (s *redisStore) Save(ctx context.Context, record *Record) error {
	record.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(record)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding checkout state")
	}
	if err := s.kv.Set(ctx, s.kv.CheckoutKey(record.PedidoToken), string(raw), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving checkout state")
	}
	return nil
}
