package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/tiopelotte/storefront-api/pkg/cms"
	"github.com/tiopelotte/storefront-api/pkg/logger"
	"go.uber.org/multierr"
)

const defaultTempOrderTTL = 7 * 24 * time.Hour

// tempOrderStore is the slice of the CMS client the sweeper uses.
type tempOrderStore interface {
	ListTempOrdersBefore(ctx context.Context, cutoff time.Time) ([]cms.TempOrder, error)
	DeleteTempOrder(ctx context.Context, id int) error
}

// TempOrderTTLJobParams configure the abandoned-draft sweeper.
type TempOrderTTLJobParams struct {
	Logger *logger.Logger
	Orders tempOrderStore
	TTL    time.Duration
}

// NewTempOrderTTLJob builds the job that deletes draft orders whose buyer
// never came back from the payment processor.
func NewTempOrderTTLJob(params TempOrderTTLJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("temp order store required")
	}
	ttl := params.TTL
	if ttl <= 0 {
		ttl = defaultTempOrderTTL
	}
	return &tempOrderTTLJob{
		logg:   params.Logger,
		orders: params.Orders,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

type tempOrderTTLJob struct {
	logg   *logger.Logger
	orders tempOrderStore
	ttl    time.Duration
	now    func() time.Time
}

func (j *tempOrderTTLJob) Name() string { return "temp-order-ttl" }

func (j *tempOrderTTLJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.ttl)
	drafts, err := j.orders.ListTempOrdersBefore(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("query stale temp orders: %w", err)
	}

	var errs []error
	deleted := 0
	for _, draft := range drafts {
		if err := j.orders.DeleteTempOrder(ctx, draft.ID); err != nil {
			errs = append(errs, fmt.Errorf("delete temp order %d: %w", draft.ID, err))
			continue
		}
		deleted++
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"stale":   len(drafts),
		"deleted": deleted,
	})
	j.logg.Info(logCtx, "temp order sweep complete")
	return multierr.Combine(errs...)
}
