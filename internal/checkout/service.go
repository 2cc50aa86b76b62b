package checkout

import (
	"context"

	"github.com/google/uuid"
	"github.com/tiopelotte/storefront-api/internal/cart"
	"github.com/tiopelotte/storefront-api/pkg/cms"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
	"github.com/tiopelotte/storefront-api/pkg/logger"
	"github.com/tiopelotte/storefront-api/pkg/mercadopago"
	"github.com/tiopelotte/storefront-api/pkg/metrics"
)

// cartReader is the slice of the cart service the checkout flow uses.
type cartReader interface {
	Get(ctx context.Context, token string) (*cart.Cart, error)
	Clear(ctx context.Context, token string) error
}

// orderWriter is the slice of the CMS client the checkout flow writes to.
type orderWriter interface {
	CreateTempOrder(ctx context.Context, payload cms.OrderPayload) (int, error)
	CreateOrder(ctx context.Context, payload cms.OrderPayload) (int, error)
}

// paymentGateway is the slice of the payment client the checkout flow uses.
type paymentGateway interface {
	CreatePreference(ctx context.Context, req mercadopago.PreferenceRequest) (*mercadopago.Preference, error)
	GetPayment(ctx context.Context, paymentID string) (*mercadopago.Payment, error)
	DefaultBackURLs(pedidoToken string) mercadopago.BackURLs
}

// StartResult is what the storefront needs to redirect the buyer.
type StartResult struct {
	PedidoToken  string `json:"pedido_token"`
	PreferenceID string `json:"preference_id"`
	InitPoint    string `json:"init_point"`
}

// ConfirmResult reports the outcome of a payment confirmation.
type ConfirmResult struct {
	PedidoToken string `json:"pedido_token"`
	State       State  `json:"state"`
	Status      string `json:"payment_status"`
	OrderID     int    `json:"order_id,omitempty"`
}

// Service drives the checkout flow from cart to confirmed order.
type Service interface {
	Start(ctx context.Context, cartToken string, input OrderInput) (*StartResult, error)
	Confirm(ctx context.Context, pedidoToken, paymentID string) (*ConfirmResult, error)
	StateOf(ctx context.Context, pedidoToken string) (*Record, error)
}

type service struct {
	store    StateStore
	carts    cartReader
	orders   orderWriter
	payments paymentGateway
	metrics  *metrics.CheckoutMetrics
	logg     *logger.Logger
	newToken func() string
}

// NewService wires the checkout orchestrator.
func NewService(store StateStore, carts cartReader, orders orderWriter, payments paymentGateway, checkoutMetrics *metrics.CheckoutMetrics, logg *logger.Logger) Service {
	return &service{
		store:    store,
		carts:    carts,
		orders:   orders,
		payments: payments,
		metrics:  checkoutMetrics,
		logg:     logg,
		newToken: uuid.NewString,
	}
}

// advance moves the record to the next state and persists it.
func (s *service) advance(ctx context.Context, record *Record, to State) error {
	if !CanTransition(record.State, to) {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "checkout cannot move from "+string(record.State)+" to "+string(to))
	}
	record.State = to
	return s.store.Save(ctx, record)
}

// fail marks the record terminal. A failed checkout keeps its record so the
// buyer sees why the flow stopped.
func (s *service) fail(ctx context.Context, record *Record) {
	record.State = StateFailed
	if err := s.store.Save(ctx, record); err != nil && s.logg != nil {
		s.logg.Error(ctx, "persisting failed checkout state", err)
	}
	s.metrics.IncOutcome("failed")
}

func (s *service) Start(ctx context.Context, cartToken string, input OrderInput) (*StartResult, error) {
	currentCart, err := s.carts.Get(ctx, cartToken)
	if err != nil {
		return nil, err
	}

	// The pedido token exists before any backend call so every later step
	// and retry correlates to the same checkout.
	pedidoToken := s.newToken()
	payload, err := AssembleOrder(currentCart, input, pedidoToken)
	if err != nil {
		return nil, err
	}

	record := &Record{
		PedidoToken: pedidoToken,
		CartToken:   cartToken,
		State:       StateIdle,
		Payload:     payload,
	}
	s.metrics.IncStarted()

	if err := s.advance(ctx, record, StateCreatingTempOrder); err != nil {
		return nil, err
	}
	tempOrderID, err := s.orders.CreateTempOrder(ctx, payload)
	if err != nil {
		s.fail(ctx, record)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating temporary order")
	}
	record.TempOrderID = tempOrderID

	if err := s.advance(ctx, record, StateCreatingPreference); err != nil {
		return nil, err
	}
	preference, err := s.payments.CreatePreference(ctx, s.preferenceRequest(payload, pedidoToken))
	if err != nil {
		s.fail(ctx, record)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating payment preference")
	}
	record.PreferenceID = preference.ID
	record.InitPoint = preference.InitPoint

	if err := s.advance(ctx, record, StateRedirected); err != nil {
		return nil, err
	}

	return &StartResult{PedidoToken: pedidoToken, PreferenceID: preference.ID, InitPoint: preference.InitPoint}, nil
}

func (s *service) preferenceRequest(payload cms.OrderPayload, pedidoToken string) mercadopago.PreferenceRequest {
	items := make([]mercadopago.PreferenceItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, mercadopago.PreferenceItem{
			Title:     item.ProductName,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return mercadopago.PreferenceRequest{
		Items:             items,
		Payer:             mercadopago.Payer{Name: payload.PayerName, Phone: payload.Phone},
		ExternalReference: pedidoToken,
		BackURLs:          s.payments.DefaultBackURLs(pedidoToken),
		AutoReturn:        "approved",
	}
}

func (s *service) Confirm(ctx context.Context, pedidoToken, paymentID string) (*ConfirmResult, error) {
	record, err := s.store.Fetch(ctx, pedidoToken)
	if err != nil {
		return nil, err
	}

	// Replaying a confirmed checkout returns the stored outcome instead of
	// placing a second order.
	if record.State == StateConfirmed {
		return &ConfirmResult{
			PedidoToken: pedidoToken,
			State:       StateConfirmed,
			Status:      mercadopago.StatusApproved,
			OrderID:     record.OrderID,
		}, nil
	}
	if record.State == StateFailed {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "checkout already failed")
	}

	if err := s.advance(ctx, record, StateConfirming); err != nil {
		return nil, err
	}

	payment, err := s.payments.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetching payment status")
	}
	if payment.ExternalReference != "" && payment.ExternalReference != pedidoToken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "payment belongs to a different checkout")
	}

	switch payment.Status {
	case mercadopago.StatusApproved:
		payload := record.Payload
		payload.Estado = cms.EstadoConfirmado
		orderID, err := s.orders.CreateOrder(ctx, payload)
		if err != nil {
			// The record stays in confirming so the buyer can retry.
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "placing confirmed order")
		}
		record.OrderID = orderID
		if err := s.advance(ctx, record, StateConfirmed); err != nil {
			return nil, err
		}
		if err := s.carts.Clear(ctx, record.CartToken); err != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithPedidoToken(ctx, pedidoToken), "clearing cart after confirmation")
		}
		s.metrics.IncConfirmed()
		s.metrics.IncOutcome("confirmed")
		return &ConfirmResult{PedidoToken: pedidoToken, State: StateConfirmed, Status: payment.Status, OrderID: orderID}, nil

	case mercadopago.StatusRejected, mercadopago.StatusCancelled:
		if err := s.advance(ctx, record, StateFailed); err != nil {
			return nil, err
		}
		s.metrics.IncOutcome("failed")
		return &ConfirmResult{PedidoToken: pedidoToken, State: StateFailed, Status: payment.Status}, nil

	default:
		// Pending payments stay confirmable until the processor settles.
		return &ConfirmResult{PedidoToken: pedidoToken, State: record.State, Status: payment.Status}, nil
	}
}

func (s *service) StateOf(ctx context.Context, pedidoToken string) (*Record, error) {
	return s.store.Fetch(ctx, pedidoToken)
}
