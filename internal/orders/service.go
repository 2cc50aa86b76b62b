package orders

import (
	"context"
	"regexp"
	"strings"

	"github.com/tiopelotte/storefront-api/pkg/cms"
	pkgerrors "github.com/tiopelotte/storefront-api/pkg/errors"
	"github.com/tiopelotte/storefront-api/pkg/logger"
)

// phonePattern accepts local Argentine numbers with optional country code.
var phonePattern = regexp.MustCompile(`^\+?[0-9]{6,15}$`)

// orderReader is the slice of the CMS client the order tracker uses.
type orderReader interface {
	FindLatestOrderByPhone(ctx context.Context, telefono string) (*cms.Order, error)
	ListOrders(ctx context.Context) ([]cms.Order, error)
	UpdateOrderEstado(ctx context.Context, id int, estado string) error
}

// Service exposes order tracking and back-office order management.
type Service interface {
	LookupByPhone(ctx context.Context, telefono string) (*cms.Order, error)
	List(ctx context.Context) ([]cms.Order, error)
	UpdateEstado(ctx context.Context, id int, estado string) error
}

type service struct {
	cms  orderReader
	logg *logger.Logger
}

// NewService wires the order service on top of the CMS client.
func NewService(cmsClient orderReader, logg *logger.Logger) Service {
	return &service{cms: cmsClient, logg: logg}
}

// NormalizePhone strips spaces and separators so lookups tolerate how
// people actually type their number.
func NormalizePhone(raw string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '.':
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	if !phonePattern.MatchString(cleaned) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "phone number is not valid")
	}
	return cleaned, nil
}

func (s *service) LookupByPhone(ctx context.Context, telefono string) (*cms.Order, error) {
	normalized, err := NormalizePhone(telefono)
	if err != nil {
		return nil, err
	}
	return s.cms.FindLatestOrderByPhone(ctx, normalized)
}

func (s *service) List(ctx context.Context) ([]cms.Order, error) {
	return s.cms.ListOrders(ctx)
}

var validEstados = map[string]bool{
	cms.EstadoPendiente:  true,
	cms.EstadoConfirmado: true,
	cms.EstadoEnProceso:  true,
	cms.EstadoEntregado:  true,
	cms.EstadoCancelado:  true,
}

func (s *service) UpdateEstado(ctx context.Context, id int, estado string) error {
	if id <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if !validEstados[estado] {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown order estado")
	}
	return s.cms.UpdateOrderEstado(ctx, id, estado)
}
