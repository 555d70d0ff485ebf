package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ballonsurprise/backend/pkg/enums"
	"github.com/ballonsurprise/backend/pkg/logger"
)

// ErrPaymentCancelled signals that the payer aborted the mobile-money prompt.
var ErrPaymentCancelled = errors.New("payment cancelled")

// PaymentRequest describes one mobile-money charge.
type PaymentRequest struct {
	Method      enums.PaymentMethod
	PhoneNumber string
	AmountFCFA  int
}

// PaymentReceipt is the gateway's settlement confirmation.
type PaymentReceipt struct {
	Reference string
}

// Gateway charges a mobile-money wallet. Implementations map payer aborts to
// ErrPaymentCancelled; any other error is a provider failure.
type Gateway interface {
	Charge(ctx context.Context, req PaymentRequest) (*PaymentReceipt, error)
}

// SimulatedGateway settles every charge immediately. It stands in for the
// real PSP until one is contracted; the Gateway port is where that binding
// will land.
type SimulatedGateway struct {
	logg *logger.Logger
}

func NewSimulatedGateway(logg *logger.Logger) *SimulatedGateway {
	return &SimulatedGateway{logg: logg}
}

func (g *SimulatedGateway) Charge(ctx context.Context, req PaymentRequest) (*PaymentReceipt, error) {
	ref := fmt.Sprintf("SIM-%s-%s", strings.ToUpper(string(req.Method)), uuid.NewString()[:8])
	if g.logg != nil {
		g.logg.Info(g.logg.WithFields(ctx, map[string]any{
			"payment_method": req.Method,
			"amount_fcfa":    req.AmountFCFA,
			"payment_ref":    ref,
		}), "simulated mobile-money charge settled")
	}
	return &PaymentReceipt{Reference: ref}, nil
}
