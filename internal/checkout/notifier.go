package checkout

import (
	"context"

	"github.com/google/uuid"

	"github.com/ballonsurprise/backend/pkg/config"
	"github.com/ballonsurprise/backend/pkg/logger"
)

// Notifier delivers the order confirmation to the buyer's phone.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, phoneNumber string, orderID uuid.UUID, totalFCFA int) error
}

// SMSLogNotifier writes the confirmation to the log instead of an SMS
// aggregator. Swapping in a real sender only touches this type.
type SMSLogNotifier struct {
	senderID string
	logg     *logger.Logger
}

func NewSMSLogNotifier(cfg config.SMSConfig, logg *logger.Logger) *SMSLogNotifier {
	return &SMSLogNotifier{senderID: cfg.SenderID, logg: logg}
}

func (n *SMSLogNotifier) SendOrderConfirmation(ctx context.Context, phoneNumber string, orderID uuid.UUID, totalFCFA int) error {
	if n.logg != nil {
		n.logg.Info(n.logg.WithFields(ctx, map[string]any{
			"sender_id":  n.senderID,
			"phone":      phoneNumber,
			"order_id":   orderID,
			"total_fcfa": totalFCFA,
		}), "order confirmation SMS queued")
	}
	return nil
}
