package checkout

import (
	"context"
	"errors"
	"fmt"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ballonsurprise/backend/internal/cart"
	"github.com/ballonsurprise/backend/pkg/db/models"
	"github.com/ballonsurprise/backend/pkg/enums"
	pkgerrors "github.com/ballonsurprise/backend/pkg/errors"
)

const minPhoneDigits = 8

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartSource interface {
	Get(ctx context.Context, deviceID string) (*cart.View, error)
	Clear(ctx context.Context, deviceID string) error
}

// Service executes checkout orchestration.
type Service interface {
	Execute(ctx context.Context, userID uuid.UUID, deviceID string, input Input) (*Result, error)
}

// Input is the checkout payload.
type Input struct {
	PhoneNumber   string `json:"phoneNumber" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required"`
}

// Result is returned once the order is confirmed.
type Result struct {
	OrderID    uuid.UUID         `json:"orderId"`
	Status     enums.OrderStatus `json:"status"`
	TotalPrice int               `json:"totalPrice"`
	PaymentRef string            `json:"paymentRef"`
}

type service struct {
	tx       txRunner
	carts    cartSource
	gateway  Gateway
	notifier Notifier
}

// NewService builds the checkout service.
func NewService(tx txRunner, carts cartSource, gateway Gateway, notifier Notifier) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart source required")
	}
	if gateway == nil {
		return nil, fmt.Errorf("payment gateway required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	return &service{tx: tx, carts: carts, gateway: gateway, notifier: notifier}, nil
}

// Execute validates the cart and payment details, charges the gateway,
// persists the order with its frozen line items and clears the cart.
func (s *service) Execute(ctx context.Context, userID uuid.UUID, deviceID string, input Input) (*Result, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "login required")
	}
	if deviceID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "device id is required")
	}

	view, err := s.carts.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if view.ItemCount == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	method, err := enums.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method")
	}
	if countDigits(input.PhoneNumber) < minPhoneDigits {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "phone number must have at least 8 digits")
	}

	receipt, err := s.gateway.Charge(ctx, PaymentRequest{
		Method:      method,
		PhoneNumber: input.PhoneNumber,
		AmountFCFA:  view.TotalPrice,
	})
	if err != nil {
		if errors.Is(err, ErrPaymentCancelled) {
			return nil, pkgerrors.New(pkgerrors.CodeCancelled, "payment cancelled")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeProvider, err, "charge payment")
	}

	order := &models.Order{
		ID:            uuid.New(),
		UserID:        userID,
		DeviceID:      deviceID,
		Status:        enums.OrderStatusConfirmed,
		PaymentMethod: method,
		PhoneNumber:   input.PhoneNumber,
		PaymentRef:    receipt.Reference,
		TotalPrice:    view.TotalPrice,
	}
	for _, item := range view.Items {
		order.Items = append(order.Items, models.OrderItem{
			ID:         uuid.New(),
			OrderID:    order.ID,
			Kind:       item.Kind,
			Category:   item.Category,
			Title:      item.Title(),
			Components: item.ComponentTitles(),
			TotalPrice: item.TotalPrice,
		})
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorage, err, "persist order")
	}

	// The order is already settled and stored at this point.
	_ = s.notifier.SendOrderConfirmation(ctx, input.PhoneNumber, order.ID, order.TotalPrice)

	if err := s.carts.Clear(ctx, deviceID); err != nil {
		return nil, err
	}

	return &Result{
		OrderID:    order.ID,
		Status:     order.Status,
		TotalPrice: order.TotalPrice,
		PaymentRef: order.PaymentRef,
	}, nil
}

func countDigits(value string) int {
	count := 0
	for _, r := range value {
		if unicode.IsDigit(r) {
			count++
		}
	}
	return count
}
