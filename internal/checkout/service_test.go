package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ballonsurprise/backend/internal/cart"
	"github.com/ballonsurprise/backend/internal/catalog"
	"github.com/ballonsurprise/backend/pkg/db/models"
	"github.com/ballonsurprise/backend/pkg/enums"
	pkgerrors "github.com/ballonsurprise/backend/pkg/errors"
)

func setupCheckoutTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ordersTable := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  device_id TEXT NOT NULL,
  status TEXT NOT NULL,
  payment_method TEXT NOT NULL,
  phone_number TEXT NOT NULL,
  payment_ref TEXT NOT NULL,
  total_price INTEGER NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItemsTable := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  kind TEXT NOT NULL,
  category TEXT NOT NULL,
  title TEXT NOT NULL,
  components TEXT,
  total_price INTEGER NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(ordersTable).Error)
	require.NoError(t, db.Exec(orderItemsTable).Error)
	return db
}

type dbTxRunner struct {
	db *gorm.DB
}

func (r dbTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

type stubCartSource struct {
	view    *cart.View
	getErr  error
	cleared int
}

func (s *stubCartSource) Get(ctx context.Context, deviceID string) (*cart.View, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.view, nil
}

func (s *stubCartSource) Clear(ctx context.Context, deviceID string) error {
	s.cleared++
	return nil
}

type stubGateway struct {
	receipt *PaymentReceipt
	err     error
	lastReq *PaymentRequest
}

func (g *stubGateway) Charge(ctx context.Context, req PaymentRequest) (*PaymentReceipt, error) {
	g.lastReq = &req
	if g.err != nil {
		return nil, g.err
	}
	return g.receipt, nil
}

type stubNotifier struct {
	calls int
	phone string
}

func (n *stubNotifier) SendOrderConfirmation(ctx context.Context, phoneNumber string, orderID uuid.UUID, totalFCFA int) error {
	n.calls++
	n.phone = phoneNumber
	return nil
}

func twoItemView() *cart.View {
	items := []cart.LineItem{
		{
			ID:         uuid.New(),
			Kind:       enums.LineItemKindPredefined,
			Category:   enums.CategoryAnniversary,
			TotalPrice: 25000,
			CreatedAt:  time.Now().UTC(),
			Bundle: &cart.BundleSnapshot{
				BundleID:   "anniversary-classic",
				Name:       "Box Anniversaire Classique",
				Components: []string{"Ballons multicolores", "Chocolats Ferrero"},
				UnitPrice:  25000,
			},
		},
		{
			ID:         uuid.New(),
			Kind:       enums.LineItemKindCustom,
			Category:   enums.CategoryAnniversary,
			TotalPrice: 39000,
			CreatedAt:  time.Now().UTC(),
			Custom: &cart.CustomSelection{
				Chocolates: []catalog.Option{{ID: "patchi", Name: "Patchi", Price: 8000}},
				Rose:       catalog.Option{ID: "red", Name: "Rose Rouge", Price: 4000},
				Bear:       true,
			},
		},
	}
	return &cart.View{Items: items, ItemCount: len(items), TotalPrice: 64000}
}

func buildCheckoutService(t *testing.T, db *gorm.DB, carts *stubCartSource, gateway *stubGateway, notifier *stubNotifier) Service {
	t.Helper()
	svc, err := NewService(dbTxRunner{db: db}, carts, gateway, notifier)
	require.NoError(t, err)
	return svc
}

func TestExecutePersistsOrderAndClearsCart(t *testing.T) {
	db := setupCheckoutTestDB(t)
	carts := &stubCartSource{view: twoItemView()}
	gateway := &stubGateway{receipt: &PaymentReceipt{Reference: "SIM-MTN-abc123"}}
	notifier := &stubNotifier{}
	svc := buildCheckoutService(t, db, carts, gateway, notifier)

	userID := uuid.New()
	result, err := svc.Execute(context.Background(), userID, "device-1", Input{
		PhoneNumber:   "+225 07 89 12 34 56",
		PaymentMethod: "mtn",
	})
	require.NoError(t, err)

	assert.Equal(t, enums.OrderStatusConfirmed, result.Status)
	assert.Equal(t, 64000, result.TotalPrice)
	assert.Equal(t, "SIM-MTN-abc123", result.PaymentRef)

	require.NotNil(t, gateway.lastReq)
	assert.Equal(t, enums.PaymentMethodMTN, gateway.lastReq.Method)
	assert.Equal(t, 64000, gateway.lastReq.AmountFCFA)

	assert.Equal(t, 1, notifier.calls)
	assert.Equal(t, 1, carts.cleared)

	var order models.Order
	require.NoError(t, db.First(&order, "id = ?", result.OrderID).Error)
	assert.Equal(t, userID, order.UserID)
	assert.Equal(t, 64000, order.TotalPrice)

	var items []models.OrderItem
	require.NoError(t, db.Find(&items, "order_id = ?", result.OrderID).Error)
	require.Len(t, items, 2)

	byKind := map[enums.LineItemKind]models.OrderItem{}
	for _, item := range items {
		byKind[item.Kind] = item
	}
	assert.Equal(t, 25000, byKind[enums.LineItemKindPredefined].TotalPrice)
	custom := byKind[enums.LineItemKindCustom]
	assert.Equal(t, 39000, custom.TotalPrice)
	assert.Contains(t, custom.Components, "Rose Rouge")
	assert.Contains(t, custom.Components, "Nounours")
}

func TestExecuteRejectsEmptyCart(t *testing.T) {
	db := setupCheckoutTestDB(t)
	carts := &stubCartSource{view: &cart.View{Items: []cart.LineItem{}}}
	svc := buildCheckoutService(t, db, carts, &stubGateway{}, &stubNotifier{})

	_, err := svc.Execute(context.Background(), uuid.New(), "device-1", Input{
		PhoneNumber:   "0789123456",
		PaymentMethod: "orange",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	assert.Equal(t, "cart is empty", typed.Message())
}

func TestExecuteRejectsUnknownPaymentMethod(t *testing.T) {
	db := setupCheckoutTestDB(t)
	svc := buildCheckoutService(t, db, &stubCartSource{view: twoItemView()}, &stubGateway{}, &stubNotifier{})

	_, err := svc.Execute(context.Background(), uuid.New(), "device-1", Input{
		PhoneNumber:   "0789123456",
		PaymentMethod: "paypal",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestExecuteRejectsShortPhoneNumber(t *testing.T) {
	db := setupCheckoutTestDB(t)
	svc := buildCheckoutService(t, db, &stubCartSource{view: twoItemView()}, &stubGateway{}, &stubNotifier{})

	_, err := svc.Execute(context.Background(), uuid.New(), "device-1", Input{
		PhoneNumber:   "07 89 12",
		PaymentMethod: "moov",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestExecuteMapsGatewayCancellation(t *testing.T) {
	db := setupCheckoutTestDB(t)
	carts := &stubCartSource{view: twoItemView()}
	gateway := &stubGateway{err: ErrPaymentCancelled}
	svc := buildCheckoutService(t, db, carts, gateway, &stubNotifier{})

	_, err := svc.Execute(context.Background(), uuid.New(), "device-1", Input{
		PhoneNumber:   "0789123456",
		PaymentMethod: "orange",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeCancelled, typed.Code())

	var count int64
	require.NoError(t, db.Table("orders").Count(&count).Error)
	assert.Zero(t, count, "no order may exist after a cancelled payment")
	assert.Zero(t, carts.cleared, "cart must survive a cancelled payment")
}

func TestExecuteMapsGatewayFailure(t *testing.T) {
	db := setupCheckoutTestDB(t)
	gateway := &stubGateway{err: errors.New("wallet unreachable")}
	svc := buildCheckoutService(t, db, &stubCartSource{view: twoItemView()}, gateway, &stubNotifier{})

	_, err := svc.Execute(context.Background(), uuid.New(), "device-1", Input{
		PhoneNumber:   "0789123456",
		PaymentMethod: "orange",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeProvider, typed.Code())
}

func TestExecuteRequiresAuthenticatedUser(t *testing.T) {
	db := setupCheckoutTestDB(t)
	svc := buildCheckoutService(t, db, &stubCartSource{view: twoItemView()}, &stubGateway{}, &stubNotifier{})

	_, err := svc.Execute(context.Background(), uuid.Nil, "device-1", Input{
		PhoneNumber:   "0789123456",
		PaymentMethod: "orange",
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestSimulatedGatewayAlwaysSettles(t *testing.T) {
	gateway := NewSimulatedGateway(nil)

	receipt, err := gateway.Charge(context.Background(), PaymentRequest{
		Method:      enums.PaymentMethodOrange,
		PhoneNumber: "0789123456",
		AmountFCFA:  25000,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.Reference)
	assert.Contains(t, receipt.Reference, "SIM-ORANGE-")
}
