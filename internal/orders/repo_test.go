package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ballonsurprise/backend/pkg/db/models"
	"github.com/ballonsurprise/backend/pkg/enums"
	pkgerrors "github.com/ballonsurprise/backend/pkg/errors"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
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

func createOrder(t *testing.T, db *gorm.DB, userID uuid.UUID, created time.Time, total int) *models.Order {
	t.Helper()

	order := &models.Order{
		ID:            uuid.New(),
		UserID:        userID,
		DeviceID:      "device-1",
		Status:        enums.OrderStatusConfirmed,
		PaymentMethod: enums.PaymentMethodOrange,
		PhoneNumber:   "0789123456",
		PaymentRef:    fmt.Sprintf("SIM-%d", total),
		TotalPrice:    total,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	require.NoError(t, db.Create(order).Error)

	item := &models.OrderItem{
		ID:         uuid.New(),
		OrderID:    order.ID,
		Kind:       enums.LineItemKindPredefined,
		Category:   enums.CategoryAnniversary,
		Title:      "Box Anniversaire Classique",
		Components: []string{"Ballons multicolores", "Rose rouge"},
		TotalPrice: total,
		CreatedAt:  created,
	}
	require.NoError(t, db.Create(item).Error)
	return order
}

func TestListByUserNewestFirstWithCursor(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		createOrder(t, db, userID, base.Add(time.Duration(i)*time.Hour), 10000+i)
	}

	first, err := repo.ListByUser(ctx, userID, ListParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Orders, 2)
	require.NotEmpty(t, first.NextCursor)
	assert.True(t, first.Orders[0].CreatedAt.After(first.Orders[1].CreatedAt))

	second, err := repo.ListByUser(ctx, userID, ListParams{Limit: 2, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Orders, 1)
	assert.Empty(t, second.NextCursor)

	seen := map[uuid.UUID]bool{}
	for _, o := range append(first.Orders, second.Orders...) {
		require.False(t, seen[o.ID], "order repeated across pages")
		seen[o.ID] = true
	}
}

func TestListByUserScopesToOwner(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	other := uuid.New()
	createOrder(t, db, owner, time.Now().UTC(), 25000)

	result, err := repo.ListByUser(ctx, other, ListParams{})
	require.NoError(t, err)
	assert.Empty(t, result.Orders)
}

func TestListByUserRejectsInvalidCursor(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)

	_, err := repo.ListByUser(context.Background(), uuid.New(), ListParams{Cursor: "not-base64!!"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestGetByIDLoadsItems(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	order := createOrder(t, db, userID, time.Now().UTC(), 25000)

	dto, err := repo.GetByID(ctx, userID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.ID, dto.ID)
	require.Len(t, dto.Items, 1)
	assert.Contains(t, dto.Items[0].Components, "Rose rouge")
}

func TestGetByIDEnforcesOwnership(t *testing.T) {
	db := setupOrdersTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	order := createOrder(t, db, uuid.New(), time.Now().UTC(), 25000)

	_, err := repo.GetByID(ctx, uuid.New(), order.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
