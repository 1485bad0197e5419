package repositories_test

import (
	"fmt"
	"strings"
	"testing"

	"drukmart/internal/models"
	"drukmart/internal/repositories"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupDB opens a fresh in-memory SQLite database with the schema migrated.
// The DSN is named after the test so the database is shared across pooled
// connections but isolated between tests.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	assert.NoError(t, err)
	err = db.AutoMigrate(&models.User{}, &models.Product{}, &models.ShippingAddress{},
		&models.Order{}, &models.OrderItem{})
	assert.NoError(t, err)
	return db
}

func seedAddress(t *testing.T, db *gorm.DB, userID string) *models.ShippingAddress {
	t.Helper()
	addr := &models.ShippingAddress{
		UserID:       userID,
		FullName:     "Tashi Dorji",
		Email:        "tashi@example.com",
		Phone:        "17111111",
		AddressLine1: "Norzin Lam",
		City:         "Thimphu",
		State:        "Thimphu",
		Country:      "Bhutan",
	}
	assert.NoError(t, repositories.NewGORMAddressRepository(db).Create(addr))
	return addr
}

func pendingOrder(userID, addressID string, items []models.OrderItem) *models.Order {
	return &models.Order{
		UserID:            userID,
		ShippingAddressID: addressID,
		OrderNumber:       "ORD-TEST123456",
		TotalAmount:       353,
		ShippingCost:      25,
		TaxAmount:         0,
		Status:            models.OrderStatusPending,
		PaymentMethod:     "cod",
		PaymentStatus:     models.PaymentStatusPending,
		Items:             items,
	}
}

func TestOrderCreatePersistsOrderWithItems(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	addr := seedAddress(t, db, "user-1")

	order := pendingOrder("user-1", addr.ID, []models.OrderItem{
		{ProductID: "prod-1", ProductName: "Laptop", UnitPrice: 164, Quantity: 2, TotalPrice: 328},
	})
	assert.NoError(t, repo.Create(order))
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, addr.ID, order.ShippingAddress.ID)

	// The persisted order comes back with items and address attached
	fetched, err := repo.GetByOrderNumber("ORD-TEST123456")
	assert.NoError(t, err)
	assert.Len(t, fetched.Items, 1)
	assert.Equal(t, "Laptop", fetched.Items[0].ProductName)
	assert.Equal(t, "Thimphu", fetched.ShippingAddress.City)
}

func TestOrderCreateAtomicity(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	addr := seedAddress(t, db, "user-1")

	// The second item collides with the first on its primary key, so its
	// insert fails mid-transaction.
	order := pendingOrder("user-1", addr.ID, []models.OrderItem{
		{ID: "item-dup", ProductID: "prod-1", ProductName: "A", UnitPrice: 10, Quantity: 1, TotalPrice: 10},
		{ID: "item-dup", ProductID: "prod-2", ProductName: "B", UnitPrice: 20, Quantity: 1, TotalPrice: 20},
		{ProductID: "prod-3", ProductName: "C", UnitPrice: 30, Quantity: 1, TotalPrice: 30},
	})
	assert.Error(t, repo.Create(order))

	// Nothing from the failed attempt is observable
	var orderCount, itemCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), itemCount)
}

func TestOrderCreateRejectsForeignAddress(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	addr := seedAddress(t, db, "someone-else")

	order := pendingOrder("user-1", addr.ID, []models.OrderItem{
		{ProductID: "prod-1", ProductName: "A", UnitPrice: 10, Quantity: 1, TotalPrice: 10},
	})
	err := repo.Create(order)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	assert.Equal(t, int64(0), orderCount)
}

func TestOrderNumberUniqueness(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	addr := seedAddress(t, db, "user-1")

	first := pendingOrder("user-1", addr.ID, []models.OrderItem{
		{ProductID: "prod-1", ProductName: "A", UnitPrice: 10, Quantity: 1, TotalPrice: 10},
	})
	assert.NoError(t, repo.Create(first))

	// Same order number again hits the unique index and rolls back
	second := pendingOrder("user-1", addr.ID, []models.OrderItem{
		{ProductID: "prod-2", ProductName: "B", UnitPrice: 20, Quantity: 1, TotalPrice: 20},
	})
	assert.Error(t, repo.Create(second))

	var itemCount int64
	db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Equal(t, int64(1), itemCount)
}

func TestOrderCancelPendingOnly(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	addr := seedAddress(t, db, "user-1")

	order := pendingOrder("user-1", addr.ID, []models.OrderItem{
		{ProductID: "prod-1", ProductName: "A", UnitPrice: 10, Quantity: 1, TotalPrice: 10},
	})
	assert.NoError(t, repo.Create(order))

	// Pending cancels fine
	cancelled, err := repo.Cancel(order.ID, "user-1")
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	// Already cancelled: no longer pending
	_, err = repo.Cancel(order.ID, "user-1")
	assert.ErrorIs(t, err, repositories.ErrOrderNotPending)
}

func TestOrderCancelGuards(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	addr := seedAddress(t, db, "user-1")

	order := pendingOrder("user-1", addr.ID, []models.OrderItem{
		{ProductID: "prod-1", ProductName: "A", UnitPrice: 10, Quantity: 1, TotalPrice: 10},
	})
	assert.NoError(t, repo.Create(order))
	assert.NoError(t, db.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", models.OrderStatusShipped).Error)

	// Shipped orders reject cancellation
	_, err := repo.Cancel(order.ID, "user-1")
	assert.ErrorIs(t, err, repositories.ErrOrderNotPending)

	// Another user's order looks like it doesn't exist
	_, err = repo.Cancel(order.ID, "user-2")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestOrderGetAllByUserScoped(t *testing.T) {
	db := setupDB(t)
	repo := repositories.NewGORMOrderRepository(db)
	addrA := seedAddress(t, db, "user-a")
	addrB := seedAddress(t, db, "user-b")

	orderA := pendingOrder("user-a", addrA.ID, []models.OrderItem{
		{ProductID: "prod-1", ProductName: "A", UnitPrice: 10, Quantity: 1, TotalPrice: 10},
	})
	assert.NoError(t, repo.Create(orderA))

	orderB := pendingOrder("user-b", addrB.ID, []models.OrderItem{
		{ProductID: "prod-2", ProductName: "B", UnitPrice: 20, Quantity: 1, TotalPrice: 20},
	})
	orderB.OrderNumber = "ORD-OTHER654321"
	assert.NoError(t, repo.Create(orderB))

	orders, err := repo.GetAllByUser("user-a")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, "ORD-TEST123456", orders[0].OrderNumber)
}
