package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ventas-next/internal/constants"
	"github.com/ventas-next/internal/models"
	"github.com/ventas-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupOrderServiceTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	prev := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prev })
	return db
}

func newOrderServiceForTest(db *gorm.DB) *OrderService {
	return NewOrderService(
		repository.NewOrderRepository(db),
		repository.NewProductRepository(db),
		repository.NewCartRepository(db),
		nil,
	)
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64, stock float64) *models.Product {
	t.Helper()
	product := models.Product{
		Name:        name,
		PriceAmount: models.NewMoneyFromFloat(price),
		Stock:       stock,
		IsActive:    true,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return &product
}

func addTestCartItem(t *testing.T, db *gorm.DB, userID, productID uint, quantity float64) {
	t.Helper()
	item := models.CartItem{UserID: userID, ProductID: productID, Quantity: quantity}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create cart item: %v", err)
	}
}

func TestCheckoutDecrementsStockAndCapturesPrice(t *testing.T) {
	db := setupOrderServiceTestDB(t, "checkout_ok")
	svc := newOrderServiceForTest(db)

	product := createTestProduct(t, db, "Manzana Roja", 3.50, 20)
	addTestCartItem(t, db, 1, product.ID, 5)

	order, err := svc.Checkout(CheckoutInput{UserID: 1, Remarks: "entrega rápida"})
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}
	if order.ID == 0 || order.OrderNo == "" {
		t.Fatalf("expected persisted order, got: %+v", order)
	}
	if order.Status != constants.OrderStatusNew {
		t.Fatalf("expected status %s, got %s", constants.OrderStatusNew, order.Status)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 order item, got %d", len(order.Items))
	}
	item := order.Items[0]
	if item.ProductID != product.ID || item.Quantity != 5 {
		t.Fatalf("unexpected order item: %+v", item)
	}
	if item.UnitPrice.StringFixed(2) != "3.50" {
		t.Fatalf("expected unit price 3.50, got %s", item.UnitPrice.StringFixed(2))
	}
	if item.TotalPrice.StringFixed(2) != "17.50" {
		t.Fatalf("expected line total 17.50, got %s", item.TotalPrice.StringFixed(2))
	}
	if order.TotalAmount.StringFixed(2) != "17.50" {
		t.Fatalf("expected order total 17.50, got %s", order.TotalAmount.StringFixed(2))
	}

	var updated models.Product
	if err := db.First(&updated, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if updated.Stock != 15 {
		t.Fatalf("expected stock 15 after checkout, got %v", updated.Stock)
	}

	var remaining int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&remaining).Error; err != nil {
		t.Fatalf("count cart items: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("expected empty cart after checkout, got %d items", remaining)
	}
}

func TestCheckoutInsufficientStockRollsBack(t *testing.T) {
	db := setupOrderServiceTestDB(t, "checkout_insufficient")
	svc := newOrderServiceForTest(db)

	cheese := createTestProduct(t, db, "Queso Campesino", 8.00, 20)
	milk := createTestProduct(t, db, "Leche Entera", 4.20, 20)
	addTestCartItem(t, db, 1, cheese.ID, 5)
	addTestCartItem(t, db, 1, milk.ID, 25)

	_, err := svc.Checkout(CheckoutInput{UserID: 1})
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got: %v", err)
	}
	if name := InsufficientStockProduct(err); name != "Leche Entera" {
		t.Fatalf("expected failing product name, got: %q", name)
	}

	var products []models.Product
	if err := db.Order("id").Find(&products).Error; err != nil {
		t.Fatalf("reload products: %v", err)
	}
	for _, p := range products {
		if p.Stock != 20 {
			t.Fatalf("expected stock untouched for %s, got %v", p.Name, p.Stock)
		}
	}

	var orders int64
	if err := db.Model(&models.Order{}).Count(&orders).Error; err != nil {
		t.Fatalf("count orders: %v", err)
	}
	if orders != 0 {
		t.Fatalf("expected no order after rollback, got %d", orders)
	}

	var cartItems int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&cartItems).Error; err != nil {
		t.Fatalf("count cart items: %v", err)
	}
	if cartItems != 2 {
		t.Fatalf("expected cart kept after rollback, got %d items", cartItems)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := setupOrderServiceTestDB(t, "checkout_empty")
	svc := newOrderServiceForTest(db)

	if _, err := svc.Checkout(CheckoutInput{UserID: 1}); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got: %v", err)
	}
}

func TestCheckoutInactiveProduct(t *testing.T) {
	db := setupOrderServiceTestDB(t, "checkout_inactive")
	svc := newOrderServiceForTest(db)

	product := createTestProduct(t, db, "Pan Tajado", 2.10, 10)
	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product: %v", err)
	}
	addTestCartItem(t, db, 1, product.ID, 1)

	if _, err := svc.Checkout(CheckoutInput{UserID: 1}); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable, got: %v", err)
	}
}

func TestOrderStatusTransitionTable(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{constants.OrderStatusNew, constants.OrderStatusConfirmed, true},
		{constants.OrderStatusNew, constants.OrderStatusCancelled, true},
		{constants.OrderStatusNew, constants.OrderStatusShipped, false},
		{constants.OrderStatusNew, constants.OrderStatusDelivered, false},
		{constants.OrderStatusConfirmed, constants.OrderStatusShipped, true},
		{constants.OrderStatusConfirmed, constants.OrderStatusDelivered, false},
		{constants.OrderStatusConfirmed, constants.OrderStatusCancelled, true},
		{constants.OrderStatusShipped, constants.OrderStatusDelivered, true},
		{constants.OrderStatusShipped, constants.OrderStatusConfirmed, false},
		{constants.OrderStatusShipped, constants.OrderStatusCancelled, true},
		{constants.OrderStatusDelivered, constants.OrderStatusCancelled, false},
		{constants.OrderStatusCancelled, constants.OrderStatusNew, false},
		{constants.OrderStatusDelivered, constants.OrderStatusDelivered, true},
	}
	for _, tc := range cases {
		if got := isTransitionAllowed(tc.from, tc.to); got != tc.allowed {
			t.Fatalf("transition %s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
	if isTransitionAllowed("archived", constants.OrderStatusCancelled) {
		t.Fatal("unknown status should not transition")
	}
	if isValidOrderStatus("archived") {
		t.Fatal("archived should not be a valid status")
	}
	if !isValidOrderStatus(" Confirmed ") {
		t.Fatal("status check should normalize case and spaces")
	}
}

func TestUpdateOrderStatusFlow(t *testing.T) {
	db := setupOrderServiceTestDB(t, "status_flow")
	svc := newOrderServiceForTest(db)

	product := createTestProduct(t, db, "Arroz Blanco", 5.00, 20)
	addTestCartItem(t, db, 1, product.ID, 5)
	order, err := svc.Checkout(CheckoutInput{UserID: 1})
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}

	if _, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusDelivered); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for new->delivered, got: %v", err)
	}

	updated, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusConfirmed)
	if err != nil {
		t.Fatalf("UpdateOrderStatus confirmed: %v", err)
	}
	if updated.Status != constants.OrderStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", updated.Status)
	}

	// 同状态重复提交应为幂等
	again, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusConfirmed)
	if err != nil {
		t.Fatalf("repeat UpdateOrderStatus: %v", err)
	}
	if again.Status != constants.OrderStatusConfirmed {
		t.Fatalf("expected confirmed after repeat, got %s", again.Status)
	}

	if _, err := svc.UpdateOrderStatus(order.ID, "archived"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition for unknown status, got: %v", err)
	}

	if _, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusShipped); err != nil {
		t.Fatalf("UpdateOrderStatus shipped: %v", err)
	}
	if _, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusDelivered); err != nil {
		t.Fatalf("UpdateOrderStatus delivered: %v", err)
	}
	if _, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected terminal delivered to reject cancel, got: %v", err)
	}
}

func TestCancelOrderRestocksOnce(t *testing.T) {
	db := setupOrderServiceTestDB(t, "cancel_restock")
	svc := newOrderServiceForTest(db)

	product := createTestProduct(t, db, "Café Molido 500g", 12.00, 20)
	addTestCartItem(t, db, 1, product.ID, 5)
	order, err := svc.Checkout(CheckoutInput{UserID: 1})
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}

	var afterCheckout models.Product
	if err := db.First(&afterCheckout, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if afterCheckout.Stock != 15 {
		t.Fatalf("expected stock 15 after checkout, got %v", afterCheckout.Stock)
	}

	cancelled, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("cancel order: %v", err)
	}
	if cancelled.CancelledAt == nil {
		t.Fatal("expected cancelled_at to be set")
	}

	var restocked models.Product
	if err := db.First(&restocked, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if restocked.Stock != 20 {
		t.Fatalf("expected stock restored to 20, got %v", restocked.Stock)
	}

	// 取消后重复提交取消：幂等返回，不会二次回补
	if _, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusCancelled); err != nil {
		t.Fatalf("repeat cancel: %v", err)
	}
	var afterRepeat models.Product
	if err := db.First(&afterRepeat, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if afterRepeat.Stock != 20 {
		t.Fatalf("expected stock unchanged after repeat cancel, got %v", afterRepeat.Stock)
	}
}

// staleSnapshotOrderRepo 首次读取返回提交前的旧快照，之后透传真实仓库，
// 模拟两个并发状态更新都在对方提交前完成读取的交错
type staleSnapshotOrderRepo struct {
	repository.OrderRepository
	snapshot *models.Order
}

func (r *staleSnapshotOrderRepo) GetByID(id uint) (*models.Order, error) {
	if r.snapshot != nil && r.snapshot.ID == id {
		copied := *r.snapshot
		r.snapshot = nil
		return &copied, nil
	}
	return r.OrderRepository.GetByID(id)
}

func TestConcurrentCancelRestocksOnce(t *testing.T) {
	db := setupOrderServiceTestDB(t, "cancel_concurrent")
	svc := newOrderServiceForTest(db)

	product := createTestProduct(t, db, "Chocolate de Mesa", 6.40, 20)
	addTestCartItem(t, db, 1, product.ID, 5)
	order, err := svc.Checkout(CheckoutInput{UserID: 1})
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}

	orderRepo := repository.NewOrderRepository(db)
	snapshot, err := orderRepo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("snapshot order: %v", err)
	}

	if _, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusCancelled); err != nil {
		t.Fatalf("first cancel: %v", err)
	}

	// 第二次取消读到的是提交前的快照（status=new、cancelled_at 为空）：
	// 条件更新命不中任何行，按库内状态判定为幂等成功，不得再次回补库存
	staleSvc := NewOrderService(
		&staleSnapshotOrderRepo{OrderRepository: orderRepo, snapshot: snapshot},
		repository.NewProductRepository(db),
		repository.NewCartRepository(db),
		nil,
	)
	cancelled, err := staleSvc.UpdateOrderStatus(order.ID, constants.OrderStatusCancelled)
	if err != nil {
		t.Fatalf("stale repeat cancel: %v", err)
	}
	if cancelled.Status != constants.OrderStatusCancelled {
		t.Fatalf("expected cancelled, got %s", cancelled.Status)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if got.Stock != 20 {
		t.Fatalf("stock restocked more than once: want 20 got %v", got.Stock)
	}
}

func TestUpdateStatusStaleReadResolvesAgainstCurrentState(t *testing.T) {
	db := setupOrderServiceTestDB(t, "status_stale_read")
	svc := newOrderServiceForTest(db)

	product := createTestProduct(t, db, "Aceite de Girasol", 7.80, 20)
	addTestCartItem(t, db, 1, product.ID, 2)
	order, err := svc.Checkout(CheckoutInput{UserID: 1})
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}

	orderRepo := repository.NewOrderRepository(db)
	snapshot, err := orderRepo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("snapshot order: %v", err)
	}

	if _, err := svc.UpdateOrderStatus(order.ID, constants.OrderStatusConfirmed); err != nil {
		t.Fatalf("confirm order: %v", err)
	}

	// 基于 new 快照重复确认：条件更新落空后按库内状态判定为幂等成功
	staleSvc := NewOrderService(
		&staleSnapshotOrderRepo{OrderRepository: orderRepo, snapshot: snapshot},
		repository.NewProductRepository(db),
		repository.NewCartRepository(db),
		nil,
	)
	got, err := staleSvc.UpdateOrderStatus(order.ID, constants.OrderStatusConfirmed)
	if err != nil {
		t.Fatalf("stale repeat confirm: %v", err)
	}
	if got.Status != constants.OrderStatusConfirmed {
		t.Fatalf("expected confirmed, got %s", got.Status)
	}
}

func TestGetOrderByUserScoping(t *testing.T) {
	db := setupOrderServiceTestDB(t, "order_scope")
	svc := newOrderServiceForTest(db)

	product := createTestProduct(t, db, "Huevos AA x30", 9.90, 50)
	addTestCartItem(t, db, 1, product.ID, 2)
	order, err := svc.Checkout(CheckoutInput{UserID: 1})
	if err != nil {
		t.Fatalf("Checkout error: %v", err)
	}

	got, err := svc.GetOrderByUser(order.ID, 1)
	if err != nil {
		t.Fatalf("GetOrderByUser error: %v", err)
	}
	if got.TotalQuantity != 2 {
		t.Fatalf("expected total quantity 2, got %v", got.TotalQuantity)
	}

	if _, err := svc.GetOrderByUser(order.ID, 2); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for other user, got: %v", err)
	}
	if _, err := svc.GetOrderByUser(999, 1); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for missing order, got: %v", err)
	}
}

func TestGenerateOrderNo(t *testing.T) {
	no := generateOrderNo()
	if len(no) != 2+14+6 {
		t.Fatalf("unexpected order no length: %q", no)
	}
	if no[:2] != "VT" {
		t.Fatalf("expected VT prefix, got: %q", no)
	}
	other := generateOrderNo()
	if no == other {
		t.Fatalf("expected distinct order numbers, got duplicate: %q", no)
	}
}
