package service

import (
	"errors"
	"testing"

	"github.com/ventas-next/internal/models"
	"github.com/ventas-next/internal/repository"

	"gorm.io/gorm"
)

func newCartServiceForTest(db *gorm.DB) *CartService {
	return NewCartService(repository.NewCartRepository(db), repository.NewProductRepository(db))
}

func TestAddItemMergesQuantity(t *testing.T) {
	db := setupOrderServiceTestDB(t, "cart_add_merge")
	svc := newCartServiceForTest(db)

	product := createTestProduct(t, db, "Banano Criollo", 1.20, 100)

	first, err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	second, err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 3, Remarks: "maduros"})
	if err != nil {
		t.Fatalf("AddItem merge error: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same cart row, got %d and %d", first.ID, second.ID)
	}
	if second.Quantity != 5 {
		t.Fatalf("expected merged quantity 5, got %v", second.Quantity)
	}
	if second.Remarks != "maduros" {
		t.Fatalf("expected remarks overwritten, got %q", second.Remarks)
	}

	var rows int64
	if err := db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&rows).Error; err != nil {
		t.Fatalf("count cart items: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected a single cart row, got %d", rows)
	}
}

func TestAddItemValidation(t *testing.T) {
	db := setupOrderServiceTestDB(t, "cart_add_invalid")
	svc := newCartServiceForTest(db)

	product := createTestProduct(t, db, "Tomate Chonto", 2.40, 50)

	if _, err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 0}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity for zero, got: %v", err)
	}
	if _, err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: -1}); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity for negative, got: %v", err)
	}

	if err := db.Model(&models.Product{}).Where("id = ?", product.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product: %v", err)
	}
	if _, err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 1}); !errors.Is(err, ErrProductNotAvailable) {
		t.Fatalf("expected ErrProductNotAvailable, got: %v", err)
	}
}

func TestUpdateItemOverwritesQuantity(t *testing.T) {
	db := setupOrderServiceTestDB(t, "cart_update")
	svc := newCartServiceForTest(db)

	product := createTestProduct(t, db, "Cebolla Larga", 1.80, 50)
	item, err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	updated, err := svc.UpdateItem(item.ID, 1, 7, " media libra ")
	if err != nil {
		t.Fatalf("UpdateItem error: %v", err)
	}
	if updated.Quantity != 7 {
		t.Fatalf("expected quantity overwritten to 7, got %v", updated.Quantity)
	}
	if updated.Remarks != "media libra" {
		t.Fatalf("expected trimmed remarks, got %q", updated.Remarks)
	}

	if _, err := svc.UpdateItem(item.ID, 1, 0, ""); !errors.Is(err, ErrInvalidQuantity) {
		t.Fatalf("expected ErrInvalidQuantity, got: %v", err)
	}
	if _, err := svc.UpdateItem(item.ID, 2, 1, ""); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound for other user, got: %v", err)
	}
}

func TestRemoveItem(t *testing.T) {
	db := setupOrderServiceTestDB(t, "cart_remove")
	svc := newCartServiceForTest(db)

	product := createTestProduct(t, db, "Papa Pastusa", 1.10, 50)
	item, err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: product.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	if err := svc.RemoveItem(item.ID, 2); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound for other user, got: %v", err)
	}
	if err := svc.RemoveItem(item.ID, 1); err != nil {
		t.Fatalf("RemoveItem error: %v", err)
	}
	if _, err := svc.GetByID(item.ID, 1); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound after removal, got: %v", err)
	}
}

func TestCountForUserSumsQuantities(t *testing.T) {
	db := setupOrderServiceTestDB(t, "cart_count")
	svc := newCartServiceForTest(db)

	apple := createTestProduct(t, db, "Manzana Verde", 3.20, 50)
	grape := createTestProduct(t, db, "Uva Isabella", 4.50, 50)
	if _, err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: apple.ID, Quantity: 2}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if _, err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: grape.ID, Quantity: 3.5}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}

	count, err := svc.CountForUser(1)
	if err != nil {
		t.Fatalf("CountForUser error: %v", err)
	}
	if count != 5.5 {
		t.Fatalf("expected total quantity 5.5, got %v", count)
	}

	empty, err := svc.CountForUser(2)
	if err != nil {
		t.Fatalf("CountForUser empty error: %v", err)
	}
	if empty != 0 {
		t.Fatalf("expected 0 for user without cart, got %v", empty)
	}
}

func TestListByUserDropsInactiveProducts(t *testing.T) {
	db := setupOrderServiceTestDB(t, "cart_list")
	svc := newCartServiceForTest(db)

	active := createTestProduct(t, db, "Zanahoria", 1.50, 50)
	retired := createTestProduct(t, db, "Lulo", 2.80, 50)
	if _, err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: active.ID, Quantity: 2}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if _, err := svc.AddItem(UpsertCartItemInput{UserID: 1, ProductID: retired.ID, Quantity: 1}); err != nil {
		t.Fatalf("AddItem error: %v", err)
	}
	if err := db.Model(&models.Product{}).Where("id = ?", retired.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product: %v", err)
	}

	details, err := svc.ListByUser(1)
	if err != nil {
		t.Fatalf("ListByUser error: %v", err)
	}
	if len(details) != 1 {
		t.Fatalf("expected 1 visible item, got %d", len(details))
	}
	if details[0].ProductID != active.ID {
		t.Fatalf("expected active product, got ID %d", details[0].ProductID)
	}
	if details[0].LineTotal.StringFixed(2) != "3.00" {
		t.Fatalf("expected line total 3.00, got %s", details[0].LineTotal.StringFixed(2))
	}
}
