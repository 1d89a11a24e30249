package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/ventas-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupProductRepositoryTest(t *testing.T, name string) (*GormProductRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("migrate product tables failed: %v", err)
	}
	return NewProductRepository(db), db
}

func createStockedProduct(t *testing.T, repo *GormProductRepository, name string, stock float64) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        name,
		PriceAmount: models.NewMoneyFromFloat(10),
		Stock:       stock,
		IsActive:    true,
	}
	if err := repo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}

func TestDecrementStockConditional(t *testing.T) {
	repo, db := setupProductRepositoryTest(t, "stock_decrement")
	product := createStockedProduct(t, repo, "Avena en Hojuelas", 20)

	affected, err := repo.DecrementStock(product.ID, 5)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("decrement affected want 1 got %d", affected)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 15 {
		t.Fatalf("stock want 15 got %v", got.Stock)
	}

	// 超过剩余库存时不更新任何行
	affected, err = repo.DecrementStock(product.ID, 25)
	if err != nil {
		t.Fatalf("decrement over available failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("decrement over available affected want 0 got %d", affected)
	}
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 15 {
		t.Fatalf("stock should stay 15, got %v", got.Stock)
	}

	// 刚好等于剩余库存允许扣到 0
	affected, err = repo.DecrementStock(product.ID, 15)
	if err != nil {
		t.Fatalf("decrement to zero failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("decrement to zero affected want 1 got %d", affected)
	}
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 0 {
		t.Fatalf("stock want 0 got %v", got.Stock)
	}
}

func TestIncrementStockRestores(t *testing.T) {
	repo, db := setupProductRepositoryTest(t, "stock_increment")
	product := createStockedProduct(t, repo, "Sal Marina", 3)

	affected, err := repo.IncrementStock(product.ID, 7)
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("increment affected want 1 got %d", affected)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 10 {
		t.Fatalf("stock want 10 got %v", got.Stock)
	}
}

func TestReplaceCategories(t *testing.T) {
	repo, db := setupProductRepositoryTest(t, "replace_categories")
	product := createStockedProduct(t, repo, "Harina de Maíz", 10)

	fruits := models.Category{Name: "Frutas"}
	pantry := models.Category{Name: "Despensa"}
	if err := db.Create(&fruits).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if err := db.Create(&pantry).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	if err := repo.ReplaceCategories(product.ID, []uint{fruits.ID}); err != nil {
		t.Fatalf("replace categories failed: %v", err)
	}
	got, err := repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if len(got.Categories) != 1 || got.Categories[0].ID != fruits.ID {
		t.Fatalf("unexpected categories: %+v", got.Categories)
	}

	if err := repo.ReplaceCategories(product.ID, []uint{pantry.ID}); err != nil {
		t.Fatalf("replace categories failed: %v", err)
	}
	got, err = repo.GetByID(product.ID)
	if err != nil {
		t.Fatalf("get product failed: %v", err)
	}
	if len(got.Categories) != 1 || got.Categories[0].ID != pantry.ID {
		t.Fatalf("categories not replaced: %+v", got.Categories)
	}
}

func TestListFilters(t *testing.T) {
	repo, db := setupProductRepositoryTest(t, "product_list")
	active := createStockedProduct(t, repo, "Quinua", 10)
	hidden := createStockedProduct(t, repo, "Chía", 10)
	if err := db.Model(&models.Product{}).Where("id = ?", hidden.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}

	items, total, err := repo.List(ProductListFilter{Page: 1, PageSize: 10, OnlyActive: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ID != active.ID {
		t.Fatalf("only active product expected, got total=%d", total)
	}

	items, total, err = repo.List(ProductListFilter{Page: 1, PageSize: 10, Search: "Chía"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ID != hidden.ID {
		t.Fatalf("search expected to match inactive product, got total=%d", total)
	}
}
