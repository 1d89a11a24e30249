//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/ventas-next/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.OrderItem{},
		&models.Order{},
		&models.CartItem{},
		&models.ProductCategory{},
		&models.Product{},
		&models.Category{},
		&models.City{},
		&models.State{},
		&models.Country{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.Country{},
		&models.State{},
		&models.City{},
		&models.Category{},
		&models.Product{},
		&models.ProductCategory{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresProductSearchCaseInsensitive(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	productRepo := NewProductRepository(db)
	product := &models.Product{
		Name:        "Café de Origen Huila",
		PriceAmount: models.NewMoneyFromFloat(18.50),
		Stock:       25,
		IsActive:    true,
	}
	if err := productRepo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	// postgres 走 ILIKE，大小写不敏感
	rows, total, err := productRepo.List(ProductListFilter{Page: 1, PageSize: 10, Search: "café"})
	if err != nil {
		t.Fatalf("product search failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("product search want 1 got total=%d len=%d", total, len(rows))
	}

	rows, total, err = productRepo.List(ProductListFilter{Page: 1, PageSize: 10, Search: "HUILA"})
	if err != nil {
		t.Fatalf("product search upper failed: %v", err)
	}
	if total != 1 || len(rows) != 1 {
		t.Fatalf("product search upper want 1 got total=%d len=%d", total, len(rows))
	}
}

func TestPostgresStockDecrementConcurrencySafe(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	productRepo := NewProductRepository(db)
	product := &models.Product{
		Name:        "Panela Orgánica",
		PriceAmount: models.NewMoneyFromFloat(3.20),
		Stock:       20,
		IsActive:    true,
	}
	if err := productRepo.Create(product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	affected, err := productRepo.DecrementStock(product.ID, 5)
	if err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("decrement affected want 1 got %d", affected)
	}

	affected, err = productRepo.DecrementStock(product.ID, 25)
	if err != nil {
		t.Fatalf("decrement over available failed: %v", err)
	}
	if affected != 0 {
		t.Fatalf("decrement over available affected want 0 got %d", affected)
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product failed: %v", err)
	}
	if got.Stock != 15 {
		t.Fatalf("stock want 15 got %v", got.Stock)
	}
}

func TestPostgresGeoCascadeDelete(t *testing.T) {
	db := setupPostgresIntegrationDB(t)

	countryRepo := NewCountryRepository(db)
	stateRepo := NewStateRepository(db)
	cityRepo := NewCityRepository(db)

	country := &models.Country{Name: "Colombia"}
	if err := countryRepo.Create(country); err != nil {
		t.Fatalf("create country failed: %v", err)
	}
	state := &models.State{CountryID: country.ID, Name: "Antioquia"}
	if err := stateRepo.Create(state); err != nil {
		t.Fatalf("create state failed: %v", err)
	}
	city := &models.City{StateID: state.ID, Name: "Medellín"}
	if err := cityRepo.Create(city); err != nil {
		t.Fatalf("create city failed: %v", err)
	}

	if err := countryRepo.Delete(country.ID); err != nil {
		t.Fatalf("delete country failed: %v", err)
	}

	gotState, err := stateRepo.GetByID(state.ID)
	if err != nil {
		t.Fatalf("get state failed: %v", err)
	}
	if gotState != nil {
		t.Fatal("state should be cascade deleted")
	}
	gotCity, err := cityRepo.GetByID(city.ID)
	if err != nil {
		t.Fatalf("get city failed: %v", err)
	}
	if gotCity != nil {
		t.Fatal("city should be cascade deleted")
	}
}
