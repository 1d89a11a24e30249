package service

import (
	"errors"
	"testing"

	"github.com/ventas-next/internal/models"
	"github.com/ventas-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newCatalogServicesForTest(db *gorm.DB) (*ProductService, *CategoryService) {
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	return NewProductService(productRepo, categoryRepo), NewCategoryService(categoryRepo)
}

func createTestCategory(t *testing.T, svc *CategoryService, name string) *models.Category {
	t.Helper()
	category, err := svc.Create(CreateCategoryInput{Name: name})
	if err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return category
}

func TestCreateProductWithCategories(t *testing.T) {
	db := setupOrderServiceTestDB(t, "product_create")
	products, categories := newCatalogServicesForTest(db)

	fruits := createTestCategory(t, categories, "Frutas")
	organic := createTestCategory(t, categories, "Orgánicos")

	product, err := products.Create(CreateProductInput{
		Name:        "Mango Tommy",
		Description: "Por kilo",
		Price:       decimal.NewFromFloat(4.80),
		Stock:       30,
		CategoryIDs: []uint{fruits.ID, organic.ID, organic.ID, 0},
	})
	if err != nil {
		t.Fatalf("Create product: %v", err)
	}
	if product.ID == 0 {
		t.Fatal("expected persisted product")
	}
	if !product.IsActive {
		t.Fatal("expected product active by default")
	}
	if len(product.Categories) != 2 {
		t.Fatalf("expected 2 categories after dedupe, got %d", len(product.Categories))
	}
	if product.PriceAmount.StringFixed(2) != "4.80" {
		t.Fatalf("expected price 4.80, got %s", product.PriceAmount.StringFixed(2))
	}
}

func TestCreateProductValidation(t *testing.T) {
	db := setupOrderServiceTestDB(t, "product_validation")
	products, categories := newCatalogServicesForTest(db)

	fruits := createTestCategory(t, categories, "Frutas")

	cases := []struct {
		name  string
		input CreateProductInput
		want  error
	}{
		{
			name:  "zero price",
			input: CreateProductInput{Name: "Papaya", Price: decimal.Zero, Stock: 10, CategoryIDs: []uint{fruits.ID}},
			want:  ErrInvalidPrice,
		},
		{
			name:  "negative price",
			input: CreateProductInput{Name: "Papaya", Price: decimal.NewFromFloat(-1), Stock: 10, CategoryIDs: []uint{fruits.ID}},
			want:  ErrInvalidPrice,
		},
		{
			name:  "negative stock",
			input: CreateProductInput{Name: "Papaya", Price: decimal.NewFromFloat(2), Stock: -1, CategoryIDs: []uint{fruits.ID}},
			want:  ErrInvalidStock,
		},
		{
			name:  "no categories",
			input: CreateProductInput{Name: "Papaya", Price: decimal.NewFromFloat(2), Stock: 10},
			want:  ErrNoCategories,
		},
		{
			name:  "unknown category",
			input: CreateProductInput{Name: "Papaya", Price: decimal.NewFromFloat(2), Stock: 10, CategoryIDs: []uint{999}},
			want:  ErrNotFound,
		},
	}
	for _, tc := range cases {
		if _, err := products.Create(tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}

	if _, err := products.Create(CreateProductInput{Name: "Papaya", Price: decimal.NewFromFloat(2), Stock: 10, CategoryIDs: []uint{fruits.ID}}); err != nil {
		t.Fatalf("Create product: %v", err)
	}
	if _, err := products.Create(CreateProductInput{Name: " Papaya ", Price: decimal.NewFromFloat(3), Stock: 5, CategoryIDs: []uint{fruits.ID}}); !errors.Is(err, ErrProductNameTaken) {
		t.Fatalf("expected ErrProductNameTaken, got: %v", err)
	}
}

func TestUpdateProductReplacesCategories(t *testing.T) {
	db := setupOrderServiceTestDB(t, "product_update")
	products, categories := newCatalogServicesForTest(db)

	fruits := createTestCategory(t, categories, "Frutas")
	dairy := createTestCategory(t, categories, "Lácteos")

	product, err := products.Create(CreateProductInput{
		Name:        "Yogur de Mora",
		Price:       decimal.NewFromFloat(3.60),
		Stock:       15,
		CategoryIDs: []uint{fruits.ID},
	})
	if err != nil {
		t.Fatalf("Create product: %v", err)
	}

	updated, err := products.Update(product.ID, CreateProductInput{
		Name:        "Yogur de Mora 1L",
		Price:       decimal.NewFromFloat(4.00),
		Stock:       12,
		CategoryIDs: []uint{dairy.ID},
	})
	if err != nil {
		t.Fatalf("Update product: %v", err)
	}
	if updated.Name != "Yogur de Mora 1L" {
		t.Fatalf("expected renamed product, got %q", updated.Name)
	}
	if len(updated.Categories) != 1 || updated.Categories[0].ID != dairy.ID {
		t.Fatalf("expected categories replaced, got %+v", updated.Categories)
	}
	if updated.Stock != 12 {
		t.Fatalf("expected stock 12, got %v", updated.Stock)
	}
}

func TestSetActiveTogglesVisibility(t *testing.T) {
	db := setupOrderServiceTestDB(t, "product_set_active")
	products, categories := newCatalogServicesForTest(db)

	fruits := createTestCategory(t, categories, "Frutas")
	product, err := products.Create(CreateProductInput{
		Name:        "Granadilla",
		Price:       decimal.NewFromFloat(2.90),
		Stock:       40,
		CategoryIDs: []uint{fruits.ID},
	})
	if err != nil {
		t.Fatalf("Create product: %v", err)
	}

	if _, err := products.SetActive(product.ID, false); err != nil {
		t.Fatalf("SetActive error: %v", err)
	}
	if _, err := products.GetPublicByID(product.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected inactive product hidden from public, got: %v", err)
	}
	if _, err := products.GetAdminByID(product.ID); err != nil {
		t.Fatalf("admin should still see inactive product: %v", err)
	}

	if _, err := products.SetActive(product.ID, true); err != nil {
		t.Fatalf("SetActive error: %v", err)
	}
	if _, err := products.GetPublicByID(product.ID); err != nil {
		t.Fatalf("expected reactivated product visible: %v", err)
	}
	if _, err := products.SetActive(999, false); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
}

func TestListPublicOnlyActive(t *testing.T) {
	db := setupOrderServiceTestDB(t, "product_list_public")
	products, categories := newCatalogServicesForTest(db)

	fruits := createTestCategory(t, categories, "Frutas")
	if _, err := products.Create(CreateProductInput{Name: "Fresa", Price: decimal.NewFromFloat(3.00), Stock: 10, CategoryIDs: []uint{fruits.ID}}); err != nil {
		t.Fatalf("Create product: %v", err)
	}
	hidden, err := products.Create(CreateProductInput{Name: "Mora", Price: decimal.NewFromFloat(2.50), Stock: 10, CategoryIDs: []uint{fruits.ID}})
	if err != nil {
		t.Fatalf("Create product: %v", err)
	}
	if _, err := products.SetActive(hidden.ID, false); err != nil {
		t.Fatalf("SetActive error: %v", err)
	}

	visible, total, err := products.ListPublic(0, "", 1, 10)
	if err != nil {
		t.Fatalf("ListPublic error: %v", err)
	}
	if total != 1 || len(visible) != 1 || visible[0].Name != "Fresa" {
		t.Fatalf("expected only active product, got total=%d items=%+v", total, visible)
	}

	all, totalAdmin, err := products.ListAdmin(0, "", 1, 10)
	if err != nil {
		t.Fatalf("ListAdmin error: %v", err)
	}
	if totalAdmin != 2 || len(all) != 2 {
		t.Fatalf("expected both products for admin, got total=%d", totalAdmin)
	}
}

func TestDeleteCategoryInUse(t *testing.T) {
	db := setupOrderServiceTestDB(t, "category_in_use")
	products, categories := newCatalogServicesForTest(db)

	pantry := createTestCategory(t, categories, "Despensa")
	if _, err := categories.Create(CreateCategoryInput{Name: " Despensa "}); !errors.Is(err, ErrCategoryNameTaken) {
		t.Fatalf("expected ErrCategoryNameTaken, got: %v", err)
	}

	product, err := products.Create(CreateProductInput{
		Name:        "Lenteja 500g",
		Price:       decimal.NewFromFloat(1.90),
		Stock:       60,
		CategoryIDs: []uint{pantry.ID},
	})
	if err != nil {
		t.Fatalf("Create product: %v", err)
	}

	if err := categories.Delete(pantry.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("expected ErrCategoryInUse, got: %v", err)
	}

	if err := products.Delete(product.ID); err != nil {
		t.Fatalf("Delete product: %v", err)
	}
	if err := categories.Delete(pantry.ID); err != nil {
		t.Fatalf("expected category deletable after product removal, got: %v", err)
	}
	if _, err := categories.GetByID(pantry.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected category gone, got: %v", err)
	}
}
