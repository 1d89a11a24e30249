package service

import (
	"strings"

	"github.com/ventas-next/internal/models"
	"github.com/ventas-next/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductService 商品业务服务
type ProductService struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductService {
	return &ProductService{repo: repo, categoryRepo: categoryRepo}
}

// CreateProductInput 创建/更新商品输入
type CreateProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       float64
	CategoryIDs []uint
	IsActive    *bool
	SortOrder   int
}

// ListPublic 获取公开商品列表（仅上架）
func (s *ProductService) ListPublic(categoryID uint, search string, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: categoryID,
		Search:     strings.TrimSpace(search),
		OnlyActive: true,
	}
	return s.repo.List(filter)
}

// GetPublicByID 获取公开商品详情
func (s *ProductService) GetPublicByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrNotFound
	}
	return product, nil
}

// ListAdmin 获取后台商品列表
func (s *ProductService) ListAdmin(categoryID uint, search string, page, pageSize int) ([]models.Product, int64, error) {
	filter := repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		CategoryID: categoryID,
		Search:     strings.TrimSpace(search),
		OnlyActive: false,
	}
	return s.repo.List(filter)
}

// GetAdminByID 获取后台商品详情
func (s *ProductService) GetAdminByID(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create 创建商品
func (s *ProductService) Create(input CreateProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	price := input.Price.Round(2)
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPrice
	}
	if input.Stock < 0 {
		return nil, ErrInvalidStock
	}
	categoryIDs, err := s.resolveCategoryIDs(input.CategoryIDs)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountByName(name, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrProductNameTaken
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	product := models.Product{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		PriceAmount: models.Money{Decimal: price},
		Stock:       input.Stock,
		IsActive:    isActive,
		SortOrder:   input.SortOrder,
	}
	if err := s.repo.Create(&product); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceCategories(product.ID, categoryIDs); err != nil {
		return nil, err
	}
	return s.repo.GetByID(product.ID)
}

// Update 更新商品
func (s *ProductService) Update(id uint, input CreateProductInput) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	name := strings.TrimSpace(input.Name)
	price := input.Price.Round(2)
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidPrice
	}
	if input.Stock < 0 {
		return nil, ErrInvalidStock
	}
	categoryIDs, err := s.resolveCategoryIDs(input.CategoryIDs)
	if err != nil {
		return nil, err
	}

	count, err := s.repo.CountByName(name, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrProductNameTaken
	}

	product.Name = name
	product.Description = strings.TrimSpace(input.Description)
	product.PriceAmount = models.Money{Decimal: price}
	product.Stock = input.Stock
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	product.SortOrder = input.SortOrder

	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	if err := s.repo.ReplaceCategories(product.ID, categoryIDs); err != nil {
		return nil, err
	}
	return s.repo.GetByID(product.ID)
}

// SetActive 上/下架商品
func (s *ProductService) SetActive(id uint, active bool) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	product.IsActive = active
	if err := s.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(id uint) error {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}

// resolveCategoryIDs 去重并校验分类存在
func (s *ProductService) resolveCategoryIDs(ids []uint) ([]uint, error) {
	seen := make(map[uint]bool, len(ids))
	resolved := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		category, err := s.categoryRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrNotFound
		}
		seen[id] = true
		resolved = append(resolved, id)
	}
	if len(resolved) == 0 {
		return nil, ErrNoCategories
	}
	return resolved, nil
}
