package service

import (
	"strings"

	"github.com/ventas-next/internal/models"
	"github.com/ventas-next/internal/repository"
)

// CartItemDetail 购物车项详情（用于响应）
type CartItemDetail struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"product_id"`
	Quantity  float64         `json:"quantity"`
	UnitPrice models.Money    `json:"unit_price"`
	LineTotal models.Money    `json:"line_total"`
	Remarks   string          `json:"remarks"`
	Product   *models.Product `json:"product"`
}

// UpsertCartItemInput 购物车添加输入
type UpsertCartItemInput struct {
	UserID    uint
	ProductID uint
	Quantity  float64
	Remarks   string
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// ListByUser 获取用户购物车
func (s *CartService) ListByUser(userID uint) ([]CartItemDetail, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	details := make([]CartItemDetail, 0, len(items))
	for _, item := range items {
		product := item.Product
		if product == nil || product.ID == 0 {
			p, err := s.productRepo.GetByID(item.ProductID)
			if err != nil {
				return nil, err
			}
			product = p
		}
		if product == nil || !product.IsActive {
			_ = s.cartRepo.DeleteByIDAndUser(item.ID, userID)
			continue
		}

		details = append(details, CartItemDetail{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: product.PriceAmount,
			LineTotal: product.PriceAmount.MulFloat(item.Quantity),
			Remarks:   item.Remarks,
			Product:   product,
		})
	}
	return details, nil
}

// GetByID 获取用户的单个购物车项
func (s *CartService) GetByID(id, userID uint) (*models.CartItem, error) {
	if id == 0 || userID == 0 {
		return nil, ErrCartItemNotFound
	}
	item, err := s.cartRepo.GetByIDAndUser(id, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}
	return item, nil
}

// AddItem 添加购物车项，已存在时数量累加
func (s *CartService) AddItem(input UpsertCartItemInput) (*models.CartItem, error) {
	if input.UserID == 0 || input.ProductID == 0 {
		return nil, ErrNotFound
	}
	if input.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotAvailable
	}

	remarks := strings.TrimSpace(input.Remarks)
	exist, err := s.cartRepo.GetByUserAndProduct(input.UserID, input.ProductID)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		exist.Quantity += input.Quantity
		if remarks != "" {
			exist.Remarks = remarks
		}
		if err := s.cartRepo.Update(exist); err != nil {
			return nil, err
		}
		return exist, nil
	}

	item := models.CartItem{
		UserID:    input.UserID,
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
		Remarks:   remarks,
	}
	if err := s.cartRepo.Create(&item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem 覆盖购物车项的数量与备注
func (s *CartService) UpdateItem(id, userID uint, quantity float64, remarks string) (*models.CartItem, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}
	item, err := s.GetByID(id, userID)
	if err != nil {
		return nil, err
	}

	item.Quantity = quantity
	item.Remarks = strings.TrimSpace(remarks)
	if err := s.cartRepo.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// RemoveItem 删除购物车项
func (s *CartService) RemoveItem(id, userID uint) error {
	if _, err := s.GetByID(id, userID); err != nil {
		return err
	}
	return s.cartRepo.DeleteByIDAndUser(id, userID)
}

// CountForUser 统计用户购物车商品总数量
func (s *CartService) CountForUser(userID uint) (float64, error) {
	if userID == 0 {
		return 0, nil
	}
	return s.cartRepo.SumQuantityByUser(userID)
}
