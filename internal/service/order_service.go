package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ventas-next/internal/constants"
	"github.com/ventas-next/internal/logger"
	"github.com/ventas-next/internal/models"
	"github.com/ventas-next/internal/queue"
	"github.com/ventas-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	queueClient *queue.Client
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository, queueClient *queue.Client) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		queueClient: queueClient,
	}
}

// CheckoutInput 结算输入
type CheckoutInput struct {
	UserID  uint
	Remarks string
}

// errOrderStatusStale 条件更新未命中任何行：状态在读取后被并发修改
var errOrderStatusStale = errors.New("order status changed concurrently")

// insufficientStockError 记录库存不足的具体商品
type insufficientStockError struct {
	ProductName string
}

func (e *insufficientStockError) Error() string {
	return fmt.Sprintf("商品库存不足: %s", e.ProductName)
}

func (e *insufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// InsufficientStockProduct 提取库存不足错误中的商品名称
func InsufficientStockProduct(err error) string {
	var stockErr *insufficientStockError
	if errors.As(err, &stockErr) {
		return stockErr.ProductName
	}
	return ""
}

// Checkout 将用户购物车结算为订单
// 校验并扣减每个商品的库存，全部成功才落单；任一商品不足则整体回滚
func (s *OrderService) Checkout(input CheckoutInput) (*models.Order, error) {
	if input.UserID == 0 {
		return nil, ErrNotFound
	}
	cartItems, err := s.cartRepo.ListByUser(input.UserID)
	if err != nil {
		return nil, err
	}
	if len(cartItems) == 0 {
		return nil, ErrCartEmpty
	}

	now := time.Now()
	order := models.Order{
		OrderNo:   generateOrderNo(),
		UserID:    input.UserID,
		Status:    constants.OrderStatusNew,
		Remarks:   strings.TrimSpace(input.Remarks),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		cartRepo := s.cartRepo.WithTx(tx)

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(cartItems))
		for _, cartItem := range cartItems {
			if cartItem.Quantity <= 0 {
				return ErrInvalidQuantity
			}
			product, err := productRepo.GetByIDForUpdate(cartItem.ProductID)
			if err != nil {
				return err
			}
			if product == nil || !product.IsActive {
				return ErrProductNotAvailable
			}

			affected, err := productRepo.DecrementStock(product.ID, cartItem.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return &insufficientStockError{ProductName: product.Name}
			}

			lineTotal := product.PriceAmount.MulFloat(cartItem.Quantity)
			total = total.Add(lineTotal.Decimal)
			items = append(items, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				UnitPrice:   product.PriceAmount,
				Quantity:    cartItem.Quantity,
				TotalPrice:  lineTotal,
				Remarks:     cartItem.Remarks,
				CreatedAt:   now,
				UpdatedAt:   now,
			})
		}

		order.TotalAmount = models.NewMoneyFromDecimal(total)
		if err := orderRepo.Create(&order, items); err != nil {
			return err
		}
		order.Items = items
		return cartRepo.ClearByUser(input.UserID)
	})
	if err != nil {
		return nil, err
	}

	if s.queueClient != nil {
		if _, err := enqueueOrderStatusEmailTaskIfEligible(s.orderRepo, s.queueClient, order.ID, constants.OrderStatusNew); err != nil {
			logger.Warnw("order_enqueue_status_email_failed",
				"order_id", order.ID,
				"status", constants.OrderStatusNew,
				"error", err,
			)
		}
	}
	return &order, nil
}

// UpdateOrderStatus 流转订单状态，取消时恢复库存（仅恢复一次）
func (s *OrderService) UpdateOrderStatus(orderID uint, targetStatus string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	target := normalizeOrderStatus(targetStatus)
	if !isValidOrderStatus(target) {
		return nil, ErrInvalidTransition
	}
	if order.Status == target {
		return order, nil
	}
	if !isTransitionAllowed(order.Status, target) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	sources := transitionSources(target)
	if target == constants.OrderStatusCancelled {
		// 条件更新与回补同处一个事务：只有真正完成取消写入的一方回补库存
		err = models.DB.Transaction(func(tx *gorm.DB) error {
			orderRepo := s.orderRepo.WithTx(tx)
			productRepo := s.productRepo.WithTx(tx)

			affected, err := orderRepo.CancelOnce(order.ID, sources, now)
			if err != nil {
				return err
			}
			if affected == 0 {
				return errOrderStatusStale
			}
			for _, item := range order.Items {
				if _, err := productRepo.IncrementStock(item.ProductID, item.Quantity); err != nil {
					return err
				}
			}
			return nil
		})
	} else {
		var affected int64
		affected, err = s.orderRepo.UpdateStatusFrom(order.ID, target, sources, map[string]interface{}{
			"updated_at": now,
		})
		if err == nil && affected == 0 {
			err = errOrderStatusStale
		}
	}
	if errors.Is(err, errOrderStatusStale) {
		// 状态被并发修改，按库内当前状态重新判定
		current, rerr := s.orderRepo.GetByID(order.ID)
		if rerr != nil {
			return nil, rerr
		}
		if current == nil {
			return nil, ErrOrderNotFound
		}
		if current.Status == target {
			return current, nil
		}
		return nil, ErrInvalidTransition
	}
	if err != nil {
		return nil, err
	}

	order.Status = target
	if target == constants.OrderStatusCancelled && order.CancelledAt == nil {
		order.CancelledAt = &now
	}
	order.UpdatedAt = now

	if s.queueClient != nil {
		if _, err := enqueueOrderStatusEmailTaskIfEligible(s.orderRepo, s.queueClient, order.ID, order.Status); err != nil {
			logger.Warnw("order_enqueue_status_email_failed",
				"order_id", order.ID,
				"status", order.Status,
				"error", err,
			)
		}
	}
	return order, nil
}

// GetOrderByUser 获取用户自己的订单
func (s *OrderService) GetOrderByUser(orderID uint, userID uint) (*models.Order, error) {
	if orderID == 0 || userID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	fillTotalQuantity(order)
	return order, nil
}

// ListOrdersByUser 获取用户订单列表
func (s *OrderService) ListOrdersByUser(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.UserID == 0 {
		return nil, 0, ErrNotFound
	}
	orders, total, err := s.orderRepo.ListByUser(filter)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		fillTotalQuantity(&orders[i])
	}
	return orders, total, nil
}

// ListOrdersForAdmin 后台订单列表
func (s *OrderService) ListOrdersForAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	orders, total, err := s.orderRepo.ListAdmin(filter)
	if err != nil {
		return nil, 0, err
	}
	for i := range orders {
		fillTotalQuantity(&orders[i])
	}
	return orders, total, nil
}

// GetOrderForAdmin 后台订单详情
func (s *OrderService) GetOrderForAdmin(orderID uint) (*models.Order, error) {
	if orderID == 0 {
		return nil, ErrOrderNotFound
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	fillTotalQuantity(order)
	return order, nil
}

func fillTotalQuantity(order *models.Order) {
	var total float64
	for _, item := range order.Items {
		total += item.Quantity
	}
	order.TotalQuantity = total
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	randPart := randNumeric(6)
	return fmt.Sprintf("VT%s%s", now, randPart)
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		b.WriteString(fmt.Sprintf("%d", n.Int64()))
	}
	return b.String()
}
