package public

import (
	"strconv"
	"strings"

	"github.com/ventas-next/internal/http/response"
	"github.com/ventas-next/internal/repository"
	"github.com/ventas-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CheckoutRequest 结算请求
type CheckoutRequest struct {
	Remarks string `json:"remarks"`
}

// Checkout 将购物车结算为订单
// 整车校验库存并扣减，任一商品不足则整体失败，购物车保持不变。
func (h *Handler) Checkout(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
	}

	order, err := h.OrderService.Checkout(service.CheckoutInput{
		UserID:  uid,
		Remarks: req.Remarks,
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}

	response.Success(c, order)
}

// GetMyOrders 获取当前用户订单列表
func (h *Handler) GetMyOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.OrderListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Status:   strings.TrimSpace(c.Query("status")),
		OrderNo:  strings.TrimSpace(c.Query("order_no")),
	}

	orders, total, err := h.OrderService.ListOrdersByUser(filter)
	if err != nil {
		respondOrderQueryError(c, err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, orders, pagination)
}

// GetMyOrder 获取当前用户订单详情
func (h *Handler) GetMyOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.order_not_found", nil)
		return
	}

	order, serviceErr := h.OrderService.GetOrderByUser(uint(id), uid)
	if serviceErr != nil {
		respondOrderQueryError(c, serviceErr)
		return
	}

	response.Success(c, order)
}
