package public

import (
	"strconv"

	"github.com/ventas-next/internal/http/response"
	"github.com/ventas-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CartAddRequest 添加购物车请求
type CartAddRequest struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required"`
	Remarks   string  `json:"remarks"`
}

// CartUpdateRequest 更新购物车项请求
type CartUpdateRequest struct {
	Quantity float64 `json:"quantity" binding:"required"`
	Remarks  string  `json:"remarks"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.CartService.ListByUser(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}

	response.Success(c, gin.H{"items": items})
}

// GetCartItem 获取单个购物车项
func (h *Handler) GetCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.cart_item_not_found", nil)
		return
	}

	item, serviceErr := h.CartService.GetByID(uint(id), uid)
	if serviceErr != nil {
		respondCartError(c, serviceErr)
		return
	}
	response.Success(c, item)
}

// GetCartCount 获取购物车商品总数量
func (h *Handler) GetCartCount(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	count, err := h.CartService.CountForUser(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.cart_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"count": count})
}

// AddCartItem 添加商品到购物车（已存在则累加数量）
func (h *Handler) AddCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	item, err := h.CartService.AddItem(service.UpsertCartItemInput{
		UserID:    uid,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Remarks:   req.Remarks,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, item)
}

// UpdateCartItem 覆盖购物车项数量与备注
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.cart_item_not_found", nil)
		return
	}
	var req CartUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	item, serviceErr := h.CartService.UpdateItem(uint(id), uid, req.Quantity, req.Remarks)
	if serviceErr != nil {
		respondCartError(c, serviceErr)
		return
	}
	response.Success(c, item)
}

// DeleteCartItem 删除购物车项
func (h *Handler) DeleteCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.cart_item_not_found", nil)
		return
	}

	if err := h.CartService.RemoveItem(uint(id), uid); err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
