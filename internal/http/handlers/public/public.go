package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ventas-next/internal/http/response"
	"github.com/ventas-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCategories 获取公开分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.ListCombo()
	if err != nil {
		respondError(c, response.CodeInternal, "error.category_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"items": categories})
}

// GetProducts 获取商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	// 获取分页参数
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = normalizePagination(page, pageSize)

	// 获取筛选参数
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 64)
	search := strings.TrimSpace(c.Query("search"))

	products, total, err := h.ProductService.ListPublic(uint(categoryID), search, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	// 统一响应格式
	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, products, pagination)
}

// GetProductByID 获取商品详情
func (h *Handler) GetProductByID(c *gin.Context) {
	rawID := c.Param("id")
	id, err := strconv.ParseUint(rawID, 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.product_not_found", nil)
		return
	}

	product, err := h.ProductService.GetPublicByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.product_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.product_fetch_failed", err)
		return
	}

	response.Success(c, product)
}

// GetCountries 获取国家下拉列表
func (h *Handler) GetCountries(c *gin.Context) {
	countries, err := h.CountryService.ListCombo()
	if err != nil {
		respondError(c, response.CodeInternal, "error.geo_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"items": countries})
}

// GetCountriesFull 获取国家及省市的完整层级
func (h *Handler) GetCountriesFull(c *gin.Context) {
	countries, err := h.CountryService.ListFull()
	if err != nil {
		respondError(c, response.CodeInternal, "error.geo_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"items": countries})
}

// GetStates 获取指定国家的省/州下拉列表
func (h *Handler) GetStates(c *gin.Context) {
	countryID, err := strconv.ParseUint(c.Param("country_id"), 10, 64)
	if err != nil || countryID == 0 {
		respondError(c, response.CodeBadRequest, "error.country_not_found", nil)
		return
	}

	states, err := h.StateService.ListCombo(uint(countryID))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.country_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.geo_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"items": states})
}

// GetCities 获取指定省/州的城市下拉列表
func (h *Handler) GetCities(c *gin.Context) {
	stateID, err := strconv.ParseUint(c.Param("state_id"), 10, 64)
	if err != nil || stateID == 0 {
		respondError(c, response.CodeBadRequest, "error.state_not_found", nil)
		return
	}

	cities, err := h.CityService.ListCombo(uint(stateID))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.state_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.geo_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{"items": cities})
}
