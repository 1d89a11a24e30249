package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/ventas-next/internal/http/response"
	"github.com/ventas-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GeoNameRequest 地理实体创建/更新请求
type GeoNameRequest struct {
	Name string `json:"name" binding:"required"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

// ====================  国家管理  ====================

// GetAdminCountries 获取国家列表
func (h *Handler) GetAdminCountries(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = normalizePagination(page, pageSize)
	search := strings.TrimSpace(c.Query("search"))

	countries, total, err := h.CountryService.List(page, pageSize, search)
	if err != nil {
		respondError(c, response.CodeInternal, "error.geo_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, countries, pagination)
}

// GetAdminCountry 获取国家详情
func (h *Handler) GetAdminCountry(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	country, err := h.CountryService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.country_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.geo_fetch_failed", err)
		return
	}

	response.Success(c, country)
}

// CreateCountry 创建国家
func (h *Handler) CreateCountry(c *gin.Context) {
	var req GeoNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	country, err := h.CountryService.Create(req.Name)
	if err != nil {
		if errors.Is(err, service.ErrCountryNameTaken) {
			respondError(c, response.CodeConflict, "error.country_name_taken", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.geo_save_failed", err)
		return
	}

	response.Success(c, country)
}

// UpdateCountry 更新国家
func (h *Handler) UpdateCountry(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req GeoNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	country, err := h.CountryService.Update(id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.country_not_found", nil)
		case errors.Is(err, service.ErrCountryNameTaken):
			respondError(c, response.CodeConflict, "error.country_name_taken", nil)
		default:
			respondError(c, response.CodeInternal, "error.geo_save_failed", err)
		}
		return
	}

	response.Success(c, country)
}

// DeleteCountry 删除国家（级联删除下属省市）
func (h *Handler) DeleteCountry(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.CountryService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.country_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.geo_delete_failed", err)
		return
	}

	response.Success(c, nil)
}

// ====================  省/州管理  ====================

// GetAdminStates 获取指定国家的省/州列表
func (h *Handler) GetAdminStates(c *gin.Context) {
	countryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = normalizePagination(page, pageSize)
	search := strings.TrimSpace(c.Query("search"))

	states, total, err := h.StateService.ListByCountry(countryID, page, pageSize, search)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.country_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.geo_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, states, pagination)
}

// CreateState 创建省/州
func (h *Handler) CreateState(c *gin.Context) {
	countryID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req GeoNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	state, err := h.StateService.Create(countryID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.country_not_found", nil)
		case errors.Is(err, service.ErrStateNameTaken):
			respondError(c, response.CodeConflict, "error.state_name_taken", nil)
		default:
			respondError(c, response.CodeInternal, "error.geo_save_failed", err)
		}
		return
	}

	response.Success(c, state)
}

// UpdateState 更新省/州
func (h *Handler) UpdateState(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req GeoNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	state, err := h.StateService.Update(id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.state_not_found", nil)
		case errors.Is(err, service.ErrStateNameTaken):
			respondError(c, response.CodeConflict, "error.state_name_taken", nil)
		default:
			respondError(c, response.CodeInternal, "error.geo_save_failed", err)
		}
		return
	}

	response.Success(c, state)
}

// DeleteState 删除省/州（级联删除下属城市）
func (h *Handler) DeleteState(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.StateService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.state_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.geo_delete_failed", err)
		return
	}

	response.Success(c, nil)
}

// ====================  城市管理  ====================

// GetAdminCities 获取指定省/州的城市列表
func (h *Handler) GetAdminCities(c *gin.Context) {
	stateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	page, pageSize = normalizePagination(page, pageSize)
	search := strings.TrimSpace(c.Query("search"))

	cities, total, err := h.CityService.ListByState(stateID, page, pageSize, search)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.state_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.geo_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, cities, pagination)
}

// CreateCity 创建城市
func (h *Handler) CreateCity(c *gin.Context) {
	stateID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req GeoNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	city, err := h.CityService.Create(stateID, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.state_not_found", nil)
		case errors.Is(err, service.ErrCityNameTaken):
			respondError(c, response.CodeConflict, "error.city_name_taken", nil)
		default:
			respondError(c, response.CodeInternal, "error.geo_save_failed", err)
		}
		return
	}

	response.Success(c, city)
}

// UpdateCity 更新城市
func (h *Handler) UpdateCity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req GeoNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	city, err := h.CityService.Update(id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.city_not_found", nil)
		case errors.Is(err, service.ErrCityNameTaken):
			respondError(c, response.CodeConflict, "error.city_name_taken", nil)
		default:
			respondError(c, response.CodeInternal, "error.geo_save_failed", err)
		}
		return
	}

	response.Success(c, city)
}

// DeleteCity 删除城市
func (h *Handler) DeleteCity(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.CityService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.city_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.geo_delete_failed", err)
		return
	}

	response.Success(c, nil)
}
