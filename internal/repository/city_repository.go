package repository

import (
	"errors"

	"github.com/ventas-next/internal/models"

	"gorm.io/gorm"
)

// CityRepository 城市数据访问接口
type CityRepository interface {
	ListByState(filter GeoListFilter) ([]models.City, int64, error)
	ListCombo(stateID uint) ([]models.City, error)
	GetByID(id uint) (*models.City, error)
	GetByName(name string) (*models.City, error)
	Create(city *models.City) error
	Update(city *models.City) error
	Delete(id uint) error
	CountByName(stateID uint, name string, excludeID uint) (int64, error)
}

// GormCityRepository GORM 实现
type GormCityRepository struct {
	db *gorm.DB
}

// NewCityRepository 创建城市仓库
func NewCityRepository(db *gorm.DB) *GormCityRepository {
	return &GormCityRepository{db: db}
}

// ListByState 某州/省下的城市列表（分页 + 名称过滤）
func (r *GormCityRepository) ListByState(filter GeoListFilter) ([]models.City, int64, error) {
	query := r.db.Model(&models.City{}).Where("state_id = ?", filter.ParentID)
	if filter.Search != "" {
		query = query.Where(nameLikeCondition(r.db, "name"), "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var cities []models.City
	if err := query.Order("name ASC").Find(&cities).Error; err != nil {
		return nil, 0, err
	}
	return cities, total, nil
}

// ListCombo 城市下拉列表（仅 id 与名称）
func (r *GormCityRepository) ListCombo(stateID uint) ([]models.City, error) {
	var cities []models.City
	if err := r.db.Select("id", "name", "state_id").
		Where("state_id = ?", stateID).
		Order("name ASC").
		Find(&cities).Error; err != nil {
		return nil, err
	}
	return cities, nil
}

// GetByID 根据 ID 获取城市
func (r *GormCityRepository) GetByID(id uint) (*models.City, error) {
	var city models.City
	if err := r.db.First(&city, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &city, nil
}

// GetByName 根据名称获取城市（取第一个匹配）
func (r *GormCityRepository) GetByName(name string) (*models.City, error) {
	var city models.City
	if err := r.db.Where("name = ?", name).First(&city).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &city, nil
}

// Create 创建城市
func (r *GormCityRepository) Create(city *models.City) error {
	return r.db.Create(city).Error
}

// Update 更新城市
func (r *GormCityRepository) Update(city *models.City) error {
	return r.db.Save(city).Error
}

// Delete 删除城市
func (r *GormCityRepository) Delete(id uint) error {
	return r.db.Delete(&models.City{}, id).Error
}

// CountByName 统计州/省内同名城市数量
func (r *GormCityRepository) CountByName(stateID uint, name string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.City{}).Where("state_id = ? AND name = ?", stateID, name)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
