package repository

import (
	"errors"

	"github.com/ventas-next/internal/models"

	"gorm.io/gorm"
)

// StateRepository 州/省数据访问接口
type StateRepository interface {
	ListByCountry(filter GeoListFilter) ([]models.State, int64, error)
	ListCombo(countryID uint) ([]models.State, error)
	GetByID(id uint) (*models.State, error)
	Create(state *models.State) error
	Update(state *models.State) error
	Delete(id uint) error
	CountByName(countryID uint, name string, excludeID uint) (int64, error)
}

// GormStateRepository GORM 实现
type GormStateRepository struct {
	db *gorm.DB
}

// NewStateRepository 创建州/省仓库
func NewStateRepository(db *gorm.DB) *GormStateRepository {
	return &GormStateRepository{db: db}
}

// ListByCountry 某国家下的州/省列表（分页 + 名称过滤），附带城市数量
func (r *GormStateRepository) ListByCountry(filter GeoListFilter) ([]models.State, int64, error) {
	query := r.db.Model(&models.State{}).Where("country_id = ?", filter.ParentID)
	if filter.Search != "" {
		query = query.Where(nameLikeCondition(r.db, "name"), "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var states []models.State
	if err := query.Order("name ASC").Find(&states).Error; err != nil {
		return nil, 0, err
	}
	if err := r.fillCitiesNumber(states); err != nil {
		return nil, 0, err
	}
	return states, total, nil
}

// ListCombo 州/省下拉列表（仅 id 与名称）
func (r *GormStateRepository) ListCombo(countryID uint) ([]models.State, error) {
	var states []models.State
	if err := r.db.Select("id", "name", "country_id").
		Where("country_id = ?", countryID).
		Order("name ASC").
		Find(&states).Error; err != nil {
		return nil, err
	}
	return states, nil
}

// GetByID 根据 ID 获取州/省（含城市）
func (r *GormStateRepository) GetByID(id uint) (*models.State, error) {
	var state models.State
	if err := r.db.Preload("Cities", func(db *gorm.DB) *gorm.DB {
		return db.Order("cities.name ASC")
	}).First(&state, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &state, nil
}

// Create 创建州/省
func (r *GormStateRepository) Create(state *models.State) error {
	return r.db.Create(state).Error
}

// Update 更新州/省
func (r *GormStateRepository) Update(state *models.State) error {
	return r.db.Save(state).Error
}

// Delete 删除州/省（级联删除城市）
func (r *GormStateRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("state_id = ?", id).Delete(&models.City{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.State{}, id).Error
	})
}

// CountByName 统计国家内同名州/省数量
func (r *GormStateRepository) CountByName(countryID uint, name string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.State{}).Where("country_id = ? AND name = ?", countryID, name)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormStateRepository) fillCitiesNumber(states []models.State) error {
	if len(states) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(states))
	for _, state := range states {
		ids = append(ids, state.ID)
	}

	type row struct {
		StateID uint
		Total   int64
	}
	var rows []row
	if err := r.db.Model(&models.City{}).
		Select("state_id", "COUNT(*) AS total").
		Where("state_id IN ?", ids).
		Group("state_id").
		Scan(&rows).Error; err != nil {
		return err
	}

	totals := make(map[uint]int64, len(rows))
	for _, item := range rows {
		totals[item.StateID] = item.Total
	}
	for i := range states {
		states[i].CitiesNumber = totals[states[i].ID]
	}
	return nil
}
