package repository

import (
	"errors"

	"github.com/ventas-next/internal/models"

	"gorm.io/gorm"
)

// CountryRepository 国家数据访问接口
type CountryRepository interface {
	List(filter GeoListFilter) ([]models.Country, int64, error)
	ListCombo() ([]models.Country, error)
	ListFull() ([]models.Country, error)
	GetByID(id uint) (*models.Country, error)
	Create(country *models.Country) error
	Update(country *models.Country) error
	Delete(id uint) error
	CountByName(name string, excludeID uint) (int64, error)
}

// GormCountryRepository GORM 实现
type GormCountryRepository struct {
	db *gorm.DB
}

// NewCountryRepository 创建国家仓库
func NewCountryRepository(db *gorm.DB) *GormCountryRepository {
	return &GormCountryRepository{db: db}
}

// List 国家列表（分页 + 名称过滤），附带州/省数量
func (r *GormCountryRepository) List(filter GeoListFilter) ([]models.Country, int64, error) {
	query := r.db.Model(&models.Country{})
	if filter.Search != "" {
		query = query.Where(nameLikeCondition(r.db, "name"), "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var countries []models.Country
	if err := query.Order("name ASC").Find(&countries).Error; err != nil {
		return nil, 0, err
	}
	if err := r.fillStatesNumber(countries); err != nil {
		return nil, 0, err
	}
	return countries, total, nil
}

// ListCombo 国家下拉列表（仅 id 与名称）
func (r *GormCountryRepository) ListCombo() ([]models.Country, error) {
	var countries []models.Country
	if err := r.db.Select("id", "name").Order("name ASC").Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}

// ListFull 国家列表（含州/省与城市）
func (r *GormCountryRepository) ListFull() ([]models.Country, error) {
	var countries []models.Country
	if err := r.db.Preload("States", func(db *gorm.DB) *gorm.DB {
		return db.Order("states.name ASC")
	}).Preload("States.Cities", func(db *gorm.DB) *gorm.DB {
		return db.Order("cities.name ASC")
	}).Order("name ASC").Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}

// GetByID 根据 ID 获取国家（含州/省）
func (r *GormCountryRepository) GetByID(id uint) (*models.Country, error) {
	var country models.Country
	if err := r.db.Preload("States", func(db *gorm.DB) *gorm.DB {
		return db.Order("states.name ASC")
	}).First(&country, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &country, nil
}

// Create 创建国家
func (r *GormCountryRepository) Create(country *models.Country) error {
	return r.db.Create(country).Error
}

// Update 更新国家
func (r *GormCountryRepository) Update(country *models.Country) error {
	return r.db.Save(country).Error
}

// Delete 删除国家（级联删除州/省与城市）
func (r *GormCountryRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var stateIDs []uint
		if err := tx.Model(&models.State{}).Where("country_id = ?", id).Pluck("id", &stateIDs).Error; err != nil {
			return err
		}
		if len(stateIDs) > 0 {
			if err := tx.Where("state_id IN ?", stateIDs).Delete(&models.City{}).Error; err != nil {
				return err
			}
			if err := tx.Where("country_id = ?", id).Delete(&models.State{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Country{}, id).Error
	})
}

// CountByName 统计同名国家数量
func (r *GormCountryRepository) CountByName(name string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Country{}).Where("name = ?", name)
	if excludeID != 0 {
		query = query.Where("id != ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCountryRepository) fillStatesNumber(countries []models.Country) error {
	if len(countries) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(countries))
	for _, country := range countries {
		ids = append(ids, country.ID)
	}

	type row struct {
		CountryID uint
		Total     int64
	}
	var rows []row
	if err := r.db.Model(&models.State{}).
		Select("country_id", "COUNT(*) AS total").
		Where("country_id IN ?", ids).
		Group("country_id").
		Scan(&rows).Error; err != nil {
		return err
	}

	totals := make(map[uint]int64, len(rows))
	for _, item := range rows {
		totals[item.CountryID] = item.Total
	}
	for i := range countries {
		countries[i].StatesNumber = totals[countries[i].ID]
	}
	return nil
}
