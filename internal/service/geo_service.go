package service

import (
	"strings"

	"github.com/ventas-next/internal/models"
	"github.com/ventas-next/internal/repository"
)

// CountryService 国家业务服务
type CountryService struct {
	countryRepo repository.CountryRepository
}

// NewCountryService 创建国家服务
func NewCountryService(countryRepo repository.CountryRepository) *CountryService {
	return &CountryService{countryRepo: countryRepo}
}

// List 分页获取国家列表（含省份数）
func (s *CountryService) List(page, pageSize int, search string) ([]models.Country, int64, error) {
	return s.countryRepo.List(repository.GeoListFilter{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(search),
	})
}

// ListCombo 获取国家下拉列表
func (s *CountryService) ListCombo() ([]models.Country, error) {
	return s.countryRepo.ListCombo()
}

// ListFull 获取全部国家及其省份、城市
func (s *CountryService) ListFull() ([]models.Country, error) {
	return s.countryRepo.ListFull()
}

// GetByID 获取国家详情（含省份）
func (s *CountryService) GetByID(id uint) (*models.Country, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	country, err := s.countryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, ErrNotFound
	}
	return country, nil
}

// Create 创建国家，名称全局唯一
func (s *CountryService) Create(name string) (*models.Country, error) {
	name = strings.TrimSpace(name)
	count, err := s.countryRepo.CountByName(name, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCountryNameTaken
	}

	country := models.Country{Name: name}
	if err := s.countryRepo.Create(&country); err != nil {
		return nil, err
	}
	return &country, nil
}

// Update 更新国家名称
func (s *CountryService) Update(id uint, name string) (*models.Country, error) {
	country, err := s.countryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, ErrNotFound
	}

	name = strings.TrimSpace(name)
	count, err := s.countryRepo.CountByName(name, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCountryNameTaken
	}

	country.Name = name
	if err := s.countryRepo.Update(country); err != nil {
		return nil, err
	}
	return country, nil
}

// Delete 删除国家，级联删除其省份与城市
func (s *CountryService) Delete(id uint) error {
	country, err := s.countryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if country == nil {
		return ErrNotFound
	}
	return s.countryRepo.Delete(id)
}

// StateService 省份业务服务
type StateService struct {
	stateRepo   repository.StateRepository
	countryRepo repository.CountryRepository
}

// NewStateService 创建省份服务
func NewStateService(stateRepo repository.StateRepository, countryRepo repository.CountryRepository) *StateService {
	return &StateService{stateRepo: stateRepo, countryRepo: countryRepo}
}

// ListByCountry 分页获取某国家的省份（含城市数）
func (s *StateService) ListByCountry(countryID uint, page, pageSize int, search string) ([]models.State, int64, error) {
	if countryID == 0 {
		return nil, 0, ErrNotFound
	}
	return s.stateRepo.ListByCountry(repository.GeoListFilter{
		Page:     page,
		PageSize: pageSize,
		ParentID: countryID,
		Search:   strings.TrimSpace(search),
	})
}

// ListCombo 获取某国家的省份下拉列表
func (s *StateService) ListCombo(countryID uint) ([]models.State, error) {
	if countryID == 0 {
		return nil, ErrNotFound
	}
	return s.stateRepo.ListCombo(countryID)
}

// GetByID 获取省份详情（含城市）
func (s *StateService) GetByID(id uint) (*models.State, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	state, err := s.stateRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, ErrNotFound
	}
	return state, nil
}

// Create 在国家下创建省份，名称在该国家内唯一
func (s *StateService) Create(countryID uint, name string) (*models.State, error) {
	country, err := s.countryRepo.GetByID(countryID)
	if err != nil {
		return nil, err
	}
	if country == nil {
		return nil, ErrNotFound
	}

	name = strings.TrimSpace(name)
	count, err := s.stateRepo.CountByName(countryID, name, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrStateNameTaken
	}

	state := models.State{CountryID: countryID, Name: name}
	if err := s.stateRepo.Create(&state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Update 更新省份名称
func (s *StateService) Update(id uint, name string) (*models.State, error) {
	state, err := s.stateRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, ErrNotFound
	}

	name = strings.TrimSpace(name)
	count, err := s.stateRepo.CountByName(state.CountryID, name, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrStateNameTaken
	}

	state.Name = name
	if err := s.stateRepo.Update(state); err != nil {
		return nil, err
	}
	return state, nil
}

// Delete 删除省份，级联删除其城市
func (s *StateService) Delete(id uint) error {
	state, err := s.stateRepo.GetByID(id)
	if err != nil {
		return err
	}
	if state == nil {
		return ErrNotFound
	}
	return s.stateRepo.Delete(id)
}

// CityService 城市业务服务
type CityService struct {
	cityRepo  repository.CityRepository
	stateRepo repository.StateRepository
}

// NewCityService 创建城市服务
func NewCityService(cityRepo repository.CityRepository, stateRepo repository.StateRepository) *CityService {
	return &CityService{cityRepo: cityRepo, stateRepo: stateRepo}
}

// ListByState 分页获取某省份的城市
func (s *CityService) ListByState(stateID uint, page, pageSize int, search string) ([]models.City, int64, error) {
	if stateID == 0 {
		return nil, 0, ErrNotFound
	}
	return s.cityRepo.ListByState(repository.GeoListFilter{
		Page:     page,
		PageSize: pageSize,
		ParentID: stateID,
		Search:   strings.TrimSpace(search),
	})
}

// ListCombo 获取某省份的城市下拉列表
func (s *CityService) ListCombo(stateID uint) ([]models.City, error) {
	if stateID == 0 {
		return nil, ErrNotFound
	}
	return s.cityRepo.ListCombo(stateID)
}

// GetByID 获取城市详情
func (s *CityService) GetByID(id uint) (*models.City, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	city, err := s.cityRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, ErrNotFound
	}
	return city, nil
}

// Create 在省份下创建城市，名称在该省份内唯一
func (s *CityService) Create(stateID uint, name string) (*models.City, error) {
	state, err := s.stateRepo.GetByID(stateID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, ErrNotFound
	}

	name = strings.TrimSpace(name)
	count, err := s.cityRepo.CountByName(stateID, name, 0)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCityNameTaken
	}

	city := models.City{StateID: stateID, Name: name}
	if err := s.cityRepo.Create(&city); err != nil {
		return nil, err
	}
	return &city, nil
}

// Update 更新城市名称
func (s *CityService) Update(id uint, name string) (*models.City, error) {
	city, err := s.cityRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if city == nil {
		return nil, ErrNotFound
	}

	name = strings.TrimSpace(name)
	count, err := s.cityRepo.CountByName(city.StateID, name, id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrCityNameTaken
	}

	city.Name = name
	if err := s.cityRepo.Update(city); err != nil {
		return nil, err
	}
	return city, nil
}

// Delete 删除城市
func (s *CityService) Delete(id uint) error {
	city, err := s.cityRepo.GetByID(id)
	if err != nil {
		return err
	}
	if city == nil {
		return ErrNotFound
	}
	return s.cityRepo.Delete(id)
}
