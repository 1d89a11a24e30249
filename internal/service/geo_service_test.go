package service

import (
	"errors"
	"testing"

	"github.com/ventas-next/internal/models"
	"github.com/ventas-next/internal/repository"

	"gorm.io/gorm"
)

func setupGeoTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db := setupOrderServiceTestDB(t, name)
	if err := db.AutoMigrate(&models.Country{}, &models.State{}, &models.City{}); err != nil {
		t.Fatalf("auto migrate geo tables: %v", err)
	}
	return db
}

func newGeoServicesForTest(db *gorm.DB) (*CountryService, *StateService, *CityService) {
	countryRepo := repository.NewCountryRepository(db)
	stateRepo := repository.NewStateRepository(db)
	cityRepo := repository.NewCityRepository(db)
	return NewCountryService(countryRepo),
		NewStateService(stateRepo, countryRepo),
		NewCityService(cityRepo, stateRepo)
}

func TestCountryNameUnique(t *testing.T) {
	db := setupGeoTestDB(t, "geo_country_unique")
	countries, _, _ := newGeoServicesForTest(db)

	if _, err := countries.Create("Colombia"); err != nil {
		t.Fatalf("Create country: %v", err)
	}
	if _, err := countries.Create(" Colombia "); !errors.Is(err, ErrCountryNameTaken) {
		t.Fatalf("expected ErrCountryNameTaken, got: %v", err)
	}

	mexico, err := countries.Create("México")
	if err != nil {
		t.Fatalf("Create second country: %v", err)
	}
	if _, err := countries.Update(mexico.ID, "Colombia"); !errors.Is(err, ErrCountryNameTaken) {
		t.Fatalf("expected ErrCountryNameTaken on update, got: %v", err)
	}
	// 改回自己的名称不算冲突
	if _, err := countries.Update(mexico.ID, "México"); err != nil {
		t.Fatalf("Update to own name: %v", err)
	}
}

func TestStateNameUniquePerCountry(t *testing.T) {
	db := setupGeoTestDB(t, "geo_state_unique")
	countries, states, _ := newGeoServicesForTest(db)

	colombia, err := countries.Create("Colombia")
	if err != nil {
		t.Fatalf("Create country: %v", err)
	}
	mexico, err := countries.Create("México")
	if err != nil {
		t.Fatalf("Create country: %v", err)
	}

	if _, err := states.Create(colombia.ID, "Santander"); err != nil {
		t.Fatalf("Create state: %v", err)
	}
	if _, err := states.Create(colombia.ID, "Santander"); !errors.Is(err, ErrStateNameTaken) {
		t.Fatalf("expected ErrStateNameTaken, got: %v", err)
	}
	// 同名省份允许出现在另一个国家
	if _, err := states.Create(mexico.ID, "Santander"); err != nil {
		t.Fatalf("Create state in other country: %v", err)
	}
	if _, err := states.Create(999, "Nariño"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing country, got: %v", err)
	}
}

func TestCityNameUniquePerState(t *testing.T) {
	db := setupGeoTestDB(t, "geo_city_unique")
	countries, states, cities := newGeoServicesForTest(db)

	colombia, err := countries.Create("Colombia")
	if err != nil {
		t.Fatalf("Create country: %v", err)
	}
	antioquia, err := states.Create(colombia.ID, "Antioquia")
	if err != nil {
		t.Fatalf("Create state: %v", err)
	}
	cundinamarca, err := states.Create(colombia.ID, "Cundinamarca")
	if err != nil {
		t.Fatalf("Create state: %v", err)
	}

	if _, err := cities.Create(antioquia.ID, "La Unión"); err != nil {
		t.Fatalf("Create city: %v", err)
	}
	if _, err := cities.Create(antioquia.ID, "La Unión"); !errors.Is(err, ErrCityNameTaken) {
		t.Fatalf("expected ErrCityNameTaken, got: %v", err)
	}
	// 同名城市允许出现在另一个省份
	if _, err := cities.Create(cundinamarca.ID, "La Unión"); err != nil {
		t.Fatalf("Create city in other state: %v", err)
	}
	if _, err := cities.Create(999, "Envigado"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing state, got: %v", err)
	}
}

func TestDeleteCountryCascades(t *testing.T) {
	db := setupGeoTestDB(t, "geo_cascade_country")
	countries, states, cities := newGeoServicesForTest(db)

	colombia, err := countries.Create("Colombia")
	if err != nil {
		t.Fatalf("Create country: %v", err)
	}
	antioquia, err := states.Create(colombia.ID, "Antioquia")
	if err != nil {
		t.Fatalf("Create state: %v", err)
	}
	if _, err := cities.Create(antioquia.ID, "Medellín"); err != nil {
		t.Fatalf("Create city: %v", err)
	}
	if _, err := cities.Create(antioquia.ID, "Envigado"); err != nil {
		t.Fatalf("Create city: %v", err)
	}

	if err := countries.Delete(colombia.ID); err != nil {
		t.Fatalf("Delete country: %v", err)
	}

	if _, err := countries.GetByID(colombia.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected country gone, got: %v", err)
	}
	var stateCount, cityCount int64
	if err := db.Model(&models.State{}).Where("country_id = ?", colombia.ID).Count(&stateCount).Error; err != nil {
		t.Fatalf("count states: %v", err)
	}
	if err := db.Model(&models.City{}).Where("state_id = ?", antioquia.ID).Count(&cityCount).Error; err != nil {
		t.Fatalf("count cities: %v", err)
	}
	if stateCount != 0 || cityCount != 0 {
		t.Fatalf("expected cascade delete, got %d states and %d cities", stateCount, cityCount)
	}
}

func TestDeleteStateCascadesCities(t *testing.T) {
	db := setupGeoTestDB(t, "geo_cascade_state")
	countries, states, cities := newGeoServicesForTest(db)

	colombia, err := countries.Create("Colombia")
	if err != nil {
		t.Fatalf("Create country: %v", err)
	}
	valle, err := states.Create(colombia.ID, "Valle del Cauca")
	if err != nil {
		t.Fatalf("Create state: %v", err)
	}
	cali, err := cities.Create(valle.ID, "Cali")
	if err != nil {
		t.Fatalf("Create city: %v", err)
	}

	if err := states.Delete(valle.ID); err != nil {
		t.Fatalf("Delete state: %v", err)
	}
	if _, err := cities.GetByID(cali.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected city gone after state delete, got: %v", err)
	}
	// 国家本身不受影响
	if _, err := countries.GetByID(colombia.ID); err != nil {
		t.Fatalf("country should survive state delete: %v", err)
	}
}

func TestGeoNotFound(t *testing.T) {
	db := setupGeoTestDB(t, "geo_not_found")
	countries, states, cities := newGeoServicesForTest(db)

	if _, err := countries.GetByID(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if _, err := states.GetByID(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if _, err := cities.GetByID(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if err := countries.Delete(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got: %v", err)
	}
}
