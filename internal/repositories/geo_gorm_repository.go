package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tienda/internal/apperrors"
	"tienda/internal/models"
)

// GORMGeoRepository is a GORM implementation of GeoRepository.
type GORMGeoRepository struct {
	db *gorm.DB
}

// NewGORMGeoRepository creates a new instance of GORMGeoRepository.
func NewGORMGeoRepository(db *gorm.DB) *GORMGeoRepository {
	return &GORMGeoRepository{
		db: db,
	}
}

// Countries lists every country ordered by name.
func (r *GORMGeoRepository) Countries() ([]models.Country, error) {
	var countries []models.Country
	if err := r.db.Order("name ASC").Find(&countries).Error; err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}

// GetCountry retrieves one country by ID.
func (r *GORMGeoRepository) GetCountry(id string) (*models.Country, error) {
	var country models.Country
	if err := r.db.First(&country, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("country with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get country by ID %s: %w", id, err)
	}
	return &country, nil
}

// CreateCountry persists a new country.
func (r *GORMGeoRepository) CreateCountry(country *models.Country) error {
	if country.ID == "" {
		country.ID = uuid.New().String()
	}
	if err := r.db.Create(country).Error; err != nil {
		return fmt.Errorf("failed to create country: %w", err)
	}
	return nil
}

// ProvincesByCountry lists the provinces of a country ordered by name.
func (r *GORMGeoRepository) ProvincesByCountry(countryID string) ([]models.Province, error) {
	var provinces []models.Province
	if err := r.db.Where("country_id = ?", countryID).Order("name ASC").Find(&provinces).Error; err != nil {
		return nil, fmt.Errorf("failed to list provinces for country %s: %w", countryID, err)
	}
	return provinces, nil
}

// GetProvince retrieves one province with its country preloaded.
func (r *GORMGeoRepository) GetProvince(id string) (*models.Province, error) {
	var province models.Province
	if err := r.db.Preload("Country").First(&province, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("province with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get province by ID %s: %w", id, err)
	}
	return &province, nil
}

// CreateProvince persists a new province.
func (r *GORMGeoRepository) CreateProvince(province *models.Province) error {
	if province.ID == "" {
		province.ID = uuid.New().String()
	}
	if err := r.db.Create(province).Error; err != nil {
		return fmt.Errorf("failed to create province: %w", err)
	}
	return nil
}

// CitiesByProvince lists the cities of a province ordered by name.
func (r *GORMGeoRepository) CitiesByProvince(provinceID string) ([]models.City, error) {
	var cities []models.City
	if err := r.db.Where("province_id = ?", provinceID).Order("name ASC").Find(&cities).Error; err != nil {
		return nil, fmt.Errorf("failed to list cities for province %s: %w", provinceID, err)
	}
	return cities, nil
}

// CreateCity persists a new city.
func (r *GORMGeoRepository) CreateCity(city *models.City) error {
	if city.ID == "" {
		city.ID = uuid.New().String()
	}
	if err := r.db.Create(city).Error; err != nil {
		return fmt.Errorf("failed to create city: %w", err)
	}
	return nil
}
