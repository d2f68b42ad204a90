package repositories

import "tienda/internal/models"

// GeoRepository defines the interface for geographic reference data.
type GeoRepository interface {
	Countries() ([]models.Country, error)
	GetCountry(id string) (*models.Country, error)
	CreateCountry(country *models.Country) error
	ProvincesByCountry(countryID string) ([]models.Province, error)
	GetProvince(id string) (*models.Province, error)
	CreateProvince(province *models.Province) error
	CitiesByProvince(provinceID string) ([]models.City, error)
	CreateCity(city *models.City) error
}
