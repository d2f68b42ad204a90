package services

import (
	"tienda/internal/models"
	"tienda/internal/repositories"
)

// GeoService serves geographic reference data for registration and shipping
// forms. Reads are public; writes are admin-only at the handler layer.
type GeoService struct {
	repo repositories.GeoRepository
}

// NewGeoService creates a new GeoService.
func NewGeoService(repo repositories.GeoRepository) *GeoService {
	return &GeoService{
		repo: repo,
	}
}

// Countries lists every country.
func (s *GeoService) Countries() ([]models.Country, error) {
	return s.repo.Countries()
}

// ProvincesByCountry lists the provinces of one country. Unknown countries
// yield a not-found error rather than an empty list.
func (s *GeoService) ProvincesByCountry(countryID string) (*models.Country, []models.Province, error) {
	country, err := s.repo.GetCountry(countryID)
	if err != nil {
		return nil, nil, err
	}
	provinces, err := s.repo.ProvincesByCountry(countryID)
	if err != nil {
		return nil, nil, err
	}
	return country, provinces, nil
}

// CitiesByProvince lists the cities of one province.
func (s *GeoService) CitiesByProvince(provinceID string) (*models.Province, []models.City, error) {
	province, err := s.repo.GetProvince(provinceID)
	if err != nil {
		return nil, nil, err
	}
	cities, err := s.repo.CitiesByProvince(provinceID)
	if err != nil {
		return nil, nil, err
	}
	return province, cities, nil
}

// CreateCountry persists a new country.
func (s *GeoService) CreateCountry(country *models.Country) error {
	return s.repo.CreateCountry(country)
}

// CreateProvince persists a new province after checking its country exists.
func (s *GeoService) CreateProvince(province *models.Province) error {
	if _, err := s.repo.GetCountry(province.CountryID); err != nil {
		return err
	}
	return s.repo.CreateProvince(province)
}

// CreateCity persists a new city after checking its province exists.
func (s *GeoService) CreateCity(city *models.City) error {
	if _, err := s.repo.GetProvince(city.ProvinceID); err != nil {
		return err
	}
	return s.repo.CreateCity(city)
}
