package models

// Geographic reference data for registration and shipping forms. Reads are
// public; writes are admin-only.

type Country struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name string `json:"name" gorm:"type:varchar(50);index" validate:"required,max=50"`
}

type Province struct {
	ID        string   `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string   `json:"name" gorm:"type:varchar(50);index" validate:"required,max=50"`
	CountryID string   `json:"country_id" gorm:"type:varchar(36);index" validate:"required"`
	Country   *Country `json:"country,omitempty" gorm:"foreignKey:CountryID"`
}

type City struct {
	ID         string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name       string    `json:"name" gorm:"type:varchar(50);index" validate:"required,max=50"`
	ProvinceID string    `json:"province_id" gorm:"type:varchar(36);index" validate:"required"`
	Province   *Province `json:"province,omitempty" gorm:"foreignKey:ProvinceID"`
}
