package dbmodels

type Space struct {
	BaseModel
	OrganizationName string `gorm:"type:varchar(255)"`
	Email            string `gorm:"type:varchar(255)"`
	PhoneNumber      string `gorm:"type:varchar(15)"`
	Address          string `gorm:"type:varchar(500)"`
	Logo             string `gorm:"type:varchar(50)"`
	IsActive         bool
	TaxPercentage    float64
}
