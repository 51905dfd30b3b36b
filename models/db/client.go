package dbmodels

type Client struct {
	BaseSpaceModel
	Name          string `gorm:"type:varchar(255)"`
	ContactPerson string `gorm:"type:varchar(255)"`
	Email         string `gorm:"type:varchar(255)"`
	PhoneNumber   string `gorm:"type:varchar(15)"`
	Address       string `gorm:"type:varchar(500)"`
	IsActive      bool
}
