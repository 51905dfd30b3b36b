package dbmodels

import (
	"fmt"
	"time"
	"wfm-tools-backend/models"
	spaceapimodels "wfm-tools-backend/models/api/space"

	"github.com/shopspring/decimal"
)

type SpaceUser struct {
	BaseModel
	Password    string `gorm:"type:varchar(128)"`
	FirstName   string `gorm:"type:varchar(150)"`
	LastName    string `gorm:"type:varchar(150)"`
	Email       string `gorm:"type:varchar(255);index"`
	IsActive    bool
	PhoneNumber string `gorm:"type:varchar(15)"`
	SpaceID     string `gorm:"index"`
	JobTitle    string `gorm:"type:varchar(150)"`
	HourlyRate  decimal.Decimal `gorm:"type:decimal(10,2)"`
	Role        models.UserRole `gorm:"type:varchar(50)"`
	Status      models.UserStatus `gorm:"type:varchar(20)"`
	LastLogin   time.Time
}

func (r SpaceUser) ToModel() spaceapimodels.SpaceUser {
	return spaceapimodels.SpaceUser{
		ID:         r.ID,
		HourlyRate: r.HourlyRate,
		SpaceUserCommonData: spaceapimodels.SpaceUserCommonData{
			Email:       r.Email,
			FirstName:   r.FirstName,
			LastName:    r.LastName,
			PhoneNumber: r.PhoneNumber,
			JobTitle:    r.JobTitle,
			IsAdmin:     r.Role.IsSpaceAdmin(),
			SpaceID:     r.SpaceID,
			Role:        r.Role.ToHuman(),
			Status:      r.Status.ToHuman(),
		},
	}
}

func (r SpaceUser) GetFullName() string {
	return fmt.Sprintf("%s %s", r.FirstName, r.LastName)
}
