package spaceapimodels

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

type SpaceUserCommonData struct {
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	JobTitle    string `json:"job_title"`
	IsAdmin     bool   `json:"is_admin"`
	SpaceID     string `json:"space_id"`
	Role        string `json:"role"`
	Status      string `json:"status"`
}

type SpaceUser struct {
	SpaceUserCommonData
	ID         string          `json:"id"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

type SpaceUserData struct {
	Email       string          `json:"email"`
	Password    string          `json:"password"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	PhoneNumber string          `json:"phone_number"`
	JobTitle    string          `json:"job_title"`
	Role        string          `json:"role"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
}

func (r SpaceUserData) Validate() error {
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if strings.TrimSpace(r.FirstName) == "" {
		return errors.New("first name is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		return errors.New("last name is required")
	}
	if r.HourlyRate.IsNegative() {
		return errors.New("hourly rate must not be negative")
	}
	return nil
}
