package spaceapimodels

import (
	"strings"

	"github.com/pkg/errors"
)

// RegistrationData creates a space together with its first admin user.
type RegistrationData struct {
	OrganizationName string `json:"organization_name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	PhoneNumber      string `json:"phone_number"`
}

func (r RegistrationData) Validate() error {
	if strings.TrimSpace(r.OrganizationName) == "" {
		return errors.New("organization name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if len(r.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

type SpaceData struct {
	OrganizationName string  `json:"organization_name"`
	Email            string  `json:"email"`
	PhoneNumber      string  `json:"phone_number"`
	Address          string  `json:"address"`
	TaxPercentage    float64 `json:"tax_percentage"`
}

func (r SpaceData) Validate() error {
	if strings.TrimSpace(r.OrganizationName) == "" {
		return errors.New("organization name is required")
	}
	return nil
}

type SpaceView struct {
	ID               string  `json:"id"`
	OrganizationName string  `json:"organization_name"`
	Email            string  `json:"email"`
	PhoneNumber      string  `json:"phone_number"`
	Address          string  `json:"address"`
	TaxPercentage    float64 `json:"tax_percentage"`
	IsActive         bool    `json:"is_active"`
}
