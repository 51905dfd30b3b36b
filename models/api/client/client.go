package clientapimodels

import (
	"strings"

	"github.com/pkg/errors"
)

type ClientData struct {
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	Address       string `json:"address"`
}

func (r ClientData) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("client name is required")
	}
	return nil
}

type ClientView struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	PhoneNumber   string `json:"phone_number"`
	Address       string `json:"address"`
	IsActive      bool   `json:"is_active"`
}
