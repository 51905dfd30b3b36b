package spaceusershander

import (
	"wfm-tools-backend/db"
	spaceusersstore "wfm-tools-backend/lib/space/users/store"
	"wfm-tools-backend/models"
	spaceapimodels "wfm-tools-backend/models/api/space"
	dbmodels "wfm-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type Provider interface {
	Create(spaceID string, data spaceapimodels.SpaceUserData) (id string, err error)
	GetByID(spaceID, id string) (view spaceapimodels.SpaceUser, err error)
	Update(spaceID, id string, data spaceapimodels.SpaceUserData) error
	Deactivate(spaceID, id string) error
	List(spaceID string) (list []spaceapimodels.SpaceUser, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: spaceusersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store spaceusersstore.Provider
}

func parseRole(role string) (models.UserRole, error) {
	switch models.UserRole(role) {
	case models.SpaceAdminRole, models.SpaceManagerRole, models.SpaceEmployeeRole:
		return models.UserRole(role), nil
	case "":
		return models.SpaceEmployeeRole, nil
	}
	return "", models.NewDomainError("unknown role: %v", role)
}

func (i impl) Create(spaceID string, data spaceapimodels.SpaceUserData) (id string, err error) {
	logger := log.WithField("space_id", spaceID).WithField("email", data.Email)
	role, err := parseRole(data.Role)
	if err != nil {
		return "", err
	}
	existing, err := i.store.FindByEmail(data.Email)
	if err != nil {
		logger.WithError(err).Error("failed to check email uniqueness")
		return "", err
	}
	if existing != nil {
		return "", models.NewDomainError("a user with this email already exists")
	}
	if len(data.Password) < 8 {
		return "", models.NewDomainError("password must be at least 8 characters")
	}
	passHash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}
	id, err = i.store.Create(dbmodels.SpaceUser{
		SpaceID:     spaceID,
		Email:       data.Email,
		Password:    string(passHash),
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		PhoneNumber: data.PhoneNumber,
		JobTitle:    data.JobTitle,
		HourlyRate:  data.HourlyRate,
		Role:        role,
		Status:      models.SpaceWorkingStatus,
		IsActive:    true,
	})
	if err != nil {
		logger.WithError(err).Error("failed to create employee")
		return "", err
	}
	logger.WithField("rec_id", id).Info("employee created")
	return id, nil
}

func (i impl) GetByID(spaceID, id string) (spaceapimodels.SpaceUser, error) {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return spaceapimodels.SpaceUser{}, err
	}
	return rec.ToModel(), nil
}

func (i impl) Update(spaceID, id string, data spaceapimodels.SpaceUserData) error {
	logger := log.WithField("space_id", spaceID).WithField("rec_id", id)
	role, err := parseRole(data.Role)
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"FirstName":   data.FirstName,
		"LastName":    data.LastName,
		"PhoneNumber": data.PhoneNumber,
		"JobTitle":    data.JobTitle,
		"HourlyRate":  data.HourlyRate,
		"Role":        role,
	}
	if data.Password != "" {
		passHash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
		if err != nil {
			return errors.Wrap(err, "failed to hash password")
		}
		updMap["Password"] = string(passHash)
	}
	err = i.store.Update(spaceID, id, updMap)
	if err != nil {
		logger.WithError(err).Error("failed to update employee")
		return err
	}
	logger.Info("employee updated")
	return nil
}

func (i impl) Deactivate(spaceID, id string) error {
	logger := log.WithField("space_id", spaceID).WithField("rec_id", id)
	err := i.store.Update(spaceID, id, map[string]interface{}{
		"IsActive": false,
		"Status":   models.SpaceDismissedStatus,
	})
	if err != nil {
		logger.WithError(err).Error("failed to deactivate employee")
		return err
	}
	logger.Info("employee deactivated")
	return nil
}

func (i impl) List(spaceID string) (list []spaceapimodels.SpaceUser, err error) {
	recList, err := i.store.List(spaceID)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("failed to list employees")
		return nil, err
	}
	result := make([]spaceapimodels.SpaceUser, 0, len(recList))
	for _, rec := range recList {
		result = append(result, rec.ToModel())
	}
	return result, nil
}

func (i impl) getRec(spaceID, id string) (*dbmodels.SpaceUser, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		log.WithField("space_id", spaceID).WithField("rec_id", id).WithError(err).Error("failed to get employee")
		return nil, err
	}
	if rec == nil {
		return nil, models.NewDomainError("employee not found")
	}
	return rec, nil
}
