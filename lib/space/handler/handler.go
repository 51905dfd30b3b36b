package spacehandler

import (
	"wfm-tools-backend/db"
	spacestore "wfm-tools-backend/lib/space/store"
	spaceusersstore "wfm-tools-backend/lib/space/users/store"
	"wfm-tools-backend/models"
	spaceapimodels "wfm-tools-backend/models/api/space"
	dbmodels "wfm-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Provider interface {
	Register(data spaceapimodels.RegistrationData) (spaceID string, err error)
	GetByID(spaceID string) (view spaceapimodels.SpaceView, err error)
	Update(spaceID string, data spaceapimodels.SpaceData) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:     spacestore.NewInstance(db.DB),
		userStore: spaceusersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store     spacestore.Provider
	userStore spaceusersstore.Provider
}

func (i impl) Register(data spaceapimodels.RegistrationData) (spaceID string, err error) {
	logger := log.WithField("email", data.Email)
	existing, err := i.userStore.FindByEmail(data.Email)
	if err != nil {
		logger.WithError(err).Error("failed to check email uniqueness")
		return "", err
	}
	if existing != nil {
		return "", models.NewDomainError("a user with this email already exists")
	}
	passHash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := spacestore.NewInstance(tx)
		userStore := spaceusersstore.NewInstance(tx)
		spaceID, err = store.Create(dbmodels.Space{
			OrganizationName: data.OrganizationName,
			Email:            data.Email,
			PhoneNumber:      data.PhoneNumber,
			IsActive:         true,
		})
		if err != nil {
			return err
		}
		_, err = userStore.Create(dbmodels.SpaceUser{
			SpaceID:   spaceID,
			Email:     data.Email,
			Password:  string(passHash),
			FirstName: data.FirstName,
			LastName:  data.LastName,
			IsActive:  true,
			Role:      models.SpaceAdminRole,
			Status:    models.SpaceWorkingStatus,
		})
		return err
	})
	if err != nil {
		logger.WithError(err).Error("failed to register organization")
		return "", err
	}
	logger.WithField("space_id", spaceID).Info("organization registered")
	return spaceID, nil
}

func (i impl) GetByID(spaceID string) (spaceapimodels.SpaceView, error) {
	rec, err := i.store.GetByID(spaceID)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("failed to get organization")
		return spaceapimodels.SpaceView{}, err
	}
	if rec == nil {
		return spaceapimodels.SpaceView{}, models.NewDomainError("organization not found")
	}
	return spaceapimodels.SpaceView{
		ID:               rec.ID,
		OrganizationName: rec.OrganizationName,
		Email:            rec.Email,
		PhoneNumber:      rec.PhoneNumber,
		Address:          rec.Address,
		TaxPercentage:    rec.TaxPercentage,
		IsActive:         rec.IsActive,
	}, nil
}

func (i impl) Update(spaceID string, data spaceapimodels.SpaceData) error {
	updMap := map[string]interface{}{
		"OrganizationName": data.OrganizationName,
		"Email":            data.Email,
		"PhoneNumber":      data.PhoneNumber,
		"Address":          data.Address,
		"TaxPercentage":    data.TaxPercentage,
	}
	err := i.store.Update(spaceID, updMap)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("failed to update organization")
		return err
	}
	return nil
}
