package clienthandler

import (
	"wfm-tools-backend/db"
	clientstore "wfm-tools-backend/lib/client/store"
	"wfm-tools-backend/models"
	clientapimodels "wfm-tools-backend/models/api/client"
	dbmodels "wfm-tools-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(spaceID string, data clientapimodels.ClientData) (id string, err error)
	GetByID(spaceID, id string) (view clientapimodels.ClientView, err error)
	Update(spaceID, id string, data clientapimodels.ClientData) error
	Deactivate(spaceID, id string) error
	List(spaceID string, activeOnly bool) (list []clientapimodels.ClientView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: clientstore.NewInstance(db.DB),
	}
}

type impl struct {
	store clientstore.Provider
}

func (i impl) Create(spaceID string, data clientapimodels.ClientData) (id string, err error) {
	logger := log.WithField("space_id", spaceID)
	if err := data.Validate(); err != nil {
		return "", err
	}
	rec := dbmodels.Client{
		BaseSpaceModel: dbmodels.BaseSpaceModel{SpaceID: spaceID},
		Name:           data.Name,
		ContactPerson:  data.ContactPerson,
		Email:          data.Email,
		PhoneNumber:    data.PhoneNumber,
		Address:        data.Address,
		IsActive:       true,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("failed to create client")
		return "", err
	}
	logger.WithField("rec_id", id).Info("client created")
	return id, nil
}

func (i impl) GetByID(spaceID, id string) (clientapimodels.ClientView, error) {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return clientapimodels.ClientView{}, err
	}
	return convert(*rec), nil
}

func (i impl) Update(spaceID, id string, data clientapimodels.ClientData) error {
	logger := log.WithField("space_id", spaceID).WithField("rec_id", id)
	if err := data.Validate(); err != nil {
		return err
	}
	if _, err := i.getRec(spaceID, id); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"Name":          data.Name,
		"ContactPerson": data.ContactPerson,
		"Email":         data.Email,
		"PhoneNumber":   data.PhoneNumber,
		"Address":       data.Address,
	}
	err := i.store.Update(spaceID, id, updMap)
	if err != nil {
		logger.WithError(err).Error("failed to update client")
		return err
	}
	logger.Info("client updated")
	return nil
}

// Deactivate hides the client from new invoices. Clients keep their
// history, deletion would orphan issued invoices.
func (i impl) Deactivate(spaceID, id string) error {
	logger := log.WithField("space_id", spaceID).WithField("rec_id", id)
	if _, err := i.getRec(spaceID, id); err != nil {
		return err
	}
	err := i.store.Update(spaceID, id, map[string]interface{}{
		"IsActive": false,
	})
	if err != nil {
		logger.WithError(err).Error("failed to deactivate client")
		return err
	}
	logger.Info("client deactivated")
	return nil
}

func (i impl) List(spaceID string, activeOnly bool) ([]clientapimodels.ClientView, error) {
	recList, err := i.store.List(spaceID, activeOnly)
	if err != nil {
		log.WithField("space_id", spaceID).WithError(err).Error("failed to list clients")
		return nil, err
	}
	result := make([]clientapimodels.ClientView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, convert(rec))
	}
	return result, nil
}

func convert(rec dbmodels.Client) clientapimodels.ClientView {
	return clientapimodels.ClientView{
		ID:            rec.ID,
		Name:          rec.Name,
		ContactPerson: rec.ContactPerson,
		Email:         rec.Email,
		PhoneNumber:   rec.PhoneNumber,
		Address:       rec.Address,
		IsActive:      rec.IsActive,
	}
}

func (i impl) getRec(spaceID, id string) (*dbmodels.Client, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		log.WithField("space_id", spaceID).WithField("rec_id", id).WithError(err).Error("failed to get client")
		return nil, err
	}
	if rec == nil {
		return nil, models.NewDomainError("client not found")
	}
	return rec, nil
}
