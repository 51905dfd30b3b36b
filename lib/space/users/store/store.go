package spaceusersstore

import (
	"time"
	"wfm-tools-backend/models"
	dbmodels "wfm-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.SpaceUser) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.SpaceUser, err error)
	FindByEmail(email string) (rec *dbmodels.SpaceUser, err error)
	FindByID(id string) (rec *dbmodels.SpaceUser, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	Delete(spaceID, id string) error
	List(spaceID string) (list []dbmodels.SpaceUser, err error)
	ListReviewers(spaceID string) (list []dbmodels.SpaceUser, err error)
	SetLastLogin(id string, at time.Time) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.SpaceUser) (id string, err error) {
	err = i.db.Save(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.SpaceUser, error) {
	rec := dbmodels.SpaceUser{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) FindByEmail(email string) (*dbmodels.SpaceUser, error) {
	rec := dbmodels.SpaceUser{}
	err := i.db.
		Where("email = ?", email).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) FindByID(id string) (*dbmodels.SpaceUser, error) {
	rec := dbmodels.SpaceUser{}
	err := i.db.
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.SpaceUser{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap)
	if tx.RowsAffected == 0 {
		return errors.New("record not found")
	}
	return tx.Error
}

func (i impl) Delete(spaceID, id string) error {
	rec := dbmodels.SpaceUser{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	return i.db.
		Where("space_id = ?", spaceID).
		Delete(&rec).
		Error
}

func (i impl) List(spaceID string) (list []dbmodels.SpaceUser, err error) {
	list = []dbmodels.SpaceUser{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Order("last_name asc").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListReviewers(spaceID string) (list []dbmodels.SpaceUser, err error) {
	list = []dbmodels.SpaceUser{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Where("role in ?", []models.UserRole{models.SpaceAdminRole, models.SpaceManagerRole}).
		Where("is_active = true").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) SetLastLogin(id string, at time.Time) error {
	return i.db.
		Model(&dbmodels.SpaceUser{}).
		Where("id = ?", id).
		Update("last_login", at).
		Error
}
