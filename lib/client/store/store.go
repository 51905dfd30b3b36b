package clientstore

import (
	dbmodels "wfm-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Client) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.Client, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	List(spaceID string, activeOnly bool) (list []dbmodels.Client, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Client) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.Client, error) {
	rec := dbmodels.Client{}
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

func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Client{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap)
	if tx.RowsAffected == 0 {
		return errors.New("record not found")
	}
	return tx.Error
}

func (i impl) List(spaceID string, activeOnly bool) (list []dbmodels.Client, err error) {
	list = []dbmodels.Client{}
	tx := i.db.
		Where("space_id = ?", spaceID)
	if activeOnly {
		tx = tx.Where("is_active = true")
	}
	err = tx.
		Order("name asc").
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
