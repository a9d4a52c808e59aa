package procurementitemstore

import (
	dbmodels "procurement-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.ProcurementItem) (id string, err error)
	GetByID(requestID, id string) (rec *dbmodels.ProcurementItem, err error)
	Update(id string, updMap map[string]interface{}) error
	DeleteByRequest(requestID string) error
	List(requestID string) (list []dbmodels.ProcurementItem, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ProcurementItem) (id string, err error) {
	err = i.db.
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(requestID, id string) (*dbmodels.ProcurementItem, error) {
	rec := dbmodels.ProcurementItem{}
	err := i.db.
		Where("id = ?", id).
		Where("request_id = ?", requestID).
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.ProcurementItem{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) DeleteByRequest(requestID string) error {
	rec := dbmodels.ProcurementItem{}
	err := i.db.Model(&dbmodels.ProcurementItem{}).
		Where("request_id = ?", requestID).
		Delete(&rec).Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(requestID string) (list []dbmodels.ProcurementItem, err error) {
	list = []dbmodels.ProcurementItem{}
	tx := i.db.
		Where("request_id = ?", requestID).
		Order("created_at ASC")
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}
