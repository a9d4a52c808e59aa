package procurementstore

import (
	"procurement-tools-backend/lib/procurement/workflow"
	procurementapimodels "procurement-tools-backend/models/api/procurement"
	dbmodels "procurement-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.ProcurementRequest) (id string, err error)
	GetByID(id string) (rec *dbmodels.ProcurementRequest, err error)
	Update(id string, version int, updMap map[string]interface{}) error
	Delete(id string) error
	List(userID string, filter procurementapimodels.ProcurementFilter) (list []dbmodels.ProcurementRequest, err error)
	ListCount(userID string, filter procurementapimodels.ProcurementFilter) (rowCount int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ProcurementRequest) (id string, err error) {
	err = i.db.
		Omit("Requester").
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.ProcurementRequest, error) {
	rec := dbmodels.ProcurementRequest{}
	err := i.db.
		Where("id = ?", id).
		Preload("Requester").
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("procurement_items.created_at ASC")
		}).
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

// Update выполняет проверку версии: запись с другой версией не обновляется,
// вызывающий получает ErrVersionConflict и перечитывает заявку
func (i impl) Update(id string, version int, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	updMap["version"] = gorm.Expr("version + 1")
	tx := i.db.
		Model(&dbmodels.ProcurementRequest{}).
		Where("id = ?", id).
		Where("version = ?", version).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		exist, err := i.exist(id)
		if err != nil {
			return err
		}
		if !exist {
			return errors.New("заявка не найдена")
		}
		return workflow.ErrVersionConflict
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.ProcurementRequest{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	err := i.db.
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) List(userID string, filter procurementapimodels.ProcurementFilter) (list []dbmodels.ProcurementRequest, err error) {
	list = []dbmodels.ProcurementRequest{}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	tx := i.applyFilter(userID, filter).
		Preload(clause.Associations).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit)
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(userID string, filter procurementapimodels.ProcurementFilter) (rowCount int64, err error) {
	err = i.applyFilter(userID, filter).Count(&rowCount).Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

func (i impl) applyFilter(userID string, filter procurementapimodels.ProcurementFilter) *gorm.DB {
	tx := i.db.Model(&dbmodels.ProcurementRequest{})
	if len(filter.Statuses) > 0 {
		tx = tx.Where("status IN ?", filter.Statuses)
	}
	if len(filter.Categories) > 0 {
		tx = tx.Where("category IN ?", filter.Categories)
	}
	if filter.Search != "" {
		tx = tx.Where("subject ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.Self {
		tx = tx.Where("requester_id = ?", userID)
	}
	return tx
}

func (i impl) exist(id string) (bool, error) {
	var count int64
	err := i.db.
		Model(&dbmodels.ProcurementRequest{}).
		Where("id = ?", id).
		Count(&count).
		Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
