package departmentprovider

import (
	"procurement-tools-backend/db"
	departmentstore "procurement-tools-backend/lib/dicts/department/store"
	dictapimodels "procurement-tools-backend/models/api/dict"
	dbmodels "procurement-tools-backend/models/db"

	"github.com/pkg/errors"
)

type Provider interface {
	Create(data dictapimodels.DepartmentData) (id string, err error)
	Get(id string) (item dictapimodels.DepartmentView, err error)
	GetByCode(code int) (item dictapimodels.DepartmentView, err error)
	Update(id string, data dictapimodels.DepartmentData) error
	Delete(id string) error
	List() (list []dictapimodels.DepartmentView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: departmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	store departmentstore.Provider
}

func (i impl) Create(data dictapimodels.DepartmentData) (id string, err error) {
	exist, err := i.store.GetByCode(data.Code)
	if err != nil {
		return "", err
	}
	if exist != nil {
		return "", errors.Errorf("подразделение с кодом %v уже существует", data.Code)
	}
	rec := dbmodels.Department{
		Code:     data.Code,
		Name:     data.Name,
		HeadFio:  data.HeadFio,
		IsSupply: data.IsSupply,
	}
	return i.store.Create(rec)
}

func (i impl) Update(id string, data dictapimodels.DepartmentData) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return errors.New("подразделение не найдено")
	}
	updMap := map[string]interface{}{
		"code":      data.Code,
		"name":      data.Name,
		"head_fio":  data.HeadFio,
		"is_supply": data.IsSupply,
	}
	return i.store.Update(id, updMap)
}

func (i impl) Delete(id string) error {
	return i.store.Delete(id)
}

func (i impl) Get(id string) (item dictapimodels.DepartmentView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return dictapimodels.DepartmentView{}, err
	}
	if rec == nil {
		return dictapimodels.DepartmentView{}, errors.New("подразделение не найдено")
	}
	return dictapimodels.DepartmentConvert(*rec), nil
}

func (i impl) GetByCode(code int) (item dictapimodels.DepartmentView, err error) {
	rec, err := i.store.GetByCode(code)
	if err != nil {
		return dictapimodels.DepartmentView{}, err
	}
	if rec == nil {
		return dictapimodels.DepartmentView{}, errors.Errorf("подразделение с кодом %v не найдено", code)
	}
	return dictapimodels.DepartmentConvert(*rec), nil
}

func (i impl) List() (list []dictapimodels.DepartmentView, err error) {
	recList, err := i.store.List()
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.DepartmentView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dictapimodels.DepartmentConvert(rec))
	}
	return result, nil
}
