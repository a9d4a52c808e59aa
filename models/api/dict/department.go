package dictapimodels

import (
	dbmodels "procurement-tools-backend/models/db"

	"github.com/pkg/errors"
)

type DepartmentData struct {
	Code     int    `json:"code"`      // числовой код подразделения
	Name     string `json:"name"`      // наименование
	HeadFio  string `json:"head_fio"`  // ФИО руководителя
	IsSupply bool   `json:"is_supply"` // подразделение отрабатывает позиции заявок
}

func (d DepartmentData) Validate() error {
	if d.Code <= 0 {
		return errors.New("не указан код подразделения")
	}
	if d.Name == "" {
		return errors.New("не указано наименование подразделения")
	}
	return nil
}

type DepartmentView struct {
	ID       string `json:"id"`
	Code     int    `json:"code"`
	Name     string `json:"name"`
	HeadFio  string `json:"head_fio"`
	IsSupply bool   `json:"is_supply"`
}

func DepartmentConvert(rec dbmodels.Department) DepartmentView {
	return DepartmentView{
		ID:       rec.ID,
		Code:     rec.Code,
		Name:     rec.Name,
		HeadFio:  rec.HeadFio,
		IsSupply: rec.IsSupply,
	}
}
