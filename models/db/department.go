package dbmodels

import (
	"github.com/pkg/errors"
)

type Department struct {
	BaseModel
	Code     int    `gorm:"uniqueIndex"` // код подразделения из оргструктуры
	Name     string `gorm:"type:varchar(255)"`
	HeadFio  string `gorm:"type:varchar(255)"`
	IsSupply bool   // подразделение, отрабатывающее позиции заявок
}

func (d *Department) Validate() error {
	if d.Code <= 0 {
		return errors.New("не указан код подразделения")
	}
	if d.Name == "" {
		return errors.New("не указано название подразделения")
	}
	return nil
}
