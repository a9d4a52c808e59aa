package db

import (
	dbmodels "procurement-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.Department{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Department")
	}
	if err := DB.AutoMigrate(&dbmodels.Employee{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Employee")
	}
	if err := DB.AutoMigrate(&dbmodels.ProcurementRequest{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ProcurementRequest")
	}
	if err := DB.AutoMigrate(&dbmodels.ProcurementItem{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ProcurementItem")
	}
	if err := DB.AutoMigrate(&dbmodels.ProcurementHistory{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ProcurementHistory")
	}
	if err := DB.AutoMigrate(&dbmodels.FileStorage{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры FileStorage")
	}
	log.Info("Миграция прошла успешно")
	return nil
}
