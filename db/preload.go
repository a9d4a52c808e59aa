package db

import (
	departmentstore "procurement-tools-backend/lib/dicts/department/store"
	"procurement-tools-backend/models"
	dbmodels "procurement-tools-backend/models/db"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

func InitPreload() {
	fillDepartments()
	addDefaultAdmin()
}

var defaultDepartments = []dbmodels.Department{
	{Code: 5, Name: "Управление информационных технологий"},
	{Code: 7, Name: "Отдел снабжения", IsSupply: true},
	{Code: 9, Name: "Коммерческий департамент"},
	{Code: 11, Name: "Служба безопасности"},
	{Code: 14, Name: "Административно-хозяйственный отдел"},
	{Code: 21, Name: "Департамент маркетинга"},
}

func fillDepartments() {
	store := departmentstore.NewInstance(DB)
	for _, dep := range defaultDepartments {
		existedRec, err := store.GetByCode(dep.Code)
		if err != nil {
			log.WithError(err).Error("ошибка заполнения справочника подразделений")
			return
		}
		if existedRec != nil {
			continue
		}
		if _, err = store.Create(dep); err != nil {
			log.WithError(err).Error("ошибка заполнения справочника подразделений")
			return
		}
	}
}

func addDefaultAdmin() {
	existed := dbmodels.Employee{}
	err := DB.Where("role = ?", models.UserRoleAdmin).Limit(1).Find(&existed).Error
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	if existed.ID != "" {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	rec := dbmodels.Employee{
		Email:        "admin@localhost",
		PasswordHash: string(hash),
		FirstName:    "Администратор",
		LastName:     "Портала",
		Role:         models.UserRoleAdmin,
		IsActive:     true,
	}
	if err = DB.Create(&rec).Error; err != nil {
		log.WithError(err).Error("ошибка добавления администратора")
		return
	}
	log.Warn("добавлен администратор по умолчанию, необходимо сменить пароль")
}
