package dbmodels

import (
	"fmt"
	"procurement-tools-backend/models"
)

type Employee struct {
	BaseModel
	Email          string `gorm:"type:varchar(255);uniqueIndex"`
	PasswordHash   string `gorm:"type:varchar(255)"`
	FirstName      string `gorm:"type:varchar(100)"`
	LastName       string `gorm:"type:varchar(100)"`
	MiddleName     string `gorm:"type:varchar(100)"`
	Role           models.UserRole `gorm:"type:varchar(100)"`
	DepartmentCode int             `gorm:"index"`
	IsActive       bool
}

func (e Employee) GetFullName() string {
	if e.MiddleName != "" {
		return fmt.Sprintf("%s %s %s", e.LastName, e.FirstName, e.MiddleName)
	}
	return fmt.Sprintf("%s %s", e.LastName, e.FirstName)
}
