package models

type UserRole string

const (
	UserRoleAdmin          UserRole = "ADMIN_ROLE"
	UserRoleDepartmentHead UserRole = "DEPARTMENT_HEAD_ROLE"
	UserRoleEmployee       UserRole = "EMPLOYEE_ROLE"
)

var roleHumanName = map[UserRole]string{
	UserRoleAdmin:          "Администратор",
	UserRoleDepartmentHead: "Руководитель подразделения",
	UserRoleEmployee:       "Сотрудник",
}

func (r UserRole) ToHuman() string {
	if human, exist := roleHumanName[r]; exist {
		return human
	}
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

func (r UserRole) IsDepartmentHead() bool {
	return r == UserRoleDepartmentHead
}

const SystemUser = "Система"
