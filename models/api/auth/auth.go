package authapimodels

import (
	"github.com/pkg/errors"
)

type LoginData struct {
	Email    string `json:"email"`    // почта сотрудника
	Password string `json:"password"` // пароль
}

func (l LoginData) Validate() error {
	if l.Email == "" {
		return errors.New("не указана почта")
	}
	if l.Password == "" {
		return errors.New("не указан пароль")
	}
	return nil
}

type RefreshData struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Fio          string `json:"fio"`
	Role         string `json:"role"`
	RoleName     string `json:"role_name"`
	DeptCode     int    `json:"dept_code"`
}
