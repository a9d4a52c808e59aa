package authhandler

import (
	"procurement-tools-backend/db"
	employeestore "procurement-tools-backend/lib/employee/store"
	authutils "procurement-tools-backend/lib/utils/auth-utils"
	authapimodels "procurement-tools-backend/models/api/auth"
	dbmodels "procurement-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type Provider interface {
	Login(data authapimodels.LoginData) (resp authapimodels.AuthResponse, err error)
	Refresh(refreshToken string) (resp authapimodels.AuthResponse, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		employeeStore: employeestore.NewInstance(db.DB),
	}
}

type impl struct {
	employeeStore employeestore.Provider
}

func (i impl) Login(data authapimodels.LoginData) (resp authapimodels.AuthResponse, err error) {
	logger := log.WithField("email", data.Email)
	rec, err := i.employeeStore.GetByEmail(data.Email)
	if err != nil {
		logger.WithError(err).Error("ошибка получения сотрудника")
		return resp, err
	}
	if rec == nil || !rec.IsActive {
		return resp, errors.New("неверная почта или пароль")
	}
	if err = bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(data.Password)); err != nil {
		return resp, errors.New("неверная почта или пароль")
	}
	return i.buildResponse(*rec)
}

func (i impl) Refresh(refreshToken string) (resp authapimodels.AuthResponse, err error) {
	claims, err := authutils.ParseToken(refreshToken)
	if err != nil {
		return resp, errors.New("недействительный токен")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return resp, errors.New("недействительный токен")
	}
	rec, err := i.employeeStore.GetByID(sub)
	if err != nil {
		return resp, err
	}
	if rec == nil || !rec.IsActive {
		return resp, errors.New("сотрудник не найден")
	}
	return i.buildResponse(*rec)
}

func (i impl) buildResponse(rec dbmodels.Employee) (resp authapimodels.AuthResponse, err error) {
	accessToken, err := authutils.GetToken(rec.ID, rec.GetFullName(), rec.Role, rec.DepartmentCode)
	if err != nil {
		return resp, errors.Wrap(err, "ошибка выпуска токена")
	}
	refreshToken, err := authutils.GetRefreshToken(rec.ID, rec.GetFullName())
	if err != nil {
		return resp, errors.Wrap(err, "ошибка выпуска токена")
	}
	return authapimodels.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Fio:          rec.GetFullName(),
		Role:         string(rec.Role),
		RoleName:     rec.Role.ToHuman(),
		DeptCode:     rec.DepartmentCode,
	}, nil
}
