package authutils

import (
	"procurement-tools-backend/config"
	"procurement-tools-backend/models"
	"testing"

	"github.com/stretchr/testify/require"
)

func initTestConfig() {
	conf := new(config.Configuration)
	conf.Auth.JWTSecret = "test-secret"
	conf.Auth.JWTExpireInSec = 60
	conf.Auth.JWTRefreshExpireInSec = 600
	config.Conf = conf
}

func TestToken(t *testing.T) {
	initTestConfig()
	t.Run(`атрибуты пользователя читаются из токена`, func(t *testing.T) {
		tokenString, err := GetToken("user-1", "Иванов Иван", models.UserRoleDepartmentHead, 5)
		require.Nil(t, err)
		require.NotEmpty(t, tokenString)

		claims, err := ParseToken(tokenString)
		require.Nil(t, err)
		require.Equal(t, "user-1", claims["sub"])
		require.Equal(t, "Иванов Иван", claims["name"])
		require.Equal(t, string(models.UserRoleDepartmentHead), claims["role"])
		// числовые значения в MapClaims приходят как float64
		require.Equal(t, float64(5), claims["dept"])
	})
	t.Run(`refresh токен без роли и подразделения`, func(t *testing.T) {
		tokenString, err := GetRefreshToken("user-1", "Иванов Иван")
		require.Nil(t, err)

		claims, err := ParseToken(tokenString)
		require.Nil(t, err)
		require.Equal(t, "user-1", claims["sub"])
		_, hasRole := claims["role"]
		require.False(t, hasRole)
	})
	t.Run(`подделанный токен не принимается`, func(t *testing.T) {
		tokenString, err := GetToken("user-1", "Иванов Иван", models.UserRoleEmployee, 9)
		require.Nil(t, err)

		config.Conf.Auth.JWTSecret = "other-secret"
		defer initTestConfig()
		_, err = ParseToken(tokenString)
		require.NotNil(t, err)
	})
}
