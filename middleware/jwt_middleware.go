package middleware

import (
	"procurement-tools-backend/config"
	"procurement-tools-backend/lib/procurement/workflow"
	"procurement-tools-backend/models"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func AuthorizationRequired() fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(config.Conf.Auth.JWTSecret),
		},
	})
}

func getClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

func GetUserID(ctx *fiber.Ctx) string {
	if sub, ok := getClaims(ctx)["sub"].(string); ok {
		return sub
	}
	return ""
}

func GetUserName(ctx *fiber.Ctx) string {
	if name, ok := getClaims(ctx)["name"].(string); ok {
		return name
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	if role, ok := getClaims(ctx)["role"].(string); ok {
		return models.UserRole(role)
	}
	return ""
}

func GetUserDeptCode(ctx *fiber.Ctx) int {
	// числовые значения в MapClaims приходят как float64
	if dept, ok := getClaims(ctx)["dept"].(float64); ok {
		return int(dept)
	}
	return 0
}

// GetActor собирает атрибуты пользователя из токена для проверки полномочий
func GetActor(ctx *fiber.Ctx) workflow.Actor {
	return workflow.Actor{
		ID:       GetUserID(ctx),
		Role:     GetUserRole(ctx),
		DeptCode: GetUserDeptCode(ctx),
	}
}
