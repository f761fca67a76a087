package auth_middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	common_model "github.com/motorpass/motorpass-server/src/common/model"
	"github.com/motorpass/motorpass-server/src/config/env"
	member_entity "github.com/motorpass/motorpass-server/src/member/entity"
	"gorm.io/gorm"
)

const memberLocalsKey = "member"

// MemberMiddleware authenticates the bearer token and loads the calling
// member into fiber locals. Identity issuance itself is an external
// collaborator; only token verification happens here.
func MemberMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if env.JWTSecret == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(
				common_model.NewApiError("authentication is not configured", nil, "middleware").Send(),
			)
		}

		header := c.Get("Authorization")
		tokenString := strings.TrimPrefix(header, "Bearer ")
		if tokenString == "" || tokenString == header {
			return c.Status(fiber.StatusUnauthorized).JSON(
				common_model.NewApiError("missing bearer token", nil, "middleware").Send(),
			)
		}

		claims := jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(env.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(
				common_model.NewApiError("invalid token", err, "middleware").Send(),
			)
		}

		memberID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(
				common_model.NewApiError("invalid token subject", err, "middleware").Send(),
			)
		}

		var member member_entity.Member
		if err := db.First(&member, "id = ?", memberID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(
				common_model.NewApiError("member not found", err, "middleware").Send(),
			)
		}

		c.Locals(memberLocalsKey, &member)
		return c.Next()
	}
}

// GetMember returns the member placed in locals by MemberMiddleware.
func GetMember(c *fiber.Ctx) *member_entity.Member {
	member, _ := c.Locals(memberLocalsKey).(*member_entity.Member)
	return member
}
