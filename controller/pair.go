package controller

import (
	"context"
	"errors"
	"fmt"

	"nosdois-service/couple"
	"nosdois-service/database"
	"nosdois-service/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type PairConnectInput struct {
	Code   string `json:"code"`
	Device string `json:"device"`
}

type PairRenewInput struct {
	RefreshToken string `json:"refresh_token"`
}

func refreshKey(code string, device string) string {
	return fmt.Sprintf("%s:%s", code, device)
}

// PairConnect is the anonymous sign-in: any device presenting a valid
// pairing code receives a token pair scoped to that couple's namespace.
func PairConnect(c *fiber.Ctx) error {
	input := new(PairConnectInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}
	if input.Device == "" {
		input.Device = "device"
	}

	record, err := couple.Connect(database.Postgres, input.Code)
	if err != nil {
		if errors.Is(err, couple.ErrCodeTooShort) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status":  "error",
				"message": "O código precisa ter pelo menos 4 letras.",
				"data":    nil,
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	tokens, err := utils.GenerateTokens(record.Code, input.Device)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	if err := database.Redis[0].Set(context.Background(), refreshKey(record.Code, input.Device), tokens.Refresh, 0).Err(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	database.GrantCoupleAccess(record.Code)

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data": fiber.Map{
			"couple":   record.Code,
			"created":  record.Created,
			"settings": record.Settings(),
			"access":   tokens.Access,
			"refresh":  tokens.Refresh,
		},
	})
}

func PairRenew(c *fiber.Ctx) error {
	renew := &PairRenewInput{}
	if err := c.BodyParser(renew); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	claims, err := utils.CheckAndExtractTokenMetadata(renew.RefreshToken, "JWT_REFRESH_KEY")
	if err != nil {
		return c.JSON(fiber.Map{
			"status":  "error",
			"message": "Invalid token",
			"data":    nil,
		})
	}

	stored, err := database.Redis[0].Get(context.Background(), refreshKey(claims.Couple, claims.Device)).Result()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	if stored != renew.RefreshToken {
		return c.JSON(fiber.Map{
			"status":  "error",
			"message": "Unauthorized, your refresh token was already used",
			"data":    nil,
		})
	}

	tokens, err := utils.GenerateTokens(claims.Couple, claims.Device)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	if err := database.Redis[0].Set(context.Background(), refreshKey(claims.Couple, claims.Device), tokens.Refresh, 0).Err(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data": fiber.Map{
			"access":  tokens.Access,
			"refresh": tokens.Refresh,
		},
	})
}

// PairDisconnect drops the device's refresh token. Remote data is kept;
// only the device's pointer to the namespace goes away.
func PairDisconnect(c *fiber.Ctx) error {
	user := c.Locals("user").(*jwt.Token)
	claims := user.Claims.(jwt.MapClaims)

	code, _ := claims["id"].(string)
	device, _ := claims["device"].(string)

	if err := database.Redis[0].Del(context.Background(), refreshKey(code, device)).Err(); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    nil,
	})
}
