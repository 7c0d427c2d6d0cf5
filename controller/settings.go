package controller

import (
	"nosdois-service/database"
	"nosdois-service/model"
	"nosdois-service/snapshot"

	"github.com/gofiber/fiber/v2"
)

func SettingsGet(c *fiber.Ctx) error {
	settings, err := snapshot.Settings(database.Postgres, c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Couple not found",
			"data":    nil,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    settings,
	})
}

// SettingsUpdate merge-writes only the fields present in the body; a
// partial update never resets the rest of the document.
func SettingsUpdate(c *fiber.Ctx) error {
	patch := model.SettingsPatch{}
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	settings, err := Gateway.UpdateSettings(c.Params("id"), patch)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data":    settings,
	})
}
