package controller

import (
	"encoding/base64"
	"errors"
	"strings"

	"nosdois-service/database"
	"nosdois-service/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// PhotoImage decodes a stored data-URI and serves the raw image bytes.
// The document may sit in the gallery or in the trash bin. Only photos
// belonging to the caller's own namespace are served.
func PhotoImage(c *fiber.Ctx) error {
	id := c.Params("id")

	user := c.Locals("user").(*jwt.Token)
	claims := user.Claims.(jwt.MapClaims)
	couple, _ := claims["id"].(string)

	photo := model.Photo{}
	err := database.Postgres.Where("couple_id = ? AND id = ?", couple, id).First(&photo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		err = database.Postgres.Table(model.TrashTable).Where("couple_id = ? AND id = ?", couple, id).First(&photo).Error
	}
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":  "error",
			"message": "Photo not found",
			"data":    nil,
		})
	}

	contentType, data, err := decodeDataURI(photo.URL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status":  "error",
			"message": "Internal server error",
			"data":    nil,
		})
	}

	c.Set("Content-Type", contentType)
	return c.Send(data)
}

func decodeDataURI(uri string) (string, []byte, error) {
	contentType := "image/png"
	payload := uri

	if strings.HasPrefix(uri, "data:") {
		rest := strings.TrimPrefix(uri, "data:")
		meta, encoded, found := strings.Cut(rest, ",")
		if !found {
			return "", nil, errors.New("malformed data uri")
		}
		if mime, _, _ := strings.Cut(meta, ";"); mime != "" {
			contentType = mime
		}
		payload = encoded
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, err
	}
	return contentType, data, nil
}
