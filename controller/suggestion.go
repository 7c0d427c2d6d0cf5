package controller

import (
	"github.com/gofiber/fiber/v2"
)

type SuggestSupportInput struct {
	Emotion string `json:"emotion"`
}

type SuggestReplyInput struct {
	Text    string `json:"text"`
	Emotion string `json:"emotion"`
}

// SuggestSupport never fails: the suggestion client answers from its
// fallback list when the upstream call does not deliver.
func SuggestSupport(c *fiber.Ctx) error {
	input := new(SuggestSupportInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data": fiber.Map{
			"text": Suggest.SupportMessage(c.Context(), input.Emotion),
		},
	})
}

func SuggestReply(c *fiber.Ctx) error {
	input := new(SuggestReplyInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status":  "error",
			"message": "Review your input",
			"data":    nil,
		})
	}

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": nil,
		"data": fiber.Map{
			"text": Suggest.PartnerReply(c.Context(), input.Text, input.Emotion),
		},
	})
}
