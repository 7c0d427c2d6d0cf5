package router

import (
	"nosdois-service/controller"
	"nosdois-service/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func Rest(app *fiber.App) {
	api := app.Group("/v1", logger.New())

	// Pairing
	pair := api.Group("/pair")
	pair.Post("/connect", controller.PairConnect)
	pair.Post("/renew", controller.PairRenew)
	pair.Post("/disconnect", middleware.JWT(), controller.PairDisconnect)

	// Photos
	photo := api.Group("/photo", middleware.JWT())
	photo.Get("/:id", controller.PhotoImage)

	// Couple namespace
	couples := api.Group("/couples", middleware.JWT(), middleware.Namespace())
	couples.Get("/:id/settings", controller.SettingsGet)
	couples.Patch("/:id/settings", controller.SettingsUpdate)

	// Suggestions
	suggest := api.Group("/suggest", middleware.JWT())
	suggest.Post("/support", controller.SuggestSupport)
	suggest.Post("/reply", controller.SuggestReply)
}
