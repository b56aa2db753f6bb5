package meta

import (
	"github.com/gofiber/fiber/v2"

	"github.com/swhelper/siege-backend/internal/pkg/bininfo"
)

func RegisterIndex(app *fiber.App) {
	app.Get("/api", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Siege offense deck leaderboard API v3",
			"version": bininfo.Version,
		})
	})
}
