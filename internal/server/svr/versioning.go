package svr

import (
	"github.com/gofiber/fiber/v2"
)

type V3 struct {
	fiber.Router
}

type Meta struct {
	fiber.Router
}

func CreateEndpointGroups(app *fiber.App) (*V3, *Meta) {
	v3 := app.Group("/api/v3")
	meta := app.Group("/api/_")

	return &V3{Router: v3}, &Meta{Router: meta}
}
