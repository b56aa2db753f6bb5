package cachectrl

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// OptIn lets clients reuse a response built from a sheet snapshot for as long as the snapshot lives.
// A maxAge under one second opts out instead.
func OptIn(ctx *fiber.Ctx, maxAge time.Duration) {
	if maxAge < time.Second {
		OptOut(ctx)
		return
	}

	now := time.Now().UTC()
	ctx.Set(fiber.HeaderCacheControl, "public, max-age="+strconv.Itoa(int(maxAge.Seconds())))
	ctx.Set(fiber.HeaderExpires, now.Add(maxAge).Format(time.RFC1123))
	ctx.Response().Header.SetLastModified(now)
}

func OptOut(ctx *fiber.Ctx) {
	ctx.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
	ctx.Set(fiber.HeaderPragma, "no-cache")
	ctx.Set(fiber.HeaderExpires, "0")
}
