package middlewares

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/swhelper/siege-backend/internal/pkg/pgerr"
	"github.com/swhelper/siege-backend/internal/util/rekuest"
)

const MaxQueryLimit = 500

// ValidateWizardAsParam rejects requests whose :wizard param is blank or too long.
func ValidateWizardAsParam(c *fiber.Ctx) error {
	if err := rekuest.ValidVar(rekuest.Param(c, "wizard"), "required,lte=64"); err != nil {
		return err
	}
	return c.Next()
}

// ValidateLimitAsQuery rejects a limit query that is present but not an integer in [1, MaxQueryLimit].
func ValidateLimitAsQuery(c *fiber.Ctx) error {
	raw := c.Query("limit")
	if raw == "" {
		return c.Next()
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return pgerr.ErrInvalidReq.Msg("invalid request: limit must be an integer")
	}
	if err := rekuest.ValidVar(limit, "gte=1,lte="+strconv.Itoa(MaxQueryLimit)); err != nil {
		return err
	}
	return c.Next()
}
