package httpserver

import (
	"strconv"

	"github.com/gofiber/contrib/fibersentry"
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/swhelper/siege-backend/internal/pkg/flog"
	"github.com/swhelper/siege-backend/internal/pkg/pgerr"
)

func handleCustomError(ctx *fiber.Ctx, e *pgerr.Error) error {
	flog.WarnFrom(ctx).
		Err(e).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Msg(e.Message)

	body := fiber.Map{
		"code":    e.ErrorCode,
		"message": e.Message,
	}
	if e.Extras != nil {
		for k, v := range *e.Extras {
			body[k] = v
		}
	}

	return ctx.Status(e.StatusCode).JSON(body)
}

// ErrorHandler renders *pgerr.Error as is. Any other error becomes an
// INTERNAL_ERROR (or the status of a *fiber.Error) and is reported to Sentry.
func ErrorHandler(ctx *fiber.Ctx, err error) error {
	var pe *pgerr.Error
	if errors.As(err, &pe) {
		return handleCustomError(ctx, pe)
	}

	re := *pgerr.ErrInternalError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		re.StatusCode = fe.Code
		re.ErrorCode = "UNKNOWN_ERROR"
		re.Message = fe.Message
		// routing errors are the client's, not ours
		if fe.Code < fiber.StatusInternalServerError {
			return handleCustomError(ctx, &re)
		}
	}

	log.Error().
		Stack().
		Err(err).
		Str("method", ctx.Method()).
		Str("path", ctx.Path()).
		Int("status", re.StatusCode).
		Msg("Internal Server Error")

	if hub := fibersentry.GetHubFromContext(ctx); hub != nil {
		hub.Scope().SetTag("status", strconv.Itoa(re.StatusCode))
		hub.CaptureException(err)
	}

	return handleCustomError(ctx, &re)
}
