package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"github.com/swhelper/siege-backend/internal/pkg/pgerr"
	"github.com/swhelper/siege-backend/internal/util/rekuest"
)

const ContextKeyBody = "body"

// InjectValidBody parses and validates the request body as T and stores a *T in
// ctx.Locals under ContextKeyBody.
func InjectValidBody[T any]() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		dest := new(T)
		if err := rekuest.ValidBody(ctx, dest); err != nil {
			return err
		}

		ctx.Locals(ContextKeyBody, dest)

		return ctx.Next()
	}
}

// Body returns the value stored by InjectValidBody.
func Body[T any](ctx *fiber.Ctx) (*T, error) {
	dest, ok := ctx.Locals(ContextKeyBody).(*T)
	if !ok {
		return nil, pgerr.ErrInternalError.Msg("request body was not injected")
	}
	return dest, nil
}
