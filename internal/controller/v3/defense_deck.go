package v3

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/swhelper/siege-backend/internal/app/appconfig"
	"github.com/swhelper/siege-backend/internal/pkg/middlewares"
	"github.com/swhelper/siege-backend/internal/pkg/pgerr"
	"github.com/swhelper/siege-backend/internal/server/svr"
	"github.com/swhelper/siege-backend/internal/service"
	"github.com/swhelper/siege-backend/internal/util/rekuest"
)

type DefenseDeck struct {
	fx.In

	Config             *appconfig.Config
	DefenseDeckService *service.DefenseDeck
}

func RegisterDefenseDeck(v3 *svr.V3, c DefenseDeck) {
	limit := middlewares.ValidateLimitAsQuery
	v3.Get("/defense-decks", limit, c.GetDefenseDecks)
	v3.Get("/defense-decks/:defenseKey/offense-decks", limit, c.GetOffenseDecksByDefense)
	v3.Get("/opp-guilds", c.GetOppGuilds)
}

// GetDefenseDecks ranks defenses by how often they held. cutoff is the minimum number of battles.
func (c *DefenseDeck) GetDefenseDecks(ctx *fiber.Ctx) error {
	cutoff := ctx.QueryInt("cutoff", service.DefaultDefenseCutoff)
	if cutoff < 1 {
		return pgerr.ErrInvalidReq.Msg("invalid request: cutoff must be a positive integer")
	}

	decks, err := c.DefenseDeckService.DefenseDeckStats(ctx.UserContext(), cutoff, ctx.QueryInt("limit"))
	if err != nil {
		return translateError(err)
	}

	cacheSnapshot(ctx, c.Config)
	return ctx.JSON(decks)
}

func (c *DefenseDeck) GetOffenseDecksByDefense(ctx *fiber.Ctx) error {
	decks, err := c.DefenseDeckService.OffenseStatsByDefense(ctx.UserContext(), rekuest.Param(ctx, "defenseKey"), ctx.QueryInt("limit"))
	if err != nil {
		return translateError(err)
	}

	cacheSnapshot(ctx, c.Config)
	return ctx.JSON(decks)
}

func (c *DefenseDeck) GetOppGuilds(ctx *fiber.Ctx) error {
	guilds, err := c.DefenseDeckService.OppGuilds(ctx.UserContext())
	if err != nil {
		return translateError(err)
	}

	cacheSnapshot(ctx, c.Config)
	return ctx.JSON(guilds)
}
