package v3

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"github.com/swhelper/siege-backend/internal/app/appconfig"
	"github.com/swhelper/siege-backend/internal/pkg/cachectrl"
	"github.com/swhelper/siege-backend/internal/pkg/middlewares"
	"github.com/swhelper/siege-backend/internal/server/svr"
	"github.com/swhelper/siege-backend/internal/service"
	"github.com/swhelper/siege-backend/internal/util/rekuest"
)

type Wizard struct {
	fx.In

	Config             *appconfig.Config
	OffenseDeckService *service.OffenseDeck
	WizardService      *service.Wizard
}

func RegisterWizard(v3 *svr.V3, c Wizard) {
	v3.Get("/wizards", c.GetWizards)

	wizard := middlewares.ValidateWizardAsParam
	limit := middlewares.ValidateLimitAsQuery
	v3.Get("/wizards/:wizard/summary", wizard, c.GetSummary)
	v3.Get("/wizards/:wizard/profile", wizard, limit, c.GetProfile)
	v3.Get("/wizards/:wizard/offense-decks", wizard, limit, c.GetOffenseDecks)
	// the grid never rejects: blank wizards and bad limits fall back inside the service
	v3.Get("/wizards/:wizard/offense-decks/grid", c.GetOffenseDeckGrid)
	v3.Get("/wizards/:wizard/offense-decks/:deckKey/logs", wizard, limit, c.GetOffenseDeckLogs)
}

func (c *Wizard) GetWizards(ctx *fiber.Ctx) error {
	wizards, err := c.WizardService.Wizards(ctx.UserContext())
	if err != nil {
		return translateError(err)
	}

	return ctx.JSON(wizards)
}

func (c *Wizard) GetSummary(ctx *fiber.Ctx) error {
	summary, err := c.WizardService.Summary(ctx.UserContext(), rekuest.Param(ctx, "wizard"))
	if err != nil {
		return translateError(err)
	}

	c.cache(ctx)
	return ctx.JSON(summary)
}

func (c *Wizard) GetProfile(ctx *fiber.Ctx) error {
	profile, err := c.WizardService.Profile(ctx.UserContext(), rekuest.Param(ctx, "wizard"), ctx.QueryInt("limit"))
	if err != nil {
		return translateError(err)
	}

	c.cache(ctx)
	return ctx.JSON(profile)
}

func (c *Wizard) GetOffenseDecks(ctx *fiber.Ctx) error {
	decks, err := c.OffenseDeckService.TopOffenseDecks(ctx.UserContext(), rekuest.Param(ctx, "wizard"), ctx.QueryInt("limit"))
	if err != nil {
		return translateError(err)
	}

	c.cache(ctx)
	return ctx.JSON(decks)
}

// GetOffenseDeckGrid always answers 200; failures are rendered as a placeholder row.
func (c *Wizard) GetOffenseDeckGrid(ctx *fiber.Ctx) error {
	c.cache(ctx)
	return ctx.JSON(c.OffenseDeckService.TopOffenseDecksGrid(ctx.UserContext(), rekuest.Param(ctx, "wizard"), ctx.QueryInt("limit")))
}

func (c *Wizard) GetOffenseDeckLogs(ctx *fiber.Ctx) error {
	logs, err := c.OffenseDeckService.OffenseDeckLogs(ctx.UserContext(), rekuest.Param(ctx, "wizard"), rekuest.Param(ctx, "deckKey"), ctx.QueryInt("limit"))
	if err != nil {
		return translateError(err)
	}

	c.cache(ctx)
	return ctx.JSON(logs)
}

func (c *Wizard) cache(ctx *fiber.Ctx) {
	cacheSnapshot(ctx, c.Config)
}

// cacheSnapshot lets clients keep a result for as long as the sheet snapshot it was built from.
func cacheSnapshot(ctx *fiber.Ctx, conf *appconfig.Config) {
	if conf == nil {
		cachectrl.OptOut(ctx)
		return
	}
	cachectrl.OptIn(ctx, conf.SheetCacheTTL)
}
