package v3

import (
	"github.com/pkg/errors"

	"github.com/swhelper/siege-backend/internal/pkg/pgerr"
	"github.com/swhelper/siege-backend/internal/pkg/sheet"
	"github.com/swhelper/siege-backend/internal/service"
)

// translateError maps battle log query failures to HTTP errors. Unknown errors pass through.
func translateError(err error) error {
	var missing *sheet.MissingColumnsError
	switch {
	case errors.Is(err, service.ErrNoParticipant):
		return pgerr.ErrInvalidReq.Msg("invalid request: wizard is required")
	case errors.Is(err, service.ErrInvalidDefenseKey):
		return pgerr.ErrInvalidReq.Msg("invalid request: defense key must be leader|follower|follower")
	case errors.Is(err, service.ErrEmptyDeckKey):
		return pgerr.ErrInvalidReq.Msg("invalid request: deck key names no monster")
	case errors.Is(err, service.ErrNoRecords):
		return pgerr.ErrNotFound.Msg("wizard has no offense deck records")
	case errors.Is(err, sheet.ErrSheetNotFound):
		return pgerr.ErrNotFound.Msg("battle log sheet not found")
	case errors.Is(err, sheet.ErrNoData):
		return pgerr.ErrNotFound.Msg("battle log sheet has no data")
	case errors.As(err, &missing):
		return pgerr.ErrUnavailable.
			Msg("battle log sheet is missing required columns").
			WithExtras(pgerr.Extras{"missing": missing.Missing})
	default:
		return err
	}
}
