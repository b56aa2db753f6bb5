package v3

import (
	"context"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swhelper/siege-backend/internal/model"
	"github.com/swhelper/siege-backend/internal/pkg/sheet"
	"github.com/swhelper/siege-backend/internal/server/httpserver"
	"github.com/swhelper/siege-backend/internal/server/svr"
	"github.com/swhelper/siege-backend/internal/service"
)

var header = []string{"Timestamp", "Wizard", "Deck1-1", "Deck1-2", "Deck1-3", "Win/Lose", "Base"}

func newApp(t *testing.T, provider sheet.Provider) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{ErrorHandler: httpserver.ErrorHandler})
	v3, _ := svr.CreateEndpointGroups(app)

	battleLog := &service.BattleLog{SheetName: "SiegeLogs", Sheets: provider}
	offenseDeck := &service.OffenseDeck{BattleLog: battleLog, DefaultLimit: model.DefaultDeckLimit}
	RegisterWizard(v3, Wizard{
		OffenseDeckService: offenseDeck,
		WizardService:      service.NewWizard(battleLog, offenseDeck),
	})
	return app
}

func fixedTable(rows ...[]any) sheet.Provider {
	return sheet.ProviderFunc(func(_ context.Context, name string) (*sheet.Table, error) {
		return &sheet.Table{Name: name, Header: header, Rows: rows}, nil
	})
}

func get(t *testing.T, app *fiber.App, path string) (int, []byte) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestGetOffenseDecks(t *testing.T) {
	app := newApp(t, fixedTable(
		[]any{"2024-01-01 10:00", "Alice", "Lushen", "Verde", "Bella", "Win", "5"},
		[]any{"2024-01-02 10:00", "Alice", "Bella", "Lushen", "Verde", "Lose", "4"},
		[]any{"2024-01-03 10:00", "Alice", "Theomars", "Bella", "Verde", "Win", "5"},
		[]any{"2024-01-04 10:00", "Bob", "Theomars", "Bella", "Verde", "Win", "5"},
	))

	status, body := get(t, app, "/api/v3/wizards/Alice/offense-decks")
	require.Equal(t, fiber.StatusOK, status)

	var decks []*model.RankedDeck
	require.NoError(t, json.Unmarshal(body, &decks))
	require.Len(t, decks, 2)
	assert.Equal(t, "Bella|Lushen|Verde", decks[0].Key)
	assert.Equal(t, 1, decks[0].Wins)
	assert.Equal(t, 1, decks[0].Losses)
	assert.Equal(t, "50.0%", decks[0].WinRatePercent)
	assert.Equal(t, "Bella|Theomars|Verde", decks[1].Key)
}

func TestGetOffenseDecksErrors(t *testing.T) {
	t.Run("unknown wizard", func(t *testing.T) {
		app := newApp(t, fixedTable([]any{"", "Alice", "Lushen", "Verde", "Bella", "Win", "5"}))
		status, body := get(t, app, "/api/v3/wizards/Nobody/offense-decks")
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Contains(t, string(body), "NOT_FOUND")
	})

	t.Run("missing headers", func(t *testing.T) {
		app := newApp(t, sheet.ProviderFunc(func(_ context.Context, name string) (*sheet.Table, error) {
			return &sheet.Table{Name: name, Header: []string{"Wizard"}, Rows: [][]any{{"Alice"}}}, nil
		}))
		status, body := get(t, app, "/api/v3/wizards/Alice/offense-decks")
		assert.Equal(t, fiber.StatusServiceUnavailable, status)
		assert.Contains(t, string(body), "Win/Lose")
	})

	t.Run("sheet not found", func(t *testing.T) {
		app := newApp(t, sheet.ProviderFunc(func(context.Context, string) (*sheet.Table, error) {
			return nil, sheet.ErrSheetNotFound
		}))
		status, _ := get(t, app, "/api/v3/wizards/Alice/offense-decks")
		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("limit out of range", func(t *testing.T) {
		app := newApp(t, fixedTable())
		status, body := get(t, app, "/api/v3/wizards/Alice/offense-decks?limit=0")
		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Contains(t, string(body), "INVALID_REQUEST")

		status, _ = get(t, app, "/api/v3/wizards/Alice/offense-decks?limit=ten")
		assert.Equal(t, fiber.StatusBadRequest, status)
	})
}

func TestGetOffenseDeckGridAlwaysSucceeds(t *testing.T) {
	app := newApp(t, sheet.ProviderFunc(func(context.Context, string) (*sheet.Table, error) {
		return nil, sheet.ErrSheetNotFound
	}))

	status, body := get(t, app, "/api/v3/wizards/Alice/offense-decks/grid")
	require.Equal(t, fiber.StatusOK, status)

	var grid [][]any
	require.NoError(t, json.Unmarshal(body, &grid))
	require.Len(t, grid, 1)
	assert.Equal(t, model.MsgSheetNotFound("SiegeLogs"), grid[0][0])
}

func TestGetOffenseDeckGridFallsBackInsteadOfRejecting(t *testing.T) {
	app := newApp(t, fixedTable(
		[]any{"", "Alice", "Lushen", "Verde", "Bella", "Win", "5"},
		[]any{"", "Alice", "Theomars", "Bella", "Verde", "Lose", "5"},
	))

	tests := []struct {
		name  string
		path  string
		rows  int
		first any
	}{
		{"zero limit uses the default", "/api/v3/wizards/Alice/offense-decks/grid?limit=0", 2, "Lushen"},
		{"negative limit uses the default", "/api/v3/wizards/Alice/offense-decks/grid?limit=-3", 2, "Lushen"},
		{"non-numeric limit uses the default", "/api/v3/wizards/Alice/offense-decks/grid?limit=abc", 2, "Lushen"},
		{"blank wizard", "/api/v3/wizards/%20/offense-decks/grid", 1, model.MsgNoParticipant},
		{"over-long wizard", "/api/v3/wizards/" + strings.Repeat("x", 65) + "/offense-decks/grid", 1, model.MsgNoRecords},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, app, tt.path)
			require.Equal(t, fiber.StatusOK, status)

			var grid [][]any
			require.NoError(t, json.Unmarshal(body, &grid))
			require.Len(t, grid, tt.rows)
			assert.Len(t, grid[0], model.GridWidth)
			assert.Equal(t, tt.first, grid[0][0])
		})
	}
}

func TestGetOffenseDeckLogs(t *testing.T) {
	app := newApp(t, fixedTable(
		[]any{"2024-01-01 10:00", "Alice", "Lushen", "Verde", "Bella", "Win", "5"},
		[]any{"2024-01-02 10:00", "Alice", "Bella", "Lushen", "Verde", "Lose", "4"},
		[]any{"2024-01-03 10:00", "Alice", "Theomars", "Bella", "Verde", "Win", "5"},
	))

	status, body := get(t, app, "/api/v3/wizards/Alice/offense-decks/"+url.PathEscape("Verde|Lushen|Bella")+"/logs")
	require.Equal(t, fiber.StatusOK, status)

	var logs []*model.BattleRecord
	require.NoError(t, json.Unmarshal(body, &logs))
	require.Len(t, logs, 2)
	assert.Equal(t, "2024-01-02 10:00", logs[0].Timestamp)
	assert.Equal(t, "2024-01-01 10:00", logs[1].Timestamp)
}

func TestGetWizards(t *testing.T) {
	app := newApp(t, fixedTable(
		[]any{"", "Bob", "Lushen", "Verde", "Bella", "Win", "5"},
		[]any{"", "Alice", "Lushen", "Verde", "Bella", "Win", "5"},
		[]any{"", "Bob", "Lushen", "Verde", "Bella", "Lose", "5"},
	))

	status, body := get(t, app, "/api/v3/wizards")
	require.Equal(t, fiber.StatusOK, status)

	var wizards []string
	require.NoError(t, json.Unmarshal(body, &wizards))
	assert.Equal(t, []string{"Alice", "Bob"}, wizards)
}
