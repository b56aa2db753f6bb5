package v3

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swhelper/siege-backend/internal/app/appconfig"
	"github.com/swhelper/siege-backend/internal/server/httpserver"
	"github.com/swhelper/siege-backend/internal/server/svr"
)

func TestPostSiegeLogsRejectsInvalidBatches(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: httpserver.ErrorHandler})
	v3, _ := svr.CreateEndpointGroups(app)
	// SubmitRateLimit is zero: no limiter, and invalid batches never reach the service
	RegisterSiegeLog(v3, SiegeLog{Config: &appconfig.Config{}})

	cases := []struct {
		name string
		body string
		want string
	}{
		{"malformed json", `{"logs": [`, "INVALID_REQUEST"},
		{"no logs", `{"logs": []}`, "violations"},
		{"unknown result", `{"logs": [{"wizard": "Alice", "deck1_1": "Lushen", "result": "draw"}]}`, "violations"},
		{"missing wizard", `{"logs": [{"deck1_1": "Lushen", "result": "Win"}]}`, "violations"},
		{"separator in monster name", `{"logs": [{"wizard": "Alice", "deck1_1": "Lu|shen", "result": "Win"}]}`, "decklabel"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(fiber.MethodPost, "/api/v3/siege-logs", strings.NewReader(tc.body))
			req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.Contains(t, string(body), tc.want)
		})
	}
}
