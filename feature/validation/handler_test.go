package validation

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"equipment-validator/core/ofsc"
	engine "equipment-validator/core/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T, inv Inventories) *fiber.App {
	t.Helper()
	app := fiber.New()
	svc := NewService(inv, rulesFor(testRules), nil, engine.DuplicateLastWins, "ofsc", nil)
	feature := NewFeature(svc)
	assert.Equal(t, "validation", feature.Name())
	require.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(app))
	return app
}

func TestHandleValidate(t *testing.T) {
	app := setupTestApp(t, nil)

	body := `{"installed":[{"XI_EQUIPMENTTYPE":"EQ2"},{"XI_MATERIALTYPE":"SRC2"}],"customer":[]}`
	req := httptest.NewRequest("POST", "/validation", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var report Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.True(t, report.Valid)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "SRC2", report.Rows[0].Source)
}

func TestHandleValidate_InlineRuleWithoutControls(t *testing.T) {
	app := setupTestApp(t, nil)

	body := `{"rules":[{"skuequipo":"EQ7","fuentes":["SRC7"]}],` +
		`"installed":[{"XI_EQUIPMENTTYPE":"EQ7","serialNumber":"S1"},{"XI_MATERIALTYPE":"SRC7"}]}`
	req := httptest.NewRequest("POST", "/validation", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var report Report
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Equal(t, "inline", report.RuleSource)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "SRC7", report.Rows[0].Source)
	assert.Equal(t, NoAccessory, report.Rows[0].Control)
}

func TestHandleValidate_BadBody(t *testing.T) {
	app := setupTestApp(t, nil)

	req := httptest.NewRequest("POST", "/validation", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleValidateActivity(t *testing.T) {
	t.Run("Findings", func(t *testing.T) {
		inv := new(mockInventories)
		inv.On("InstalledInventories", mock.Anything, "42").Return([]engine.RawItem{{MaterialType: "CTL1", SerialNumber: "C1"}}, nil)
		inv.On("CustomerInventories", mock.Anything, "42").Return([]engine.RawItem{}, nil)
		app := setupTestApp(t, inv)

		resp, err := app.Test(httptest.NewRequest("GET", "/validation/activities/42", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var report Report
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		assert.False(t, report.Valid)
		assert.Equal(t, []string{"remote control CTL1 is not accompanying any equipment"}, report.Errors)
	})

	t.Run("NotFound", func(t *testing.T) {
		inv := new(mockInventories)
		inv.On("InstalledInventories", mock.Anything, "404").Return(nil, &ofsc.StatusError{Endpoint: "x", StatusCode: 404, Status: "404 Not Found"})
		inv.On("CustomerInventories", mock.Anything, "404").Return([]engine.RawItem{}, nil)
		app := setupTestApp(t, inv)

		resp, err := app.Test(httptest.NewRequest("GET", "/validation/activities/404", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})

	t.Run("Upstream", func(t *testing.T) {
		inv := new(mockInventories)
		inv.On("InstalledInventories", mock.Anything, "9").Return(nil, &ofsc.StatusError{Endpoint: "x", StatusCode: 500, Status: "500"})
		inv.On("CustomerInventories", mock.Anything, "9").Return([]engine.RawItem{}, nil)
		app := setupTestApp(t, inv)

		resp, err := app.Test(httptest.NewRequest("GET", "/validation/activities/9", nil))
		require.NoError(t, err)
		assert.Equal(t, 502, resp.StatusCode)
	})
}
