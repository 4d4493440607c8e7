//go:build integration

package integration

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fightleague/registry/test/integration/testutil"
)

func TestRegisterFighter_WithWallet(t *testing.T) {
	env := testutil.NewTestEnv(t)
	w := env.NewTestWallet()

	resp := env.POST("/fighters/register", map[string]interface{}{
		"name":          "Aiden Cole",
		"country":       "USA",
		"weight":        "170",
		"gender":        "male",
		"division":      "Welterweight",
		"wins":          12,
		"losses":        3,
		"draws":         0,
		"walletAddress": w.Address,
	}, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var result struct {
		FighterID string `json:"fighterId"`
		Token     string `json:"token"`
		UserType  string `json:"user_type"`
		Status    string `json:"status"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.NotEmpty(t, result.FighterID)
	assert.NotEmpty(t, result.Token, "wallet-linked registration issues a token")
	assert.Equal(t, "FAN", result.UserType)
	assert.Equal(t, "pending", result.Status)

	assert.Equal(t, "pending", env.FighterStatus(result.FighterID))
	assert.Equal(t, "FAN", env.UserRoleByWallet(w.Address))
}

func TestRegisterFighter_WithoutWalletIssuesNoToken(t *testing.T) {
	env := testutil.NewTestEnv(t)

	result := env.RegisterFighter("Nora Quinn", "", "140", "female")
	_, hasToken := result["token"]
	assert.False(t, hasToken)

	assert.Equal(t, 0, env.CountRows("SELECT COUNT(*) FROM users"))
	assert.Equal(t, 1, env.CountRows("SELECT COUNT(*) FROM fighters"))
}

func TestRegisterFighter_DuplicateWalletConflicts(t *testing.T) {
	env := testutil.NewTestEnv(t)
	w := env.NewTestWallet()

	env.RegisterFighter("First Entry", w.Address, "170", "male")

	resp := env.POST("/fighters/register", map[string]interface{}{
		"name":          "Second Entry",
		"country":       "USA",
		"weight":        "175",
		"gender":        "male",
		"division":      "Welterweight",
		"wins":          0,
		"losses":        0,
		"draws":         0,
		"walletAddress": w.Address,
	}, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, 1, env.CountRows("SELECT COUNT(*) FROM fighters"))
}

func TestRegisterFighter_DivisionBoundaryClassification(t *testing.T) {
	env := testutil.NewTestEnv(t)

	result := env.RegisterFighter("Boundary Case", "", "165", "male")

	var division string
	err := env.Pool.QueryRow(t.Context(),
		"SELECT division FROM fighters WHERE id = $1", result["fighterId"]).Scan(&division)
	require.NoError(t, err)
	assert.Equal(t, "Lightweight", division, "165 lb male sits at the inclusive top of Lightweight")
}

func TestRegisterFighter_ValidationFailures(t *testing.T) {
	env := testutil.NewTestEnv(t)

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing name", map[string]interface{}{
			"country": "USA", "weight": "170", "gender": "male", "division": "Welterweight", "wins": 0, "losses": 0, "draws": 0,
		}},
		{"missing division", map[string]interface{}{
			"name": "X Y", "country": "USA", "weight": "170", "gender": "male", "wins": 0, "losses": 0, "draws": 0,
		}},
		{"division inconsistent with weight", map[string]interface{}{
			"name": "X Y", "country": "USA", "weight": "170", "gender": "male", "division": "Heavyweight", "wins": 0, "losses": 0, "draws": 0,
		}},
		{"bad gender", map[string]interface{}{
			"name": "X Y", "country": "USA", "weight": "170", "gender": "other", "division": "Welterweight", "wins": 0, "losses": 0, "draws": 0,
		}},
		{"non-numeric weight", map[string]interface{}{
			"name": "X Y", "country": "USA", "weight": "heavy", "gender": "male", "division": "Welterweight", "wins": 0, "losses": 0, "draws": 0,
		}},
		{"weight above every division", map[string]interface{}{
			"name": "X Y", "country": "USA", "weight": "400", "gender": "male", "division": "Heavyweight", "wins": 0, "losses": 0, "draws": 0,
		}},
		{"negative record", map[string]interface{}{
			"name": "X Y", "country": "USA", "weight": "170", "gender": "male", "division": "Welterweight", "wins": -1, "losses": 0, "draws": 0,
		}},
		{"malformed wallet", map[string]interface{}{
			"name": "X Y", "country": "USA", "weight": "170", "gender": "male", "division": "Welterweight", "wins": 0, "losses": 0, "draws": 0,
			"walletAddress": "not-a-wallet",
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := env.POST("/fighters/register", tc.body, "")
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestRegisterFighter_StagesOutboxEvent(t *testing.T) {
	env := testutil.NewTestEnv(t)

	env.RegisterFighter("Outbox Check", "", "170", "male")

	assert.Equal(t, 1, env.CountRows(
		"SELECT COUNT(*) FROM event_outbox WHERE event_type = 'registered' AND published_at IS NULL"))
}

func TestPublicRoster_OnlyVerifiedVisible(t *testing.T) {
	env := testutil.NewTestEnv(t)
	admin := env.AdminToken()

	pending := env.RegisterFighter("Still Pending", "", "170", "male")
	approved := env.RegisterFighter("Now Verified", "", "150", "male")

	resp := env.AuthPATCH("/dashboard/admin/fighters/"+approved["fighterId"].(string)+"/approve", nil, admin)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	list := env.GET("/fighters")
	defer list.Body.Close()
	assert.Equal(t, http.StatusOK, list.StatusCode)

	var fighters []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.NewDecoder(list.Body).Decode(&fighters))
	require.Len(t, fighters, 1)
	assert.Equal(t, "Now Verified", fighters[0].Name)

	// Detail endpoint agrees: pending is invisible, verified is not.
	notFound := env.GET("/fighters/" + pending["fighterId"].(string))
	notFound.Body.Close()
	assert.Equal(t, http.StatusNotFound, notFound.StatusCode)

	found := env.GET("/fighters/" + approved["fighterId"].(string))
	defer found.Body.Close()
	assert.Equal(t, http.StatusOK, found.StatusCode)

	var detail struct {
		Record string `json:"record"`
	}
	require.NoError(t, json.NewDecoder(found.Body).Decode(&detail))
	assert.Equal(t, "0-0-0", detail.Record)
}

func TestGlobeNation_ListsVerifiedByCountry(t *testing.T) {
	env := testutil.NewTestEnv(t)
	admin := env.AdminToken()

	f := env.RegisterFighter("Country Rep", "", "170", "male")
	resp := env.AuthPATCH("/dashboard/admin/fighters/"+f["fighterId"].(string)+"/approve", nil, admin)
	resp.Body.Close()

	globe := env.GET("/globe/nation/USA")
	defer globe.Body.Close()
	assert.Equal(t, http.StatusOK, globe.StatusCode)

	var body struct {
		Country  string `json:"country"`
		Fighters []struct {
			Name string `json:"name"`
		} `json:"fighters"`
	}
	require.NoError(t, json.NewDecoder(globe.Body).Decode(&body))
	assert.Equal(t, "USA", body.Country)
	require.Len(t, body.Fighters, 1)
	assert.Equal(t, "Country Rep", body.Fighters[0].Name)
}

func TestDivisionsAndEvents_Seeded(t *testing.T) {
	env := testutil.NewTestEnv(t)

	resp := env.GET("/divisions")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var divisions []struct {
		ID     int64  `json:"id"`
		Name   string `json:"name"`
		Gender string `json:"gender"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&divisions))
	assert.Len(t, divisions, 7)
	for _, d := range divisions {
		assert.Positive(t, d.ID, d.Name)
	}

	events := env.GET("/events?status=upcoming")
	defer events.Body.Close()
	assert.Equal(t, http.StatusOK, events.StatusCode)

	badStatus := env.GET("/events?status=bogus")
	badStatus.Body.Close()
	assert.Equal(t, http.StatusBadRequest, badStatus.StatusCode)
}
