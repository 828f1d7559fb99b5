package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRequest_OrderPayload(t *testing.T) {
	t.Run("rich points and extra fields", func(t *testing.T) {
		rich := json.RawMessage(`{"coords":{"lat":1,"lng":2},"city":"Minsk","street":"Lenina","home":"5"}`)
		req := &OrderRequest{
			TaxiID:     340,
			RouteID:    77,
			Points:     []GeoPoint{{Lat: 1, Lng: 2}},
			RichPoints: []RichPoint{{Coords: GeoPoint{Lat: 1, Lng: 2}, Raw: rich}},
			Phone:      json.RawMessage(`"+375291112233"`),
			Tariff:     json.RawMessage(`"std"`),
			PayType:    json.RawMessage(`1`),
			Comment:    "near the gate",
			Extra:      map[string]json.RawMessage{"baby_seat": json.RawMessage(`true`)},
		}

		body, err := json.Marshal(req.OrderPayload())
		require.NoError(t, err)

		var got map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(body, &got))

		assert.JSONEq(t, `340`, string(got["id_taxi"]))
		assert.JSONEq(t, `77`, string(got["id_route"]))
		assert.JSONEq(t, `"+375291112233"`, string(got["phone"]))
		assert.JSONEq(t, `"std"`, string(got["tariff"]))
		assert.JSONEq(t, `1`, string(got["pay_type"]))
		assert.JSONEq(t, `"near the gate"`, string(got["comment"]))
		assert.JSONEq(t, `true`, string(got["baby_seat"]))
		assert.JSONEq(t, `[`+string(rich)+`]`, string(got["points_order"]))
		assert.NotContains(t, got, "advanced")
		assert.NotContains(t, got, "points")
	})

	t.Run("bare points are not forwarded", func(t *testing.T) {
		req := &OrderRequest{
			TaxiID:  340,
			RouteID: 5,
			Points:  []GeoPoint{{Lat: 1, Lng: 2}},
		}

		payload := req.OrderPayload()
		assert.NotContains(t, payload, "points")
		assert.NotContains(t, payload, "points_order")
		assert.NotContains(t, payload, "comment")
		assert.NotContains(t, payload, "phone")
	})
}

func TestOrderRequest_NeedsRoute(t *testing.T) {
	assert.True(t, (&OrderRequest{}).NeedsRoute())
	assert.False(t, (&OrderRequest{RouteID: 3}).NeedsRoute())
}
