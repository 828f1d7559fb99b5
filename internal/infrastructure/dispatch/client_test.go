package dispatch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taxi-order-gateway/internal/config"
	"github.com/taxi-order-gateway/internal/domain"
	"go.uber.org/zap"
)

func newTestClient(url string, timeout time.Duration) *client {
	cfg := &config.TaxiConfig{
		ID:             340,
		BaseURL:        url + "/taxi/api/v2/web/",
		RequestTimeout: timeout,
	}
	return NewDispatchClient(cfg, zap.NewNop()).(*client)
}

func TestClient_CreateRoute(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		var gotPath, gotContentType string
		var gotBody map[string]interface{}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotContentType = r.Header.Get("Content-Type")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":true,"id":901,"distance":4.2}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL, 5*time.Second)

		resp, err := c.CreateRoute(context.Background(), domain.RoutePayload{
			TaxiID: 340,
			Points: []domain.GeoPoint{{Lat: 1, Lng: 2}, {Lat: 3, Lng: 4}},
		})
		require.NoError(t, err)

		assert.Equal(t, "/taxi/api/v2/web/route", gotPath)
		assert.Equal(t, "application/json", gotContentType)
		assert.Equal(t, float64(340), gotBody["id_taxi"])
		assert.Len(t, gotBody["points"], 2)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"status":true,"id":901,"distance":4.2}`, string(resp.Body))
		assert.Equal(t, int64(901), resp.ID())
	})

	t.Run("business error is returned verbatim", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"status":false,"error":"bad_points"}`))
		}))
		defer server.Close()

		c := newTestClient(server.URL, 5*time.Second)

		resp, err := c.CreateRoute(context.Background(), domain.RoutePayload{TaxiID: 340})
		require.NoError(t, err)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.False(t, resp.OK())
		assert.Equal(t, "bad_points", resp.ErrorText())
	})

	t.Run("non-JSON body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`<html>502 Bad Gateway</html>`))
		}))
		defer server.Close()

		c := newTestClient(server.URL, 5*time.Second)

		resp, err := c.CreateRoute(context.Background(), domain.RoutePayload{TaxiID: 340})
		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.Contains(t, err.Error(), "non-JSON body")
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer server.Close()
		defer close(release)

		c := newTestClient(server.URL, 50*time.Millisecond)

		resp, err := c.CreateRoute(context.Background(), domain.RoutePayload{TaxiID: 340})
		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestClient_CalculateAndPlaceOrder(t *testing.T) {
	requests := make(map[string]string)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests[r.URL.Path] = string(body)
		w.Write([]byte(`{"status":true}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, 5*time.Second)

	_, err := c.CalculateOrder(context.Background(), domain.CalculatePayload{
		TaxiID: 340,
		ID:     7,
		Points: []domain.GeoPoint{{Lat: 1, Lng: 2}},
	})
	require.NoError(t, err)

	_, err = c.PlaceOrder(context.Background(), map[string]interface{}{
		"id_taxi":  340,
		"id_route": 7,
		"phone":    "+1",
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{"id_taxi":340,"id":7,"points":[{"lat":1,"lng":2}]}`, requests["/taxi/api/v2/web/order/calculate"])
	assert.JSONEq(t, `{"id_taxi":340,"id_route":7,"phone":"+1"}`, requests["/taxi/api/v2/web/order"])
}
