package journey

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAPI spins up a fake journey service including its token endpoint
// and returns a client pointed at it.
func newTestAPI(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"test-token","token_type":"bearer","expires_in":3600}`))
	})
	mux.Handle("/v3/", handler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return NewClient(server.URL, server.URL+"/token", "client-id", "client-secret", "de")
}

func TestTrips(t *testing.T) {
	var gotReq *http.Request
	var gotBody map[string]any

	client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotReq = r
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"trips": [{
				"legs": [{
					"type": "PTRideLeg",
					"mode": "TRAIN",
					"serviceJourney": {
						"stopPoints": [
							{"routeIndex": 0, "place": {"name": "Bern"},
							 "departure": {"timeAimed": "2025-11-11T08:02:00+01:00", "quayAimed": {"name": "7"}}},
							{"routeIndex": 1, "place": {"name": "Zuerich HB"},
							 "arrival": {"timeAimed": "2025-11-11T08:56:00+01:00"}}
						],
						"serviceProducts": [{"nameFormatted": "IC 1", "routeIndexFrom": 0, "routeIndexTo": 1,
						                     "operator": {"name": "SBB"}}]
					}
				}]
			}]
		}`))
	})

	resp, err := client.Trips(context.Background(), "8507000", "8503000")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotReq.Method)
	assert.Equal(t, "/v3/trips/by-origin-destination", gotReq.URL.Path)
	assert.Equal(t, "Bearer test-token", gotReq.Header.Get("Authorization"))
	assert.Equal(t, "de", gotReq.Header.Get("Accept-Language"))
	assert.NotEmpty(t, gotReq.Header.Get("Request-ID"))
	assert.Equal(t, "8507000", gotBody["origin"])
	assert.Equal(t, "8503000", gotBody["destination"])

	require.Len(t, resp.Trips, 1)
	require.Len(t, resp.Trips[0].Legs, 1)
	leg := resp.Trips[0].Legs[0]
	assert.Equal(t, "PTRideLeg", leg.Type)
	require.NotNil(t, leg.ServiceJourney)
	require.Len(t, leg.ServiceJourney.StopPoints, 2)
	assert.Equal(t, "Bern", *leg.ServiceJourney.StopPoints[0].Place.Name)
	assert.Equal(t, "7", *leg.ServiceJourney.StopPoints[0].Departure.QuayAimed.Name)
	require.Len(t, leg.ServiceJourney.ServiceProducts, 1)
	assert.Equal(t, "IC 1", *leg.ServiceJourney.ServiceProducts[0].NameFormatted)
}

func TestTripsUpstreamError(t *testing.T) {
	client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	})

	_, err := client.Trips(context.Background(), "8507000", "8503000")
	assert.ErrorContains(t, err, "unexpected status code: 502")
}

func TestIsUIC(t *testing.T) {
	assert.True(t, IsUIC("8507000"))
	assert.True(t, IsUIC("850700"))
	assert.True(t, IsUIC("85070001"))
	assert.False(t, IsUIC("Bern"))
	assert.False(t, IsUIC("12345"))
	assert.False(t, IsUIC("850700012"))
	assert.False(t, IsUIC("8507000x"))
	assert.False(t, IsUIC(""))
}

func TestResolveStopPlace(t *testing.T) {
	t.Run("uic codes skip the lookup", func(t *testing.T) {
		client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			t.Error("no request expected")
		})

		id, err := client.ResolveStopPlace(context.Background(), "8507000")
		require.NoError(t, err)
		assert.Equal(t, "8507000", id)
	})

	t.Run("first stop place wins", func(t *testing.T) {
		var gotQuery string
		client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.RawQuery
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"places": [
				{"type": "Address", "id": "x"},
				{"type": "StopPlace", "id": "8507000", "name": "Bern"}
			]}`))
		})

		id, err := client.ResolveStopPlace(context.Background(), "Bern")
		require.NoError(t, err)
		assert.Equal(t, "8507000", id)
		assert.Contains(t, gotQuery, "nameMatch=Bern")
		assert.Contains(t, gotQuery, "type=StopPlace")
	})

	t.Run("no match", func(t *testing.T) {
		client := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"places": []}`))
		})

		_, err := client.ResolveStopPlace(context.Background(), "Atlantis")
		assert.ErrorContains(t, err, `no stop place found for "Atlantis"`)
	})
}
