package ownerrez

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/villarosa/bookline/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(&config.Config{
		OwnerRezBaseURL: srv.URL,
		OwnerRezAPIKey:  "test-key",
	})
	assert.NoError(t, err)
	return client
}

func TestCreateGuest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v2/guests", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-Api-Key"))

		var in GuestInput
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Ann", in.FirstName)

		json.NewEncoder(w).Encode(Guest{ID: "g-1", FirstName: in.FirstName, LastName: in.LastName})
	})

	guest, err := client.CreateGuest(context.Background(), GuestInput{FirstName: "Ann", LastName: "Lee"})
	assert.NoError(t, err)
	assert.Equal(t, "g-1", guest.ID)
}

func TestCreateGuestRemoteFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	guest, err := client.CreateGuest(context.Background(), GuestInput{FirstName: "Ann"})
	assert.Nil(t, guest)

	var gErr *GuestCreationError
	assert.True(t, errors.As(err, &gErr))
	assert.Contains(t, gErr.Error(), "502")
}

func TestCreateQuoteRemoteFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	})

	quote, err := client.CreateQuote(context.Background(), QuoteInput{PropertyID: "p-1"})
	assert.Nil(t, quote)

	var qErr *QuoteCreationError
	assert.True(t, errors.As(err, &qErr))
}

func TestBasicAuthScheme(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "owner@example.com", user)
		assert.Equal(t, "secret", pass)
		json.NewEncoder(w).Encode(propertyPage{})
	}))
	defer srv.Close()

	client, err := NewClient(&config.Config{
		OwnerRezBaseURL:  srv.URL,
		OwnerRezUsername: "owner@example.com",
		OwnerRezToken:    "secret",
	})
	assert.NoError(t, err)

	_, err = client.ListProperties(context.Background())
	assert.NoError(t, err)
}

func TestCheckAvailability(t *testing.T) {
	tests := []struct {
		name string
		days []DayAvailability
		want bool
	}{
		{
			name: "all days available",
			days: []DayAvailability{
				{Date: "2024-05-01", Available: true},
				{Date: "2024-05-02", Available: true},
			},
			want: true,
		},
		{
			name: "one day blocked",
			days: []DayAvailability{
				{Date: "2024-05-01", Available: true},
				{Date: "2024-05-02", Available: false},
			},
			want: false,
		},
		{
			// The remote omits days it holds no blocks for, so an empty
			// calendar means the whole range is bookable.
			name: "empty day list is vacuously available",
			days: []DayAvailability{},
			want: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/v2/properties/p-1/availability", r.URL.Path)
				assert.Equal(t, "2024-05-01", r.URL.Query().Get("start"))
				assert.Equal(t, "2024-05-03", r.URL.Query().Get("end"))
				json.NewEncoder(w).Encode(PropertyAvailability{PropertyID: "p-1", Days: tc.days})
			})

			available, err := client.CheckAvailability(context.Background(), "p-1", "2024-05-01", "2024-05-03")
			assert.NoError(t, err)
			assert.Equal(t, tc.want, available)
		})
	}
}

func TestCheckAvailabilityRemoteFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	})

	available, err := client.CheckAvailability(context.Background(), "p-1", "2024-05-01", "2024-05-03")
	assert.False(t, available)

	var aErr *AvailabilityCheckError
	assert.True(t, errors.As(err, &aErr))
}

func TestSearchProperties(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/properties/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "2024-05-01", q.Get("available_from"))
		assert.Equal(t, "2024-05-03", q.Get("available_to"))
		assert.Equal(t, "4", q.Get("guests_min"))
		assert.Equal(t, "2", q.Get("bedrooms_min"))
		assert.Equal(t, "true", q.Get("allows_pets"))

		json.NewEncoder(w).Encode(propertyPage{Items: []Property{
			{ID: "p-1", Name: "Sea Breeze"},
			{ID: "p-2", Name: "Hilltop"},
		}})
	})

	props, err := client.SearchProperties(context.Background(), SearchCriteria{
		AvailableFrom: "2024-05-01",
		AvailableTo:   "2024-05-03",
		GuestsMin:     4,
		BedroomsMin:   2,
		Pets:          1,
	})
	assert.NoError(t, err)
	assert.Len(t, props, 2)
	assert.Equal(t, "Sea Breeze", props[0].Name)
}

func TestListProperties(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/v2/properties", r.URL.Path)
		fmt.Fprint(w, `{"items":[{"id":"p-1","name":"Sea Breeze","location":"Malibu"}]}`)
	})

	props, err := client.ListProperties(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Len(t, props, 1)
	assert.Equal(t, "Malibu", props[0].Location)
}
