package booking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validPayload() map[string]any {
	return map[string]any{
		"first_name": "Ann",
		"last_name":  "Lee",
		"custom_fields": map[string]any{
			"Check in Date":  "2024-05-01",
			"Check Out Date": "2024-05-03",
			"Adults":         float64(2),
			"Email":          "ann@example.com",
			"Phone":          "+15550100",
		},
	}
}

func TestNormalizeBookingRequest(t *testing.T) {
	req, err := NormalizeBookingRequest(validPayload())
	assert.NoError(t, err)
	assert.Equal(t, "Ann", req.FirstName)
	assert.Equal(t, "Lee", req.LastName)
	assert.Equal(t, "2024-05-01", req.CheckIn)
	assert.Equal(t, "2024-05-03", req.CheckOut)
	assert.Equal(t, 2, req.Adults)
	assert.Equal(t, 0, req.Children)
	assert.Equal(t, 0, req.Pets)
	assert.Equal(t, "ann@example.com", req.Email)
	assert.Equal(t, "+15550100", req.Phone)
}

func TestNormalizeMissingDates(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(cf map[string]any)
		wantField string
	}{
		{
			name:      "missing check in",
			mutate:    func(cf map[string]any) { delete(cf, "Check in Date") },
			wantField: "Check in Date",
		},
		{
			name:      "missing check out",
			mutate:    func(cf map[string]any) { delete(cf, "Check Out Date") },
			wantField: "Check Out Date",
		},
		{
			name: "both missing",
			mutate: func(cf map[string]any) {
				delete(cf, "Check in Date")
				delete(cf, "Check Out Date")
			},
			wantField: "Check in Date",
		},
		{
			name:      "empty check in",
			mutate:    func(cf map[string]any) { cf["Check in Date"] = "" },
			wantField: "Check in Date",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			payload := validPayload()
			tc.mutate(payload["custom_fields"].(map[string]any))

			req, err := NormalizeBookingRequest(payload)
			assert.Nil(t, req)

			var vErr *ValidationError
			assert.True(t, errors.As(err, &vErr))
			assert.Equal(t, tc.wantField, vErr.Field)
		})
	}
}

func TestNormalizeNoCustomFields(t *testing.T) {
	req, err := NormalizeBookingRequest(map[string]any{"first_name": "Ann"})
	assert.Nil(t, req)

	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func TestNormalizeFalsyNumericDefaults(t *testing.T) {
	tests := []struct {
		name   string
		adults any
		want   int
	}{
		{name: "zero number", adults: float64(0), want: 1},
		{name: "zero string", adults: "0", want: 1},
		{name: "empty string", adults: "", want: 1},
		{name: "null", adults: nil, want: 1},
		{name: "absent", adults: "absent", want: 1},
		{name: "numeric string", adults: "3", want: 3},
		{name: "number", adults: float64(4), want: 4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			payload := validPayload()
			cf := payload["custom_fields"].(map[string]any)
			if s, ok := tc.adults.(string); ok && s == "absent" {
				delete(cf, "Adults")
			} else {
				cf["Adults"] = tc.adults
			}

			req, err := NormalizeBookingRequest(payload)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, req.Adults)
		})
	}
}

func TestNormalizeContactPlaceholders(t *testing.T) {
	payload := validPayload()
	cf := payload["custom_fields"].(map[string]any)
	delete(cf, "Email")
	cf["Phone"] = ""

	req, err := NormalizeBookingRequest(payload)
	assert.NoError(t, err)
	assert.Equal(t, placeholderEmail, req.Email)
	assert.Equal(t, placeholderPhone, req.Phone)
}

func TestNormalizeOptionalFields(t *testing.T) {
	payload := validPayload()
	cf := payload["custom_fields"].(map[string]any)
	cf["Property ID"] = "prop-7"
	cf["Bedrooms"] = float64(3)
	cf["Children"] = "2"
	cf["Pets"] = float64(1)

	req, err := NormalizeBookingRequest(payload)
	assert.NoError(t, err)
	assert.Equal(t, "prop-7", req.PropertyID)
	assert.Equal(t, 3, req.BedroomsMin)
	assert.Equal(t, 2, req.Children)
	assert.Equal(t, 1, req.Pets)
}

func TestNormalizePropertyIDFromTopLevel(t *testing.T) {
	payload := validPayload()
	payload["property_id"] = "prop-9"

	req, err := NormalizeBookingRequest(payload)
	assert.NoError(t, err)
	assert.Equal(t, "prop-9", req.PropertyID)
}
