package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// Fallback contact values used when the chat form collected none. The
// remote rejects blank contacts, so these are literal placeholders.
const (
	placeholderEmail = "noreply@example.com"
	placeholderPhone = "+10000000000"
)

// Custom-field labels as ManyChat sends them: human-readable form
// answer keys, not snake_case.
const (
	fieldCheckIn    = "Check in Date"
	fieldCheckOut   = "Check Out Date"
	fieldAdults     = "Adults"
	fieldChildren   = "Children"
	fieldPets       = "Pets"
	fieldEmail      = "Email"
	fieldPhone      = "Phone"
	fieldPropertyID = "Property ID"
	fieldBedrooms   = "Bedrooms"
)

// ValidationError marks a missing required inbound field. The request
// boundary maps it to HTTP 400.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// BookingRequest is the normalized form of one inbound submission.
// Immutable after NormalizeBookingRequest; dates stay wire strings and
// pass through to the API untouched.
type BookingRequest struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string

	CheckIn  string
	CheckOut string

	Adults   int
	Children int
	Pets     int

	PropertyID  string
	BedroomsMin int
}

// NormalizeBookingRequest extracts and defaults the loosely-typed fields of
// a chat-bot submission. Check-in and check-out come only from
// custom_fields and are required; everything else is defaulted when absent.
// No further validation happens here; malformed values pass through to
// the outbound call unchanged.
func NormalizeBookingRequest(payload map[string]any) (*BookingRequest, error) {
	custom, _ := payload["custom_fields"].(map[string]any)

	checkIn := stringField(custom, fieldCheckIn)
	if checkIn == "" {
		return nil, &ValidationError{Field: fieldCheckIn}
	}
	checkOut := stringField(custom, fieldCheckOut)
	if checkOut == "" {
		return nil, &ValidationError{Field: fieldCheckOut}
	}

	propertyID := stringField(custom, fieldPropertyID)
	if propertyID == "" {
		propertyID = stringField(payload, "property_id")
	}

	return &BookingRequest{
		FirstName:   stringField(payload, "first_name"),
		LastName:    stringField(payload, "last_name"),
		Email:       stringOr(custom, fieldEmail, placeholderEmail),
		Phone:       stringOr(custom, fieldPhone, placeholderPhone),
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Adults:      intOr(custom, fieldAdults, 1),
		Children:    intOr(custom, fieldChildren, 0),
		Pets:        intOr(custom, fieldPets, 0),
		PropertyID:  propertyID,
		BedroomsMin: intOr(custom, fieldBedrooms, 0),
	}, nil
}

func stringField(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

func stringOr(m map[string]any, key, fallback string) string {
	if s := stringField(m, key); s != "" {
		return s
	}
	return fallback
}

// intOr coerces a chat form answer into an int with first-falsy-wins
// semantics: nil, "", 0, "0" and unparseable values all count as absent
// and take the default.
func intOr(m map[string]any, key string, fallback int) int {
	if m == nil {
		return fallback
	}
	var n int
	switch v := m[key].(type) {
	case float64:
		n = int(v)
	case int:
		n = v
	case string:
		n, _ = strconv.Atoi(strings.TrimSpace(v))
	}
	if n == 0 {
		return fallback
	}
	return n
}
