package ownerrez

// GuestInput is the payload for POST /v2/guests.
type GuestInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type Guest struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// QuoteInput is the payload for POST /v2/quotes. Dates are wire strings
// (YYYY-MM-DD) passed through from the chat platform untouched.
type QuoteInput struct {
	PropertyID string `json:"property_id"`
	GuestID    string `json:"guest_id"`
	Arrival    string `json:"arrival"`
	Departure  string `json:"departure"`
	Adults     int    `json:"adults"`
	Children   int    `json:"children"`
	Pets       int    `json:"pets"`
}

type Quote struct {
	ID          string `json:"id"`
	PropertyID  string `json:"property_id"`
	GuestID     string `json:"guest_id"`
	Arrival     string `json:"arrival"`
	Departure   string `json:"departure"`
	Adults      int    `json:"adults"`
	Children    int    `json:"children"`
	Pets        int    `json:"pets"`
	PaymentLink string `json:"payment_link"`
}

type Property struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Bedrooms    int    `json:"bedrooms"`
	MaxGuests   int    `json:"max_guests"`
	PetsAllowed bool   `json:"pets_allowed"`
}

// propertyPage is the paged envelope OwnerRez wraps listings in.
type propertyPage struct {
	Items []Property `json:"items"`
}

type DayAvailability struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
}

// PropertyAvailability is the day-level calendar for one property over a
// requested range. Transient; it only drives the availability gate.
type PropertyAvailability struct {
	PropertyID string            `json:"property_id"`
	Name       string            `json:"name"`
	Location   string            `json:"location"`
	Days       []DayAvailability `json:"days"`
}

// AllDaysAvailable reports whether every returned day is bookable. An empty
// day list counts as available: the remote omits days it has no blocks for.
func (a *PropertyAvailability) AllDaysAvailable() bool {
	for _, d := range a.Days {
		if !d.Available {
			return false
		}
	}
	return true
}

// SearchCriteria filters the multi-property search. Dates are wire strings.
type SearchCriteria struct {
	AvailableFrom string
	AvailableTo   string
	GuestsMin     int
	BedroomsMin   int
	Pets          int
}
