package webhook

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/villarosa/bookline/internal/booking"
	"github.com/villarosa/bookline/internal/manychat"
	"github.com/villarosa/bookline/internal/ownerrez"
)

// selectPropertyPath is where search-result buttons post their payload back.
const selectPropertyPath = "/api/select-property"

// maxPropertyButtons caps the buttons attached to a search reply; the chat
// platform truncates anything longer.
const maxPropertyButtons = 10

type Handler struct {
	orch *booking.Orchestrator
}

func NewHandler(orch *booking.Orchestrator) *Handler {
	return &Handler{orch: orch}
}

// Register mounts every inbound route on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/webhook", h.HandlePassthrough)
	r.Post("/webhook/createInquiry", h.HandleCreateInquiry)
	r.Post("/webhook/createQuotes", h.HandleCreateQuotes)
	r.Get("/list/properties", h.HandleListProperties)
	r.Post("/list/properties/checkAvailability", h.HandleCheckAvailability)
	r.Post(selectPropertyPath, h.HandleSelectProperty)
}

// HandlePassthrough acknowledges a webhook delivery without acting on it.
// Kept for flows that only need the bot to confirm receipt.
func (h *Handler) HandlePassthrough(w http.ResponseWriter, r *http.Request) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err == nil {
		log.Printf("webhook: received passthrough payload with %d fields", len(payload))
	}
	respondJSON(w, http.StatusOK, map[string]any{})
}

// HandleCreateInquiry runs the simple inquiry variant: normalize, create
// guest, create quote, reply with the booking link.
func (h *Handler) HandleCreateInquiry(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeBookingRequest(w, r)
	if !ok {
		return
	}

	result, err := h.orch.CreateInquiry(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"text": quoteReadyText(req.FirstName, result.Quote),
	})
}

// HandleCreateQuotes runs the availability-gated variant. Unavailable dates
// get a rejection message and isAvailable=false without creating any
// remote records.
func (h *Handler) HandleCreateQuotes(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeBookingRequest(w, r)
	if !ok {
		return
	}

	result, err := h.orch.CreateQuote(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if !result.Available {
		respondJSON(w, http.StatusOK, map[string]any{
			"text":        fmt.Sprintf("Sorry %s, those dates are not available. Please try a different date range.", req.FirstName),
			"isAvailable": false,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"text":        quoteReadyText(req.FirstName, result.Quote),
		"isAvailable": true,
	})
}

func (h *Handler) HandleListProperties(w http.ResponseWriter, r *http.Request) {
	props, err := h.orch.ListProperties(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"properties": props})
}

// HandleCheckAvailability runs the multi-property search variant and
// replies with selectable property buttons.
func (h *Handler) HandleCheckAvailability(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CheckIn   string `json:"checkIn"`
		CheckOut  string `json:"checkOut"`
		Guests    int    `json:"guests"`
		Childrens int    `json:"childrens"`
		Pets      int    `json:"pets"`
		Bedrooms  int    `json:"bedrooms"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return
	}
	if body.CheckIn == "" {
		h.writeError(w, &booking.ValidationError{Field: "checkIn"})
		return
	}
	if body.CheckOut == "" {
		h.writeError(w, &booking.ValidationError{Field: "checkOut"})
		return
	}

	// Children count toward total occupancy for the search.
	props, err := h.orch.SearchProperties(r.Context(), ownerrez.SearchCriteria{
		AvailableFrom: body.CheckIn,
		AvailableTo:   body.CheckOut,
		GuestsMin:     body.Guests + body.Childrens,
		BedroomsMin:   body.Bedrooms,
		Pets:          body.Pets,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	if len(props) == 0 {
		respondJSON(w, http.StatusOK, manychat.TextEnvelope(
			"Sorry, no properties found matching your search. Please try different dates or fewer filters."))
		return
	}

	if len(props) > maxPropertyButtons {
		props = props[:maxPropertyButtons]
	}
	buttons := make([]manychat.Button, len(props))
	for i, p := range props {
		buttons[i] = manychat.CallbackButton(p.Name, selectPropertyPath, map[string]any{
			"property_id":   p.ID,
			"property_name": p.Name,
		})
	}

	text := fmt.Sprintf("We found %d properties available from %s to %s. Pick one to continue:",
		len(buttons), body.CheckIn, body.CheckOut)
	respondJSON(w, http.StatusOK, manychat.ButtonsEnvelope(text, buttons))
}

// HandleSelectProperty echoes a deferred property selection and stores it
// for later conversation steps. No remote calls.
func (h *Handler) HandleSelectProperty(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PropertyID   string `json:"property_id"`
		PropertyName string `json:"property_name"`
		SubscriberID string `json:"subscriber_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return
	}

	sel, err := h.orch.SelectProperty(body.SubscriberID, body.PropertyID, body.PropertyName)
	if err != nil {
		h.writeError(w, err)
		return
	}

	name := sel.PropertyName
	if name == "" {
		name = sel.PropertyID
	}
	respondJSON(w, http.StatusOK, manychat.TextEnvelope(
		fmt.Sprintf("Great choice! You selected %s. We'll use it for your booking details.", name)))
}

func (h *Handler) decodeBookingRequest(w http.ResponseWriter, r *http.Request) (*booking.BookingRequest, bool) {
	var payload map[string]any
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid request body"})
		return nil, false
	}

	req, err := booking.NormalizeBookingRequest(payload)
	if err != nil {
		h.writeError(w, err)
		return nil, false
	}
	return req, true
}

// writeError translates a failure into the caller-safe payload for its
// class: missing inbound fields are the caller's fault, everything else is
// reported generically with the remote detail kept in the logs.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var vErr *booking.ValidationError
	if errors.As(err, &vErr) {
		respondJSON(w, http.StatusBadRequest, map[string]any{"error": vErr.Error()})
		return
	}

	var gErr *ownerrez.GuestCreationError
	var qErr *ownerrez.QuoteCreationError
	var aErr *ownerrez.AvailabilityCheckError
	switch {
	case errors.As(err, &gErr):
		log.Printf("webhook: guest creation failed: %v", err)
	case errors.As(err, &qErr):
		log.Printf("webhook: quote creation failed: %v", err)
	case errors.As(err, &aErr):
		log.Printf("webhook: availability check failed: %v", err)
	default:
		log.Printf("webhook: unexpected error: %v", err)
	}
	respondJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
}

func quoteReadyText(firstName string, quote *ownerrez.Quote) string {
	if firstName == "" {
		firstName = "there"
	}
	return fmt.Sprintf("Thanks %s! Your quote is ready. Complete your booking here: %s",
		firstName, quote.PaymentLink)
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("webhook: encoding response: %v", err)
	}
}
