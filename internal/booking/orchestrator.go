package booking

import (
	"context"
	"log"
	"time"

	"github.com/villarosa/bookline/internal/ownerrez"
	"github.com/villarosa/bookline/internal/store"
)

// State tags the progress of one request through the booking sequence.
// Transitions are strictly sequential; a failure at any step short-circuits
// to the terminal error, which the request boundary translates into a
// caller-safe payload.
type State string

const (
	StateReceived            State = "received"
	StateNormalized          State = "normalized"
	StateAvailabilityChecked State = "availability_checked"
	StatePropertiesListed    State = "properties_listed"
	StateGuestCreated        State = "guest_created"
	StateQuoteCreated        State = "quote_created"
	StateResponded           State = "responded"
)

// Orchestrator sequences the outbound calls for each request variant:
// simple inquiry, availability-gated quote, and multi-property search with
// deferred selection. It holds no per-request state.
type Orchestrator struct {
	rez               *ownerrez.Client
	fields            store.FieldStore
	defaultPropertyID string
}

func NewOrchestrator(rez *ownerrez.Client, fields store.FieldStore, defaultPropertyID string) *Orchestrator {
	return &Orchestrator{rez: rez, fields: fields, defaultPropertyID: defaultPropertyID}
}

// InquiryResult is the outcome of a completed inquiry or quote sequence.
type InquiryResult struct {
	Available bool
	Guest     *ownerrez.Guest
	Quote     *ownerrez.Quote
}

// CreateInquiry runs the simple variant: create guest, then quote.
func (o *Orchestrator) CreateInquiry(ctx context.Context, req *BookingRequest) (*InquiryResult, error) {
	propertyID, err := o.resolveProperty(req)
	if err != nil {
		return nil, err
	}
	return o.createGuestAndQuote(ctx, req, propertyID)
}

// CreateQuote runs the availability-gated variant: the date range is
// checked first, and unavailable dates skip guest and quote entirely so no
// remote records exist for a stay that cannot happen.
func (o *Orchestrator) CreateQuote(ctx context.Context, req *BookingRequest) (*InquiryResult, error) {
	propertyID, err := o.resolveProperty(req)
	if err != nil {
		return nil, err
	}

	available, err := o.rez.CheckAvailability(ctx, propertyID, req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}
	log.Printf("orchestrator: %s property %s %s..%s available=%t",
		StateAvailabilityChecked, propertyID, req.CheckIn, req.CheckOut, available)
	if !available {
		return &InquiryResult{Available: false}, nil
	}

	return o.createGuestAndQuote(ctx, req, propertyID)
}

func (o *Orchestrator) createGuestAndQuote(ctx context.Context, req *BookingRequest, propertyID string) (*InquiryResult, error) {
	guest, err := o.rez.CreateGuest(ctx, ownerrez.GuestInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("orchestrator: %s guest %s", StateGuestCreated, guest.ID)

	quote, err := o.rez.CreateQuote(ctx, ownerrez.QuoteInput{
		PropertyID: propertyID,
		GuestID:    guest.ID,
		Arrival:    req.CheckIn,
		Departure:  req.CheckOut,
		Adults:     req.Adults,
		Children:   req.Children,
		Pets:       req.Pets,
	})
	if err != nil {
		return nil, err
	}
	log.Printf("orchestrator: %s quote %s for guest %s", StateQuoteCreated, quote.ID, guest.ID)

	return &InquiryResult{Available: true, Guest: guest, Quote: quote}, nil
}

// ListProperties is an unconditional passthrough of the remote listing.
func (o *Orchestrator) ListProperties(ctx context.Context) ([]ownerrez.Property, error) {
	return o.rez.ListProperties(ctx)
}

// SearchProperties runs the multi-property variant and returns the matches,
// possibly none. Selection happens in a later, independent request.
func (o *Orchestrator) SearchProperties(ctx context.Context, criteria ownerrez.SearchCriteria) ([]ownerrez.Property, error) {
	props, err := o.rez.SearchProperties(ctx, criteria)
	if err != nil {
		return nil, err
	}
	log.Printf("orchestrator: %s %d matches %s..%s",
		StatePropertiesListed, len(props), criteria.AvailableFrom, criteria.AvailableTo)
	return props, nil
}

// SelectProperty validates and echoes a deferred property selection,
// persisting it into the conversation field store for downstream steps.
// No remote calls are made.
func (o *Orchestrator) SelectProperty(subscriberID, propertyID, propertyName string) (*store.Selection, error) {
	if propertyID == "" {
		return nil, &ValidationError{Field: "property_id"}
	}

	sel := &store.Selection{
		PropertyID:   propertyID,
		PropertyName: propertyName,
		SelectedAt:   time.Now(),
	}
	if subscriberID == "" {
		// Anonymous selection: acknowledged but not persisted.
		return sel, nil
	}
	if err := o.fields.SaveSelection(subscriberID, *sel); err != nil {
		log.Printf("orchestrator: saving selection for %s: %v", subscriberID, err)
	}
	return sel, nil
}

func (o *Orchestrator) resolveProperty(req *BookingRequest) (string, error) {
	if req.PropertyID != "" {
		return req.PropertyID, nil
	}
	if o.defaultPropertyID != "" {
		return o.defaultPropertyID, nil
	}
	return "", &ValidationError{Field: "property_id"}
}
