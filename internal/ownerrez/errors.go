package ownerrez

import "fmt"

// The three remote-failure classes the orchestrator cares about. Each step
// of the booking sequence raises its own type so the request boundary can
// log the remote detail without leaking it to the chat caller.

type GuestCreationError struct {
	Err error
}

func (e *GuestCreationError) Error() string { return fmt.Sprintf("creating guest: %v", e.Err) }
func (e *GuestCreationError) Unwrap() error { return e.Err }

type QuoteCreationError struct {
	Err error
}

func (e *QuoteCreationError) Error() string { return fmt.Sprintf("creating quote: %v", e.Err) }
func (e *QuoteCreationError) Unwrap() error { return e.Err }

type AvailabilityCheckError struct {
	Err error
}

func (e *AvailabilityCheckError) Error() string {
	return fmt.Sprintf("checking availability: %v", e.Err)
}
func (e *AvailabilityCheckError) Unwrap() error { return e.Err }
