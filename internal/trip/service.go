// Package trip runs the planning flows of a session: place resolution, inventory
// searches, selection bookkeeping and bookings.
package trip

import (
	"errors"
	"strings"
	"time"

	"bitbucket.org/crgw/travel-planner/internal/registry"
	"bitbucket.org/crgw/travel-planner/internal/schema"
	"bitbucket.org/crgw/travel-planner/internal/trip/interfaces"
)

type Dependencies struct {
	Inventory interfaces.Inventory
	Resolver  interfaces.WithResolve
	Booking   interfaces.WithBook
	Registry  registry.Store
	// optional, nil disables itineraries
	Planner interfaces.WithItinerary
	// optional, nil disables the bookings listing
	Journal interfaces.WithBookingsJournal
}

type Service struct {
	inventory interfaces.Inventory
	resolver  interfaces.WithResolve
	booking   interfaces.WithBook
	registry  registry.Store
	planner   interfaces.WithItinerary
	journal   interfaces.WithBookingsJournal
	now       func() time.Time
}

func NewService(d Dependencies) *Service {
	return &Service{
		inventory: d.Inventory,
		resolver:  d.Resolver,
		booking:   d.Booking,
		registry:  d.Registry,
		planner:   d.Planner,
		journal:   d.Journal,
		now:       time.Now,
	}
}

type errorsCollector interface {
	AddError(schema.SupplierResponseError)
}

type requestsCollector interface {
	AddRequests(schema.SupplierRequests)
}

func supplierError(err error) schema.SupplierResponseError {
	var supplierErr schema.SupplierResponseError
	if errors.As(err, &supplierErr) {
		return supplierErr
	}

	return schema.NewSupplierError(err.Error())
}

func code(value string) string {
	return strings.ToUpper(strings.TrimSpace(value))
}

func statusOf(rows int, ok bool) schema.SearchStatus {
	if !ok {
		return schema.SearchStatusFailed
	}

	return schema.SearchStatusOf(rows, nil)
}
