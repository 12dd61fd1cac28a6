package trip

import (
	"context"
	"errors"
	"fmt"

	"bitbucket.org/crgw/travel-planner/internal/registry"
	"bitbucket.org/crgw/travel-planner/internal/schema"
	"github.com/rs/zerolog"
)

// BookHotel books the offer behind a row of the latest search of the given context.
// A row the latest search did not produce is answered without calling the supplier.
func (s *Service) BookHotel(
	ctx context.Context,
	sessionID string,
	params schema.BookingRequestParams,
	logger *zerolog.Logger,
) (schema.BookingResponse, error) {
	entry, err := registry.Lookup(ctx, s.registry, sessionID, params.Context, *params.RowIndex)
	if err != nil {
		if !errors.Is(err, registry.ErrSelectionInvalid) {
			return schema.BookingResponse{}, err
		}

		logger.Info().
			Str("context", string(params.Context)).
			Int("rowIndex", *params.RowIndex).
			Msg("Booking of a stale selection")

		errorsBucket := schema.NewErrorsBucket()
		errorsBucket.AddError(schema.NewNotFoundError(
			fmt.Sprintf("row %d of %s is not part of the latest search", *params.RowIndex, params.Context),
		))

		return schema.BookingResponse{
			BookingResult:    schema.NewFailedBooking(registry.ErrSelectionInvalid.Error()),
			Errors:           errorsBucket.Errors(),
			SupplierRequests: &schema.SupplierRequests{},
		}, nil
	}

	return s.booking.Book(ctx, sessionID, entry.OfferID, params.Traveler, params.Payment, logger), nil
}

// Bookings lists the confirmed bookings of a session, oldest first.
func (s *Service) Bookings(ctx context.Context, sessionID string) (schema.BookingsResponse, error) {
	if s.journal == nil {
		return schema.BookingsResponse{}, ErrorNotImplemented
	}

	records, err := s.journal.ListBySession(ctx, sessionID)
	if err != nil {
		return schema.BookingsResponse{}, err
	}

	return schema.BookingsResponse{Bookings: records}, nil
}
