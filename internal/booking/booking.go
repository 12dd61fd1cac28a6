// Package booking submits hotel bookings for a previously selected offer.
package booking

import (
	"context"
	jsonEncoding "encoding/json"
	"errors"
	"time"

	"bitbucket.org/crgw/travel-planner/internal/amadeus"
	"bitbucket.org/crgw/travel-planner/internal/amadeus/json"
	"bitbucket.org/crgw/travel-planner/internal/schema"
	"bitbucket.org/crgw/travel-planner/internal/tools/metrics"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const paymentMethod = "creditCard"

type BookingClient interface {
	HotelBooking(ctx context.Context, booking json.HotelBookingRQ, logger *zerolog.Logger) (amadeus.Response, error)
}

// Journal keeps confirmed bookings.
type Journal interface {
	Record(ctx context.Context, record schema.BookingRecord) error
}

type Submitter struct {
	client  BookingClient
	journal Journal
}

// New returns a submitter, journal may be nil.
func New(client BookingClient, journal Journal) *Submitter {
	return &Submitter{
		client:  client,
		journal: journal,
	}
}

// Payload carries exactly one guest and one payment.
func Payload(offerID string, traveler schema.TravelerInfo, payment schema.PaymentInfo) json.HotelBookingRQ {
	return json.HotelBookingRQ{
		Data: json.HotelBookingRQData{
			OfferId: offerID,
			Guests: []json.HotelBookingRQGuest{
				{
					Name: json.HotelBookingRQName{
						Title:     traveler.Title,
						FirstName: traveler.FirstName,
						LastName:  traveler.LastName,
					},
					Contact: json.HotelBookingRQContact{
						Phone: traveler.Phone,
						Email: traveler.Email,
					},
				},
			},
			Payments: []json.HotelBookingRQPayment{
				{
					Method: paymentMethod,
					Card: json.HotelBookingRQCard{
						VendorCode: payment.VendorCode,
						CardNumber: payment.CardNumber,
						ExpiryDate: payment.ExpiryDate,
					},
				},
			},
		},
	}
}

// Book never fails with an error, a rejected booking is a result carrying the message.
func (s *Submitter) Book(
	ctx context.Context,
	sessionID string,
	offerID string,
	traveler schema.TravelerInfo,
	payment schema.PaymentInfo,
	logger *zerolog.Logger,
) schema.BookingResponse {
	errorsBucket := schema.NewErrorsBucket()
	bookingResponse := schema.BookingResponse{
		Errors: errorsBucket.Errors(),
	}

	response, err := s.client.HotelBooking(ctx, Payload(offerID, traveler, payment), logger)
	bookingResponse.SupplierRequests = &response.SupplierRequests

	if err != nil {
		var supplierErr schema.SupplierResponseError
		if !errors.As(err, &supplierErr) {
			supplierErr = schema.NewSupplierError(err.Error())
		}

		logger.Warn().
			Err(err).
			Str("offerId", offerID).
			Msg("Hotel booking rejected")
		metrics.Bookings.WithLabelValues("failed").Inc()

		errorsBucket.AddError(supplierErr)
		bookingResponse.BookingResult = schema.NewFailedBooking(supplierErr.Message)

		return bookingResponse
	}

	confirmation, _ := jsonEncoding.Marshal(response.Data)
	bookingResponse.BookingResult = schema.BookingResult{Data: confirmation}
	metrics.Bookings.WithLabelValues("confirmed").Inc()

	if s.journal != nil {
		record := schema.BookingRecord{
			ID:           uuid.NewString(),
			SessionID:    sessionID,
			OfferID:      offerID,
			Confirmation: confirmation,
			CreatedAt:    time.Now().UTC(),
		}

		if err := s.journal.Record(ctx, record); err != nil {
			logger.Error().
				Err(err).
				Str("offerId", offerID).
				Msg("Unable to record the booking")
		}
	}

	return bookingResponse
}
