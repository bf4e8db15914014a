package booking

import (
	"context"

	"medibook/models"
	"medibook/utils"
)

// Guard enforces the one-booking-per-patient-per-service-per-date rule.
type Guard struct {
	store Store
}

func NewGuard(store Store) *Guard {
	return &Guard{store: store}
}

// TryCreate persists the candidate unless a booking with the same
// (treatmentName, date, patient) already exists, in which case the existing
// booking is returned and nothing is written. The check and the insert are
// two separate store calls with no transaction between them, so two
// concurrent requests for the same triple can both pass the check; that
// matches the portal this replaces. Nothing checks that the slot belongs to
// the service template, and nothing stops two different patients from
// taking the same slot.
func (g *Guard) TryCreate(ctx context.Context, candidate models.Booking) (models.Booking, *models.Booking, error) {
	existing, err := g.store.FindBooking(ctx, candidate.TreatmentName, candidate.Date, candidate.Patient)
	if err != nil {
		return models.Booking{}, nil, err
	}
	if existing != nil {
		return models.Booking{}, existing, nil
	}

	if candidate.ID == "" {
		candidate.ID = utils.GetUUID()
	}
	if candidate.Code == "" {
		candidate.Code = utils.GenerateRandomDigitString(8)
	}
	if err := g.store.InsertBooking(ctx, candidate); err != nil {
		return models.Booking{}, nil, err
	}
	return candidate, nil, nil
}
