package booking_test

import (
	"context"

	"medibook/models"
)

// fakeStore is an in-memory Store for tests.
type fakeStore struct {
	services  []models.Service
	bookings  []models.Booking
	insertErr error
	findErr   error
}

func (f *fakeStore) Services(ctx context.Context) ([]models.Service, error) {
	return f.services, nil
}

func (f *fakeStore) ServiceSummaries(ctx context.Context) ([]models.Service, error) {
	summaries := make([]models.Service, 0, len(f.services))
	for _, s := range f.services {
		summaries = append(summaries, models.Service{Name: s.Name, Price: s.Price})
	}
	return summaries, nil
}

func (f *fakeStore) BookingsForDate(ctx context.Context, date string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Date == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) BookingsForPatient(ctx context.Context, patient string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Patient == patient {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeStore) FindBooking(ctx context.Context, treatmentName, date, patient string) (*models.Booking, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for i := range f.bookings {
		b := f.bookings[i]
		if b.TreatmentName == treatmentName && b.Date == date && b.Patient == patient {
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertBooking(ctx context.Context, b models.Booking) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.bookings = append(f.bookings, b)
	return nil
}

func (f *fakeStore) BookingByID(ctx context.Context, id string) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			b := f.bookings[i]
			return &b, nil
		}
	}
	return nil, nil
}
