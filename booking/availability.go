package booking

import "medibook/models"

// defaultDate is the fallback when /available is called without ?date.
// Kept for compatibility with existing clients; almost certainly a
// development-time placeholder in the portal this replaces.
const defaultDate = "May 15, 2022"

// ResolveAvailability computes each service's remaining open slots for one
// date: the service's template minus every slot already booked for that
// service, template order preserved. It ignores who booked a slot — a slot
// taken by anyone is gone for everyone. The caller is responsible for
// passing only bookings whose date matches the requested one.
func ResolveAvailability(services []models.Service, bookings []models.Booking) []models.AvailabilityView {
	views := make([]models.AvailabilityView, 0, len(services))
	for _, svc := range services {
		booked := make(map[string]bool)
		for _, b := range bookings {
			if b.TreatmentName == svc.Name {
				booked[b.Slot] = true
			}
		}

		remaining := make([]string, 0, len(svc.Slots))
		for _, slot := range svc.Slots {
			if !booked[slot] {
				remaining = append(remaining, slot)
			}
		}

		views = append(views, models.AvailabilityView{
			Name:  svc.Name,
			Price: svc.Price,
			Slots: remaining,
		})
	}
	return views
}
