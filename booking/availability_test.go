package booking_test

import (
	"testing"

	"medibook/booking"
	"medibook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAvailability(t *testing.T) {
	cleaning := models.Service{Name: "Cleaning", Price: 100, Slots: []string{"9am", "10am", "11am"}}
	whitening := models.Service{Name: "Whitening", Price: 300, Slots: []string{"1pm", "2pm"}}

	t.Run("booked slot is removed for everyone", func(t *testing.T) {
		bookings := []models.Booking{
			{TreatmentName: "Cleaning", Date: "2024-01-01", Slot: "10am", Patient: "a@x.com"},
		}

		views := booking.ResolveAvailability([]models.Service{cleaning}, bookings)

		require.Len(t, views, 1)
		assert.Equal(t, "Cleaning", views[0].Name)
		assert.Equal(t, []string{"9am", "11am"}, views[0].Slots)
	})

	t.Run("service with no bookings keeps its full template in order", func(t *testing.T) {
		bookings := []models.Booking{
			{TreatmentName: "Cleaning", Date: "2024-01-01", Slot: "9am", Patient: "a@x.com"},
		}

		views := booking.ResolveAvailability([]models.Service{cleaning, whitening}, bookings)

		require.Len(t, views, 2)
		assert.Equal(t, []string{"10am", "11am"}, views[0].Slots)
		assert.Equal(t, []string{"1pm", "2pm"}, views[1].Slots)
	})

	t.Run("no bookings at all leaves every service untouched", func(t *testing.T) {
		views := booking.ResolveAvailability([]models.Service{cleaning, whitening}, nil)

		require.Len(t, views, 2)
		assert.Equal(t, cleaning.Slots, views[0].Slots)
		assert.Equal(t, whitening.Slots, views[1].Slots)
	})

	t.Run("output never contains a booked slot", func(t *testing.T) {
		bookings := []models.Booking{
			{TreatmentName: "Cleaning", Slot: "9am", Patient: "a@x.com"},
			{TreatmentName: "Cleaning", Slot: "11am", Patient: "b@x.com"},
			{TreatmentName: "Whitening", Slot: "1pm", Patient: "c@x.com"},
		}

		views := booking.ResolveAvailability([]models.Service{cleaning, whitening}, bookings)

		booked := map[string]map[string]bool{
			"Cleaning":  {"9am": true, "11am": true},
			"Whitening": {"1pm": true},
		}
		for _, v := range views {
			for _, slot := range v.Slots {
				assert.False(t, booked[v.Name][slot], "slot %s of %s should be gone", slot, v.Name)
			}
		}
	})

	t.Run("pure: repeated calls yield identical output", func(t *testing.T) {
		bookings := []models.Booking{
			{TreatmentName: "Cleaning", Slot: "10am", Patient: "a@x.com"},
		}
		services := []models.Service{cleaning, whitening}

		first := booking.ResolveAvailability(services, bookings)
		second := booking.ResolveAvailability(services, bookings)

		assert.Equal(t, first, second)
		// inputs are untouched
		assert.Equal(t, []string{"9am", "10am", "11am"}, cleaning.Slots)
	})

	t.Run("slots booked for one service do not affect another", func(t *testing.T) {
		overlapping := models.Service{Name: "Checkup", Slots: []string{"10am"}}
		bookings := []models.Booking{
			{TreatmentName: "Cleaning", Slot: "10am", Patient: "a@x.com"},
		}

		views := booking.ResolveAvailability([]models.Service{cleaning, overlapping}, bookings)

		require.Len(t, views, 2)
		assert.Equal(t, []string{"9am", "11am"}, views[0].Slots)
		assert.Equal(t, []string{"10am"}, views[1].Slots)
	})
}
