package models

import "time"

// Service is a treatment type with its fixed daily slot template. The slots
// field is the full configured set, not remaining availability.
type Service struct {
	Name  string   `json:"name" bson:"name"`
	Price int64    `json:"price,omitempty" bson:"price,omitempty"`
	Slots []string `json:"slots,omitempty" bson:"slots,omitempty"`
}

// AvailabilityView is the derived per-date answer for one service: the
// template slots minus whatever is already booked. Never persisted.
type AvailabilityView struct {
	Name  string   `json:"name"`
	Price int64    `json:"price,omitempty"`
	Slots []string `json:"slots"`
}

// Booking is a patient's reservation of one slot for one service on one
// date. At most one booking may exist per (treatmentName, date, patient).
type Booking struct {
	ID            string `json:"id" bson:"id"`
	Code          string `json:"confirmationCode,omitempty" bson:"confirmationCode,omitempty"`
	TreatmentName string `json:"treatmentName" bson:"treatmentName"`
	Date          string `json:"date" bson:"date"`
	Slot          string `json:"slot" bson:"slot"`
	Patient       string `json:"patient" bson:"patient"`
	PatientName   string `json:"patientName,omitempty" bson:"patientName,omitempty"`
	Phone         string `json:"phone,omitempty" bson:"phone,omitempty"`
	Price         int64  `json:"price,omitempty" bson:"price,omitempty"`
	Paid          bool   `json:"paid" bson:"paid"`
	TransactionID string `json:"transactionId,omitempty" bson:"transactionId,omitempty"`
}

type User struct {
	Email string `json:"email" bson:"email"`
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Role  string `json:"role,omitempty" bson:"role,omitempty"`
}

type Doctor struct {
	Email     string `json:"email" bson:"email"`
	Name      string `json:"name" bson:"name"`
	Specialty string `json:"specialty,omitempty" bson:"specialty,omitempty"`
	Education string `json:"education,omitempty" bson:"education,omitempty"`
	Img       string `json:"img,omitempty" bson:"img,omitempty"`
	Thumb     string `json:"thumb,omitempty" bson:"thumb,omitempty"`
}

// Payment mirrors the transaction fields recorded when a booking is paid.
type Payment struct {
	ID            string    `json:"id" bson:"id"`
	BookingID     string    `json:"bookingId" bson:"bookingId"`
	Patient       string    `json:"patient,omitempty" bson:"patient,omitempty"`
	Amount        int64     `json:"amount,omitempty" bson:"amount,omitempty"`
	TransactionID string    `json:"transactionId" bson:"transactionId"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}
