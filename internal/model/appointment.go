package model

import (
	"time"

	"github.com/google/uuid"
)

// Appointment status constants. Pending is the only non-terminal state;
// completed and done are both terminal (two historical completion paths).
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusDone      = "done"
)

// AppointmentIDPrefix prefixes generated appointment identifiers.
const AppointmentIDPrefix = "APT-"

// Appointment represents a booking between a doctor and a patient.
type Appointment struct {
	AppointmentID   string     `json:"appointment_id" db:"appointment_id"`
	PatientID       string     `json:"patient_id" db:"patient_id"`
	DoctorID        string     `json:"doctor_id" db:"doctor_id"`
	AppointmentDate string     `json:"appointment_date" db:"appointment_date"`
	AppointmentTime *string    `json:"appointment_time" db:"appointment_time"`
	Status          string     `json:"status" db:"status"`
	Notes           *string    `json:"notes" db:"notes"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	CompletedAt     *time.Time `json:"completed_at" db:"completed_at"`
}

// IsPending reports whether the appointment can still transition.
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// NewAppointmentID generates a prefixed appointment identifier.
func NewAppointmentID() string {
	return AppointmentIDPrefix + uuid.New().String()
}

// AppointmentDetail is an appointment joined with patient account and
// profile data, as listed on the doctor's schedule.
type AppointmentDetail struct {
	Appointment
	PatientName       string  `json:"patient_name" db:"patient_name"`
	PatientEmail      string  `json:"patient_email" db:"patient_email"`
	PatientPhone      string  `json:"patient_phone" db:"patient_phone"`
	PatientAge        *int    `json:"patient_age" db:"patient_age"`
	PatientGender     *string `json:"patient_gender" db:"patient_gender"`
	PatientBloodGroup *string `json:"patient_blood_group" db:"patient_blood_group"`
}

// CreateAppointmentRequest is the booking payload. Time is optional; no
// overlap check is performed, concurrent bookings per slot are allowed.
type CreateAppointmentRequest struct {
	PatientID       string `json:"patientId"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
}

// CompletionResult reports the outcome of a completion transition.
type CompletionResult struct {
	Appointment  *AppointmentDetail
	PatientAdded bool
	DocumentsOK  bool
}
