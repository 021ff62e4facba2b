package model

import "time"

// DoctorProfile is the one-to-one role extension of a doctor account,
// created lazily on first profile update.
type DoctorProfile struct {
	DoctorID        string    `json:"doctor_id" db:"doctor_id"`
	Speciality      string    `json:"speciality" db:"speciality"`
	Degree          string    `json:"degree" db:"degree"`
	Experience      string    `json:"experience" db:"experience"`
	ConsultationFee string    `json:"consultation_fee" db:"consultation_fee"`
	Address         string    `json:"address" db:"address"`
	Bio             *string   `json:"bio" db:"bio"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// DoctorProfileRequest is the profile upsert payload.
type DoctorProfileRequest struct {
	Speciality      string `json:"speciality"`
	Degree          string `json:"degree"`
	Experience      string `json:"experience"`
	ConsultationFee string `json:"consultation_fee"`
	Address         string `json:"address"`
	Bio             string `json:"bio"`
}

// DoctorListing is a doctor account joined with its profile, as shown in
// the patient-facing directory.
type DoctorListing struct {
	UserID          string  `json:"user_id" db:"user_id"`
	Name            string  `json:"name" db:"name"`
	Email           string  `json:"email" db:"email"`
	Phone           string  `json:"phone" db:"phone"`
	Speciality      *string `json:"speciality" db:"speciality"`
	Degree          *string `json:"degree" db:"degree"`
	Experience      *string `json:"experience" db:"experience"`
	ConsultationFee *string `json:"consultation_fee" db:"consultation_fee"`
	Address         *string `json:"address" db:"address"`
	Bio             *string `json:"bio" db:"bio"`
}

// DoctorDashboardStats aggregates a doctor's day at a glance.
type DoctorDashboardStats struct {
	TodayAppointments int `json:"todayAppointments"`
	TotalPatients     int `json:"totalPatients"`
	CompletedToday    int `json:"completedToday"`
	PendingToday      int `json:"pendingToday"`
}
