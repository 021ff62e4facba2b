package model

import "time"

// PatientProfile is the one-to-one role extension of a patient account,
// created lazily on first profile update.
type PatientProfile struct {
	PatientID             string    `json:"patient_id" db:"patient_id"`
	Age                   *int      `json:"age" db:"age"`
	Gender                *string   `json:"gender" db:"gender"`
	Weight                *string   `json:"weight" db:"weight"`
	Height                *string   `json:"height" db:"height"`
	BloodGroup            *string   `json:"blood_group" db:"blood_group"`
	Address               *string   `json:"address" db:"address"`
	MedicalHistory        *string   `json:"medical_history" db:"medical_history"`
	Allergies             *string   `json:"allergies" db:"allergies"`
	CurrentMedications    *string   `json:"current_medications" db:"current_medications"`
	EmergencyContactName  *string   `json:"emergency_contact_name" db:"emergency_contact_name"`
	EmergencyContactPhone *string   `json:"emergency_contact_phone" db:"emergency_contact_phone"`
	CreatedAt             time.Time `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time `json:"updated_at" db:"updated_at"`
}

// PatientProfileRequest is the profile upsert payload. Name and phone
// update the account row; the rest upserts the profile row.
type PatientProfileRequest struct {
	Name                  string `form:"name"`
	Phone                 string `form:"phone"`
	Age                   *int   `form:"age"`
	Gender                string `form:"gender"`
	Weight                string `form:"weight"`
	Height                string `form:"height"`
	BloodGroup            string `form:"blood_group"`
	Address               string `form:"address"`
	MedicalHistory        string `form:"medical_history"`
	Allergies             string `form:"allergies"`
	CurrentMedications    string `form:"current_medications"`
	EmergencyContactName  string `form:"emergency_contact_name"`
	EmergencyContactPhone string `form:"emergency_contact_phone"`
}

// PatientProfileView is the account row joined with the profile, as
// returned to the patient.
type PatientProfileView struct {
	PublicUser
	Age                   *int       `json:"age" db:"age"`
	Gender                *string    `json:"gender" db:"gender"`
	Weight                *string    `json:"weight" db:"weight"`
	Height                *string    `json:"height" db:"height"`
	BloodGroup            *string    `json:"blood_group" db:"blood_group"`
	Address               *string    `json:"address" db:"address"`
	MedicalHistory        *string    `json:"medical_history" db:"medical_history"`
	Allergies             *string    `json:"allergies" db:"allergies"`
	CurrentMedications    *string    `json:"current_medications" db:"current_medications"`
	EmergencyContactName  *string    `json:"emergency_contact_name" db:"emergency_contact_name"`
	EmergencyContactPhone *string    `json:"emergency_contact_phone" db:"emergency_contact_phone"`
	ProfileCreatedAt      *time.Time `json:"created_at" db:"profile_created_at"`
	ProfileUpdatedAt      *time.Time `json:"updated_at" db:"profile_updated_at"`
}

// PatientSearchResult is a patient account plus optional profile, as
// returned by the doctor's patient lookup.
type PatientSearchResult struct {
	PublicUser
	Profile *PatientProfile `json:"profile"`
	Record  *PatientRecord  `json:"record,omitempty"`
}

// PatientRecord tracks visit history per (patient, doctor) pair. Exactly
// one row per pair; total_visits only ever increments.
type PatientRecord struct {
	RecordID       int64     `json:"record_id" db:"record_id"`
	PatientID      string    `json:"patient_id" db:"patient_id"`
	DoctorID       string    `json:"doctor_id" db:"doctor_id"`
	FirstVisitDate time.Time `json:"first_visit_date" db:"first_visit_date"`
	LastVisitDate  time.Time `json:"last_visit_date" db:"last_visit_date"`
	TotalVisits    int       `json:"total_visits" db:"total_visits"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// PatientRecordDetail is a record joined with account and profile data.
type PatientRecordDetail struct {
	PatientRecord
	PatientName        string  `json:"patient_name" db:"patient_name"`
	PatientEmail       string  `json:"patient_email" db:"patient_email"`
	PatientPhone       string  `json:"patient_phone" db:"patient_phone"`
	Age                *int    `json:"age" db:"age"`
	Gender             *string `json:"gender" db:"gender"`
	BloodGroup         *string `json:"blood_group" db:"blood_group"`
	Address            *string `json:"address" db:"address"`
	MedicalHistory     *string `json:"medical_history" db:"medical_history"`
	Allergies          *string `json:"allergies" db:"allergies"`
	CurrentMedications *string `json:"current_medications" db:"current_medications"`
}

// RecentPatient summarizes a record for the doctor's dashboard.
type RecentPatient struct {
	PatientID       string     `json:"patient_id" db:"patient_id"`
	PatientName     string     `json:"patient_name" db:"patient_name"`
	PatientEmail    string     `json:"patient_email" db:"patient_email"`
	PatientPhone    string     `json:"patient_phone" db:"patient_phone"`
	Age             *int       `json:"age" db:"age"`
	Gender          *string    `json:"gender" db:"gender"`
	BloodGroup      *string    `json:"blood_group" db:"blood_group"`
	LastAppointment *time.Time `json:"last_appointment" db:"last_appointment"`
	TotalVisits     int        `json:"total_visits" db:"total_visits"`
}

// PatientDashboardStats aggregates a patient's activity.
type PatientDashboardStats struct {
	TotalAppointments     int `json:"totalAppointments" db:"total_appointments"`
	CompletedAppointments int `json:"completedAppointments" db:"completed_appointments"`
	PendingAppointments   int `json:"pendingAppointments" db:"pending_appointments"`
	TotalReports          int `json:"totalReports" db:"total_reports"`
	UniqueDoctors         int `json:"uniqueDoctors" db:"unique_doctors"`
}
