package repository

import (
	"context"
	"errors"

	"github.com/healthhub/healthhub-api/internal/model"
)

// Sentinel errors returned by repositories; services map them onto the
// HTTP error taxonomy.
var (
	ErrNotFound   = errors.New("not found")
	ErrNotPending = errors.New("appointment is not pending")
)

// UserRepository owns the users table.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetPublicByID(ctx context.Context, userID string) (*model.PublicUser, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	UpdateContact(ctx context.Context, userID, name, phone string) error
}

// AppointmentRepository owns the appointments table. Complete runs the
// status transition and the patient-record upsert in one transaction.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *model.Appointment) error
	GetDetail(ctx context.Context, appointmentID, doctorID string) (*model.AppointmentDetail, error)
	ListForDoctor(ctx context.Context, doctorID string) ([]*model.AppointmentDetail, error)
	Complete(ctx context.Context, appointmentID, doctorID, patientID, status string, notes *string) (patientAdded bool, err error)
	DeletePending(ctx context.Context, appointmentID, doctorID string) error
}

// PatientRecordRepository reads the patient_records table. Writes happen
// only through the appointment completion transaction.
type PatientRecordRepository interface {
	GetByPair(ctx context.Context, patientID, doctorID string) (*model.PatientRecord, error)
	ListDetails(ctx context.Context, doctorID string) ([]*model.PatientRecordDetail, error)
	RecentPatients(ctx context.Context, doctorID string, limit int) ([]*model.RecentPatient, error)
}

// DoctorRepository owns doctor_profiles and the doctor-facing aggregates.
type DoctorRepository interface {
	GetProfile(ctx context.Context, doctorID string) (*model.DoctorProfile, error)
	UpsertProfile(ctx context.Context, profile *model.DoctorProfile) (created bool, err error)
	ListDoctors(ctx context.Context) ([]*model.DoctorListing, error)
	DashboardStats(ctx context.Context, doctorID, today string) (*model.DoctorDashboardStats, error)
}

// PatientRepository owns patient_profiles and the patient-facing aggregates.
type PatientRepository interface {
	GetProfileView(ctx context.Context, patientID string) (*model.PatientProfileView, error)
	UpsertProfile(ctx context.Context, patientID string, req *model.PatientProfileRequest) (created bool, err error)
	GetPatientWithProfile(ctx context.Context, patientID string) (*model.PatientSearchResult, error)
	DashboardStats(ctx context.Context, patientID string) (*model.PatientDashboardStats, error)
}

// DocumentRepository owns patient_documents and appointment_documents.
type DocumentRepository interface {
	CreatePatientDocument(ctx context.Context, doc *model.PatientDocument) error
	CreateAppointmentDocument(ctx context.Context, doc *model.AppointmentDocument) error
	ListByPatient(ctx context.Context, patientID string) ([]*model.PatientDocumentMeta, error)
	GetForDownload(ctx context.Context, documentID, patientID string) (*model.PatientDocument, error)
	LatestProfileReport(ctx context.Context, patientID string) (*model.PatientDocument, error)
	DeleteProfileReports(ctx context.Context, patientID string) (int64, error)
}
