package model

import (
	"time"

	"github.com/google/uuid"
)

// Document source tags. A single patient_documents table backs both the
// explicit upload path and the profile medical report.
const (
	DocumentSourceUpload  = "upload"
	DocumentSourceProfile = "profile"
)

// Upload policy: PDF only, at most 10MB, at most 10 files per
// appointment completion.
const (
	DocumentMIMEType    = "application/pdf"
	MaxDocumentSize     = 10 << 20
	MaxCompletionUpload = 10
)

// Appointment document categories.
const (
	FileCategoryPrescription = "prescription"
	FileCategoryReport       = "report"
)

// PatientDocument is an immutable binary document owned by a patient.
type PatientDocument struct {
	DocumentID     string    `json:"document_id" db:"document_id"`
	PatientID      string    `json:"patient_id" db:"patient_id"`
	UploadedByID   string    `json:"uploaded_by_id" db:"uploaded_by_id"`
	UploadedByName string    `json:"uploaded_by_name" db:"uploaded_by_name"`
	UploadedByRole Role      `json:"uploaded_by_role" db:"uploaded_by_role"`
	Data           []byte    `json:"-" db:"document_data"`
	Name           string    `json:"document_name" db:"document_name"`
	Type           string    `json:"document_type" db:"document_type"`
	Size           int64     `json:"document_size" db:"document_size"`
	Notes          *string   `json:"notes" db:"notes"`
	Source         string    `json:"source" db:"source"`
	UploadedAt     time.Time `json:"uploaded_at" db:"uploaded_at"`
}

// PatientDocumentMeta is the listing shape, payload omitted.
type PatientDocumentMeta struct {
	DocumentID     string    `json:"document_id" db:"document_id"`
	PatientID      string    `json:"patient_id" db:"patient_id"`
	UploadedByID   string    `json:"uploaded_by_id" db:"uploaded_by_id"`
	UploadedByName string    `json:"uploaded_by_name" db:"uploaded_by_name"`
	UploadedByRole Role      `json:"uploaded_by_role" db:"uploaded_by_role"`
	Name           string    `json:"document_name" db:"document_name"`
	Type           string    `json:"document_type" db:"document_type"`
	Size           int64     `json:"document_size" db:"document_size"`
	Notes          *string   `json:"notes" db:"notes"`
	Source         string    `json:"source" db:"source"`
	UploadedAt     time.Time `json:"uploaded_at" db:"uploaded_at"`
}

// AppointmentDocument is the appointment-scoped copy written when a
// completion carries attachments.
type AppointmentDocument struct {
	ID            int64     `json:"id" db:"id"`
	AppointmentID string    `json:"appointment_id" db:"appointment_id"`
	Data          []byte    `json:"-" db:"document_data"`
	Name          string    `json:"document_name" db:"document_name"`
	Type          string    `json:"document_type" db:"document_type"`
	Size          int64     `json:"document_size" db:"document_size"`
	FileCategory  string    `json:"file_category" db:"file_category"`
	UploadedAt    time.Time `json:"uploaded_at" db:"uploaded_at"`
}

// NewDocumentID generates a prefixed document identifier.
func NewDocumentID() string {
	return "DOC-" + uuid.New().String()
}

// DocumentUpload is an in-memory file accepted from a multipart request.
type DocumentUpload struct {
	Name string
	Type string
	Size int64
	Data []byte
}
