package appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/healthhub/healthhub-api/internal/model"
	"github.com/healthhub/healthhub-api/internal/repository"
	apperrors "github.com/healthhub/healthhub-api/pkg/errors"
)

type Service struct {
	appointmentRepo repository.AppointmentRepository
	documentRepo    repository.DocumentRepository
}

func NewService(appointmentRepo repository.AppointmentRepository,
	documentRepo repository.DocumentRepository) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		documentRepo:    documentRepo,
	}
}

func (s *Service) Create(ctx context.Context, doctorID string, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if req.PatientID == "" || req.AppointmentDate == "" {
		return nil, apperrors.Validation("Patient ID and Appointment Date are required")
	}

	appointment := &model.Appointment{
		AppointmentID:   model.NewAppointmentID(),
		PatientID:       req.PatientID,
		DoctorID:        doctorID,
		AppointmentDate: req.AppointmentDate,
		Status:          model.AppointmentStatusPending,
	}
	if req.AppointmentTime != "" {
		appointment.AppointmentTime = &req.AppointmentTime
	}

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, apperrors.Internal(err)
	}
	return appointment, nil
}

func (s *Service) List(ctx context.Context, doctorID string) ([]*model.AppointmentDetail, error) {
	appointments, err := s.appointmentRepo.ListForDoctor(ctx, doctorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return appointments, nil
}

// Complete transitions an appointment to 'completed' and persists any
// attached documents. A document failure after the committed transition
// is reported through DocumentsOK, never rolled back.
func (s *Service) Complete(ctx context.Context, doctorID, doctorName, appointmentID, notes string, uploads []*model.DocumentUpload) (*model.CompletionResult, error) {
	if appointmentID == "" {
		return nil, apperrors.Validation("Appointment ID is required")
	}

	result, err := s.transition(ctx, doctorID, appointmentID, model.AppointmentStatusCompleted, notes)
	if err != nil {
		return nil, err
	}

	result.DocumentsOK = true
	for _, upload := range uploads {
		if err := s.storeCompletionDocument(ctx, result.Appointment, doctorID, doctorName, upload); err != nil {
			log.Error().Err(err).
				Str("appointment_id", appointmentID).
				Str("document", upload.Name).
				Msg("failed to store completion document")
			result.DocumentsOK = false
		}
	}
	return result, nil
}

// MarkDone transitions an appointment to 'done'. Shares the record
// upsert with Complete; the two statuses are distinct terminal states.
func (s *Service) MarkDone(ctx context.Context, doctorID, appointmentID string) (*model.CompletionResult, error) {
	result, err := s.transition(ctx, doctorID, appointmentID, model.AppointmentStatusDone, "")
	if err != nil {
		return nil, err
	}
	result.DocumentsOK = true
	return result, nil
}

func (s *Service) Delete(ctx context.Context, doctorID, appointmentID string) error {
	err := s.appointmentRepo.DeletePending(ctx, appointmentID, doctorID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return apperrors.Internal(err)
	}

	// Distinguish a missing appointment from a terminal one.
	if _, detailErr := s.appointmentRepo.GetDetail(ctx, appointmentID, doctorID); detailErr == nil {
		return apperrors.Conflict("Only pending appointments can be deleted")
	}
	return apperrors.NotFound("Appointment not found")
}

func (s *Service) transition(ctx context.Context, doctorID, appointmentID, status, notes string) (*model.CompletionResult, error) {
	detail, err := s.appointmentRepo.GetDetail(ctx, appointmentID, doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Appointment not found")
		}
		return nil, apperrors.Internal(err)
	}
	if !detail.IsPending() {
		return nil, apperrors.Conflict(fmt.Sprintf("Appointment is already %s", detail.Status))
	}

	var notesArg *string
	if notes != "" {
		notesArg = &notes
	}

	patientAdded, err := s.appointmentRepo.Complete(ctx, appointmentID, doctorID, detail.PatientID, status, notesArg)
	if err != nil {
		if errors.Is(err, repository.ErrNotPending) {
			// Lost the race to another completion.
			return nil, apperrors.Conflict("Appointment is no longer pending")
		}
		return nil, apperrors.Internal(err)
	}

	detail.Status = status
	if notesArg != nil {
		detail.Notes = notesArg
	}
	return &model.CompletionResult{
		Appointment:  detail,
		PatientAdded: patientAdded,
	}, nil
}

func (s *Service) storeCompletionDocument(ctx context.Context, appointment *model.AppointmentDetail, doctorID, doctorName string, upload *model.DocumentUpload) error {
	notes := fmt.Sprintf("Uploaded during appointment completion - %s", appointment.AppointmentID)
	patientDoc := &model.PatientDocument{
		DocumentID:     model.NewDocumentID(),
		PatientID:      appointment.PatientID,
		UploadedByID:   doctorID,
		UploadedByName: doctorName,
		UploadedByRole: model.RoleDoctor,
		Data:           upload.Data,
		Name:           upload.Name,
		Type:           upload.Type,
		Size:           upload.Size,
		Notes:          &notes,
		Source:         model.DocumentSourceUpload,
	}
	if err := s.documentRepo.CreatePatientDocument(ctx, patientDoc); err != nil {
		return err
	}

	category := model.FileCategoryReport
	if upload.Type == model.DocumentMIMEType {
		category = model.FileCategoryPrescription
	}
	return s.documentRepo.CreateAppointmentDocument(ctx, &model.AppointmentDocument{
		AppointmentID: appointment.AppointmentID,
		Data:          upload.Data,
		Name:          upload.Name,
		Type:          upload.Type,
		Size:          upload.Size,
		FileCategory:  category,
	})
}
