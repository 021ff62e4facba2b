package document

import (
	"context"
	"errors"

	"github.com/healthhub/healthhub-api/internal/model"
	"github.com/healthhub/healthhub-api/internal/repository"
	apperrors "github.com/healthhub/healthhub-api/pkg/errors"
)

type Service struct {
	documentRepo repository.DocumentRepository
}

func NewService(documentRepo repository.DocumentRepository) *Service {
	return &Service{documentRepo: documentRepo}
}

// ValidateUpload enforces the upload policy: PDF only, at most 10MB.
// Runs before any row is written.
func ValidateUpload(upload *model.DocumentUpload) error {
	if upload == nil || len(upload.Data) == 0 {
		return apperrors.Validation("No document provided")
	}
	if upload.Type != model.DocumentMIMEType {
		return apperrors.Validation("Invalid file type. Only PDF files are allowed.")
	}
	if upload.Size > model.MaxDocumentSize {
		return apperrors.Validation("File too large. Maximum size is 10MB.")
	}
	return nil
}

// Upload stores a document for a patient on behalf of the uploader.
// Patients may only upload to their own file.
func (s *Service) Upload(ctx context.Context, patientID string, uploader *model.TokenClaims, upload *model.DocumentUpload, notes string) (string, error) {
	if err := checkOwnership(uploader, patientID); err != nil {
		return "", err
	}
	if err := ValidateUpload(upload); err != nil {
		return "", err
	}

	doc := &model.PatientDocument{
		DocumentID:     model.NewDocumentID(),
		PatientID:      patientID,
		UploadedByID:   uploader.UserID,
		UploadedByName: uploader.Name,
		UploadedByRole: uploader.Role,
		Data:           upload.Data,
		Name:           upload.Name,
		Type:           upload.Type,
		Size:           upload.Size,
		Source:         model.DocumentSourceUpload,
	}
	if notes != "" {
		doc.Notes = &notes
	}

	if err := s.documentRepo.CreatePatientDocument(ctx, doc); err != nil {
		return "", apperrors.Internal(err)
	}
	return doc.DocumentID, nil
}

// List returns document metadata for a patient, newest first. Patients
// may only list their own documents.
func (s *Service) List(ctx context.Context, requester *model.TokenClaims, patientID string) ([]*model.PatientDocumentMeta, error) {
	if err := checkOwnership(requester, patientID); err != nil {
		return nil, err
	}

	docs, err := s.documentRepo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return docs, nil
}

// Download fetches a document payload, enforcing ownership for patients.
func (s *Service) Download(ctx context.Context, requester *model.TokenClaims, patientID, documentID string) (*model.PatientDocument, error) {
	if err := checkOwnership(requester, patientID); err != nil {
		return nil, err
	}

	doc, err := s.documentRepo.GetForDownload(ctx, documentID, patientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Document not found")
		}
		return nil, apperrors.Internal(err)
	}
	return doc, nil
}

// MedicalReport returns the newest profile-sourced document.
func (s *Service) MedicalReport(ctx context.Context, patientID string) (*model.PatientDocument, error) {
	doc, err := s.documentRepo.LatestProfileReport(ctx, patientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Medical report not found")
		}
		return nil, apperrors.Internal(err)
	}
	return doc, nil
}

// DeleteMedicalReport removes all profile-sourced documents for the patient.
func (s *Service) DeleteMedicalReport(ctx context.Context, patientID string) error {
	deleted, err := s.documentRepo.DeleteProfileReports(ctx, patientID)
	if err != nil {
		return apperrors.Internal(err)
	}
	if deleted == 0 {
		return apperrors.NotFound("Medical report not found")
	}
	return nil
}

func checkOwnership(requester *model.TokenClaims, patientID string) error {
	if requester.Role == model.RolePatient && requester.UserID != patientID {
		return apperrors.Forbidden("Access denied. You can only view your own documents.")
	}
	return nil
}
