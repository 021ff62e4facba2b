package patient

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/healthhub/healthhub-api/internal/model"
	"github.com/healthhub/healthhub-api/internal/repository"
	apperrors "github.com/healthhub/healthhub-api/pkg/errors"
)

type Service struct {
	userRepo     repository.UserRepository
	patientRepo  repository.PatientRepository
	documentRepo repository.DocumentRepository
}

func NewService(userRepo repository.UserRepository, patientRepo repository.PatientRepository,
	documentRepo repository.DocumentRepository) *Service {
	return &Service{
		userRepo:     userRepo,
		patientRepo:  patientRepo,
		documentRepo: documentRepo,
	}
}

func (s *Service) GetProfile(ctx context.Context, patientID string) (*model.PatientProfileView, error) {
	view, err := s.patientRepo.GetProfileView(ctx, patientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Profile not found")
		}
		return nil, apperrors.Internal(err)
	}
	return view, nil
}

// UpdateResult reports the profile write outcome. ReportStored is false
// when a medical report was attached but failed to persist; the profile
// write is never rolled back for it.
type UpdateResult struct {
	Created      bool
	ReportStored bool
	HadReport    bool
}

func (s *Service) UpdateProfile(ctx context.Context, claims *model.TokenClaims, req *model.PatientProfileRequest, report *model.DocumentUpload) (*UpdateResult, error) {
	if err := s.userRepo.UpdateContact(ctx, claims.UserID, req.Name, req.Phone); err != nil {
		return nil, apperrors.Internal(err)
	}

	created, err := s.patientRepo.UpsertProfile(ctx, claims.UserID, req)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	result := &UpdateResult{Created: created, ReportStored: true}
	if report == nil {
		return result, nil
	}

	result.HadReport = true
	notes := "Uploaded by patient via profile"
	doc := &model.PatientDocument{
		DocumentID:     model.NewDocumentID(),
		PatientID:      claims.UserID,
		UploadedByID:   claims.UserID,
		UploadedByName: claims.Name,
		UploadedByRole: model.RolePatient,
		Data:           report.Data,
		Name:           report.Name,
		Type:           report.Type,
		Size:           report.Size,
		Notes:          &notes,
		Source:         model.DocumentSourceProfile,
	}
	if err := s.documentRepo.CreatePatientDocument(ctx, doc); err != nil {
		log.Error().Err(err).Str("patient_id", claims.UserID).Msg("failed to store medical report")
		result.ReportStored = false
	}
	return result, nil
}

func (s *Service) DashboardStats(ctx context.Context, patientID string) (*model.PatientDashboardStats, error) {
	stats, err := s.patientRepo.DashboardStats(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return stats, nil
}
