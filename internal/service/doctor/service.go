package doctor

import (
	"context"
	"errors"
	"time"

	"github.com/healthhub/healthhub-api/internal/model"
	"github.com/healthhub/healthhub-api/internal/repository"
	apperrors "github.com/healthhub/healthhub-api/pkg/errors"
)

const recentPatientsLimit = 10

type Service struct {
	userRepo    repository.UserRepository
	doctorRepo  repository.DoctorRepository
	recordRepo  repository.PatientRecordRepository
	patientRepo repository.PatientRepository
}

func NewService(userRepo repository.UserRepository, doctorRepo repository.DoctorRepository,
	recordRepo repository.PatientRecordRepository, patientRepo repository.PatientRepository) *Service {
	return &Service{
		userRepo:    userRepo,
		doctorRepo:  doctorRepo,
		recordRepo:  recordRepo,
		patientRepo: patientRepo,
	}
}

// ProfileView is the doctor account plus its (possibly missing) profile.
type ProfileView struct {
	User    *model.PublicUser    `json:"user"`
	Profile *model.DoctorProfile `json:"profile"`
}

func (s *Service) GetProfile(ctx context.Context, doctorID string) (*ProfileView, error) {
	user, err := s.userRepo.GetPublicByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal(err)
	}

	profile, err := s.doctorRepo.GetProfile(ctx, doctorID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}

	return &ProfileView{User: user, Profile: profile}, nil
}

// UpdateProfile upserts the profile row; created reports whether this was
// the first write.
func (s *Service) UpdateProfile(ctx context.Context, doctorID string, req *model.DoctorProfileRequest) (created bool, err error) {
	if req.Speciality == "" || req.Degree == "" || req.Experience == "" ||
		req.ConsultationFee == "" || req.Address == "" {
		return false, apperrors.Validation("All required fields must be filled")
	}

	profile := &model.DoctorProfile{
		DoctorID:        doctorID,
		Speciality:      req.Speciality,
		Degree:          req.Degree,
		Experience:      req.Experience,
		ConsultationFee: req.ConsultationFee,
		Address:         req.Address,
	}
	if req.Bio != "" {
		profile.Bio = &req.Bio
	}

	created, err = s.doctorRepo.UpsertProfile(ctx, profile)
	if err != nil {
		return false, apperrors.Internal(err)
	}
	return created, nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.DoctorListing, error) {
	doctors, err := s.doctorRepo.ListDoctors(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return doctors, nil
}

// SearchPatient looks up a patient by the PID-prefixed identifier. When the
// searching doctor has seen the patient before, their visit record is
// attached to the result.
func (s *Service) SearchPatient(ctx context.Context, doctorID, patientID string) (*model.PatientSearchResult, error) {
	if !model.IsPatientID(patientID) {
		return nil, apperrors.Validation("Invalid Patient ID format. ID must start with 'PID-'")
	}

	result, err := s.patientRepo.GetPatientWithProfile(ctx, patientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Patient not found with this ID")
		}
		return nil, apperrors.Internal(err)
	}

	record, err := s.recordRepo.GetByPair(ctx, result.UserID, doctorID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal(err)
	}
	result.Record = record

	return result, nil
}

func (s *Service) DashboardStats(ctx context.Context, doctorID string) (*model.DoctorDashboardStats, error) {
	today := time.Now().Format("2006-01-02")
	stats, err := s.doctorRepo.DashboardStats(ctx, doctorID, today)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return stats, nil
}

func (s *Service) RecentPatients(ctx context.Context, doctorID string) ([]*model.RecentPatient, error) {
	patients, err := s.recordRepo.RecentPatients(ctx, doctorID, recentPatientsLimit)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return patients, nil
}

func (s *Service) PatientRecords(ctx context.Context, doctorID string) ([]*model.PatientRecordDetail, error) {
	records, err := s.recordRepo.ListDetails(ctx, doctorID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return records, nil
}
