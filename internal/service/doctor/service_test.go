package doctor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthhub/healthhub-api/internal/model"
	"github.com/healthhub/healthhub-api/internal/repository"
	apperrors "github.com/healthhub/healthhub-api/pkg/errors"
)

type fakeDoctorRepo struct {
	profiles map[string]*model.DoctorProfile
}

func newFakeDoctorRepo() *fakeDoctorRepo {
	return &fakeDoctorRepo{profiles: make(map[string]*model.DoctorProfile)}
}

func (r *fakeDoctorRepo) GetProfile(_ context.Context, doctorID string) (*model.DoctorProfile, error) {
	profile, ok := r.profiles[doctorID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return profile, nil
}

func (r *fakeDoctorRepo) UpsertProfile(_ context.Context, profile *model.DoctorProfile) (bool, error) {
	_, existed := r.profiles[profile.DoctorID]
	r.profiles[profile.DoctorID] = profile
	return !existed, nil
}

func (r *fakeDoctorRepo) ListDoctors(_ context.Context) ([]*model.DoctorListing, error) {
	return nil, nil
}

func (r *fakeDoctorRepo) DashboardStats(_ context.Context, _, _ string) (*model.DoctorDashboardStats, error) {
	return &model.DoctorDashboardStats{}, nil
}

type fakeUserRepo struct {
	users map[string]*model.PublicUser
}

func (r *fakeUserRepo) Create(_ context.Context, _ *model.User) error { return nil }

func (r *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetPublicByID(_ context.Context, userID string) (*model.PublicUser, error) {
	user, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) EmailExists(_ context.Context, _ string) (bool, error) { return false, nil }

func (r *fakeUserRepo) UpdatePassword(_ context.Context, _, _ string) error { return nil }

func (r *fakeUserRepo) UpdateContact(_ context.Context, _, _, _ string) error { return nil }

type fakeRecordRepo struct {
	records map[string]*model.PatientRecord
}

func (r *fakeRecordRepo) GetByPair(_ context.Context, patientID, doctorID string) (*model.PatientRecord, error) {
	if rec, ok := r.records[patientID+"/"+doctorID]; ok {
		return rec, nil
	}
	return nil, repository.ErrNotFound
}

func (r *fakeRecordRepo) ListDetails(_ context.Context, _ string) ([]*model.PatientRecordDetail, error) {
	return nil, nil
}

func (r *fakeRecordRepo) RecentPatients(_ context.Context, _ string, _ int) ([]*model.RecentPatient, error) {
	return nil, nil
}

type fakePatientRepo struct {
	patients map[string]*model.PatientSearchResult
}

func (r *fakePatientRepo) GetProfileView(_ context.Context, _ string) (*model.PatientProfileView, error) {
	return nil, repository.ErrNotFound
}

func (r *fakePatientRepo) UpsertProfile(_ context.Context, _ string, _ *model.PatientProfileRequest) (bool, error) {
	return false, nil
}

func (r *fakePatientRepo) GetPatientWithProfile(_ context.Context, patientID string) (*model.PatientSearchResult, error) {
	result, ok := r.patients[patientID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return result, nil
}

func (r *fakePatientRepo) DashboardStats(_ context.Context, _ string) (*model.PatientDashboardStats, error) {
	return &model.PatientDashboardStats{}, nil
}

func newTestService() (*Service, *fakeDoctorRepo, *fakePatientRepo) {
	doctorRepo := newFakeDoctorRepo()
	patientRepo := &fakePatientRepo{patients: make(map[string]*model.PatientSearchResult)}
	userRepo := &fakeUserRepo{users: map[string]*model.PublicUser{
		"DOC-1": {UserID: "DOC-1", Name: "Dr. X", Email: "dr.x@healthhub.com", Role: model.RoleDoctor},
	}}
	svc := NewService(userRepo, doctorRepo, &fakeRecordRepo{}, patientRepo)
	return svc, doctorRepo, patientRepo
}

func validProfileRequest() *model.DoctorProfileRequest {
	return &model.DoctorProfileRequest{
		Speciality:      "Cardiology",
		Degree:          "MD",
		Experience:      "12",
		ConsultationFee: "150",
		Address:         "12 Clinic Way",
	}
}

func TestUpdateProfileValidation(t *testing.T) {
	svc, _, _ := newTestService()

	req := validProfileRequest()
	req.Speciality = ""

	_, err := svc.UpdateProfile(context.Background(), "DOC-1", req)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
	assert.Equal(t, "All required fields must be filled", appErr.Message)
}

func TestUpdateProfileCreateThenUpdate(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.UpdateProfile(ctx, "DOC-1", validProfileRequest())
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.UpdateProfile(ctx, "DOC-1", validProfileRequest())
	require.NoError(t, err)
	assert.False(t, created)
}

func TestGetProfileWithoutProfileRow(t *testing.T) {
	svc, _, _ := newTestService()

	view, err := svc.GetProfile(context.Background(), "DOC-1")
	require.NoError(t, err)
	assert.Equal(t, "DOC-1", view.User.UserID)
	assert.Nil(t, view.Profile)
}

func TestSearchPatient(t *testing.T) {
	svc, _, patientRepo := newTestService()
	ctx := context.Background()

	_, err := svc.SearchPatient(ctx, "DOC-1", "DOC-123")
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
	assert.Equal(t, "Invalid Patient ID format. ID must start with 'PID-'", appErr.Message)

	_, err = svc.SearchPatient(ctx, "DOC-1", "PID-missing")
	appErr, _ = apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)

	patientRepo.patients["PID-1"] = &model.PatientSearchResult{
		PublicUser: model.PublicUser{UserID: "PID-1", Name: "Jane", Role: model.RolePatient},
	}
	result, err := svc.SearchPatient(ctx, "DOC-1", "PID-1")
	require.NoError(t, err)
	assert.Equal(t, "Jane", result.Name)
	assert.Nil(t, result.Record)
}

func TestSearchPatientAttachesVisitRecord(t *testing.T) {
	userRepo := &fakeUserRepo{}
	doctorRepo := &fakeDoctorRepo{profiles: map[string]*model.DoctorProfile{}}
	patientRepo := &fakePatientRepo{patients: map[string]*model.PatientSearchResult{
		"PID-1": {PublicUser: model.PublicUser{UserID: "PID-1", Name: "Jane", Role: model.RolePatient}},
	}}
	recordRepo := &fakeRecordRepo{records: map[string]*model.PatientRecord{
		"PID-1/DOC-1": {RecordID: 7, PatientID: "PID-1", DoctorID: "DOC-1", TotalVisits: 3},
	}}
	svc := NewService(userRepo, doctorRepo, recordRepo, patientRepo)

	result, err := svc.SearchPatient(context.Background(), "DOC-1", "PID-1")
	require.NoError(t, err)
	require.NotNil(t, result.Record)
	assert.Equal(t, 3, result.Record.TotalVisits)

	// A doctor who has never seen the patient gets no record.
	result, err = svc.SearchPatient(context.Background(), "DOC-2", "PID-1")
	require.NoError(t, err)
	assert.Nil(t, result.Record)
}
