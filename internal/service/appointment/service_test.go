package appointment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthhub/healthhub-api/internal/model"
	"github.com/healthhub/healthhub-api/internal/repository"
	apperrors "github.com/healthhub/healthhub-api/pkg/errors"
)

type pairKey struct {
	patientID string
	doctorID  string
}

// fakeAppointmentRepo mimics the transactional contract of the postgres
// repository: the transition only fires while pending, and the visit
// upsert happens in the same step.
type fakeAppointmentRepo struct {
	appointments map[string]*model.AppointmentDetail
	visits       map[pairKey]int
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		appointments: make(map[string]*model.AppointmentDetail),
		visits:       make(map[pairKey]int),
	}
}

func (r *fakeAppointmentRepo) add(appointmentID, patientID, doctorID, status string) {
	detail := &model.AppointmentDetail{}
	detail.AppointmentID = appointmentID
	detail.PatientID = patientID
	detail.DoctorID = doctorID
	detail.Status = status
	detail.AppointmentDate = "2025-01-10"
	r.appointments[appointmentID] = detail
}

func (r *fakeAppointmentRepo) Create(_ context.Context, appointment *model.Appointment) error {
	r.add(appointment.AppointmentID, appointment.PatientID, appointment.DoctorID, appointment.Status)
	return nil
}

func (r *fakeAppointmentRepo) GetDetail(_ context.Context, appointmentID, doctorID string) (*model.AppointmentDetail, error) {
	detail, ok := r.appointments[appointmentID]
	if !ok || detail.DoctorID != doctorID {
		return nil, repository.ErrNotFound
	}
	copy := *detail
	return &copy, nil
}

func (r *fakeAppointmentRepo) ListForDoctor(_ context.Context, doctorID string) ([]*model.AppointmentDetail, error) {
	result := []*model.AppointmentDetail{}
	for _, detail := range r.appointments {
		if detail.DoctorID == doctorID {
			copy := *detail
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (r *fakeAppointmentRepo) Complete(_ context.Context, appointmentID, doctorID, patientID, status string, notes *string) (bool, error) {
	detail, ok := r.appointments[appointmentID]
	if !ok || detail.DoctorID != doctorID || detail.Status != model.AppointmentStatusPending {
		return false, repository.ErrNotPending
	}

	detail.Status = status
	if notes != nil {
		detail.Notes = notes
	}

	key := pairKey{patientID, doctorID}
	r.visits[key]++
	return r.visits[key] == 1, nil
}

func (r *fakeAppointmentRepo) DeletePending(_ context.Context, appointmentID, doctorID string) error {
	detail, ok := r.appointments[appointmentID]
	if !ok || detail.DoctorID != doctorID || detail.Status != model.AppointmentStatusPending {
		return repository.ErrNotFound
	}
	delete(r.appointments, appointmentID)
	return nil
}

type fakeDocumentRepo struct {
	patientDocs     []*model.PatientDocument
	appointmentDocs []*model.AppointmentDocument
	failPatientDocs bool
}

func (r *fakeDocumentRepo) CreatePatientDocument(_ context.Context, doc *model.PatientDocument) error {
	if r.failPatientDocs {
		return errors.New("blob store unavailable")
	}
	r.patientDocs = append(r.patientDocs, doc)
	return nil
}

func (r *fakeDocumentRepo) CreateAppointmentDocument(_ context.Context, doc *model.AppointmentDocument) error {
	r.appointmentDocs = append(r.appointmentDocs, doc)
	return nil
}

func (r *fakeDocumentRepo) ListByPatient(_ context.Context, _ string) ([]*model.PatientDocumentMeta, error) {
	return nil, nil
}

func (r *fakeDocumentRepo) GetForDownload(_ context.Context, _, _ string) (*model.PatientDocument, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeDocumentRepo) LatestProfileReport(_ context.Context, _ string) (*model.PatientDocument, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeDocumentRepo) DeleteProfileReports(_ context.Context, _ string) (int64, error) {
	return 0, nil
}

func TestCreateAppointment(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := NewService(repo, &fakeDocumentRepo{})
	ctx := context.Background()

	appt, err := svc.Create(ctx, "DOC-1", &model.CreateAppointmentRequest{
		PatientID:       "PID-1",
		AppointmentDate: "2025-01-10",
		AppointmentTime: "10:30",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, appt.Status)
	assert.Equal(t, "DOC-1", appt.DoctorID)
	require.NotNil(t, appt.AppointmentTime)
	assert.Equal(t, "10:30", *appt.AppointmentTime)

	_, err = svc.Create(ctx, "DOC-1", &model.CreateAppointmentRequest{PatientID: "PID-1"})
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)
}

func TestMarkDoneIdempotentRecord(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := NewService(repo, &fakeDocumentRepo{})
	ctx := context.Background()

	repo.add("APT-1", "PID-1", "DOC-1", model.AppointmentStatusPending)
	repo.add("APT-2", "PID-1", "DOC-1", model.AppointmentStatusPending)

	first, err := svc.MarkDone(ctx, "DOC-1", "APT-1")
	require.NoError(t, err)
	assert.True(t, first.PatientAdded)

	// Second completion for the same pair increments, never re-inserts.
	second, err := svc.MarkDone(ctx, "DOC-1", "APT-2")
	require.NoError(t, err)
	assert.False(t, second.PatientAdded)
	assert.Equal(t, 2, repo.visits[pairKey{"PID-1", "DOC-1"}])
}

func TestMarkDoneTerminalStates(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := NewService(repo, &fakeDocumentRepo{})
	ctx := context.Background()

	repo.add("APT-1", "PID-1", "DOC-1", model.AppointmentStatusPending)

	_, err := svc.MarkDone(ctx, "DOC-1", "APT-1")
	require.NoError(t, err)

	// Already done: transition is refused.
	_, err = svc.MarkDone(ctx, "DOC-1", "APT-1")
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)

	// Unknown id and wrong doctor both surface as not found.
	_, err = svc.MarkDone(ctx, "DOC-1", "APT-missing")
	appErr, _ = apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)

	repo.add("APT-2", "PID-1", "DOC-2", model.AppointmentStatusPending)
	_, err = svc.MarkDone(ctx, "DOC-1", "APT-2")
	appErr, _ = apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestCompleteStoresDocuments(t *testing.T) {
	repo := newFakeAppointmentRepo()
	docRepo := &fakeDocumentRepo{}
	svc := NewService(repo, docRepo)
	ctx := context.Background()

	repo.add("APT-1", "PID-1", "DOC-1", model.AppointmentStatusPending)

	uploads := []*model.DocumentUpload{
		{Name: "scan.pdf", Type: model.DocumentMIMEType, Size: 128, Data: []byte("%PDF-")},
	}
	result, err := svc.Complete(ctx, "DOC-1", "Dr. X", "APT-1", "all clear", uploads)
	require.NoError(t, err)
	assert.True(t, result.DocumentsOK)
	assert.True(t, result.PatientAdded)
	assert.Equal(t, model.AppointmentStatusCompleted, result.Appointment.Status)

	// Each upload lands in both stores.
	require.Len(t, docRepo.patientDocs, 1)
	require.Len(t, docRepo.appointmentDocs, 1)
	assert.Equal(t, model.DocumentSourceUpload, docRepo.patientDocs[0].Source)
	assert.Equal(t, "DOC-1", docRepo.patientDocs[0].UploadedByID)
	assert.Equal(t, "APT-1", docRepo.appointmentDocs[0].AppointmentID)
}

func TestCompleteDegradedOnDocumentFailure(t *testing.T) {
	repo := newFakeAppointmentRepo()
	docRepo := &fakeDocumentRepo{failPatientDocs: true}
	svc := NewService(repo, docRepo)
	ctx := context.Background()

	repo.add("APT-1", "PID-1", "DOC-1", model.AppointmentStatusPending)

	uploads := []*model.DocumentUpload{
		{Name: "scan.pdf", Type: model.DocumentMIMEType, Size: 128, Data: []byte("%PDF-")},
	}
	result, err := svc.Complete(ctx, "DOC-1", "Dr. X", "APT-1", "", uploads)

	// The committed transition survives the document failure.
	require.NoError(t, err)
	assert.False(t, result.DocumentsOK)
	assert.Equal(t, model.AppointmentStatusCompleted, repo.appointments["APT-1"].Status)
}

func TestDeleteOnlyPending(t *testing.T) {
	repo := newFakeAppointmentRepo()
	svc := NewService(repo, &fakeDocumentRepo{})
	ctx := context.Background()

	repo.add("APT-1", "PID-1", "DOC-1", model.AppointmentStatusPending)
	require.NoError(t, svc.Delete(ctx, "DOC-1", "APT-1"))

	repo.add("APT-2", "PID-1", "DOC-1", model.AppointmentStatusCompleted)
	err := svc.Delete(ctx, "DOC-1", "APT-2")
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Equal(t, "Only pending appointments can be deleted", appErr.Message)

	err = svc.Delete(ctx, "DOC-1", "APT-missing")
	appErr, _ = apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}
