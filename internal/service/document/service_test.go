package document

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthhub/healthhub-api/internal/model"
	"github.com/healthhub/healthhub-api/internal/repository"
	apperrors "github.com/healthhub/healthhub-api/pkg/errors"
)

type fakeDocumentRepo struct {
	docs map[string]*model.PatientDocument
}

func newFakeDocumentRepo() *fakeDocumentRepo {
	return &fakeDocumentRepo{docs: make(map[string]*model.PatientDocument)}
}

func (r *fakeDocumentRepo) CreatePatientDocument(_ context.Context, doc *model.PatientDocument) error {
	r.docs[doc.DocumentID] = doc
	return nil
}

func (r *fakeDocumentRepo) CreateAppointmentDocument(_ context.Context, _ *model.AppointmentDocument) error {
	return nil
}

func (r *fakeDocumentRepo) ListByPatient(_ context.Context, patientID string) ([]*model.PatientDocumentMeta, error) {
	metas := []*model.PatientDocumentMeta{}
	for _, doc := range r.docs {
		if doc.PatientID == patientID {
			metas = append(metas, &model.PatientDocumentMeta{
				DocumentID: doc.DocumentID,
				PatientID:  doc.PatientID,
				Name:       doc.Name,
				Type:       doc.Type,
				Size:       doc.Size,
				Source:     doc.Source,
			})
		}
	}
	return metas, nil
}

func (r *fakeDocumentRepo) GetForDownload(_ context.Context, documentID, patientID string) (*model.PatientDocument, error) {
	doc, ok := r.docs[documentID]
	if !ok || doc.PatientID != patientID {
		return nil, repository.ErrNotFound
	}
	return doc, nil
}

func (r *fakeDocumentRepo) LatestProfileReport(_ context.Context, patientID string) (*model.PatientDocument, error) {
	for _, doc := range r.docs {
		if doc.PatientID == patientID && doc.Source == model.DocumentSourceProfile {
			return doc, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeDocumentRepo) DeleteProfileReports(_ context.Context, patientID string) (int64, error) {
	var deleted int64
	for id, doc := range r.docs {
		if doc.PatientID == patientID && doc.Source == model.DocumentSourceProfile {
			delete(r.docs, id)
			deleted++
		}
	}
	return deleted, nil
}

func pdfUpload(size int64) *model.DocumentUpload {
	return &model.DocumentUpload{
		Name: "report.pdf",
		Type: model.DocumentMIMEType,
		Size: size,
		Data: []byte("%PDF-1.4 test"),
	}
}

func TestValidateUpload(t *testing.T) {
	assert.NoError(t, ValidateUpload(pdfUpload(1024)))

	err := ValidateUpload(nil)
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, "No document provided", appErr.Message)

	wrongType := pdfUpload(1024)
	wrongType.Type = "image/png"
	err = ValidateUpload(wrongType)
	appErr, _ = apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrValidation, appErr.Code)

	tooBig := pdfUpload(model.MaxDocumentSize + 1)
	err = ValidateUpload(tooBig)
	appErr, _ = apperrors.AsAppError(err)
	assert.Equal(t, "File too large. Maximum size is 10MB.", appErr.Message)
}

func doctorClaims() *model.TokenClaims {
	return &model.TokenClaims{UserID: "DOC-1", Name: "Dr. X", Role: model.RoleDoctor}
}

func patientClaims(id string) *model.TokenClaims {
	return &model.TokenClaims{UserID: id, Name: "Jane", Role: model.RolePatient}
}

func TestUploadAndDownloadRoundTrip(t *testing.T) {
	repo := newFakeDocumentRepo()
	svc := NewService(repo)
	ctx := context.Background()

	upload := pdfUpload(1024)
	documentID, err := svc.Upload(ctx, "PID-1", doctorClaims(), upload, "post-visit scan")
	require.NoError(t, err)
	require.NotEmpty(t, documentID)

	doc, err := svc.Download(ctx, doctorClaims(), "PID-1", documentID)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(upload.Data, doc.Data))
	assert.Equal(t, upload.Name, doc.Name)
	assert.Equal(t, upload.Type, doc.Type)
}

func TestPatientOwnershipEnforced(t *testing.T) {
	repo := newFakeDocumentRepo()
	svc := NewService(repo)
	ctx := context.Background()

	documentID, err := svc.Upload(ctx, "PID-1", patientClaims("PID-1"), pdfUpload(64), "")
	require.NoError(t, err)

	// Another patient cannot list, download, or upload.
	_, err = svc.List(ctx, patientClaims("PID-2"), "PID-1")
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)

	_, err = svc.Download(ctx, patientClaims("PID-2"), "PID-1", documentID)
	appErr, _ = apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)

	_, err = svc.Upload(ctx, "PID-1", patientClaims("PID-2"), pdfUpload(64), "")
	appErr, _ = apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrForbidden, appErr.Code)

	// Doctors may read any patient's file.
	docs, err := svc.List(ctx, doctorClaims(), "PID-1")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestMedicalReportLifecycle(t *testing.T) {
	repo := newFakeDocumentRepo()
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.MedicalReport(ctx, "PID-1")
	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)

	report := pdfUpload(256)
	repo.docs["DOC-r1"] = &model.PatientDocument{
		DocumentID: "DOC-r1",
		PatientID:  "PID-1",
		Name:       report.Name,
		Type:       report.Type,
		Size:       report.Size,
		Data:       report.Data,
		Source:     model.DocumentSourceProfile,
	}

	doc, err := svc.MedicalReport(ctx, "PID-1")
	require.NoError(t, err)
	assert.Equal(t, model.DocumentSourceProfile, doc.Source)

	require.NoError(t, svc.DeleteMedicalReport(ctx, "PID-1"))

	err = svc.DeleteMedicalReport(ctx, "PID-1")
	appErr, _ = apperrors.AsAppError(err)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
	assert.Equal(t, "Medical report not found", appErr.Message)
}
