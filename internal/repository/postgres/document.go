package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/healthhub/healthhub-api/internal/model"
	"github.com/healthhub/healthhub-api/internal/repository"
)

func (r *documentRepository) CreatePatientDocument(ctx context.Context, doc *model.PatientDocument) error {
	query := `
		INSERT INTO patient_documents (
			document_id, patient_id, uploaded_by_id, uploaded_by_name, uploaded_by_role,
			document_data, document_name, document_type, document_size,
			notes, source, uploaded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	doc.UploadedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		doc.DocumentID,
		doc.PatientID,
		doc.UploadedByID,
		doc.UploadedByName,
		doc.UploadedByRole,
		doc.Data,
		doc.Name,
		doc.Type,
		doc.Size,
		doc.Notes,
		doc.Source,
		doc.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient document: %w", err)
	}
	return nil
}

func (r *documentRepository) CreateAppointmentDocument(ctx context.Context, doc *model.AppointmentDocument) error {
	query := `
		INSERT INTO appointment_documents (
			appointment_id, document_data, document_name,
			document_type, document_size, file_category, uploaded_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	doc.UploadedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		doc.AppointmentID,
		doc.Data,
		doc.Name,
		doc.Type,
		doc.Size,
		doc.FileCategory,
		doc.UploadedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment document: %w", err)
	}
	return nil
}

func (r *documentRepository) ListByPatient(ctx context.Context, patientID string) ([]*model.PatientDocumentMeta, error) {
	query := `
		SELECT document_id, patient_id, uploaded_by_id, uploaded_by_name, uploaded_by_role,
			   document_name, document_type, document_size, notes, source, uploaded_at
		FROM patient_documents
		WHERE patient_id = $1
		ORDER BY uploaded_at DESC
	`
	docs := []*model.PatientDocumentMeta{}
	if err := r.db.SelectContext(ctx, &docs, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return docs, nil
}

func (r *documentRepository) GetForDownload(ctx context.Context, documentID, patientID string) (*model.PatientDocument, error) {
	query := `
		SELECT document_id, patient_id, uploaded_by_id, uploaded_by_name, uploaded_by_role,
			   document_data, document_name, document_type, document_size,
			   notes, source, uploaded_at
		FROM patient_documents
		WHERE document_id = $1 AND patient_id = $2
	`
	var doc model.PatientDocument
	if err := r.db.GetContext(ctx, &doc, query, documentID, patientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

func (r *documentRepository) LatestProfileReport(ctx context.Context, patientID string) (*model.PatientDocument, error) {
	query := `
		SELECT document_id, patient_id, uploaded_by_id, uploaded_by_name, uploaded_by_role,
			   document_data, document_name, document_type, document_size,
			   notes, source, uploaded_at
		FROM patient_documents
		WHERE patient_id = $1 AND source = $2
		ORDER BY uploaded_at DESC
		LIMIT 1
	`
	var doc model.PatientDocument
	if err := r.db.GetContext(ctx, &doc, query, patientID, model.DocumentSourceProfile); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get medical report: %w", err)
	}
	return &doc, nil
}

func (r *documentRepository) DeleteProfileReports(ctx context.Context, patientID string) (int64, error) {
	query := `DELETE FROM patient_documents WHERE patient_id = $1 AND source = $2`

	result, err := r.db.ExecContext(ctx, query, patientID, model.DocumentSourceProfile)
	if err != nil {
		return 0, fmt.Errorf("failed to delete medical report: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows, nil
}
