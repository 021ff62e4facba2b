package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/healthhub/healthhub-api/internal/model"
	"github.com/healthhub/healthhub-api/internal/repository"
)

func (r *patientRecordRepository) GetByPair(ctx context.Context, patientID, doctorID string) (*model.PatientRecord, error) {
	query := `
		SELECT record_id, patient_id, doctor_id,
			   first_visit_date, last_visit_date, total_visits,
			   created_at, updated_at
		FROM patient_records
		WHERE patient_id = $1 AND doctor_id = $2
	`
	var record model.PatientRecord
	if err := r.db.GetContext(ctx, &record, query, patientID, doctorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patient record: %w", err)
	}
	return &record, nil
}

func (r *patientRecordRepository) ListDetails(ctx context.Context, doctorID string) ([]*model.PatientRecordDetail, error) {
	query := `
		SELECT pr.record_id, pr.patient_id, pr.doctor_id,
			   u.name AS patient_name,
			   u.email AS patient_email,
			   u.phone AS patient_phone,
			   pp.age, pp.gender, pp.blood_group, pp.address,
			   pp.medical_history, pp.allergies, pp.current_medications,
			   pr.first_visit_date, pr.last_visit_date, pr.total_visits,
			   pr.created_at, pr.updated_at
		FROM patient_records pr
		JOIN users u ON pr.patient_id = u.user_id
		LEFT JOIN patient_profiles pp ON pr.patient_id = pp.patient_id
		WHERE pr.doctor_id = $1
		ORDER BY pr.last_visit_date DESC
	`
	records := []*model.PatientRecordDetail{}
	if err := r.db.SelectContext(ctx, &records, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list patient records: %w", err)
	}
	return records, nil
}

func (r *patientRecordRepository) RecentPatients(ctx context.Context, doctorID string, limit int) ([]*model.RecentPatient, error) {
	query := `
		SELECT pr.patient_id,
			   u.name AS patient_name,
			   u.email AS patient_email,
			   u.phone AS patient_phone,
			   pp.age, pp.gender, pp.blood_group,
			   MAX(a.appointment_date) AS last_appointment,
			   pr.total_visits
		FROM patient_records pr
		JOIN users u ON pr.patient_id = u.user_id
		LEFT JOIN patient_profiles pp ON pr.patient_id = pp.patient_id
		LEFT JOIN appointments a
			ON a.patient_id = pr.patient_id
			AND a.doctor_id = pr.doctor_id
			AND a.status IN ($2, $3)
		WHERE pr.doctor_id = $1
		GROUP BY pr.patient_id, u.name, u.email, u.phone,
				 pp.age, pp.gender, pp.blood_group, pr.total_visits
		ORDER BY last_appointment DESC NULLS LAST
		LIMIT $4
	`
	patients := []*model.RecentPatient{}
	err := r.db.SelectContext(ctx, &patients, query, doctorID,
		model.AppointmentStatusCompleted, model.AppointmentStatusDone, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent patients: %w", err)
	}
	return patients, nil
}
