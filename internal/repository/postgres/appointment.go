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

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			appointment_id, patient_id, doctor_id,
			appointment_date, appointment_time, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	appointment.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		appointment.AppointmentID,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.AppointmentDate,
		appointment.AppointmentTime,
		appointment.Status,
		appointment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

const appointmentDetailColumns = `
	a.appointment_id, a.patient_id, a.doctor_id,
	to_char(a.appointment_date, 'YYYY-MM-DD') AS appointment_date,
	a.appointment_time, a.status, a.notes, a.created_at, a.completed_at,
	u.name AS patient_name,
	u.email AS patient_email,
	u.phone AS patient_phone,
	pp.age AS patient_age,
	pp.gender AS patient_gender,
	pp.blood_group AS patient_blood_group
`

func (r *appointmentRepository) GetDetail(ctx context.Context, appointmentID, doctorID string) (*model.AppointmentDetail, error) {
	query := `
		SELECT ` + appointmentDetailColumns + `
		FROM appointments a
		JOIN users u ON a.patient_id = u.user_id
		LEFT JOIN patient_profiles pp ON a.patient_id = pp.patient_id
		WHERE a.appointment_id = $1 AND a.doctor_id = $2
	`
	var detail model.AppointmentDetail
	if err := r.db.GetContext(ctx, &detail, query, appointmentID, doctorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &detail, nil
}

func (r *appointmentRepository) ListForDoctor(ctx context.Context, doctorID string) ([]*model.AppointmentDetail, error) {
	query := `
		SELECT ` + appointmentDetailColumns + `
		FROM appointments a
		JOIN users u ON a.patient_id = u.user_id
		LEFT JOIN patient_profiles pp ON a.patient_id = pp.patient_id
		WHERE a.doctor_id = $1
		ORDER BY a.appointment_date DESC, a.appointment_time DESC
	`
	appointments := []*model.AppointmentDetail{}
	if err := r.db.SelectContext(ctx, &appointments, query, doctorID); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

// Complete transitions a pending appointment into the given terminal
// status and upserts the (patient, doctor) visit record, all in one
// transaction so concurrent completions cannot double-increment.
func (r *appointmentRepository) Complete(ctx context.Context, appointmentID, doctorID, patientID, status string, notes *string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	updateQuery := `
		UPDATE appointments
		SET status = $1, notes = COALESCE($2, notes), completed_at = NOW()
		WHERE appointment_id = $3 AND doctor_id = $4 AND status = $5
	`
	result, err := tx.ExecContext(ctx, updateQuery, status, notes, appointmentID, doctorID, model.AppointmentStatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to update appointment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return false, repository.ErrNotPending
	}

	// Conditional upsert keyed on (patient_id, doctor_id).
	upsertQuery := `
		INSERT INTO patient_records
			(patient_id, doctor_id, first_visit_date, last_visit_date, total_visits, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW(), 1, NOW(), NOW())
		ON CONFLICT (patient_id, doctor_id) DO UPDATE
		SET last_visit_date = NOW(),
			total_visits = patient_records.total_visits + 1,
			updated_at = NOW()
		RETURNING total_visits
	`
	var totalVisits int
	if err := tx.GetContext(ctx, &totalVisits, upsertQuery, patientID, doctorID); err != nil {
		return false, fmt.Errorf("failed to upsert patient record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return totalVisits == 1, nil
}

func (r *appointmentRepository) DeletePending(ctx context.Context, appointmentID, doctorID string) error {
	query := `
		DELETE FROM appointments
		WHERE appointment_id = $1 AND doctor_id = $2 AND status = $3
	`
	result, err := r.db.ExecContext(ctx, query, appointmentID, doctorID, model.AppointmentStatusPending)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
