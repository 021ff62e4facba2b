package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/healthhub/healthhub-api/internal/model"
	"github.com/healthhub/healthhub-api/internal/repository"
)

func (r *patientRepository) GetProfileView(ctx context.Context, patientID string) (*model.PatientProfileView, error) {
	query := `
		SELECT u.user_id, u.name, u.email, u.phone, u.role,
			   pp.age, pp.gender, pp.weight, pp.height, pp.blood_group,
			   pp.address, pp.medical_history, pp.allergies, pp.current_medications,
			   pp.emergency_contact_name, pp.emergency_contact_phone,
			   pp.created_at AS profile_created_at,
			   pp.updated_at AS profile_updated_at
		FROM users u
		LEFT JOIN patient_profiles pp ON u.user_id = pp.patient_id
		WHERE u.user_id = $1
	`
	var view model.PatientProfileView
	if err := r.db.GetContext(ctx, &view, query, patientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patient profile: %w", err)
	}
	return &view, nil
}

func (r *patientRepository) getProfile(ctx context.Context, patientID string) (*model.PatientProfile, error) {
	query := `
		SELECT patient_id, age, gender, weight, height, blood_group,
			   address, medical_history, allergies, current_medications,
			   emergency_contact_name, emergency_contact_phone,
			   created_at, updated_at
		FROM patient_profiles
		WHERE patient_id = $1
	`
	var profile model.PatientProfile
	if err := r.db.GetContext(ctx, &profile, query, patientID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patient profile: %w", err)
	}
	return &profile, nil
}

func (r *patientRepository) UpsertProfile(ctx context.Context, patientID string, req *model.PatientProfileRequest) (bool, error) {
	query := `
		INSERT INTO patient_profiles
			(patient_id, age, gender, weight, height, blood_group, address,
			 medical_history, allergies, current_medications,
			 emergency_contact_name, emergency_contact_phone,
			 created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
		ON CONFLICT (patient_id) DO UPDATE
		SET age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			weight = EXCLUDED.weight,
			height = EXCLUDED.height,
			blood_group = EXCLUDED.blood_group,
			address = EXCLUDED.address,
			medical_history = EXCLUDED.medical_history,
			allergies = EXCLUDED.allergies,
			current_medications = EXCLUDED.current_medications,
			emergency_contact_name = EXCLUDED.emergency_contact_name,
			emergency_contact_phone = EXCLUDED.emergency_contact_phone,
			updated_at = NOW()
		RETURNING (created_at = updated_at)
	`
	var created bool
	err := r.db.GetContext(ctx, &created, query,
		patientID,
		req.Age,
		nullable(req.Gender),
		nullable(req.Weight),
		nullable(req.Height),
		nullable(req.BloodGroup),
		nullable(req.Address),
		nullable(req.MedicalHistory),
		nullable(req.Allergies),
		nullable(req.CurrentMedications),
		nullable(req.EmergencyContactName),
		nullable(req.EmergencyContactPhone),
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert patient profile: %w", err)
	}
	return created, nil
}

func (r *patientRepository) GetPatientWithProfile(ctx context.Context, patientID string) (*model.PatientSearchResult, error) {
	userQuery := `
		SELECT user_id, name, email, phone, role
		FROM users
		WHERE user_id = $1 AND role = $2
	`
	var user model.PublicUser
	if err := r.db.GetContext(ctx, &user, userQuery, patientID, model.RolePatient); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	result := &model.PatientSearchResult{PublicUser: user}

	profile, err := r.getProfile(ctx, patientID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	result.Profile = profile

	return result, nil
}

func (r *patientRepository) DashboardStats(ctx context.Context, patientID string) (*model.PatientDashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM appointments WHERE patient_id = $1) AS total_appointments,
			(SELECT COUNT(*) FROM appointments WHERE patient_id = $1 AND status IN ($2, $3)) AS completed_appointments,
			(SELECT COUNT(*) FROM appointments WHERE patient_id = $1 AND status = $4) AS pending_appointments,
			(SELECT COUNT(*) FROM patient_documents WHERE patient_id = $1) AS total_reports,
			(SELECT COUNT(DISTINCT doctor_id) FROM appointments WHERE patient_id = $1) AS unique_doctors
	`
	var stats model.PatientDashboardStats
	err := r.db.GetContext(ctx, &stats, query, patientID,
		model.AppointmentStatusCompleted, model.AppointmentStatusDone, model.AppointmentStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}
	return &stats, nil
}

// nullable maps empty form values to NULL columns.
func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
