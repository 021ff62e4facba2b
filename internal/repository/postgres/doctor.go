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

func (r *doctorRepository) GetProfile(ctx context.Context, doctorID string) (*model.DoctorProfile, error) {
	query := `
		SELECT doctor_id, speciality, degree, experience,
			   consultation_fee, address, bio, created_at, updated_at
		FROM doctor_profiles
		WHERE doctor_id = $1
	`
	var profile model.DoctorProfile
	if err := r.db.GetContext(ctx, &profile, query, doctorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get doctor profile: %w", err)
	}
	return &profile, nil
}

func (r *doctorRepository) UpsertProfile(ctx context.Context, profile *model.DoctorProfile) (bool, error) {
	query := `
		INSERT INTO doctor_profiles
			(doctor_id, speciality, degree, experience, consultation_fee, address, bio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		ON CONFLICT (doctor_id) DO UPDATE
		SET speciality = EXCLUDED.speciality,
			degree = EXCLUDED.degree,
			experience = EXCLUDED.experience,
			consultation_fee = EXCLUDED.consultation_fee,
			address = EXCLUDED.address,
			bio = EXCLUDED.bio,
			updated_at = NOW()
		RETURNING (created_at = updated_at)
	`
	var created bool
	err := r.db.GetContext(ctx, &created, query,
		profile.DoctorID,
		profile.Speciality,
		profile.Degree,
		profile.Experience,
		profile.ConsultationFee,
		profile.Address,
		profile.Bio,
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert doctor profile: %w", err)
	}
	return created, nil
}

func (r *doctorRepository) ListDoctors(ctx context.Context) ([]*model.DoctorListing, error) {
	query := `
		SELECT u.user_id, u.name, u.email, u.phone,
			   dp.speciality, dp.degree, dp.experience,
			   dp.consultation_fee, dp.address, dp.bio
		FROM users u
		LEFT JOIN doctor_profiles dp ON u.user_id = dp.doctor_id
		WHERE u.role = $1
		ORDER BY u.name ASC
	`
	doctors := []*model.DoctorListing{}
	if err := r.db.SelectContext(ctx, &doctors, query, model.RoleDoctor); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) DashboardStats(ctx context.Context, doctorID, today string) (*model.DoctorDashboardStats, error) {
	day, err := time.Parse("2006-01-02", today)
	if err != nil {
		return nil, fmt.Errorf("invalid stats date: %w", err)
	}

	query := `
		SELECT
			(SELECT COUNT(*) FROM appointments
				WHERE doctor_id = $1 AND appointment_date = $2) AS today_appointments,
			(SELECT COUNT(*) FROM patient_records
				WHERE doctor_id = $1) AS total_patients,
			(SELECT COUNT(*) FROM appointments
				WHERE doctor_id = $1 AND appointment_date = $2 AND status IN ($3, $4)) AS completed_today,
			(SELECT COUNT(*) FROM appointments
				WHERE doctor_id = $1 AND appointment_date = $2 AND status = $5) AS pending_today
	`
	var row struct {
		TodayAppointments int `db:"today_appointments"`
		TotalPatients     int `db:"total_patients"`
		CompletedToday    int `db:"completed_today"`
		PendingToday      int `db:"pending_today"`
	}
	err = r.db.GetContext(ctx, &row, query, doctorID, day,
		model.AppointmentStatusCompleted, model.AppointmentStatusDone, model.AppointmentStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to get dashboard stats: %w", err)
	}

	return &model.DoctorDashboardStats{
		TodayAppointments: row.TodayAppointments,
		TotalPatients:     row.TotalPatients,
		CompletedToday:    row.CompletedToday,
		PendingToday:      row.PendingToday,
	}, nil
}
