package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of account roles.
type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Valid reports whether the role is one of the known variants.
func (r Role) Valid() bool {
	return r == RoleDoctor || r == RolePatient
}

// User identifier prefixes. Patients get PID-, doctors DOC-.
const (
	PatientIDPrefix = "PID-"
	DoctorIDPrefix  = "DOC-"
)

// User represents an account row. The identifier is immutable and
// role-prefixed; name, phone and password hash are mutable.
type User struct {
	UserID       string    `json:"user_id" db:"user_id"`
	Role         Role      `json:"role" db:"role"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	Phone        string    `json:"phone" db:"phone"`
	PasswordHash string    `json:"-" db:"password"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// NewUserID generates a role-prefixed user identifier.
func NewUserID(role Role) string {
	if role == RolePatient {
		return PatientIDPrefix + uuid.New().String()
	}
	return DoctorIDPrefix + uuid.New().String()
}

// IsPatientID reports whether id carries the patient prefix.
func IsPatientID(id string) bool {
	return strings.HasPrefix(strings.ToUpper(id), PatientIDPrefix)
}

// RegisterRequest is the registration payload. Cross-field checks
// (password confirmation, doctor email domain) live in the auth service.
type RegisterRequest struct {
	UserType        Role   `json:"userType"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenClaims are the user claims embedded in the session cookie token.
type TokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
}

// PublicUser is the user shape returned to clients (no password hash).
type PublicUser struct {
	UserID string `json:"user_id" db:"user_id"`
	Name   string `json:"name" db:"name"`
	Email  string `json:"email" db:"email"`
	Phone  string `json:"phone" db:"phone"`
	Role   Role   `json:"role" db:"role"`
}

// DashboardRedirect returns the post-login landing page for the role.
func (r Role) DashboardRedirect() string {
	if r == RoleDoctor {
		return "/doctor-dashboard.html"
	}
	return "/patient-dashboard.html"
}

func (r Role) String() string { return string(r) }

// ParseRole normalizes a role string, failing on anything outside the set.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}
