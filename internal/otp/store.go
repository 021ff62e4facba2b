package otp

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no live entry exists for the email;
// expired entries are indistinguishable from absent ones.
var ErrNotFound = errors.New("otp entry not found")

// Entry is a password-reset code awaiting verification.
type Entry struct {
	Code     string `json:"code"`
	Attempts int    `json:"attempts"`
	Verified bool   `json:"verified"`
}

// Store keeps OTP entries with a native TTL. Put starts (or restarts)
// the TTL; Update preserves the remaining TTL.
type Store interface {
	Put(ctx context.Context, email string, entry *Entry, ttl time.Duration) error
	Get(ctx context.Context, email string) (*Entry, error)
	Update(ctx context.Context, email string, entry *Entry) error
	Delete(ctx context.Context, email string) error
}
