package passwordreset

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/healthhub/healthhub-api/internal/email"
	"github.com/healthhub/healthhub-api/internal/otp"
	"github.com/healthhub/healthhub-api/internal/repository"
	apperrors "github.com/healthhub/healthhub-api/pkg/errors"
	"github.com/healthhub/healthhub-api/pkg/metrics"
	"github.com/healthhub/healthhub-api/pkg/security"
)

const (
	otpTTL      = 5 * time.Minute
	maxAttempts = 3
)

type Service struct {
	userRepo repository.UserRepository
	store    otp.Store
	sender   email.Sender
	hasher   security.PasswordHasher
	metrics  *metrics.Metrics
}

func NewService(userRepo repository.UserRepository, store otp.Store,
	sender email.Sender, hasher security.PasswordHasher, m *metrics.Metrics) *Service {
	return &Service{
		userRepo: userRepo,
		store:    store,
		sender:   sender,
		hasher:   hasher,
		metrics:  m,
	}
}

// SendOTP issues a fresh 6-digit code, overwriting any prior entry.
func (s *Service) SendOTP(ctx context.Context, emailAddr string) error {
	if emailAddr == "" {
		return apperrors.Validation("Email is required")
	}

	exists, err := s.userRepo.EmailExists(ctx, emailAddr)
	if err != nil {
		return apperrors.Internal(err)
	}
	if !exists {
		return apperrors.NotFound("No account found with this email")
	}

	code, err := generateCode()
	if err != nil {
		return apperrors.Internal(err)
	}

	if err := s.store.Put(ctx, emailAddr, &otp.Entry{Code: code}, otpTTL); err != nil {
		return apperrors.Internal(err)
	}

	if err := s.sender.SendPasswordResetCode(ctx, emailAddr, code); err != nil {
		log.Error().Err(err).Str("email", emailAddr).Msg("failed to send otp email")
		return apperrors.Internal(err)
	}

	if s.metrics != nil {
		s.metrics.OTPIssued.Inc()
	}
	return nil
}

// VerifyOTP checks a submitted code. Three failed attempts burn the
// entry; a match marks it verified in place, keeping the replay window
// bounded by the original TTL.
func (s *Service) VerifyOTP(ctx context.Context, emailAddr, code string) error {
	if emailAddr == "" || code == "" {
		return apperrors.Validation("Email and OTP are required")
	}

	entry, err := s.store.Get(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, otp.ErrNotFound) {
			s.countVerify("expired")
			return apperrors.NotFound("OTP not found or expired. Please request a new one.")
		}
		return apperrors.Internal(err)
	}

	if entry.Attempts >= maxAttempts {
		_ = s.store.Delete(ctx, emailAddr)
		s.countVerify("rate_limited")
		return apperrors.RateLimit("Too many failed attempts. Please request a new OTP.")
	}

	if entry.Code != code {
		entry.Attempts++
		if err := s.store.Update(ctx, emailAddr, entry); err != nil && !errors.Is(err, otp.ErrNotFound) {
			return apperrors.Internal(err)
		}
		s.countVerify("mismatch")
		return apperrors.Unauthorized(fmt.Sprintf("Invalid OTP. %d attempts remaining.", maxAttempts-entry.Attempts))
	}

	entry.Verified = true
	if err := s.store.Update(ctx, emailAddr, entry); err != nil {
		if errors.Is(err, otp.ErrNotFound) {
			return apperrors.NotFound("OTP not found or expired. Please request a new one.")
		}
		return apperrors.Internal(err)
	}

	s.countVerify("ok")
	return nil
}

// ResetPassword requires a verified entry and consumes it.
func (s *Service) ResetPassword(ctx context.Context, emailAddr, newPassword string) error {
	if emailAddr == "" || newPassword == "" {
		return apperrors.Validation("Email and new password are required")
	}

	entry, err := s.store.Get(ctx, emailAddr)
	if err != nil || !entry.Verified {
		return apperrors.Unauthorized("Please verify OTP first")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		if errors.Is(err, security.ErrPasswordTooShort) {
			return apperrors.Validation("Password must be at least 6 characters")
		}
		return apperrors.Internal(err)
	}

	if err := s.userRepo.UpdatePassword(ctx, emailAddr, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("User not found")
		}
		return apperrors.Internal(err)
	}

	if err := s.store.Delete(ctx, emailAddr); err != nil {
		log.Error().Err(err).Str("email", emailAddr).Msg("failed to delete otp entry")
	}
	return nil
}

func (s *Service) countVerify(result string) {
	if s.metrics != nil {
		s.metrics.OTPVerified.WithLabelValues(result).Inc()
	}
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
