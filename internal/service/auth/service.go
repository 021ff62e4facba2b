package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/healthhub/healthhub-api/internal/model"
	"github.com/healthhub/healthhub-api/internal/repository"
	"github.com/healthhub/healthhub-api/pkg/auth"
	apperrors "github.com/healthhub/healthhub-api/pkg/errors"
	"github.com/healthhub/healthhub-api/pkg/security"
)

const minPasswordLength = 6

type Service struct {
	userRepo     repository.UserRepository
	jwtSvc       auth.JWTService
	hasher       security.PasswordHasher
	doctorDomain string
}

func NewService(userRepo repository.UserRepository, jwtSvc auth.JWTService,
	hasher security.PasswordHasher, doctorDomain string) *Service {
	return &Service{
		userRepo:     userRepo,
		jwtSvc:       jwtSvc,
		hasher:       hasher,
		doctorDomain: doctorDomain,
	}
}

// LoginResult carries the signed session token and the user payload
// returned to the client.
type LoginResult struct {
	Token    string
	User     *model.PublicUser
	Redirect string
}

// ValidDoctorEmail reports whether the email belongs to the reserved
// doctor domain.
func (s *Service) ValidDoctorEmail(email string) bool {
	return strings.HasSuffix(strings.ToLower(email), s.doctorDomain)
}

func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) error {
	if req.UserType == "" || req.Name == "" || req.Email == "" ||
		req.Phone == "" || req.Password == "" || req.ConfirmPassword == "" {
		return apperrors.Validation("All fields are required")
	}
	if !req.UserType.Valid() {
		return apperrors.Validation("Invalid user type")
	}
	if req.UserType == model.RoleDoctor && !s.ValidDoctorEmail(req.Email) {
		return apperrors.Validation(fmt.Sprintf("Doctors must register with an %s email address", s.doctorDomain))
	}
	if req.Password != req.ConfirmPassword {
		return apperrors.Validation("Passwords do not match")
	}
	if len(req.Password) < minPasswordLength {
		return apperrors.Validation("Password must be at least 6 characters")
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return apperrors.Internal(err)
	}
	if exists {
		return apperrors.Conflict("Email already exists")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return apperrors.Internal(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &model.User{
		UserID:       model.NewUserID(req.UserType),
		Role:         req.UserType,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return apperrors.Internal(err)
	}

	log.Info().Str("user_id", user.UserID).Str("role", user.Role.String()).Msg("user registered")
	return nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if email == "" || password == "" {
		return nil, apperrors.Validation("Email and password are required")
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal(err)
	}

	if user.Role == model.RoleDoctor && !s.ValidDoctorEmail(email) {
		return nil, apperrors.Forbidden(fmt.Sprintf(
			"Invalid doctor email. Only %s emails are allowed for doctors.", s.doctorDomain))
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, apperrors.Unauthorized("Invalid password")
	}

	token, err := s.jwtSvc.GenerateToken(&model.TokenClaims{
		UserID: user.UserID,
		Email:  user.Email,
		Role:   user.Role,
		Name:   user.Name,
		Phone:  user.Phone,
	})
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &LoginResult{
		Token: token,
		User: &model.PublicUser{
			UserID: user.UserID,
			Name:   user.Name,
			Email:  user.Email,
			Phone:  user.Phone,
			Role:   user.Role,
		},
		Redirect: user.Role.DashboardRedirect(),
	}, nil
}

// CurrentUser resolves the authenticated user from the store rather than
// trusting the (possibly stale) cookie claims.
func (s *Service) CurrentUser(ctx context.Context, userID string) (*model.PublicUser, error) {
	user, err := s.userRepo.GetPublicByID(ctx, userID)
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}
