package doctor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthhub/healthhub-api/internal/middleware"
	"github.com/healthhub/healthhub-api/internal/model"
	"github.com/healthhub/healthhub-api/internal/repository"
	doctorService "github.com/healthhub/healthhub-api/internal/service/doctor"
	pkgauth "github.com/healthhub/healthhub-api/pkg/auth"
)

type listingDoctorRepo struct {
	listings []*model.DoctorListing
}

func (r *listingDoctorRepo) GetProfile(_ context.Context, _ string) (*model.DoctorProfile, error) {
	return nil, repository.ErrNotFound
}

func (r *listingDoctorRepo) UpsertProfile(_ context.Context, _ *model.DoctorProfile) (bool, error) {
	return false, nil
}

func (r *listingDoctorRepo) ListDoctors(_ context.Context) ([]*model.DoctorListing, error) {
	return r.listings, nil
}

func (r *listingDoctorRepo) DashboardStats(_ context.Context, _, _ string) (*model.DoctorDashboardStats, error) {
	return &model.DoctorDashboardStats{}, nil
}

func newTestRouter(t *testing.T) (*gin.Engine, pkgauth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	doctorRepo := &listingDoctorRepo{listings: []*model.DoctorListing{
		{UserID: "DOC-1", Name: "Dr. X", Email: "dr.x@healthhub.com"},
	}}
	svc := doctorService.NewService(nil, doctorRepo, nil, nil)
	h := NewHandler(svc)

	jwtSvc := pkgauth.NewJWTService("test-secret", time.Hour)
	mw := middleware.NewAuthMiddleware(jwtSvc)

	r := gin.New()
	r.Use(middleware.ErrorHandler(nil))
	api := r.Group("/api", mw.Authenticate())
	h.RegisterRoutes(api, mw)
	return r, jwtSvc
}

func sessionCookie(t *testing.T, jwtSvc pkgauth.JWTService, role model.Role) *http.Cookie {
	t.Helper()
	token, err := jwtSvc.GenerateToken(&model.TokenClaims{
		UserID: model.NewUserID(role),
		Role:   role,
	})
	require.NoError(t, err)
	return &http.Cookie{Name: middleware.SessionCookieName, Value: token}
}

func TestListDoctorsPatientOnly(t *testing.T) {
	r, jwtSvc := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/doctors", nil)
	req.AddCookie(sessionCookie(t, jwtSvc, model.RolePatient))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dr. X")

	// The directory is patient-facing; doctors are turned away.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/doctors", nil)
	req.AddCookie(sessionCookie(t, jwtSvc, model.RoleDoctor))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Only patients can access this endpoint")
}
