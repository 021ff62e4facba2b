package router

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/healthhub/healthhub-api/internal/handler/appointment"
	"github.com/healthhub/healthhub-api/internal/handler/auth"
	"github.com/healthhub/healthhub-api/internal/handler/doctor"
	"github.com/healthhub/healthhub-api/internal/handler/document"
	"github.com/healthhub/healthhub-api/internal/handler/health"
	"github.com/healthhub/healthhub-api/internal/handler/passwordreset"
	"github.com/healthhub/healthhub-api/internal/handler/patient"
	"github.com/healthhub/healthhub-api/internal/middleware"
	"github.com/healthhub/healthhub-api/pkg/metrics"
)

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	RequestTimeout time.Duration
	MaxBodyBytes   int64
	CORS           middleware.CORSConfig
}

// Handlers bundles the route handlers wired in main.
type Handlers struct {
	Auth          *auth.Handler
	Appointment   *appointment.Handler
	Doctor        *doctor.Handler
	Patient       *patient.Handler
	Document      *document.Handler
	PasswordReset *passwordreset.Handler
	Health        *health.Handler
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	handlers Handlers
	metrics  *metrics.Metrics
}

func New(authMW *middleware.AuthMiddleware, handlers Handlers, m *metrics.Metrics, config Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	r := &Router{
		engine:   engine,
		auth:     authMW,
		handlers: handlers,
		metrics:  m,
	}

	rateLimiter := middleware.NewRateLimiter(config.RateLimitRPS, config.RateLimitBurst)

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		r.metricsMiddleware(),
		middleware.ErrorHandler(m),
		middleware.CORS(config.CORS),
		rateLimiter.Middleware(),
		middleware.BodySizeLimit(config.MaxBodyBytes),
		middleware.Timeout(config.RequestTimeout),
	)

	return r
}

func (r *Router) Setup() {
	root := r.engine.Group("")
	r.handlers.Auth.RegisterRoutes(root)
	r.handlers.Health.RegisterRoutes(root)
	root.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api")

	// The reset flow is unauthenticated.
	r.handlers.PasswordReset.RegisterRoutes(api)

	protected := api.Group("", r.auth.Authenticate())
	r.handlers.Auth.RegisterSessionRoutes(protected)
	r.handlers.Appointment.RegisterRoutes(protected, r.auth)
	r.handlers.Doctor.RegisterRoutes(protected, r.auth)
	r.handlers.Patient.RegisterRoutes(protected, r.auth)
	r.handlers.Document.RegisterRoutes(protected)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.metrics == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		r.metrics.RequestTotal.WithLabelValues(
			c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		r.metrics.RequestDuration.WithLabelValues(
			c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
