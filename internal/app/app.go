package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"scheduling/internal/config"
	"scheduling/internal/middleware"
	"scheduling/internal/modules/appointment"
	"scheduling/internal/modules/auth"
	"scheduling/internal/modules/availability"
	"scheduling/internal/modules/customer"
	"scheduling/internal/modules/serviceitem"
	"scheduling/internal/modules/staffservice"
	"scheduling/internal/modules/user"
	"scheduling/internal/notify"
	jwtsvc "scheduling/internal/pkg/jwt"
	"scheduling/internal/pkg/response"
	"scheduling/internal/repository"

	_ "scheduling/docs"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Deps are the external collaborators of the HTTP application.
type Deps struct {
	Config *config.Config
	DB     *gorm.DB
	Log    *zap.Logger
	Mailer notify.Mailer
	Phones notify.PhoneVerifier
	// Counters backs the auth rate limiter.
	Counters middleware.CounterStore
}

// NewRouter wires repositories, services and handlers into a gin engine.
func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config

	userRepo := repository.NewUserRepository(d.DB)
	customerRepo := repository.NewCustomerRepository(d.DB)
	verificationRepo := repository.NewVerificationRepository(d.DB)
	itemRepo := repository.NewServiceItemRepository(d.DB)
	staffServiceRepo := repository.NewStaffServiceRepository(d.DB)
	availabilityRepo := repository.NewAvailabilityRepository(d.DB)
	appointmentRepo := repository.NewAppointmentRepository(d.DB)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authService := auth.NewService(userRepo, verificationRepo, j, d.Mailer, d.Phones, d.Log, auth.Options{
		VerificationCodePepper: cfg.VerificationCodePepper,
		VerifyCodeTTL:          cfg.VerifyCodeTTL,
		VerifyResendCooldown:   cfg.VerifyResendCooldown,
	})
	userService := user.NewService(userRepo)
	customerService := customer.NewService(customerRepo, userRepo)
	itemService := serviceitem.NewService(itemRepo, staffServiceRepo, availabilityRepo, appointmentRepo)
	staffServiceService := staffservice.NewService(staffServiceRepo, userRepo, itemRepo)
	availabilityService := availability.NewService(availabilityRepo, appointmentRepo, userRepo)
	appointmentService := appointment.NewService(
		appointmentRepo,
		customerRepo,
		itemRepo,
		staffServiceRepo,
		availabilityService,
		d.Mailer,
		d.Log,
	)

	authHandler := auth.NewHandler(authService)
	userHandler := user.NewHandler(userService)
	customerHandler := customer.NewHandler(customerService)
	itemHandler := serviceitem.NewHandler(itemService)
	staffServiceHandler := staffservice.NewHandler(staffServiceService)
	availabilityHandler := availability.NewHandler(availabilityService)
	appointmentHandler := appointment.NewHandler(appointmentService)

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(ginzap.Ginzap(d.Log, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(d.Log, true))
	r.Use(middleware.ErrorLogger(d.Log))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "", gin.H{"status": "ok"})
	})
	r.GET("/metrics", middleware.MetricsHandler())
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	limiter := middleware.RateLimit(d.Counters, cfg.RateLimitPerMinute, time.Minute, "auth", d.Log)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1, limiter)
		itemHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("", middleware.JWTAuth(j, userRepo))
		{
			authHandler.RegisterProtectedRoutes(protected, limiter)
			userHandler.RegisterProtectedRoutes(protected)
			customerHandler.RegisterProtectedRoutes(protected)
			itemHandler.RegisterProtectedRoutes(protected)
			staffServiceHandler.RegisterProtectedRoutes(protected)
			availabilityHandler.RegisterProtectedRoutes(protected)
			appointmentHandler.RegisterProtectedRoutes(protected)
		}
	}

	return r
}

// NewMailer sends through MailerSend when an API key is configured. Prod-like environments require one.
func NewMailer(cfg *config.Config, log *zap.Logger) (notify.Mailer, error) {
	if cfg.MailerSendAPIKey == "" {
		if cfg.IsProdLike() {
			return nil, fmt.Errorf("MAILERSEND_API_KEY is required in %s", cfg.AppEnv)
		}
		log.Warn("MAILERSEND_API_KEY not set, emails are logged only")
		return notify.NewLogMailer(log), nil
	}
	return notify.NewMailerSendMailer(cfg.MailerSendAPIKey, cfg.MailFromName, cfg.MailFromEmail), nil
}

// NewPhoneVerifier uses Twilio Verify when credentials are configured. Prod-like environments require them.
func NewPhoneVerifier(cfg *config.Config, log *zap.Logger) (notify.PhoneVerifier, error) {
	if cfg.TwilioAccountSID == "" || cfg.TwilioAuthToken == "" || cfg.TwilioVerifyServiceSID == "" {
		if cfg.IsProdLike() {
			return nil, fmt.Errorf("twilio credentials are required in %s", cfg.AppEnv)
		}
		log.Warn("twilio not configured, phone codes are accepted as " + notify.DevCode)
		return notify.NewDevVerifier(log), nil
	}
	return notify.NewTwilioVerifier(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioVerifyServiceSID), nil
}

// NewCounterStore connects to Redis when REDIS_URL is set and falls back to process memory.
// The returned close function is never nil.
func NewCounterStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (middleware.CounterStore, func() error, error) {
	if cfg.RedisURL == "" {
		log.Info("REDIS_URL not set, rate limiting is per process")
		return middleware.NewMemoryStore(), func() error { return nil }, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	return middleware.NewRedisStore(rdb), rdb.Close, nil
}
