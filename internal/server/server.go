package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/turmapay/turmapay/internal/asaas"
	"github.com/turmapay/turmapay/internal/audit"
	auditdomain "github.com/turmapay/turmapay/internal/audit/domain"
	"github.com/turmapay/turmapay/internal/billingcustomer"
	billingdomain "github.com/turmapay/turmapay/internal/billingcustomer/domain"
	"github.com/turmapay/turmapay/internal/cache"
	"github.com/turmapay/turmapay/internal/config"
	"github.com/turmapay/turmapay/internal/enrollment"
	enrollmentdomain "github.com/turmapay/turmapay/internal/enrollment/domain"
	obsmetrics "github.com/turmapay/turmapay/internal/observability/metrics"
	"github.com/turmapay/turmapay/internal/payment"
	paymentdomain "github.com/turmapay/turmapay/internal/payment/domain"
	"github.com/turmapay/turmapay/internal/ratelimit"
	"github.com/turmapay/turmapay/internal/schoolclass"
	schoolclassdomain "github.com/turmapay/turmapay/internal/schoolclass/domain"
	"github.com/turmapay/turmapay/internal/student"
	studentdomain "github.com/turmapay/turmapay/internal/student/domain"
	"github.com/turmapay/turmapay/internal/subscription"
	subscriptiondomain "github.com/turmapay/turmapay/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	obsmetrics.Module,
	fx.Provide(registerGin),
	asaas.Module,
	cache.Module,
	ratelimit.Module,
	audit.Module,
	student.Module,
	schoolclass.Module,
	enrollment.Module,
	billingcustomer.Module,
	subscription.Module,
	payment.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(metrics *obsmetrics.Metrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(metrics.GinMiddleware())
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

func registerGin(metrics *obsmetrics.Metrics) *gin.Engine {
	return NewEngine(metrics)
}

func run(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine          *gin.Engine
	cfg             config.Config
	log             *zap.Logger
	db              *gorm.DB
	studentSvc      studentdomain.Service
	classSvc        schoolclassdomain.Service
	enrollmentSvc   enrollmentdomain.Service
	billingSvc      billingdomain.Service
	subscriptionSvc subscriptiondomain.Service
	paymentSvc      paymentdomain.Service
	auditSvc        auditdomain.Service
	webhookLimiter  *ratelimit.TokenBucket
}

type ServerParams struct {
	fx.In

	Gin             *gin.Engine
	Cfg             config.Config
	Log             *zap.Logger
	DB              *gorm.DB
	Registry        *prometheus.Registry
	StudentSvc      studentdomain.Service
	ClassSvc        schoolclassdomain.Service
	EnrollmentSvc   enrollmentdomain.Service
	BillingSvc      billingdomain.Service
	SubscriptionSvc subscriptiondomain.Service
	PaymentSvc      paymentdomain.Service
	AuditSvc        auditdomain.Service
	WebhookLimiter  *ratelimit.TokenBucket `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:          p.Gin,
		cfg:             p.Cfg,
		log:             p.Log.Named("http.server"),
		db:              p.DB,
		studentSvc:      p.StudentSvc,
		classSvc:        p.ClassSvc,
		enrollmentSvc:   p.EnrollmentSvc,
		billingSvc:      p.BillingSvc,
		subscriptionSvc: p.SubscriptionSvc,
		paymentSvc:      p.PaymentSvc,
		auditSvc:        p.AuditSvc,
		webhookLimiter:  p.WebhookLimiter,
	}

	svc.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{})))

	svc.registerWebhookRoutes()
	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerWebhookRoutes() {
	webhooks := s.engine.Group("/webhooks", webhookCORS())
	webhooks.POST("/asaas", s.WebhookRateLimit(), s.HandleAsaasWebhook)
	webhooks.OPTIONS("/asaas", func(c *gin.Context) {})
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.APIKeyRequired(), s.StudentContext())

	// -------- Students --------
	api.GET("/students", s.ListStudents)
	api.POST("/students", s.CreateStudent)
	api.GET("/students/:id", s.GetStudentByID)
	api.POST("/students/:id/billing-customer", s.EnsureBillingCustomer)

	// -------- Classes --------
	api.GET("/classes", s.ListClasses)
	api.POST("/classes", s.CreateClass)
	api.GET("/classes/:id", s.GetClassByID)

	// -------- Enrollments --------
	api.POST("/enrollments", s.CreateEnrollment)
	api.GET("/enrollments/:id", s.GetEnrollmentByID)

	// -------- Subscriptions --------
	api.GET("/subscriptions", s.ListSubscriptions)
	api.POST("/subscriptions", s.CreateSubscription)
	api.GET("/subscriptions/:id", s.GetSubscriptionByID)
	api.GET("/subscriptions/:id/payments", s.ListSubscriptionPayments)
	api.POST("/subscriptions/:id/pause", s.PauseSubscription)
	api.POST("/subscriptions/:id/cancel", s.CancelSubscription)
	api.POST("/subscriptions/:id/reactivate", s.ReactivateSubscription)

	// -------- Webhook audit trail --------
	api.GET("/webhook-logs", s.ListWebhookLogs)
}
