package server

import (
	"crypto/subtle"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/turmapay/turmapay/internal/studentctx"
	"go.uber.org/zap"
)

const studentIDHeader = "X-Student-ID"

// APIKeyRequired authenticates requests against the static API token
// issued to the auth gateway.
func (s *Server) APIKeyRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.cfg.APIToken == "" {
			AbortWithError(c, ErrServiceUnavailable)
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		parts := strings.Fields(header)
		if len(parts) != 2 || parts[0] != "Bearer" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(parts[1]), []byte(s.cfg.APIToken)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Next()
	}
}

// StudentContext lifts the acting student id, forwarded by the auth
// gateway, into the request context. Absence is fine; operations that
// need ownership reject later.
func (s *Server) StudentContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(studentIDHeader))
		if raw == "" {
			c.Next()
			return
		}

		studentID, err := snowflake.ParseString(raw)
		if err != nil || studentID == 0 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		ctx := studentctx.WithStudentID(c.Request.Context(), int64(studentID))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// WebhookRateLimit throttles webhook deliveries per sender address.
// Without redis the limiter allows everything.
func (s *Server) WebhookRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := s.webhookLimiter.Allow(c.Request.Context(), "webhook:rate:"+c.ClientIP(), 20, 40)
		if err != nil {
			s.log.Warn("webhook rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !res.Allowed {
			AbortWithError(c, ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
