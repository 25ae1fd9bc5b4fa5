package server

import (
	"crypto/subtle"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/turmapay/turmapay/internal/payment/domain"
	"go.uber.org/zap"
)

const webhookTokenHeader = "asaas-access-token"

// webhookCORS answers delivery preflight checks. The endpoint is
// machine-to-machine, so any origin may probe it; preflight gets a
// plain 200.
func webhookCORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, "+webhookTokenHeader)
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusOK)
			c.Abort()
			return
		}
		c.Next()
	}
}

// HandleAsaasWebhook receives provider payment events. Contract with
// the provider: bad token 401, unreadable shape 400, everything else
// 200 so the provider never retries what we have already seen.
func (s *Server) HandleAsaasWebhook(c *gin.Context) {
	expected := s.cfg.AsaasWebhookToken
	if expected != "" {
		got := strings.TrimSpace(c.GetHeader(webhookTokenHeader))
		if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}
	}

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	event, err := paymentdomain.ParseEvent(payload)
	if err != nil {
		if errors.Is(err, paymentdomain.ErrMalformedPayload) {
			AbortWithError(c, invalidRequestError())
			return
		}
		AbortWithError(c, err)
		return
	}

	outcome, err := s.paymentSvc.ProcessEvent(c.Request.Context(), event)
	if err != nil {
		// Acknowledge anyway. The provider retries on non-2xx and a
		// replay of a failed event is safe.
		s.log.Error("webhook event processing failed",
			zap.String("event", event.RawEvent),
			zap.String("asaas_payment_id", event.Payment.ID),
			zap.Error(err),
		)
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "outcome": string(outcome)})
}
