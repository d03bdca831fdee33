package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fbrdigital/invoice-relay/internal/clients"
	"github.com/fbrdigital/invoice-relay/internal/fbr"
	"github.com/fbrdigital/invoice-relay/internal/logger"
	"github.com/fbrdigital/invoice-relay/internal/metrics"
	"github.com/fbrdigital/invoice-relay/internal/validation"
)

// ClientIDHeader carries the caller's opaque credential key.
const ClientIDHeader = "x-client-id"

// HandlerConfig groups dependencies for the invoice relay handler.
type HandlerConfig struct {
	Profiles clients.Table
	Gateway  fbr.Gateway
	Metrics  *metrics.Publisher // nil disables metrics
	Logger   *logger.Logger
	Now      func() time.Time // nil means time.Now
}

// RegisterInvoiceRoutes registers the relay's submission endpoint.
func RegisterInvoiceRoutes(r *gin.Engine, cfg HandlerConfig) {
	v := validation.New()
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	r.POST("/submit-invoice", func(c *gin.Context) {
		ctx := c.Request.Context()

		// Gate on the client id before any other work. An unknown id
		// must never reach binding, translation or the gateway.
		clientID := c.GetHeader(ClientIDHeader)
		profile, ok := cfg.Profiles.Lookup(clientID)
		if !ok {
			recordSubmission(ctx, cfg, clientID, metrics.OutcomeUnauthorized)
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Unauthorized: Invalid Client ID"})
			return
		}

		var req validation.InvoiceRequest
		if err := validation.BindAndValidate(c, &req, v); err != nil {
			// BindAndValidate already wrote a 400
			return
		}

		payload := fbr.Translate(&req, profile, now())
		cfg.Logger.Infow("forwarding invoice to FBR",
			"client_id", clientID,
			"usin", req.USIN,
			"invoice_ref", payload.InvoiceRefNo,
			"items", len(payload.Items),
		)

		reply, err := cfg.Gateway.Submit(ctx, profile.AuthToken, payload)
		if err != nil {
			cfg.Logger.Errorw("gateway unreachable", "client_id", clientID, "error", err)
			recordSubmission(ctx, cfg, clientID, metrics.OutcomeUnreachable)
			c.JSON(http.StatusInternalServerError, gin.H{
				"detail": fmt.Sprintf("FBR Connection Failed: %v", err),
			})
			return
		}

		result := fbr.MapReply(reply)
		outcome := metrics.OutcomeFailed
		if result.Status == fbr.StatusSuccess {
			outcome = metrics.OutcomeSuccess
		}
		recordSubmission(ctx, cfg, clientID, outcome)

		cfg.Logger.Infow("gateway result",
			"client_id", clientID,
			"usin", req.USIN,
			"status", result.Status,
			"fbr_invoice_number", result.FBRInvoiceNumber,
		)
		c.JSON(http.StatusOK, result)
	})
}

// recordSubmission publishes the outcome counter. Metric failures are
// logged but never affect the submission response.
func recordSubmission(ctx context.Context, cfg HandlerConfig, clientID, outcome string) {
	if err := cfg.Metrics.RecordSubmission(ctx, clientID, outcome); err != nil {
		cfg.Logger.Warnw("failed to record submission metric",
			"client_id", clientID,
			"outcome", outcome,
			"error", err,
		)
	}
}
