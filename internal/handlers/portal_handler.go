package handlers

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fbrdigital/invoice-relay/internal/auth"
	"github.com/fbrdigital/invoice-relay/internal/logger"
	"github.com/fbrdigital/invoice-relay/internal/rate"
	"github.com/fbrdigital/invoice-relay/internal/refdata"
	"github.com/fbrdigital/invoice-relay/internal/session"
)

// SessionHeader carries the portal's opaque session token.
const SessionHeader = "x-session-token"

// PortalConfig groups dependencies for the portal backend handlers.
type PortalConfig struct {
	Auth      auth.Authenticator
	Sessions  *session.Store
	Reference *refdata.Set
	RelayURL  string       // base URL of the relay, e.g. http://localhost:8080
	Client    *http.Client // used to forward submissions to the relay
	Logger    *logger.Logger
	Now       func() time.Time // nil means time.Now
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type estimateRequest struct {
	ValueExcl float64 `json:"value_excl"`
	Rate      string  `json:"rate" binding:"required"`
}

// RegisterPortalRoutes registers the form-facing endpoints: login/logout,
// reference dropdown options, session state with explicit reset, the
// display-only tax estimate, and submission forwarding to the relay.
func RegisterPortalRoutes(r *gin.Engine, cfg PortalConfig) {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	r.POST("/login", func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_body", "msg": err.Error()})
			return
		}

		account, err := cfg.Auth.Authenticate(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication_failed"})
			return
		}

		token := uuid.NewString()
		sess := &session.Session{
			ClientID:    account.ClientID,
			CompanyName: account.CompanyName,
			Form:        session.NewFormState(cfg.Reference, account.CompanyName, now()),
		}
		cfg.Sessions.Put(token, sess)

		c.JSON(http.StatusOK, gin.H{"token": token, "company_name": account.CompanyName})
	})

	r.POST("/logout", func(c *gin.Context) {
		cfg.Sessions.Delete(c.GetHeader(SessionHeader))
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/reference/:category", func(c *gin.Context) {
		category := c.Param("category")
		c.JSON(http.StatusOK, gin.H{
			"category": category,
			"options":  cfg.Reference.Options(category),
		})
	})

	r.POST("/estimate", func(c *gin.Context) {
		var req estimateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_body", "msg": err.Error()})
			return
		}

		pct := rate.ParsePercent(req.Rate)
		est := rate.EstimateTax(decimal.NewFromFloat(req.ValueExcl), pct)
		c.JSON(http.StatusOK, gin.H{
			"rate_percent":  pct.String(),
			"estimated_tax": est.StringFixed(2),
		})
	})

	r.GET("/session", func(c *gin.Context) {
		sess, _, ok := requireSession(c, cfg)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, sess)
	})

	r.POST("/session/reset", func(c *gin.Context) {
		_, token, ok := requireSession(c, cfg)
		if !ok {
			return
		}
		sess, ok := cfg.Sessions.Reset(token, cfg.Reference, now())
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not_logged_in"})
			return
		}
		c.JSON(http.StatusOK, sess)
	})

	// Forward a submission to the relay with this session's client id.
	// The portal never talks to the gateway directly.
	r.POST("/submit", func(c *gin.Context) {
		sess, _, ok := requireSession(c, cfg)
		if !ok {
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request_body"})
			return
		}

		req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost,
			cfg.RelayURL+"/submit-invoice", bytes.NewReader(body))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "relay_request_failed"})
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(ClientIDHeader, sess.ClientID)

		resp, err := cfg.Client.Do(req)
		if err != nil {
			cfg.Logger.Errorw("relay unreachable", "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "relay_unreachable"})
			return
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "relay_response_unreadable"})
			return
		}
		c.Data(resp.StatusCode, "application/json", respBody)
	})
}

func requireSession(c *gin.Context, cfg PortalConfig) (session.Session, string, bool) {
	token := c.GetHeader(SessionHeader)
	sess, ok := cfg.Sessions.Get(token)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not_logged_in"})
		return session.Session{}, "", false
	}
	return sess, token, true
}
