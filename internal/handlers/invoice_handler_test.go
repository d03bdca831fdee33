package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fbrdigital/invoice-relay/internal/clients"
	"github.com/fbrdigital/invoice-relay/internal/fbr"
	"github.com/fbrdigital/invoice-relay/internal/logger"
	"github.com/fbrdigital/invoice-relay/internal/metrics"
)

// fakeGateway records submissions and returns a canned reply.
type fakeGateway struct {
	calls       int
	lastToken   string
	lastPayload *fbr.InvoicePayload
	reply       *fbr.Reply
	err         error
}

func (f *fakeGateway) Submit(ctx context.Context, token string, payload *fbr.InvoicePayload) (*fbr.Reply, error) {
	f.calls++
	f.lastToken = token
	f.lastPayload = payload
	if f.err != nil {
		return nil, f.err
	}
	return f.reply, nil
}

func testTable() clients.Table {
	return clients.Table{
		"client_a": {AuthToken: "tok-a", SellerNTN: "1234567", Name: "Alpha Traders Ltd"},
	}
}

func relayRouter(t *testing.T, gw fbr.Gateway) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterInvoiceRoutes(r, HandlerConfig{
		Profiles: testTable(),
		Gateway:  gw,
		Logger:   logger.NewNop(),
		Now:      func() time.Time { return time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC) },
	})
	return r
}

func submitBody() []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"invoice_id": "INV-001",
		"usin":       "USIN001",
		"total_bill": 1180.0,
		"buyer_reg":  "1000000000000",
		"buyer_name": "Walk-in Customer",
		"buyer_type": "Unregistered",
		"items": []map[string]interface{}{
			{
				"ItemCode":    "8432.8010",
				"ItemName":    "Tractor parts",
				"Quantity":    2.0,
				"TaxRate":     18.0,
				"SaleValue":   1000.0,
				"TaxCharged":  180.0,
				"TotalAmount": 1180.0,
			},
		},
	})
	return body
}

func doSubmit(r *gin.Engine, clientID string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/submit-invoice", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if clientID != "" {
		req.Header.Set(ClientIDHeader, clientID)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitInvoice_UnknownClientNeverReachesGateway(t *testing.T) {
	gw := &fakeGateway{}
	r := relayRouter(t, gw)

	w := doSubmit(r, "intruder", submitBody())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, gw.calls)

	// missing header is equally unauthorized
	w = doSubmit(r, "", submitBody())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, gw.calls)
}

func TestSubmitInvoice_Success(t *testing.T) {
	gw := &fakeGateway{reply: &fbr.Reply{
		StatusCode: 200,
		Body:       []byte(`{"validationResponse": {"status": "Valid"}, "invoiceNumber": "N123"}`),
	}}
	r := relayRouter(t, gw)

	w := doSubmit(r, "client_a", submitBody())
	require.Equal(t, http.StatusOK, w.Code)

	var result fbr.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, fbr.StatusSuccess, result.Status)
	assert.Equal(t, "N123", result.FBRInvoiceNumber)

	// the profile's bearer token and translated payload went out
	require.Equal(t, 1, gw.calls)
	assert.Equal(t, "tok-a", gw.lastToken)
	require.NotNil(t, gw.lastPayload)
	assert.Equal(t, "Sale Invoice", gw.lastPayload.InvoiceType)
	assert.Equal(t, "2026-08-31", gw.lastPayload.InvoiceDate)
	assert.Equal(t, "1234567", gw.lastPayload.SellerNTNCNIC)
	require.Len(t, gw.lastPayload.Items, 1)
	assert.Equal(t, "18%", gw.lastPayload.Items[0].Rate)
}

func TestSubmitInvoice_UpstreamValidationFailure(t *testing.T) {
	gw := &fakeGateway{reply: &fbr.Reply{
		StatusCode: 200,
		Body:       []byte(`{"validationResponse": {"status": "Invalid", "error": "Bad HS Code"}}`),
	}}
	r := relayRouter(t, gw)

	w := doSubmit(r, "client_a", submitBody())
	require.Equal(t, http.StatusOK, w.Code)

	var result fbr.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, fbr.StatusFailed, result.Status)
	assert.Equal(t, "Bad HS Code", result.Message)
}

func TestSubmitInvoice_TransportFailure(t *testing.T) {
	gw := &fakeGateway{err: context.DeadlineExceeded}
	r := relayRouter(t, gw)

	w := doSubmit(r, "client_a", submitBody())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "FBR Connection Failed")
}

// failingCloudWatch rejects every PutMetricData call.
type failingCloudWatch struct{}

func (failingCloudWatch) PutMetricData(ctx context.Context, params *cloudwatch.PutMetricDataInput, optFns ...func(*cloudwatch.Options)) (*cloudwatch.PutMetricDataOutput, error) {
	return nil, errors.New("throttled")
}

func TestSubmitInvoice_MetricFailureLoggedNotSurfaced(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	gw := &fakeGateway{reply: &fbr.Reply{
		StatusCode: 200,
		Body:       []byte(`{"validationResponse": {"status": "Valid"}, "invoiceNumber": "N123"}`),
	}}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterInvoiceRoutes(r, HandlerConfig{
		Profiles: testTable(),
		Gateway:  gw,
		Metrics:  metrics.NewPublisher(failingCloudWatch{}),
		Logger:   &logger.Logger{SugaredLogger: zap.New(core).Sugar()},
		Now:      func() time.Time { return time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC) },
	})

	w := doSubmit(r, "client_a", submitBody())

	// the caller still gets the mapped gateway result
	require.Equal(t, http.StatusOK, w.Code)
	var result fbr.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, fbr.StatusSuccess, result.Status)

	// and the metric failure left a warn entry
	entries := logs.FilterMessage("failed to record submission metric").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "client_a", fields["client_id"])
	assert.Equal(t, metrics.OutcomeSuccess, fields["outcome"])
}

func TestSubmitInvoice_InvalidBody(t *testing.T) {
	gw := &fakeGateway{}
	r := relayRouter(t, gw)

	w := doSubmit(r, "client_a", []byte(`{"usin": "USIN001", "items": []}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, gw.calls)
}
