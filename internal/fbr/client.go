package fbr

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SandboxURL is the DI sandbox submission endpoint.
const SandboxURL = "https://gw.fbr.gov.pk/di_data/v1/di/postinvoicedata_sb"

// Reply carries the gateway's raw response for later mapping. A Reply is
// returned whenever the gateway answered at all, whatever the status code;
// only transport-level failures surface as errors.
type Reply struct {
	StatusCode int
	Body       []byte
}

// Gateway submits one invoice payload to the tax authority.
type Gateway interface {
	Submit(ctx context.Context, token string, payload *InvoicePayload) (*Reply, error)
}

// HTTPGateway is the production Gateway: a single POST with a bearer
// token and a bounded timeout, never retried.
type HTTPGateway struct {
	url    string
	client *http.Client
}

// NewHTTPGateway builds a gateway client. insecureSkipVerify works around
// the sandbox's broken TLS chain and must stay off for production.
func NewHTTPGateway(url string, timeout time.Duration, insecureSkipVerify bool) *HTTPGateway {
	transport := http.DefaultTransport
	if insecureSkipVerify {
		transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}
	return &HTTPGateway{
		url: url,
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

func (g *HTTPGateway) Submit(ctx context.Context, token string, payload *InvoicePayload) (*Reply, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway unreachable: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}

	return &Reply{StatusCode: resp.StatusCode, Body: raw}, nil
}
