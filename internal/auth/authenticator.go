package auth

import (
	"context"
	"errors"
)

// ErrInvalidCredentials is returned for unknown users and wrong passwords
// alike; the login surface does not distinguish the two.
var ErrInvalidCredentials = errors.New("incorrect username or password")

// Account is a signed-in portal user's configuration.
type Account struct {
	Username    string
	CompanyName string
	// ClientID is sent to the relay as the x-client-id header on every
	// submission made for this account.
	ClientID string
}

// Authenticator verifies portal credentials. The interface keeps the
// handlers independent of how credentials are stored (static table today,
// anything else later).
type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*Account, error)
}
