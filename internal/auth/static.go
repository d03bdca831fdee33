package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// EnvVar holds the portal's user table: a JSON object keyed by username.
const EnvVar = "PORTAL_USERS"

type staticUser struct {
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`
}

// StaticAuthenticator authenticates against an in-memory user table
// loaded once at startup. No lockout, no attempt counting.
type StaticAuthenticator struct {
	users map[string]staticUser
}

// NewStatic builds an authenticator from a serialized user table.
// Malformed input yields an empty (fail-closed) table plus the error.
func NewStatic(raw []byte) (*StaticAuthenticator, error) {
	a := &StaticAuthenticator{users: map[string]staticUser{}}
	if len(raw) == 0 {
		return a, nil
	}
	if err := json.Unmarshal(raw, &a.users); err != nil {
		a.users = map[string]staticUser{}
		return a, fmt.Errorf("parse %s: %w", EnvVar, err)
	}
	return a, nil
}

// NewStaticFromEnv reads the user table from the environment.
func NewStaticFromEnv() (*StaticAuthenticator, error) {
	return NewStatic([]byte(os.Getenv(EnvVar)))
}

func (a *StaticAuthenticator) Authenticate(ctx context.Context, username, password string) (*Account, error) {
	u, ok := a.users[strings.TrimSpace(username)]
	if !ok || u.Password != password {
		return nil, ErrInvalidCredentials
	}
	return &Account{
		Username:    strings.TrimSpace(username),
		CompanyName: u.CompanyName,
		ClientID:    strings.TrimSpace(username),
	}, nil
}
