package clients

import (
	"encoding/json"
	"fmt"
	"os"
)

// EnvVar holds the serialized client table: a JSON object keyed by the
// opaque client id carried in the x-client-id header.
const EnvVar = "CLIENT_CONFIG"

// Profile is one tenant's gateway credentials and seller identity.
// Loaded once at startup and never mutated afterwards.
type Profile struct {
	AuthToken     string `json:"auth_token"`
	SellerNTN     string `json:"seller_ntn"`
	Name          string `json:"name"`
	Province      string `json:"province"`
	Address       string `json:"address"`
	PointOfSaleID string `json:"pos_id,omitempty"`
}

// Table maps client id -> profile.
type Table map[string]Profile

// ParseTable decodes a serialized client table. Malformed input yields an
// empty table together with the error, so a bad deployment fails closed
// (every request becomes unauthorized) instead of crashing or letting
// anything through.
func ParseTable(raw []byte) (Table, error) {
	if len(raw) == 0 {
		return Table{}, nil
	}
	var t Table
	if err := json.Unmarshal(raw, &t); err != nil {
		return Table{}, fmt.Errorf("parse %s: %w", EnvVar, err)
	}
	if t == nil {
		t = Table{}
	}
	return t, nil
}

// LoadTable reads the client table from the environment.
func LoadTable() (Table, error) {
	return ParseTable([]byte(os.Getenv(EnvVar)))
}

// Lookup returns the profile for a client id, if one is configured.
func (t Table) Lookup(clientID string) (Profile, bool) {
	p, ok := t[clientID]
	return p, ok
}
