package session

import (
	"sync"
	"time"
)

// OptionSource yields dropdown options per reference category. Satisfied
// by refdata.Set; abstracted so form defaults are testable without a CSV.
type OptionSource interface {
	First(category, fallback string) string
}

// FormState is one user's in-progress invoice form. State is explicit and
// per-session: there are no ambient globals, a defined initializer
// (NewFormState) and a defined reset (Session.ResetForm).
type FormState struct {
	DocType           string  `json:"doc_type"`
	InvoiceDate       string  `json:"invoice_date"` // YYYY-MM-DD
	BuyerReg          string  `json:"buyer_reg"`
	BuyerName         string  `json:"buyer_name"`
	BuyerType         string  `json:"buyer_type"`
	DestinationSupply string  `json:"destination_supply"`
	BuyerAddress      string  `json:"buyer_address"`
	HSCode            string  `json:"hs_code"`
	SaleType          string  `json:"sale_type"`
	Rate              string  `json:"rate"`
	UOM               string  `json:"uom"`
	Quantity          float64 `json:"quantity"`
	ValueExcl         float64 `json:"value_excl"`
	SRO               string  `json:"sro"`
	ItemNo            string  `json:"item_no"`
	Reason            string  `json:"reason"`
	ProductDesc       string  `json:"product_desc"`
	ReferenceNo       string  `json:"reference_no"`
	SellerName        string  `json:"seller_name"`
}

// NewFormState builds the form defaults: first option per category,
// today's date, quantity 1.
func NewFormState(src OptionSource, sellerName string, now time.Time) *FormState {
	return &FormState{
		DocType:           src.First("Document Type", ""),
		InvoiceDate:       now.Format("2006-01-02"),
		BuyerType:         src.First("Buyer Type", ""),
		DestinationSupply: "PUNJAB",
		HSCode:            src.First("Description", ""),
		SaleType:          src.First("Sale Types", ""),
		Rate:              src.First("Rate", "0.00%"),
		UOM:               src.First("UOM", ""),
		Quantity:          1.0,
		SRO:               src.First("SRO", ""),
		ItemNo:            src.First("Item Sr. No.", ""),
		Reason:            src.First("Reason", ""),
		SellerName:        sellerName,
	}
}

// Session ties a signed-in portal user to their form state.
type Session struct {
	ClientID    string     `json:"client_id"`
	CompanyName string     `json:"company_name"`
	Form        *FormState `json:"form"`
}

// ResetForm discards the form and reinitializes defaults, keeping the
// identity fields. Sessions held by a Store must only be reset through
// Store.Reset, which serializes access.
func (s *Session) ResetForm(src OptionSource, now time.Time) {
	s.Form = NewFormState(src, s.CompanyName, now)
}

// snapshot copies the session so callers can read it without holding the
// store's lock.
func (s *Session) snapshot() Session {
	out := *s
	if s.Form != nil {
		form := *s.Form
		out.Form = &form
	}
	return out
}

// Store is an in-memory session table keyed by opaque token. The store
// owns its sessions: reads hand out copies and mutations happen behind
// the lock, so handlers never share a live *Session.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: map[string]*Session{}}
}

// Put stores a session. The store takes ownership; the caller must not
// retain or mutate s afterwards.
func (st *Store) Put(token string, s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[token] = s
}

// Get returns a copy of the session for token.
func (st *Store) Get(token string) (Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[token]
	if !ok {
		return Session{}, false
	}
	return s.snapshot(), true
}

// Reset reinitializes the session's form, keeping the identity fields,
// and returns a copy of the result.
func (st *Store) Reset(token string, src OptionSource, now time.Time) (Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[token]
	if !ok {
		return Session{}, false
	}
	s.ResetForm(src, now)
	return s.snapshot(), true
}

func (st *Store) Delete(token string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, token)
}
