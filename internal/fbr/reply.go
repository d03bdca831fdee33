package fbr

import (
	"encoding/json"
	"fmt"
)

// Result statuses returned to the caller.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Fallback sentinels when the gateway's reply omits the usual fields.
const (
	verifiedSentinel         = "VERIFIED"
	validationFailedSentinel = "Validation Failed"
	unknownErrorSentinel     = "Unknown Error"
)

// Result is the caller-facing outcome of one submission.
type Result struct {
	Status           string `json:"status"`
	FBRInvoiceNumber string `json:"fbr_invoice_number,omitempty"`
	Message          string `json:"message"`
}

// gatewayResponse models the parts of the DI reply the relay inspects.
// The gateway capitalizes "Message" on its generic errors.
type gatewayResponse struct {
	InvoiceNumber      string              `json:"invoiceNumber"`
	Message            string              `json:"Message"`
	ValidationResponse *validationResponse `json:"validationResponse"`
}

type validationResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}

// MapReply translates the gateway's raw reply into a Result.
//
// A "Valid" validation status is the only success; everything else is a
// failure carrying the most specific message the reply offers. Bodies
// that are not JSON at all keep the raw status code and body text so the
// caller has something to diagnose with.
func MapReply(reply *Reply) Result {
	var gr gatewayResponse
	if err := json.Unmarshal(reply.Body, &gr); err != nil {
		return Result{
			Status:  StatusFailed,
			Message: fmt.Sprintf("Invalid JSON from FBR (status %d): %s", reply.StatusCode, string(reply.Body)),
		}
	}

	if gr.ValidationResponse != nil {
		if gr.ValidationResponse.Status == "Valid" {
			number := gr.InvoiceNumber
			if number == "" {
				number = verifiedSentinel
			}
			return Result{
				Status:           StatusSuccess,
				FBRInvoiceNumber: number,
				Message:          "Verified by FBR",
			}
		}
		msg := gr.ValidationResponse.Error
		if msg == "" {
			msg = validationFailedSentinel
		}
		return Result{Status: StatusFailed, Message: msg}
	}

	msg := gr.Message
	if msg == "" {
		msg = fmt.Sprintf("%s (status %d)", unknownErrorSentinel, reply.StatusCode)
	}
	return Result{Status: StatusFailed, Message: msg}
}
