package fbr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapReply_Valid(t *testing.T) {
	result := MapReply(&Reply{
		StatusCode: 200,
		Body:       []byte(`{"validationResponse": {"status": "Valid"}, "invoiceNumber": "N123"}`),
	})
	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, "N123", result.FBRInvoiceNumber)
}

func TestMapReply_ValidWithoutInvoiceNumber(t *testing.T) {
	result := MapReply(&Reply{
		StatusCode: 200,
		Body:       []byte(`{"validationResponse": {"status": "Valid"}}`),
	})
	assert.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, "VERIFIED", result.FBRInvoiceNumber)
}

func TestMapReply_Invalid(t *testing.T) {
	result := MapReply(&Reply{
		StatusCode: 200,
		Body:       []byte(`{"validationResponse": {"status": "Invalid", "error": "Bad HS Code"}}`),
	})
	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, "Bad HS Code", result.Message)
	assert.Empty(t, result.FBRInvoiceNumber)
}

func TestMapReply_InvalidWithoutError(t *testing.T) {
	result := MapReply(&Reply{
		StatusCode: 200,
		Body:       []byte(`{"validationResponse": {"status": "Invalid"}}`),
	})
	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, "Validation Failed", result.Message)
}

func TestMapReply_NoValidationObject(t *testing.T) {
	result := MapReply(&Reply{
		StatusCode: 401,
		Body:       []byte(`{"Message": "Token expired"}`),
	})
	assert.Equal(t, StatusFailed, result.Status)
	assert.Equal(t, "Token expired", result.Message)

	result = MapReply(&Reply{StatusCode: 403, Body: []byte(`{}`)})
	assert.Equal(t, StatusFailed, result.Status)
	assert.Contains(t, result.Message, "Unknown Error")
	assert.Contains(t, result.Message, "403")
}

func TestMapReply_UnparseableBody(t *testing.T) {
	result := MapReply(&Reply{
		StatusCode: 500,
		Body:       []byte("<html>Bad Gateway</html>"),
	})
	assert.Equal(t, StatusFailed, result.Status)
	assert.Contains(t, result.Message, "500")
	assert.Contains(t, result.Message, "<html>Bad Gateway</html>")
}
