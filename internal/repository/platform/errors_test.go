package platform

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fulfillmenttools/commercetools-sunrise-data/pkg/httpclient"
)

func responseWithBody(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseErrorResponse_StructuredBody(t *testing.T) {
	resp := responseWithBody(http.StatusConflict,
		`{"statusCode":409,"message":"version mismatch","errors":[{"code":"ConcurrentModification","message":"version mismatch"}]}`)

	err := parseErrorResponse(resp)

	var er *ErrorResponse
	require.ErrorAs(t, err, &er)
	assert.Equal(t, http.StatusConflict, er.StatusCode)
	assert.Equal(t, "ConcurrentModification", er.Code)
	assert.Equal(t, "version mismatch", er.Message)
}

func TestParseErrorResponse_UnstructuredBody(t *testing.T) {
	resp := responseWithBody(http.StatusBadGateway, "upstream exploded")

	err := parseErrorResponse(resp)

	var er *ErrorResponse
	require.ErrorAs(t, err, &er)
	assert.Equal(t, http.StatusBadGateway, er.StatusCode)
	assert.Empty(t, er.Code)
	assert.Equal(t, "upstream exploded", er.Message)
}

func TestTranslateTransportError_BreakerServerError(t *testing.T) {
	in := &httpclient.ServerError{StatusCode: http.StatusInternalServerError, Body: "boom"}

	err := translateTransportError(in)

	assert.True(t, IsErrorResponse(err), "breaker-consumed 5xx must stay a platform rejection")
	var er *ErrorResponse
	require.ErrorAs(t, err, &er)
	assert.Equal(t, http.StatusInternalServerError, er.StatusCode)
}

func TestTranslateTransportError_PlainError(t *testing.T) {
	err := translateTransportError(errors.New("connection refused"))

	assert.False(t, IsErrorResponse(err))
	assert.Contains(t, err.Error(), "connection refused")
}
