package platform

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fulfillmenttools/commercetools-sunrise-data/pkg/httpclient"
)

// ErrorResponse is a non-2xx answer from the platform. The seeder's skip
// budget applies exactly to this error type: a rejected create command is an
// ErrorResponse, a network failure is not.
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ErrorResponse) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("platform error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("platform error %d: %s", e.StatusCode, e.Message)
}

// IsErrorResponse reports whether err is (or wraps) a platform rejection.
func IsErrorResponse(err error) bool {
	var er *ErrorResponse
	return errors.As(err, &er)
}

// errorBody mirrors the platform's error envelope.
type errorBody struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Errors     []struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

// parseErrorResponse consumes the body of a non-2xx response and returns a
// typed *ErrorResponse. Unstructured bodies keep the raw text as message.
func parseErrorResponse(resp *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return &ErrorResponse{StatusCode: resp.StatusCode, Message: "failed to read error body: " + err.Error()}
	}

	var body errorBody
	if json.Unmarshal(raw, &body) == nil && body.Message != "" {
		code := ""
		if len(body.Errors) > 0 {
			code = body.Errors[0].Code
		}
		return &ErrorResponse{StatusCode: resp.StatusCode, Code: code, Message: body.Message}
	}

	return &ErrorResponse{StatusCode: resp.StatusCode, Message: string(raw)}
}

// translateTransportError keeps the error taxonomy uniform when the circuit
// breaker has already consumed a 5xx response.
func translateTransportError(err error) error {
	var se *httpclient.ServerError
	if errors.As(err, &se) {
		return &ErrorResponse{StatusCode: se.StatusCode, Message: se.Body}
	}
	return fmt.Errorf("call platform: %w", err)
}
