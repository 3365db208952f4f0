package receiver

import (
	"encoding/json"
	"net/http"

	"github.com/hookbridge/hookbridge/internal/constants"
	apperrors "github.com/hookbridge/hookbridge/internal/errors"
)

// Response is the synthesized HTTP answer for one inbound request.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

// Write renders the response onto a standard ResponseWriter.
func (r *Response) Write(w http.ResponseWriter) {
	for key, value := range r.Headers {
		w.Header().Set(key, value)
	}
	w.WriteHeader(r.StatusCode)
	if r.Body != "" {
		_, _ = w.Write([]byte(r.Body))
	}
}

// errorBody is the wire shape of every failure response: a human-readable
// message and a machine-readable kind.
type errorBody struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

// synthesizeAck maps an acknowledgment value to a success response by shape:
// absent → empty 200, string → the string verbatim (already-serialized
// content, no forced content type), anything else → JSON.
func synthesizeAck(value any) *Response {
	switch v := value.(type) {
	case nil:
		return &Response{StatusCode: http.StatusOK}
	case string:
		return &Response{StatusCode: http.StatusOK, Body: v}
	default:
		body, err := json.Marshal(v)
		if err != nil {
			return synthesizeError(apperrors.ErrUnexpected(err))
		}
		return &Response{
			StatusCode: http.StatusOK,
			Headers:    map[string]string{constants.ContentTypeHeader: constants.ContentTypeJSON},
			Body:       string(body),
		}
	}
}

// synthesizeError maps a receiver error to its JSON error response. Errors
// without a receiver kind collapse into the catch-all internal error.
func synthesizeError(err error) *Response {
	code := apperrors.GetErrorCode(err)
	status := apperrors.GetStatusCode(err)
	message := apperrors.GetErrorMessage(err)

	if code == "" {
		code = apperrors.ErrCodeUnexpected
		status = http.StatusInternalServerError
		message = "Internal server error"
	}

	body, _ := json.Marshal(errorBody{Error: message, Type: code})

	return &Response{
		StatusCode: status,
		Headers:    map[string]string{constants.ContentTypeHeader: constants.ContentTypeJSON},
		Body:       string(body),
	}
}

// synthesizeChallenge echoes the endpoint verification handshake value.
func synthesizeChallenge(challenge any) *Response {
	body, err := json.Marshal(map[string]any{"challenge": challenge})
	if err != nil {
		return synthesizeError(apperrors.ErrUnexpected(err))
	}
	return &Response{
		StatusCode: http.StatusOK,
		Headers:    map[string]string{constants.ContentTypeHeader: constants.ContentTypeJSON},
		Body:       string(body),
	}
}
