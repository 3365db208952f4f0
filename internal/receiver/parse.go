package receiver

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"mime"
	"net/url"
	"strings"

	"github.com/hookbridge/hookbridge/internal/constants"
	apperrors "github.com/hookbridge/hookbridge/internal/errors"
)

// bodyKind is the closed set of content-type dispatch outcomes.
type bodyKind int

const (
	bodyJSON bodyKind = iota
	bodyForm
	bodyFallback // unrecognized content type, attempt JSON leniently
)

func classifyContentType(header string) (bodyKind, string) {
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(header))
	}

	switch mediaType {
	case constants.ContentTypeForm:
		return bodyForm, mediaType
	case constants.ContentTypeJSON, "":
		return bodyJSON, mediaType
	default:
		return bodyFallback, mediaType
	}
}

// parsePayload normalizes the raw request body into the canonical payload map.
// Form bodies with a nested "payload" field yield the inner JSON object;
// other form bodies yield the flat key/value map; everything else is parsed
// as JSON. An unrecognized content type is not fatal by itself: JSON is
// attempted anyway and only a failed parse rejects the request.
func parsePayload(contentType, body string, log *slog.Logger) (map[string]any, error) {
	kind, mediaType := classifyContentType(contentType)

	switch kind {
	case bodyForm:
		return parseFormPayload(mediaType, body)
	case bodyFallback:
		log.Warn("unexpected content type, attempting JSON parse anyway",
			"contentType", mediaType)
		fallthrough
	default:
		return parseJSONPayload(mediaType, body)
	}
}

func parseJSONPayload(mediaType, body string) (map[string]any, error) {
	var payload map[string]any
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return nil, apperrors.ErrRequestParsing(
			fmt.Sprintf("failed to parse request body with content type %q", mediaType), err)
	}
	return payload, nil
}

func parseFormPayload(mediaType, body string) (map[string]any, error) {
	values, err := url.ParseQuery(body)
	if err != nil {
		return nil, apperrors.ErrRequestParsing(
			fmt.Sprintf("failed to parse request body with content type %q", mediaType), err)
	}

	// Interactive submissions wrap the real event in a JSON-encoded "payload"
	// field; when present it replaces the form entirely.
	if nested := values.Get("payload"); nested != "" {
		var payload map[string]any
		if err := json.Unmarshal([]byte(nested), &payload); err != nil {
			return nil, apperrors.ErrRequestParsing(
				fmt.Sprintf("failed to parse nested payload field with content type %q", mediaType), err)
		}
		return payload, nil
	}

	payload := make(map[string]any, len(values))
	for key := range values {
		payload[key] = values.Get(key)
	}
	return payload, nil
}
