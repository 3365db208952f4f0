package receiver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hookbridge/hookbridge/internal/constants"
	apperrors "github.com/hookbridge/hookbridge/internal/errors"
)

// verifyRequest validates the authenticity of an inbound request using the
// timestamp and signature headers. Verification always runs against the raw
// body string captured at the platform boundary, before any parsing.
func (r *Receiver) verifyRequest(req *Request, now time.Time) error {
	timestampHeader := strings.TrimSpace(req.Header(constants.TimestampHeader))
	if timestampHeader == "" {
		return apperrors.ErrAuthenticity(
			fmt.Sprintf("header %s did not have the expected value", constants.TimestampHeader), nil)
	}

	signature := strings.TrimSpace(req.Header(constants.SignatureHeader))
	if signature == "" {
		return apperrors.ErrAuthenticity(
			fmt.Sprintf("header %s did not have the expected value", constants.SignatureHeader), nil)
	}

	timestamp, err := strconv.ParseInt(timestampHeader, 10, 64)
	if err != nil {
		return apperrors.ErrAuthenticity(
			fmt.Sprintf("header %s did not have the expected value", constants.TimestampHeader), err)
	}

	skew := now.Unix() - timestamp
	if skew < 0 {
		skew = -skew
	}
	if skew > int64(constants.SignatureFreshnessWindow.Seconds()) {
		return apperrors.ErrAuthenticity(
			fmt.Sprintf("stale timestamp: %s is outside the %s freshness window",
				timestampHeader, constants.SignatureFreshnessWindow), nil)
	}

	// Sign over the header string as received, not the parsed integer, so the
	// base string is byte-identical to what the sender computed.
	mac := hmac.New(sha256.New, []byte(r.signingSecret))
	fmt.Fprintf(mac, "%s:%s:%s", constants.SignatureVersion, timestampHeader, req.Body)
	expected := constants.SignatureVersion + "=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return apperrors.ErrSignatureVerification("request signature does not match", nil)
	}

	return nil
}
