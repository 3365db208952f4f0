// Package constants defines global constants used throughout hookbridge.
// It includes version information, header names, and protocol defaults.
package constants

import "time"

var version = "0.0.0-development" // Updated by CI/CD pipeline at build time

// GetVersion returns the current version of hookbridge.
func GetVersion() *string {
	return &version
}

// ProjectName is the name of the CLI tool and application.
const ProjectName = "hookbridge"

// EnvPrefix is the prefix for all environment variables read by the service.
const EnvPrefix = "HOOKBRIDGE"

// Environment represents the execution environment (e.g., CLI, Lambda).
type Environment string

// Environment types for logger configuration.
const (
	Development Environment = "development"
	Production  Environment = "production"
	CLI         Environment = "cli"
)

// ContentTypeHeader is the HTTP Content-Type header name.
const ContentTypeHeader = "Content-Type"

// ContentTypeJSON is the media type for JSON request and response bodies.
const ContentTypeJSON = "application/json"

// ContentTypeForm is the media type for URL-encoded form bodies.
const ContentTypeForm = "application/x-www-form-urlencoded"

// Header names used by the event platform on inbound webhook requests.
// Lookups are case-insensitive; these are the canonical spellings.
const (
	TimestampHeader   = "X-Slack-Request-Timestamp"
	SignatureHeader   = "X-Slack-Signature"
	RetryNumHeader    = "X-Slack-Retry-Num"
	RetryReasonHeader = "X-Slack-Retry-Reason"
)

// SignatureVersion is the version prefix of the request signing scheme.
// Signatures are computed over "v0:<timestamp>:<body>" and sent as "v0=<hex>".
const SignatureVersion = "v0"

// SignatureFreshnessWindow is the maximum allowed clock difference between
// the request timestamp and the receiver, in either direction. Requests
// outside this window are rejected as stale to limit replay exposure.
const SignatureFreshnessWindow = 5 * time.Minute

// DefaultAckTimeout is how long the receiver waits for the event-processing
// engine to acknowledge before answering the platform with a timeout. The
// platform expects an answer within 3 seconds; 3001ms sits just past that
// budget so a late ack loses to the platform's own retry rather than racing it.
const DefaultAckTimeout = 3001 * time.Millisecond

// ChallengeEventType is the payload type of the endpoint verification
// handshake the platform sends when a webhook URL is first registered.
const ChallengeEventType = "url_verification"

// SSLCheckField is the form field the platform sets when probing a slash
// command URL for SSL validity. These probes are acknowledged without
// dispatching to the engine.
const SSLCheckField = "ssl_check"

// EventsPath is the route the receiver mounts the webhook handler on.
const EventsPath = "/slack/events"

// RequestIDByteSize is the number of random bytes used to generate request IDs.
const RequestIDByteSize = 16

// DefaultPort is the local development server port.
const DefaultPort = 3000
