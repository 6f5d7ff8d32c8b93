package constants

import "time"

// RFC 3339 date-time format string.
// Use this format for all date-time serialization and communication with external systems.
const RFC3339DateTimeFormat = "2006-01-02T15:04:05Z07:00"

// AdminDateTimeFormat is how submission timestamps are shown in the admin panel.
const AdminDateTimeFormat = "2006-01-02 15:04"

// Default rate limiting configuration
const (
	// DefaultRateLimitRequests is the default number of requests allowed per time window
	DefaultRateLimitRequests = 100
	// DefaultRateLimitWindow is the default time window for rate limiting
	DefaultRateLimitWindowMinutes = 1

	// DefaultSubmissionRateLimit caps public form posts per client per minute.
	DefaultSubmissionRateLimit = 10
	// DefaultLoginRateLimit caps admin password attempts per client per minute.
	DefaultLoginRateLimit = 10
)

const DefaultSessionTTL = 12 * time.Hour

// DefaultRateLimitWindow returns the default rate limit window duration
func DefaultRateLimitWindow() time.Duration {
	return time.Duration(DefaultRateLimitWindowMinutes) * time.Minute
}
