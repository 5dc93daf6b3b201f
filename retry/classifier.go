package retry

import (
	"errors"
	"net"

	"google.golang.org/api/googleapi"
)

// Rate-limit reasons attached to 403 responses that are actually transient.
// See: https://developers.google.com/drive/api/guides/handle-errors
const (
	reasonRateLimitExceeded     = "rateLimitExceeded"
	reasonUserRateLimitExceeded = "userRateLimitExceeded"
)

// TransportErrorClassifier classifies remote-store transport errors as
// transient or fatal.
type TransportErrorClassifier struct{}

// NewTransportErrorClassifier creates a classifier for remote transport
// errors.
func NewTransportErrorClassifier() *TransportErrorClassifier {
	return &TransportErrorClassifier{}
}

// IsTransient reports whether the error is temporary and worth retrying.
// Transient: 429, 5xx, rate-limited 403s, and network timeouts. Everything
// else, notably 404s and permission denials, is fatal.
func (c *TransportErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		switch {
		case gErr.Code == 429:
			return true
		case gErr.Code >= 500 && gErr.Code <= 599:
			return true
		case gErr.Code == 403:
			for _, item := range gErr.Errors {
				if item.Reason == reasonRateLimitExceeded || item.Reason == reasonUserRateLimitExceeded {
					return true
				}
			}
			return false
		default:
			return false
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}
