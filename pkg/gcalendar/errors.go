package gcalendar

import (
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

// IsRateLimited reports whether err is a Google API rate-limit rejection.
// The API signals this as 429, or as 403 with a rate-limit reason.
func IsRateLimited(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Code == http.StatusTooManyRequests {
		return true
	}
	if apiErr.Code == http.StatusForbidden {
		for _, item := range apiErr.Errors {
			if item.Reason == "rateLimitExceeded" || item.Reason == "userRateLimitExceeded" {
				return true
			}
		}
	}
	return false
}

// IsNotFound reports whether err means the target event no longer exists.
func IsNotFound(err error) bool {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone
}
