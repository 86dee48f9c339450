package services

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
)

// RateLimitAdvisory is shown to the user as an assistant message when the
// provider rejects a request for quota reasons.
const RateLimitAdvisory = "You've hit the rate limit for this model. Please wait a minute and try again, " +
	"or switch to a different model. You can check the service status at https://aistudio.google.com/status"

// GenericFailureMessage replaces upstream error details in client responses.
const GenericFailureMessage = "Sorry, something went wrong while generating a response. Please try again."

type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindInvalidRequest
	KindRateLimited
	KindUpstreamFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidRequest:
		return "invalid_request"
	case KindRateLimited:
		return "rate_limited"
	default:
		return "upstream_failure"
	}
}

type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

type RateLimitError struct{ Message string }

func (e *RateLimitError) Error() string { return e.Message }

// UpstreamError wraps a provider failure with the backend that produced it.
type UpstreamError struct {
	Backend string
	Err     error
}

func (e *UpstreamError) Error() string { return e.Backend + ": " + e.Err.Error() }

func (e *UpstreamError) Unwrap() error { return e.Err }

// statusMarker matches a 429 reported as a status in error text, not any
// run of those digits.
var statusMarker = regexp.MustCompile(`(?i)\b(error|status|code|http)\W{0,3}429\b|\b429\s+too\s+many\s+requests\b`)

// quotaMarkers are matched case-insensitively against provider error text.
var quotaMarkers = []string{
	"exceeded your current quota",
	"quota exceeded",
	"resource_exhausted",
	"resource has been exhausted",
}

// ClassifyError maps any relay error onto the client-facing taxonomy.
func ClassifyError(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var verr *ValidationError
	if errors.As(err, &verr) {
		return KindInvalidRequest
	}

	var rlErr *RateLimitError
	if errors.As(err, &rlErr) || isRateLimited(err) {
		return KindRateLimited
	}

	return KindUpstreamFailure
}

func isRateLimited(err error) bool {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code == http.StatusTooManyRequests {
		return true
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) && reqErr.HTTPStatusCode == http.StatusTooManyRequests {
		return true
	}

	// gax apierror.APIError and friends expose the status this way
	var coded interface{ HTTPCode() int }
	if errors.As(err, &coded) && coded.HTTPCode() == http.StatusTooManyRequests {
		return true
	}

	msg := err.Error()
	if statusMarker.MatchString(msg) {
		return true
	}

	lower := strings.ToLower(msg)
	for _, marker := range quotaMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
