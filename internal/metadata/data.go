package metadata

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, reporting).

	Rules:
	 - ErrorCause MUST NOT influence control flow.
	 - ErrorCause MUST NOT be used for retry, continuation, or abort decisions.
	 - Pipeline packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

const (
	// Fallback for failures that map to nothing below.
	CauseUnknown ErrorCause = iota
	// Transport or remote availability: timeouts, DNS, resets.
	CauseNetworkFailure
	// The server answered with a non-success status.
	CauseHTTPStatus
	// Content was fetched but could not be processed.
	CauseContentInvalid
	// All retry attempts were used up.
	CauseRetryFailure
	// Startup configuration could not be used.
	CauseConfigInvalid
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CauseHTTPStatus:
		return "http_status"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseRetryFailure:
		return "retry_failure"
	case CauseConfigInvalid:
		return "config_invalid"
	default:
		return "unknown"
	}
}

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrURL        AttributeKey = "url"
	AttrDepth      AttributeKey = "depth"
	AttrHTTPStatus AttributeKey = "http_status"
	AttrAttempts   AttributeKey = "attempts"
)
