package entity

// Decline reasons carried on the wire when a like attempt is not accepted.
const (
	ReasonRateLimited     = "rate_limited"
	ReasonInvalidIdentity = "invalid_identity"
)

// LikeResult is the outcome of a like attempt. Liked reports the durable
// liked state for this identity (true also for idempotent repeats); Likes is
// the authoritative count at the time of the response.
type LikeResult struct {
	Liked  bool   `json:"liked"`
	Likes  int64  `json:"likes"`
	Reason string `json:"reason,omitempty"`
}
