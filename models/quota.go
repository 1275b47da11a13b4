package models

import "fmt"

// QuotaOutcome is the result kind of a check-and-consume call.
type QuotaOutcome int

// The zero value is QuotaUnknown so that a decision returned next to an
// error never reads as allowed.
const (
	QuotaUnknown QuotaOutcome = iota
	QuotaAllowed
	QuotaExceeded
	QuotaForbidden
)

func (o QuotaOutcome) String() string {
	switch o {
	case QuotaAllowed:
		return "allowed"
	case QuotaExceeded:
		return "quota_exceeded"
	case QuotaForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

func (o QuotaOutcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (o *QuotaOutcome) UnmarshalText(b []byte) error {
	switch string(b) {
	case "allowed":
		*o = QuotaAllowed
	case "quota_exceeded":
		*o = QuotaExceeded
	case "forbidden":
		*o = QuotaForbidden
	default:
		return fmt.Errorf("unknown quota outcome %q", b)
	}
	return nil
}

// Quota is a daily limit; Unlimited roles ignore Limit.
type Quota struct {
	Limit     int
	Unlimited bool
}

// QuotaDecision is the value returned by the quota ledger. Expected denials
// are decisions, not errors.
type QuotaDecision struct {
	Outcome   QuotaOutcome `json:"outcome"`
	Action    Action       `json:"action"`
	Unlimited bool         `json:"unlimited"`

	// Remaining is meaningful only for an allowed, limited decision.
	Remaining int `json:"remaining"`

	// Used is the counter value after the decision.
	Used int `json:"used"`
}

// Allowed reports whether the action may proceed.
func (d QuotaDecision) Allowed() bool {
	return d.Outcome == QuotaAllowed
}
