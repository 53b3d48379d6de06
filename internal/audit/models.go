package audit

import "time"

// Action labels the operation an event records.
type Action string

const (
	ActionIdentitySubmitted Action = "identity.submitted"
	ActionIdentityReset     Action = "identity.reset"
	ActionIdentityStatusSet Action = "identity.status_set"
	ActionReleasePublished  Action = "release.published"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	Subject   string    `json:"subject,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}
