package panel

import "fmt"

// State is the phase of the current generation run.
type State int

const (
	Idle State = iota
	Connecting
	Streaming
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Connecting:
		return "connecting"
	case Streaming:
		return "streaming"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// StatusUpdate is one entry in the status log.
type StatusUpdate struct {
	Status  string  `json:"status"`
	Details *string `json:"details"`
}

// DetailsText returns Details or "" when absent.
func (u StatusUpdate) DetailsText() string {
	if u.Details == nil {
		return ""
	}
	return *u.Details
}

func status(s string) StatusUpdate {
	return StatusUpdate{Status: s}
}

func statusWithDetails(s, details string) StatusUpdate {
	return StatusUpdate{Status: s, Details: &details}
}

// Status texts the panel appends on its own transitions.
const (
	StatusConnecting      = "Connecting to server..."
	StatusConnected       = "Connected. Waiting for crew start..."
	StatusComplete        = "Comic generation complete!"
	StatusCompleteDetails = "Scroll down to see your comic."
	StatusFailed          = "An error occurred"
	StatusConnectionError = "Connection Error"
	StatusConnectionHint  = "Could not connect to the generation server."
	StatusMalformed       = "Malformed Message"
)
