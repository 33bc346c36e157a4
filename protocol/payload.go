// Package protocol decodes the JSON payloads carried by the comic generation
// event stream.
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Statuses with special meaning. Any other status is a progress update.
const (
	StatusComplete = "complete"
	StatusError    = "error"
)

// ErrMalformedPayload is wrapped by every Decode failure.
var ErrMalformedPayload = errors.New("malformed payload")

// Payload is one message from the generation stream.
type Payload struct {
	Status   string  `json:"status"`
	Details  *string `json:"details"`
	Markdown string  `json:"markdown,omitempty"`
	FilePath string  `json:"file_path,omitempty"`
}

// IsComplete reports whether the payload carries the finished comic.
func (p Payload) IsComplete() bool { return p.Status == StatusComplete }

// IsError reports whether the backend reported a failure.
func (p Payload) IsError() bool { return p.Status == StatusError }

// DetailsText returns Details or "" when absent.
func (p Payload) DetailsText() string {
	if p.Details == nil {
		return ""
	}
	return *p.Details
}

// Decode parses and validates one message body.
func Decode(data []byte) (Payload, error) {
	violations, err := Validate(data)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	if len(violations) > 0 {
		return Payload{}, fmt.Errorf("%w: %s", ErrMalformedPayload, strings.Join(violations, "; "))
	}

	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return p, nil
}
