// Package runbus provides the per-run event bus that carries structured
// progress events from an automation run to its observers.
package runbus

import "encoding/json"

// Event types published during a run.
const (
	TypeLog        = "log"
	TypeGate       = "gate"
	TypeAuthGate   = "auth_gate"
	TypeScreenshot = "screenshot"
	TypeStatus     = "status"
	TypeDone       = "done"
)

// Log levels.
const (
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Envelope is the tagged union published on the bus. Only Type is always
// set; the remaining fields depend on the event type.
type Envelope struct {
	Type         string `json:"type"`
	Level        string `json:"level,omitempty"`
	Message      string `json:"message,omitempty"`
	URL          string `json:"url,omitempty"`
	Provider     string `json:"provider,omitempty"`
	Instructions string `json:"instructions,omitempty"`
	OK           *bool  `json:"ok,omitempty"`
	Payload      any    `json:"payload,omitempty"`
}

// Log builds a log-level envelope.
func Log(level, message string) Envelope {
	return Envelope{Type: TypeLog, Level: level, Message: message}
}

// Screenshot builds a screenshot envelope pointing at a captured file.
func Screenshot(url string) Envelope {
	return Envelope{Type: TypeScreenshot, URL: url}
}

// Gate builds a gate envelope asking the human for an action.
func Gate(instructions string) Envelope {
	return Envelope{Type: TypeGate, Instructions: instructions}
}

// AuthGate builds the gate envelope emitted when manual sign-in is needed.
func AuthGate(provider, url, instructions string) Envelope {
	return Envelope{Type: TypeAuthGate, Provider: provider, URL: url, Instructions: instructions}
}

// Done builds the terminal envelope for a run.
func Done(ok bool) Envelope {
	return Envelope{Type: TypeDone, OK: &ok}
}

// Frame serializes the envelope as a server-sent-events text frame:
// "data: <json>\n\n". An unmarshalable Payload degrades to an empty frame.
func (e Envelope) Frame() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		return []byte("data: {}\n\n")
	}
	buf := make([]byte, 0, len(data)+8)
	buf = append(buf, "data: "...)
	buf = append(buf, data...)
	buf = append(buf, "\n\n"...)
	return buf
}
