package types

// ThinkingMode reports whether deep thinking was requested through the model
// identifier. The zero value means the identifier carried no preference and
// the payload must not mention thinking at all.
type ThinkingMode int

const (
	// ThinkingUnspecified leaves the provider default in effect.
	ThinkingUnspecified ThinkingMode = iota
	// ThinkingEnabled requests deep thinking.
	ThinkingEnabled
	// ThinkingDisabled switches deep thinking off.
	ThinkingDisabled
)

// String returns the wire value used in the thinking payload field.
func (m ThinkingMode) String() string {
	switch m {
	case ThinkingEnabled:
		return "enabled"
	case ThinkingDisabled:
		return "disabled"
	default:
		return "unspecified"
	}
}

// Config returns the request fragment for the mode, or nil when the payload
// should stay silent about thinking.
func (m ThinkingMode) Config() *Thinking {
	switch m {
	case ThinkingEnabled, ThinkingDisabled:
		return &Thinking{Type: m.String()}
	default:
		return nil
	}
}

// Thinking is the Ark request fragment controlling deep thinking, sent as
// {"type":"enabled"} or {"type":"disabled"}.
type Thinking struct {
	Type string `json:"type"`
}
