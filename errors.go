package arbor

import "fmt"

// ConfigError represents a fatal facility configuration failure detected
// during Install. Node and Attr identify the offending configuration
// element when known.
type ConfigError struct {
	Node   string // configuration node name, if the failure is node-scoped
	Attr   string // offending attribute, if any
	Reason string // human-readable reason
	Err    error  // underlying cause, if any
}

func (e *ConfigError) Error() string {
	msg := "facility configuration"
	if e.Node != "" {
		msg += fmt.Sprintf(": node %q", e.Node)
	}
	if e.Attr != "" {
		msg += fmt.Sprintf(": attribute %q", e.Attr)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
