package orm

import "strings"

// FlushMode controls when a session's queued statements are written to
// the database.
type FlushMode int

const (
	// FlushAuto executes statements as soon as they are queued.
	FlushAuto FlushMode = iota
	// FlushCommit defers queued statements until the transaction commits.
	FlushCommit
	// FlushManual defers queued statements until Flush is called.
	FlushManual
	// FlushAlways drains the queue after every write and before every read.
	FlushAlways
)

var flushModeNames = map[FlushMode]string{
	FlushAuto:   "auto",
	FlushCommit: "commit",
	FlushManual: "manual",
	FlushAlways: "always",
}

// ParseFlushMode converts a configuration value into a FlushMode.
// Matching is case-insensitive; the empty string means FlushAuto.
func ParseFlushMode(s string) (FlushMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FlushAuto, nil
	case "commit":
		return FlushCommit, nil
	case "manual", "never":
		return FlushManual, nil
	case "always":
		return FlushAlways, nil
	}
	return FlushAuto, &UnknownFlushModeError{Value: s}
}

func (m FlushMode) String() string {
	if name, ok := flushModeNames[m]; ok {
		return name
	}
	return "unknown"
}
