package models

import "fmt"

// Status is the lifecycle state of a RestockSession. The zero value is StatusDraft.
// Status only ever advances: draft → email_generated → sent.
type Status uint8

const (
	StatusDraft Status = iota
	StatusEmailGenerated
	StatusSent
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []Status{StatusDraft, StatusEmailGenerated, StatusSent}

// String returns the wire form used in JSON, the database and the cache.
func (s Status) String() string {
	switch s {
	case StatusDraft:
		return "draft"
	case StatusEmailGenerated:
		return "email_generated"
	case StatusSent:
		return "sent"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// ParseStatus converts the wire form back into a Status.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "draft":
		return StatusDraft, nil
	case "email_generated":
		return StatusEmailGenerated, nil
	case "sent":
		return StatusSent, nil
	default:
		return 0, fmt.Errorf("unknown session status %q", s)
	}
}

// Valid reports whether s is one of the declared statuses.
func (s Status) Valid() bool {
	return s <= StatusSent
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == StatusSent
}

// CanTransitionTo reports whether next is the single legal successor of s.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusDraft:
		return next == StatusEmailGenerated
	case StatusEmailGenerated:
		return next == StatusSent
	case StatusSent:
		return false
	default:
		return false
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid session status %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	parsed, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
