package combat

import "fmt"

// Side identifies a combatant slot. SideA is the challenger.
type Side int8

const (
	SideNone Side = iota // draw / no winner
	SideA
	SideB
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	switch s {
	case SideA:
		return SideB
	case SideB:
		return SideA
	default:
		return SideNone
	}
}

func (s Side) index() int { return int(s) - 1 }

func (s Side) String() string {
	switch s {
	case SideNone:
		return "none"
	case SideA:
		return "a"
	case SideB:
		return "b"
	default:
		return fmt.Sprintf("Side(%d)", int8(s))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(b []byte) error {
	switch string(b) {
	case "none":
		*s = SideNone
	case "a":
		*s = SideA
	case "b":
		*s = SideB
	default:
		return fmt.Errorf("unknown side %q", b)
	}
	return nil
}
