package player

import "strings"

type Player struct {
	ID        int64
	FirstName string
	LastName  string
	Email     string
	GHIN      string
	RemoteID  string
	IsMember  bool
}

func (p Player) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

// NormalizeGHIN strips whitespace and leading zeros from a handicap id.
// An empty or all-zero id normalizes to "0".
func NormalizeGHIN(raw string) string {
	trimmed := strings.TrimLeft(strings.TrimSpace(raw), "0")
	if trimmed == "" {
		return "0"
	}
	return trimmed
}

// HasGHIN reports whether raw holds a usable handicap id.
func HasGHIN(raw string) bool {
	return NormalizeGHIN(raw) != "0"
}
