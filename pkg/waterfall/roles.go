package waterfall

// Role classifies a bar for coloring.
type Role int

const (
	RolePositive Role = iota // interior step with delta >= 0
	RoleNegative             // interior step with delta < 0
	RoleStart                // first record
	RoleEnd                  // synthetic trailing record
)

var roleNames = [...]string{
	RolePositive: "positive",
	RoleNegative: "negative",
	RoleStart:    "start",
	RoleEnd:      "end",
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return "unknown"
	}
	return roleNames[r]
}

// MarshalText encodes the role by name.
func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// Classify returns the role of record i in a table of n records. Position
// wins over sign: the first record is always the start and the last is
// always the end.
func Classify(i, n int, delta float64) Role {
	switch {
	case i == 0:
		return RoleStart
	case i == n-1:
		return RoleEnd
	case delta >= 0:
		return RolePositive
	default:
		return RoleNegative
	}
}

// Roles classifies every record of a step table.
func Roles(records []StepRecord) []Role {
	roles := make([]Role, len(records))
	for i, r := range records {
		roles[i] = Classify(i, len(records), r.Delta)
	}
	return roles
}
