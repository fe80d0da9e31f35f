// Package roles defines the ordered role ladder of the collective and the
// comparison helpers every authorization decision is built on. The ladder is
// defined exactly once; no caller keeps its own copy.
package roles

// Role is one of the ladder values, stored as its wire string.
type Role string

const (
	Banned          Role = "banned"
	Unroled         Role = "unroled"
	Intern          Role = "intern"
	Volunteer       Role = "volunteer"
	SeniorVolunteer Role = "senior-volunteer"
	Coordinator     Role = "coordinator"
	Board           Role = "board"
	CEO             Role = "ceo"
)

// Ladder lists every role from lowest to highest privilege.
var Ladder = []Role{Banned, Unroled, Intern, Volunteer, SeniorVolunteer, Coordinator, Board, CEO}

var rankOf = func() map[Role]int {
	m := make(map[Role]int, len(Ladder))
	for i, r := range Ladder {
		m[r] = i
	}
	return m
}()

// Rank returns the zero-based ladder position of r, or -1 for unknown roles.
func Rank(r Role) int {
	if i, ok := rankOf[r]; ok {
		return i
	}
	return -1
}

// Valid reports whether r is a recognized ladder value.
func Valid(r Role) bool {
	_, ok := rankOf[r]
	return ok
}

// Higher reports whether a outranks b. Unknown roles rank below every valid
// role.
func Higher(a, b Role) bool {
	return Rank(a) > Rank(b)
}
