package roles

import "testing"

func TestRankOrdering(t *testing.T) {
	want := []Role{Banned, Unroled, Intern, Volunteer, SeniorVolunteer, Coordinator, Board, CEO}
	if len(Ladder) != len(want) {
		t.Fatalf("ladder length = %d, want %d", len(Ladder), len(want))
	}
	for i, r := range want {
		if Ladder[i] != r {
			t.Fatalf("ladder[%d] = %q, want %q", i, Ladder[i], r)
		}
		if Rank(r) != i {
			t.Fatalf("Rank(%q) = %d, want %d", r, Rank(r), i)
		}
	}
}

func TestHigherExhaustive(t *testing.T) {
	for i, a := range Ladder {
		for j, b := range Ladder {
			if got, want := Higher(a, b), i > j; got != want {
				t.Fatalf("Higher(%q, %q) = %v, want %v", a, b, got, want)
			}
		}
	}
}

func TestUnknownRole(t *testing.T) {
	if Valid("sorcerer") {
		t.Fatal("unknown role must not be valid")
	}
	if Rank("sorcerer") != -1 {
		t.Fatalf("Rank(unknown) = %d, want -1", Rank("sorcerer"))
	}
	if Higher("sorcerer", Banned) {
		t.Fatal("unknown role must not outrank banned")
	}
	if !Higher(Banned, "sorcerer") {
		t.Fatal("banned must outrank unknown role")
	}
}
