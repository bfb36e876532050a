package presence

import "testing"

func TestAddFirstConnectionWins(t *testing.T) {
	r := NewRegistry()

	if !r.Add(1, "c1") {
		t.Fatalf("expected first add to succeed")
	}
	if r.Add(1, "c2") {
		t.Fatalf("expected second add for same user to be rejected")
	}

	entry, ok := r.Get(1)
	if !ok {
		t.Fatalf("expected user 1 to be present")
	}
	if entry.ConnID != "c1" {
		t.Fatalf("expected conn c1 to be kept, got %q", entry.ConnID)
	}
}

func TestRemoveConnRemovesExactMatch(t *testing.T) {
	r := NewRegistry()
	r.Add(1, "c1")
	r.Add(2, "c2")

	r.RemoveConn("c1")

	if _, ok := r.Get(1); ok {
		t.Fatalf("expected user 1 to be gone after removing c1")
	}
	if _, ok := r.Get(2); !ok {
		t.Fatalf("expected user 2 to remain after removing c1")
	}
}

func TestRemoveUnknownConnIsNoop(t *testing.T) {
	r := NewRegistry()
	r.Add(1, "c1")

	r.RemoveConn("ghost")

	if _, ok := r.Get(1); !ok {
		t.Fatalf("expected user 1 to remain")
	}
}

func TestSnapshotReflectsCurrentState(t *testing.T) {
	r := NewRegistry()
	r.Add(1, "c1")
	r.Add(2, "c2")
	r.Add(3, "c3")
	r.RemoveConn("c2")

	snap := r.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(snap), snap)
	}

	want := map[int64]string{1: "c1", 3: "c3"}
	for _, e := range snap {
		if want[e.UserID] != e.ConnID {
			t.Fatalf("unexpected entry %+v", e)
		}
		delete(want, e.UserID)
	}
	if len(want) != 0 {
		t.Fatalf("missing entries: %v", want)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	r := NewRegistry()
	r.Add(1, "c1")

	snap := r.Snapshot()
	snap[0].ConnID = "mutated"

	entry, _ := r.Get(1)
	if entry.ConnID != "c1" {
		t.Fatalf("registry state leaked through snapshot: %+v", entry)
	}
}
