package tags

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAddRejectsDuplicates(t *testing.T) {
	s := NewStore()
	if _, ok := s.Add("x"); !ok {
		t.Fatal("first Add should succeed")
	}
	if _, ok := s.Add("x"); ok {
		t.Error("second Add of the same value should be rejected")
	}
	if got := s.Values(); !cmp.Equal(got, []string{"x"}) {
		t.Errorf("Values() = %v, want [x]", got)
	}
}

func TestAddClearsPending(t *testing.T) {
	s := NewStore()
	s.SetPending("go")
	s.Add("go")
	if s.Pending() != "" {
		t.Errorf("Pending() = %q, want empty", s.Pending())
	}

	// A rejected duplicate leaves the pending text alone.
	s.SetPending("go")
	s.Add("go")
	if s.Pending() != "go" {
		t.Errorf("Pending() = %q after rejected add, want %q", s.Pending(), "go")
	}
}

func TestRemoveByIdentity(t *testing.T) {
	s := NewStore()
	a, _ := s.Add("A")
	b, _ := s.Add("B")
	c, _ := s.Add("C")

	if !s.Remove(b.ID) {
		t.Fatal("Remove(B) should report removal")
	}
	want := []Tag{a, c}
	if diff := cmp.Diff(want, s.Tags()); diff != "" {
		t.Errorf("Tags() mismatch (-want +got):\n%s", diff)
	}
	if s.Index(c.ID) != 1 {
		t.Errorf("Index(C) = %d, want 1", s.Index(c.ID))
	}
}

func TestRemoveUnknownIsNoop(t *testing.T) {
	s := NewStore()
	a, _ := s.Add("A")
	v := s.Version()

	if s.Remove(a.ID + 100) {
		t.Error("Remove of unknown id should return false")
	}
	if s.Version() != v {
		t.Error("Remove of unknown id should not bump the version")
	}
	s.Remove(a.ID)
	if s.Remove(a.ID) {
		t.Error("second Remove of the same id should return false")
	}
}

func TestIDsAreNeverReused(t *testing.T) {
	s := NewStore()
	a, _ := s.Add("A")
	s.Remove(a.ID)
	again, _ := s.Add("A")
	if again.ID == a.ID {
		t.Errorf("re-added tag reused id %v", a.ID)
	}
}

func TestClearKeepsPending(t *testing.T) {
	s := NewStore()
	s.Add("A")
	s.SetPending("draft")
	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", s.Len())
	}
	if s.Pending() != "draft" {
		t.Errorf("Pending() = %q, want %q", s.Pending(), "draft")
	}
}

func TestCommit(t *testing.T) {
	tests := []struct {
		name    string
		pending string
		want    bool
	}{
		{name: "non-empty commits", pending: "rust", want: true},
		{name: "empty is guarded", pending: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			s.SetPending(tt.pending)
			if _, ok := s.Commit(); ok != tt.want {
				t.Errorf("Commit() = %v, want %v", ok, tt.want)
			}
		})
	}
}

func TestVersion(t *testing.T) {
	s := NewStore()
	v0 := s.Version()

	s.SetPending("abc")
	if s.Version() != v0 {
		t.Error("SetPending should not change the version")
	}

	s.Clear()
	if s.Version() != v0 {
		t.Error("clearing an empty store should not change the version")
	}

	a, _ := s.Add("a")
	v1 := s.Version()
	if v1 == v0 {
		t.Error("Add should change the version")
	}

	s.Add("a")
	if s.Version() != v1 {
		t.Error("rejected Add should not change the version")
	}

	s.Remove(a.ID)
	if s.Version() == v1 {
		t.Error("Remove should change the version")
	}
}

func TestTagsReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Add("a")
	got := s.Tags()
	got[0].Value = "mutated"
	if v, _ := s.Get(got[0].ID); v.Value != "a" {
		t.Error("Tags() should return a copy")
	}
}

func TestIDString(t *testing.T) {
	if got := ID(7).String(); got != "t7" {
		t.Errorf("String() = %q, want %q", got, "t7")
	}
}
