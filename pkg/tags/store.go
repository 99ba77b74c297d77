package tags

import "strconv"

// ID identifies a tag for its whole lifetime. IDs are unique within the
// store that issued them and are never reused.
type ID uint64

// String returns the id in the "t<n>" form used for element keys.
func (id ID) String() string {
	return "t" + strconv.FormatUint(uint64(id), 10)
}

// Tag is a single committed chip.
type Tag struct {
	ID    ID     `json:"id"`
	Value string `json:"value"`
}

// Store is the ordered tag collection plus pending input.
// The zero value is ready to use. A Store is not safe for concurrent use;
// it is driven from a single UI event loop.
type Store struct {
	tags    []Tag
	pending string
	nextID  ID
	version uint64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Add appends a tag with the given value and clears the pending input.
// It returns false without changing anything if a tag with the same value
// already exists.
func (s *Store) Add(value string) (Tag, bool) {
	if s.indexOfValue(value) >= 0 {
		return Tag{}, false
	}
	s.nextID++
	t := Tag{ID: s.nextID, Value: value}
	s.tags = append(s.tags, t)
	s.pending = ""
	s.version++
	return t, true
}

// Commit adds the pending input as a tag if it is non-empty.
func (s *Store) Commit() (Tag, bool) {
	if s.pending == "" {
		return Tag{}, false
	}
	return s.Add(s.pending)
}

// Remove deletes the tag with the given id. Unknown ids are ignored.
func (s *Store) Remove(id ID) bool {
	i := s.Index(id)
	if i < 0 {
		return false
	}
	s.tags = append(s.tags[:i:i], s.tags[i+1:]...)
	s.version++
	return true
}

// Clear removes every tag. The pending input is left untouched.
func (s *Store) Clear() {
	if len(s.tags) == 0 {
		return
	}
	s.tags = nil
	s.version++
}

// SetPending replaces the pending input text.
func (s *Store) SetPending(text string) {
	s.pending = text
}

// Pending returns the pending input text.
func (s *Store) Pending() string {
	return s.pending
}

// Tags returns a copy of the tags in order.
func (s *Store) Tags() []Tag {
	out := make([]Tag, len(s.tags))
	copy(out, s.tags)
	return out
}

// Values returns the tag values in order.
func (s *Store) Values() []string {
	out := make([]string, len(s.tags))
	for i, t := range s.tags {
		out[i] = t.Value
	}
	return out
}

// Len returns the number of tags.
func (s *Store) Len() int {
	return len(s.tags)
}

// Get returns the tag with the given id.
func (s *Store) Get(id ID) (Tag, bool) {
	if i := s.Index(id); i >= 0 {
		return s.tags[i], true
	}
	return Tag{}, false
}

// Contains reports whether a tag with the given id is present.
func (s *Store) Contains(id ID) bool {
	return s.Index(id) >= 0
}

// Index returns the current position of id, or -1.
func (s *Store) Index(id ID) int {
	for i, t := range s.tags {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Version identifies the current tag sequence. It changes on every add,
// remove and non-empty clear, and on nothing else.
func (s *Store) Version() uint64 {
	return s.version
}

func (s *Store) indexOfValue(v string) int {
	for i, t := range s.tags {
		if t.Value == v {
			return i
		}
	}
	return -1
}
