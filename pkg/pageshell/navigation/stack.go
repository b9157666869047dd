package navigation

// HistoryEntry is a destination as it was displayed: the parameter it
// received and the section that was active while it was shown.
type HistoryEntry struct {
	Destination Destination
	Parameter   any
	Section     Section
}

// Stack is the BackStack. Push appends, Pop removes the last element.
type Stack struct {
	entries []HistoryEntry
}

// NewStack creates a new empty back stack.
func NewStack() *Stack {
	return &Stack{
		entries: make([]HistoryEntry, 0),
	}
}

// Push adds a new entry to the top of the stack.
func (s *Stack) Push(entry HistoryEntry) {
	s.entries = append(s.entries, entry)
}

// Pop removes and returns the top entry.
// Returns false if the stack is empty.
func (s *Stack) Pop() (HistoryEntry, bool) {
	if len(s.entries) == 0 {
		return HistoryEntry{}, false
	}
	entry := s.entries[len(s.entries)-1]
	s.entries[len(s.entries)-1] = HistoryEntry{}
	s.entries = s.entries[:len(s.entries)-1]
	return entry, true
}

// Peek returns the top entry without removing it.
func (s *Stack) Peek() (HistoryEntry, bool) {
	if len(s.entries) == 0 {
		return HistoryEntry{}, false
	}
	return s.entries[len(s.entries)-1], true
}

// IsEmpty returns true if the stack has no entries.
func (s *Stack) IsEmpty() bool {
	return len(s.entries) == 0
}

// Len returns the number of entries in the stack.
func (s *Stack) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the stack, bottom first.
func (s *Stack) Entries() []HistoryEntry {
	out := make([]HistoryEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Clear removes all entries from the stack.
func (s *Stack) Clear() {
	clear(s.entries)
	s.entries = s.entries[:0]
}
