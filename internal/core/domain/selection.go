package domain

// SelectionSet holds seats picked locally but not yet sent for a hold.
type SelectionSet struct {
	keys map[SeatKey]struct{}
}

func NewSelectionSet() *SelectionSet {
	return &SelectionSet{keys: make(map[SeatKey]struct{})}
}

func (s *SelectionSet) Contains(key SeatKey) bool {
	_, ok := s.keys[key]
	return ok
}

func (s *SelectionSet) Add(key SeatKey) {
	s.keys[key] = struct{}{}
}

func (s *SelectionSet) Remove(key SeatKey) {
	delete(s.keys, key)
}

func (s *SelectionSet) Len() int {
	return len(s.keys)
}

func (s *SelectionSet) Clear() {
	clear(s.keys)
}

// Keys returns the selection in lexicographic order.
func (s *SelectionSet) Keys() []SeatKey {
	keys := make([]SeatKey, 0, len(s.keys))
	for k := range s.keys {
		keys = append(keys, k)
	}
	sortKeys(keys)
	return keys
}
