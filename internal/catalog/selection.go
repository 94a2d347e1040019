package catalog

import "sort"

// Selection maps record id to Entry. Every mutation is scoped to the records
// it is handed (or the single id for Remove); entries for other ids are left
// alone, which is what keeps a selection alive across page changes.
//
// Selection is not safe for concurrent use; the UI loop owns it.
type Selection struct {
	entries map[int]Entry
}

func NewSelection() *Selection {
	return &Selection{entries: make(map[int]Entry)}
}

// TogglePage makes the selection agree with checked for the visible records:
// visible ids in checked are stored, other visible ids are dropped. Ids in
// checked that are not visible are ignored.
func (s *Selection) TogglePage(visible []Record, checked []int) {
	want := make(map[int]struct{}, len(checked))
	for _, id := range checked {
		want[id] = struct{}{}
	}
	for _, r := range visible {
		if _, ok := want[r.ID]; ok {
			s.entries[r.ID] = EntryOf(r)
		} else {
			delete(s.entries, r.ID)
		}
	}
}

// SelectAll stores every visible record.
func (s *Selection) SelectAll(visible []Record) {
	for _, r := range visible {
		s.entries[r.ID] = EntryOf(r)
	}
}

// ClearVisible drops every visible record.
func (s *Selection) ClearVisible(visible []Record) {
	for _, r := range visible {
		delete(s.entries, r.ID)
	}
}

// Remove drops one id whether or not it is visible. It reports whether the id
// was selected.
func (s *Selection) Remove(id int) bool {
	if _, ok := s.entries[id]; !ok {
		return false
	}
	delete(s.entries, id)
	return true
}

func (s *Selection) Has(id int) bool {
	_, ok := s.entries[id]
	return ok
}

func (s *Selection) Len() int { return len(s.entries) }

// All returns every entry ordered by id.
func (s *Selection) All() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CheckedIn returns, in page order, the ids of visible records that are selected.
func (s *Selection) CheckedIn(visible []Record) []int {
	var out []int
	for _, r := range visible {
		if s.Has(r.ID) {
			out = append(out, r.ID)
		}
	}
	return out
}
