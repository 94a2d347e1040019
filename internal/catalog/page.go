package catalog

// Page is one fetched page of the listing.
type Page struct {
	Number     int
	Total      int
	TotalPages int
	Records    []Record
}

// PageState is the visible page plus the loading flag. Loads are tagged by
// Begin; only the most recent tag may settle the state, so a slow response to
// an abandoned navigation cannot replace the page the user asked for last.
type PageState struct {
	PageSize   int
	Page       int
	Total      int
	TotalPages int
	Loading    bool
	Records    []Record
	Checked    []int

	// Pending is the page number of the latest load in flight.
	Pending int

	seq uint64
}

func NewPageState(pageSize int) *PageState {
	return &PageState{PageSize: pageSize, Page: 1}
}

// Begin marks a load of page as in flight and returns its tag.
func (p *PageState) Begin(page int) uint64 {
	p.seq++
	p.Loading = true
	p.Pending = page
	return p.seq
}

// Latest is the tag of the most recent Begin.
func (p *PageState) Latest() uint64 { return p.seq }

// Apply installs a fetched page if tag is the latest load and reports whether
// it did. The checked subset is re-derived from sel.
func (p *PageState) Apply(tag uint64, page Page, sel *Selection) bool {
	if tag != p.seq {
		return false
	}
	p.Page = page.Number
	p.Total = page.Total
	p.TotalPages = page.TotalPages
	p.Records = page.Records
	p.Loading = false
	p.Pending = 0
	p.Recheck(sel)
	return true
}

// Fail settles a failed load. The previous page stays visible.
func (p *PageState) Fail(tag uint64) bool {
	if tag != p.seq {
		return false
	}
	p.Loading = false
	p.Pending = 0
	return true
}

// Recheck recomputes the checked subset after the selection changed.
func (p *PageState) Recheck(sel *Selection) {
	p.Checked = sel.CheckedIn(p.Records)
}

// IsChecked reports whether the visible record id is in the checked subset.
func (p *PageState) IsChecked(id int) bool {
	for _, c := range p.Checked {
		if c == id {
			return true
		}
	}
	return false
}
