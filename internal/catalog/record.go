// Package catalog holds the browsing state: the records of the visible page
// and the selection that outlives page changes.
package catalog

// Record is one artwork normalized to the fields the table shows. Missing
// text is empty and missing years are nil.
type Record struct {
	ID           int
	Title        string
	Origin       string
	Artist       string
	Inscriptions string
	DateStart    *int
	DateEnd      *int
}

// Entry is the part of a Record kept once it is selected, enough to list it
// without the page it came from.
type Entry struct {
	ID     int
	Title  string
	Artist string
}

// EntryOf projects r.
func EntryOf(r Record) Entry {
	return Entry{ID: r.ID, Title: r.Title, Artist: r.Artist}
}
