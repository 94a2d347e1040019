package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/artgrid/internal/catalog"
	"github.com/jask/artgrid/internal/config"
	"github.com/jask/artgrid/internal/logging"
)

// ---- Helpers ----

const testPageSize = 10

type fakeLoader struct {
	total int
	fail  map[int]bool
	calls []int
}

func (f *fakeLoader) Load(ctx context.Context, page int) (catalog.Page, error) {
	f.calls = append(f.calls, page)
	if f.fail[page] {
		return catalog.Page{}, errors.New("connection reset")
	}
	var recs []catalog.Record
	for id := (page-1)*testPageSize + 1; id <= page*testPageSize && id <= f.total; id++ {
		recs = append(recs, catalog.Record{ID: id, Title: fmt.Sprintf("Work %d", id), Artist: fmt.Sprintf("Artist %d\nFrench", id)})
	}
	pages := (f.total + testPageSize - 1) / testPageSize
	return catalog.Page{Number: page, Total: f.total, TotalPages: pages, Records: recs}, nil
}

func testConfig() config.Config {
	return config.Config{
		API: config.APIConfig{PageSize: testPageSize},
		UI:  config.UIConfig{PlaceholderTitle: "Untitled", PlaceholderArtist: "Unknown artist"},
	}
}

func newTestApp(t *testing.T, total int) (*App, *fakeLoader) {
	t.Helper()
	loader := &fakeLoader{total: total, fail: map[int]bool{}}
	a := New(context.Background(), testConfig(), loader, logging.Discard())
	run(t, a, a.Init())
	return a, loader
}

// run executes cmd synchronously and feeds its message back into the app.
func run(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	msg := cmd()
	switch msg.(type) {
	case pageLoadedMsg, pageFailedMsg:
		a.Update(msg)
	}
}

func press(t *testing.T, a *App, keys ...string) {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "space":
			msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd := a.Update(msg)
		run(t, a, cmd)
	}
}

func selectedIDs(a *App) []int {
	var out []int
	for _, e := range a.Selection().All() {
		out = append(out, e.ID)
	}
	return out
}

// ---- Tests ----

func TestInitLoadsFirstPage(t *testing.T) {
	a, loader := newTestApp(t, 25)
	if got := loader.calls; len(got) != 1 || got[0] != 1 {
		t.Fatalf("calls = %v, want [1]", got)
	}
	st := a.State()
	if st.Loading {
		t.Fatal("loading flag still set")
	}
	if st.Page != 1 || st.Total != 25 || st.TotalPages != 3 || len(st.Records) != 10 {
		t.Fatalf("state = page %d total %d pages %d rows %d", st.Page, st.Total, st.TotalPages, len(st.Records))
	}
}

func TestToggleRowWithSpace(t *testing.T) {
	a, _ := newTestApp(t, 25)
	press(t, a, "space", "down", "down", "space")
	if got := selectedIDs(a); fmt.Sprint(got) != "[1 3]" {
		t.Fatalf("selected = %v, want [1 3]", got)
	}
	press(t, a, "space")
	if got := selectedIDs(a); fmt.Sprint(got) != "[1]" {
		t.Fatalf("selected after untoggle = %v, want [1]", got)
	}
	if fmt.Sprint(a.State().Checked) != "[1]" {
		t.Fatalf("checked = %v, want [1]", a.State().Checked)
	}
}

func TestSelectionSurvivesNavigation(t *testing.T) {
	a, _ := newTestApp(t, 25)
	press(t, a, "a")
	if a.Selection().Len() != 10 {
		t.Fatalf("len = %d, want 10", a.Selection().Len())
	}

	press(t, a, "n")
	if a.State().Page != 2 {
		t.Fatalf("page = %d, want 2", a.State().Page)
	}
	if len(a.State().Checked) != 0 {
		t.Fatalf("page 2 checked = %v, want none", a.State().Checked)
	}
	press(t, a, "x")
	if a.Selection().Len() != 10 {
		t.Fatalf("clearing page 2 touched page 1: len = %d", a.Selection().Len())
	}

	press(t, a, "p")
	if len(a.State().Checked) != 10 {
		t.Fatalf("back on page 1 checked = %d, want 10", len(a.State().Checked))
	}
}

func TestNavigationBounds(t *testing.T) {
	a, loader := newTestApp(t, 25)
	press(t, a, "p")
	if len(loader.calls) != 1 {
		t.Fatalf("prev on first page issued a load: %v", loader.calls)
	}
	press(t, a, "n", "n", "n")
	if a.State().Page != 3 {
		t.Fatalf("page = %d, want 3", a.State().Page)
	}
	if fmt.Sprint(loader.calls) != "[1 2 3]" {
		t.Fatalf("calls = %v, want [1 2 3]", loader.calls)
	}
	if len(a.State().Records) != 5 {
		t.Fatalf("last page rows = %d, want 5", len(a.State().Records))
	}
}

func TestFailedFetchKeepsPreviousPage(t *testing.T) {
	a, loader := newTestApp(t, 50)
	press(t, a, "n")
	loader.fail[3] = true
	press(t, a, "n")

	st := a.State()
	if st.Loading {
		t.Fatal("loading flag not cleared after failure")
	}
	if st.Page != 2 || st.Total != 50 || st.Records[0].ID != 11 {
		t.Fatalf("state after failure = page %d total %d first %d", st.Page, st.Total, st.Records[0].ID)
	}
	if strings.Contains(a.View(), "connection reset") {
		t.Fatal("failure leaked into the view")
	}
}

func TestStaleResponseIsDiscarded(t *testing.T) {
	a, _ := newTestApp(t, 50)

	_, slow := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	_, fast := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})

	// navigation is relative to the page in flight
	if a.State().Pending != 3 {
		t.Fatalf("pending = %d, want 3", a.State().Pending)
	}
	run(t, a, fast)
	run(t, a, slow)

	if a.State().Page != 3 {
		t.Fatalf("page = %d, want 3 (stale page 2 must not win)", a.State().Page)
	}
}

func TestSummaryDeselectOffPage(t *testing.T) {
	a, _ := newTestApp(t, 25)
	press(t, a, "down", "space")
	// cursor stays on the second row, so page 2 toggles id 12
	press(t, a, "n", "space")
	if fmt.Sprint(selectedIDs(a)) != "[2 12]" {
		t.Fatalf("selected = %v, want [2 12]", selectedIDs(a))
	}

	// first summary entry is id 2, which is not on the visible page
	press(t, a, "tab", "d")
	if fmt.Sprint(selectedIDs(a)) != "[12]" {
		t.Fatalf("selected = %v, want [12]", selectedIDs(a))
	}
	if strings.Contains(a.View(), "Work 2 ") {
		t.Fatal("removed entry still rendered in summary")
	}

	press(t, a, "tab", "p")
	if len(a.State().Checked) != 0 {
		t.Fatalf("page 1 checked = %v, want none", a.State().Checked)
	}
}

func TestSummaryDeselectAfterTableShrinksSelection(t *testing.T) {
	a, _ := newTestApp(t, 25)
	press(t, a, "a", "n", "space")
	if a.Selection().Len() != 11 {
		t.Fatalf("len = %d, want 11", a.Selection().Len())
	}

	// park the panel cursor on the last entry (id 11)
	press(t, a, "tab")
	for i := 0; i < 12; i++ {
		press(t, a, "down")
	}
	if a.sumCursor != 10 {
		t.Fatalf("sumCursor = %d, want 10", a.sumCursor)
	}

	// clear page 1 from the table; only id 11 is left
	press(t, a, "tab", "p", "x")
	if fmt.Sprint(selectedIDs(a)) != "[11]" {
		t.Fatalf("selected = %v, want [11]", selectedIDs(a))
	}

	press(t, a, "tab", "d")
	if a.Selection().Len() != 0 {
		t.Fatalf("selected = %v, want none", selectedIDs(a))
	}
	if a.sumCursor != 0 {
		t.Fatalf("sumCursor = %d, want 0", a.sumCursor)
	}

	// an empty panel ignores further deselects
	press(t, a, "d", "enter")
}

func TestSummaryCursorClampedAfterFilterNarrows(t *testing.T) {
	a, _ := newTestApp(t, 25)
	press(t, a, "a", "tab")
	for i := 0; i < 9; i++ {
		press(t, a, "down")
	}
	// "work 10" ranks id 10 first and keeps the near matches after it
	press(t, a, "/", "W", "o", "r", "k", " ", "1", "0", "enter")
	for i := 0; i < 9; i++ {
		press(t, a, "down")
	}
	if a.sumCursor != 9 {
		t.Fatalf("sumCursor = %d, want 9", a.sumCursor)
	}

	// ids 1-9 leave the selection without going through the panel
	a.sel.ClearVisible(a.State().Records[:9])
	a.State().Recheck(a.sel)
	press(t, a, "d")
	if a.Selection().Len() != 0 {
		t.Fatalf("selected = %v, want none", selectedIDs(a))
	}
}

func TestSummaryFilter(t *testing.T) {
	a, _ := newTestApp(t, 25)
	press(t, a, "a")
	press(t, a, "tab", "/", "W", "o", "r", "k", " ", "7", "enter")
	entries := a.summaryEntries()
	if len(entries) == 0 || entries[0].ID != 7 {
		t.Fatalf("filtered = %v, want id 7 first", entries)
	}
	press(t, a, "d")
	if a.Selection().Has(7) || a.Selection().Len() != 9 {
		t.Fatalf("deselect through filter failed: len %d", a.Selection().Len())
	}
	press(t, a, "esc")
	if a.filter.Value() != "" || len(a.summaryEntries()) != 9 {
		t.Fatalf("esc did not clear filter")
	}
}

func TestJumpToPage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantPage int
		wantErr  string
	}{
		{name: "valid", input: "4", wantPage: 4},
		{name: "too large", input: "9", wantPage: 1, wantErr: "between 1 and 5"},
		{name: "not a number", input: "x", wantPage: 1, wantErr: "enter a page number"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestApp(t, 50)
			press(t, a, "g")
			keys := strings.Split(tt.input, "")
			press(t, a, append(keys, "enter")...)
			if a.State().Page != tt.wantPage {
				t.Fatalf("page = %d, want %d", a.State().Page, tt.wantPage)
			}
			if tt.wantErr != "" && !strings.Contains(a.status, tt.wantErr) {
				t.Fatalf("status = %q, want %q", a.status, tt.wantErr)
			}
			if tt.wantErr == "" && a.jumping {
				t.Fatal("jump prompt still open")
			}
		})
	}
}

func TestViewRendersPlaceholders(t *testing.T) {
	a := New(context.Background(), testConfig(), &fakeLoader{}, logging.Discard())
	a.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	tag := a.State().Begin(1)
	a.Update(pageLoadedMsg{tag: tag, page: catalog.Page{Number: 1, Total: 1, TotalPages: 1, Records: []catalog.Record{{ID: 99}}}})
	press(t, a, "space")

	view := a.View()
	for _, want := range []string{"Untitled", "Unknown artist", "Selected (1)", "[x]"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestYears(t *testing.T) {
	y := func(i int) *int { return &i }
	tests := []struct {
		r    catalog.Record
		want string
	}{
		{catalog.Record{}, ""},
		{catalog.Record{DateStart: y(1884), DateEnd: y(1886)}, "1884–1886"},
		{catalog.Record{DateStart: y(1942), DateEnd: y(1942)}, "1942"},
		{catalog.Record{DateEnd: y(1500)}, "1500"},
	}
	for _, tt := range tests {
		if got := years(tt.r); got != tt.want {
			t.Errorf("years(%+v) = %q, want %q", tt.r, got, tt.want)
		}
	}
}
