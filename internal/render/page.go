// Package render turns a computed view into a display tree and draws it as an
// HTML page or a terminal table. Building the tree is pure, so everything a
// page shows can be checked without a browser.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"alertdash/internal/models"
	"alertdash/internal/store"
	"alertdash/internal/urlstate"
	"alertdash/internal/view"
)

// Page status values.
const (
	StatusLoaded = "loaded"
	StatusEmpty  = "empty"
	StatusFailed = "failed"
)

// Page is the display tree of one dashboard view.
type Page struct {
	Title   string
	Status  string
	Message string
	Summary string
	Grouped bool

	Modes               []Toggle
	GroupedWithBugsOnly *Toggle
	PlatformLabel       string
	Platforms           []Toggle
	ProbeQuery          string
	DateFrom            string
	DateTo              string
	ClearURL            string
	// Hidden carries the rest of the state through the search form.
	Hidden []Field

	Headers []Header
	Rows    []Row
}

// Toggle is a clickable on/off control whose URL applies the change.
type Toggle struct {
	Label  string
	URL    string
	Active bool
}

// Field is a hidden form field.
type Field struct {
	Name  string
	Value string
}

// Header is a table column header. SortURL is empty for unsortable columns.
type Header struct {
	Label     string
	SortURL   string
	Indicator string
}

// Cell is one table cell, optionally linked.
type Cell struct {
	Text  string
	URL   string
	Class string
}

// Detail is one labelled value of an expanded row.
type Detail struct {
	Label string
	Text  string
	URL   string
}

// Row is a table row. Group rows carry their members in Children.
type Row struct {
	ID           string
	Cells        []Cell
	Details      []Detail
	ChildHeaders []string
	Children     []Row
}

// Input is everything Build needs.
type Input struct {
	Title    string
	BasePath string
	State    view.State
	Result   view.Result
	Store    *store.Store
	Links    Links
}

// Build assembles the page for a loaded store.
func Build(in Input) Page {
	b := builder{in: in}
	st := in.State

	page := Page{
		Title:      in.Title,
		Status:     StatusLoaded,
		Summary:    Summary(in.Result),
		Grouped:    in.Result.Mode == view.ModeGrouped,
		ProbeQuery: strings.Join(st.ProbeTerms, " "),
		DateFrom:   st.DateFrom,
		DateTo:     st.DateTo,
		ClearURL:   b.url(st.ClearFilters()),
		Hidden:     b.hidden(),
	}

	for _, m := range view.Modes {
		page.Modes = append(page.Modes, Toggle{Label: ModeLabel(m), URL: b.url(st.WithMode(m)), Active: in.Result.Mode == m})
	}
	if page.Grouped {
		page.GroupedWithBugsOnly = &Toggle{
			Label:  "With Bugs Only",
			URL:    b.url(st.ToggleGroupedWithBugsOnly()),
			Active: st.GroupedWithBugsOnly,
		}
	}

	page.PlatformLabel = platformLabel(st.Platforms)
	for _, p := range in.Store.Platforms() {
		page.Platforms = append(page.Platforms, Toggle{Label: p, URL: b.url(st.TogglePlatform(p)), Active: st.HasPlatform(p)})
	}

	switch in.Result.Mode {
	case view.ModeGrouped:
		page.Headers = b.groupHeaders()
		for i := range in.Result.Groups {
			page.Rows = append(page.Rows, b.groupRow(&in.Result.Groups[i]))
		}
	default:
		withBug := in.Result.Mode == view.ModeWithBugs
		page.Headers = b.flatHeaders(withBug)
		for i, a := range in.Result.Alerts {
			page.Rows = append(page.Rows, b.alertRow(a, fmt.Sprintf("row-%d", i), withBug))
		}
	}

	return page
}

// ErrorPage is shown when the alerts could not be loaded.
func ErrorPage(title string, err error) Page {
	return Page{Title: title, Status: StatusFailed, Message: fmt.Sprintf("Error loading alerts: %v", err)}
}

// EmptyPage is shown when the query returned no alerts at all.
func EmptyPage(title string) Page {
	return Page{Title: title, Status: StatusEmpty, Message: "No alerts found."}
}

type builder struct {
	in Input
}

// url links to the page showing next, keeping the current sort.
func (b builder) url(next view.State) string {
	next.Sort = b.in.State.Sort
	next.GroupSort = b.in.State.GroupSort
	return b.stateURL(next)
}

func (b builder) stateURL(st view.State) string {
	q := urlstate.Encode(st)
	urlstate.EncodeSort(q, st)
	base := b.in.BasePath
	if base == "" {
		base = "/"
	}
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}

func (b builder) hidden() []Field {
	q := urlstate.Encode(b.in.State)
	urlstate.EncodeSort(q, b.in.State)
	q.Del(urlstate.ParamProbe)
	q.Del(urlstate.ParamDateFrom)
	q.Del(urlstate.ParamDateTo)

	var fields []Field
	for _, name := range []string{
		urlstate.ParamView, urlstate.ParamPlatforms, urlstate.ParamGroupedWithBugsOnly,
		urlstate.ParamSort, urlstate.ParamDir, urlstate.ParamGroupSort, urlstate.ParamGroupDir,
	} {
		if v := q.Get(name); v != "" {
			fields = append(fields, Field{Name: name, Value: v})
		}
	}
	return fields
}

func (b builder) flatHeaders(withBug bool) []Header {
	cols := []struct {
		label string
		col   view.Column
	}{
		{"Alert ID", view.ColumnAlertID},
		{"Bug", view.ColumnBug},
		{"Bug Status", view.ColumnBugStatus},
		{"Probe", view.ColumnProbe},
		{"Platform", view.ColumnPlatform},
		{"Push Date", view.ColumnPushDate},
	}

	sort := b.in.State.Sort
	var headers []Header
	for _, c := range cols {
		if !withBug && (c.col == view.ColumnBug || c.col == view.ColumnBugStatus) {
			continue
		}
		h := Header{Label: c.label, SortURL: b.stateURL(b.in.State.SortBy(c.col))}
		if sort.Column == c.col {
			h.Indicator = string(sort.Direction)
		}
		headers = append(headers, h)
	}
	return headers
}

func (b builder) groupHeaders() []Header {
	labels := map[view.GroupColumn]string{
		view.GroupBySummaryID:     "Alert Summary ID",
		view.GroupByCount:         "Alert Count",
		view.GroupByMostRecent:    "Alert Last Created",
		view.GroupByDetectionDate: "Push Date",
	}

	gs := b.in.State.GroupSort
	var headers []Header
	for _, c := range view.GroupColumns {
		h := Header{Label: labels[c], SortURL: b.stateURL(b.in.State.SortGroupsBy(c))}
		if gs.Column == c {
			h.Indicator = string(gs.Direction)
		}
		headers = append(headers, h)
	}
	return headers
}

var memberHeaders = []string{"Alert ID", "Bug", "Bug Status", "Probe", "Platform", "Push Date"}

func (b builder) groupRow(g *view.Group) Row {
	id := fmt.Sprintf("group-%d", g.SummaryID)
	mostRecent := &g.MostRecent
	row := Row{
		ID: id,
		Cells: []Cell{
			{Text: strconv.FormatInt(g.SummaryID, 10), Class: "strong"},
			{Text: strconv.Itoa(g.Count)},
			{Text: FormatDate(mostRecent)},
			{Text: FormatDate(g.DetectionDate)},
		},
		ChildHeaders: memberHeaders,
	}
	for i, a := range g.Alerts {
		row.Children = append(row.Children, b.alertRow(a, fmt.Sprintf("%s-alert-%d", id, i), true))
	}
	return row
}

func (b builder) alertRow(a *models.Alert, id string, withBug bool) Row {
	cells := []Cell{{Text: strconv.FormatInt(a.AlertID, 10)}}
	if withBug {
		bug := Cell{Text: notAvailable}
		if a.Bug != nil {
			bug = Cell{Text: strconv.FormatInt(*a.Bug, 10), URL: b.in.Links.Bug(*a.Bug)}
		}
		cells = append(cells, bug, Cell{Text: deref(a.BugStatus), Class: "badge " + BugStatusClass(a.BugStatus)})
	}

	probe := Cell{Text: b.in.Store.PadProbe(a.Probe), Class: "probe"}
	if a.Probe != nil {
		probe.URL = b.in.Links.Probe(*a.Probe, a.Platform)
	}
	cells = append(cells, probe, Cell{Text: a.Platform}, Cell{Text: FormatDate(a.PushDate)})

	return Row{ID: id, Cells: cells, Details: b.details(a)}
}

func (b builder) details(a *models.Alert) []Detail {
	revision := func(label string, rev *string) Detail {
		if rev == nil {
			return Detail{Label: label, Text: notAvailable}
		}
		return Detail{Label: label, Text: *rev, URL: b.in.Links.Revision(*rev)}
	}

	pushRange := Detail{Label: "Push Range", Text: notAvailable}
	if a.PushRange != nil {
		pushRange = Detail{Label: "Push Range", Text: "View on Treeherder", URL: *a.PushRange}
	}

	return []Detail{
		{Label: "Alert Summary ID", Text: strconv.FormatInt(a.AlertSummaryID, 10)},
		{Label: "Created", Text: FormatDate(a.Created)},
		revision("Detection Push", a.DetectionPush),
		revision("Oldest Push", a.OldestPush),
		revision("Newest Push", a.NewestPush),
		pushRange,
	}
}

func platformLabel(platforms []string) string {
	switch len(platforms) {
	case 0:
		return "All Platforms"
	case 1:
		return platforms[0]
	default:
		return fmt.Sprintf("%d selected", len(platforms))
	}
}
